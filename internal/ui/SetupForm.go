package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultPlayerName = "anonymous"

var (
	focusedColor = lipgloss.Color("42")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	submitButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focusedColor).
				Padding(0, 1)
)

// SetupModel asks for the name the high score is saved under.
type SetupModel struct {
	nameInput textinput.Model
	width     int
	height    int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 24
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				name = defaultPlayerName
			}
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		case tea.KeyEsc:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Enter your name"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(submitButtonStyle.Render("Start (Enter)"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc to quit"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(1, 4).Render(b.String()),
	)
}
