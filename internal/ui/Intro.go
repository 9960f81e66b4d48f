package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type introEntry struct {
	label  string
	choice IntroSubmitMsg
}

var introEntries = []introEntry{
	{"Play", 0},
	{"Leaderboard", 1},
}

// IntroModel is the main menu.
type IntroModel struct {
	cursor int
	width  int
	height int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(introEntries)
		case "up", "k", "shift+tab":
			m.cursor = (m.cursor + len(introEntries) - 1) % len(introEntries)
		case "enter", " ":
			choice := introEntries[m.cursor].choice
			return m, func() tea.Msg { return choice }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

var snakeBanner = strings.Join([]string{
	" ███████ ███    ██  █████  ██   ██ ███████",
	" ██      ████   ██ ██   ██ ██  ██  ██",
	" ███████ ██ ██  ██ ███████ █████   █████",
	"      ██ ██  ██ ██ ██   ██ ██  ██  ██",
	" ███████ ██   ████ ██   ██ ██   ██ ███████",
}, "\n")

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(18)

	menuCursorStyle = menuItemStyle.
			Foreground(lipgloss.Color("42")).
			Bold(true)

	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 2)
)

func (m IntroModel) View() string {
	items := make([]string, len(introEntries))
	for i, entry := range introEntries {
		if i == m.cursor {
			items[i] = menuCursorStyle.Render("> " + entry.label)
		} else {
			items[i] = menuItemStyle.Render("  " + entry.label)
		}
	}

	menu := menuBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	hint := helpStyle.Render("up/down move, enter selects, q quits")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, bannerStyle.Render(snakeBanner), menu, hint))
}
