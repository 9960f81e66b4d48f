package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
	StateFault
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	// Each board cell is two columns wide so the grid looks square.
	wallCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Render("▒▒")
	voidCell  = lipgloss.NewStyle().Background(lipgloss.Color("233")).Render("  ")
	bodyCell  = lipgloss.NewStyle().Background(lipgloss.Color("233")).Foreground(lipgloss.Color("42")).Render("██")
	itemCell  = lipgloss.NewStyle().Background(lipgloss.Color("233")).Foreground(lipgloss.Color("196")).Render("()")
	headStyle = lipgloss.NewStyle().Background(lipgloss.Color("233")).Foreground(lipgloss.Color("87")).Bold(true)

	headRunes = map[game.Direction]string{
		game.None:  "<>",
		game.Up:    "/\\",
		game.Down:  "\\/",
		game.Left:  "<:",
		game.Right: ":>",
	}
)

type GameViewModel struct {
	deps         Deps
	playerName   string
	frame        *game.Frame
	ScreenWidth  int
	ScreenHeight int

	gameState     GameState
	gameOverState GameOverState
	fault         error
}

func NewGameModel(deps Deps, playerName string, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		deps:         deps,
		playerName:   playerName,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case game.GameTickMsg:
		frame := msg.Frame
		m.frame = &frame
		if m.gameState != StateFault {
			m.gameState = StatePlaying
		}
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		frame := msg.Frame
		m.frame = &frame
		m.gameState = StateGameOver
		m.gameOverState.Final = frame
		m.gameOverState.SelectedButton = 0
		return m, m.listenForGameUpdates()

	case game.EngineFaultMsg:
		m.gameState = StateFault
		m.fault = msg.Err
		return m, nil

	case leaderboardMsg:
		m.gameOverState.Scores = msg.scores
		m.gameOverState.ScoresErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m GameViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}

	switch m.gameState {
	case StateFault:
		if key == "enter" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil

	case StateLeaderboard:
		if key == "esc" || key == "enter" {
			m.gameState = StateGameOver
		}
		return m, nil

	case StateGameOver:
		switch key {
		case "left", "h":
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		case "right", "l":
			m.gameOverState.SelectedButton = min(len(gameOverButtons)-1, m.gameOverState.SelectedButton+1)
		case "r":
			m.deps.GameManager.Restart()
		case "enter":
			switch m.gameOverState.SelectedButton {
			case buttonRestart:
				m.deps.GameManager.Restart()
			case buttonLeaderboard:
				m.gameState = StateLeaderboard
				return m, fetchLeaderboard(m.deps)
			case buttonExit:
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.deps.Keyboard == nil {
		return m, nil
	}
	var requested game.Direction
	switch key {
	case "w", "up":
		requested = game.Up
	case "s", "down":
		requested = game.Down
	case "a", "left":
		requested = game.Left
	case "d", "right":
		requested = game.Right
	default:
		return m, nil
	}
	m.deps.Keyboard.Push(requested)
	return m, nil
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateGameOver:
		return m.gameOverState.RenderGameOverScreen(m.playerName)
	case StateLeaderboard:
		return m.gameOverState.RenderLeaderboardScreen("Press ESC or ENTER to return.")
	case StateFault:
		return renderFault(m.fault, m.ScreenWidth, m.ScreenHeight)
	}

	if m.frame == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	mapContent := renderBoard(*m.frame)
	statusContent := m.renderStatusPanel(*m.frame)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top,
			mapViewStyle.Render(mapContent),
			statusPanelStyle.Render(statusContent),
		))
}

// renderBoard draws the inner board; the outer ring is drawn as walls.
func renderBoard(frame game.Frame) string {
	var sb strings.Builder
	board := frame.Board
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			switch board.At(x, y) {
			case game.CellBorder:
				sb.WriteString(wallCell)
			case game.CellHead:
				sb.WriteString(headStyle.Render(headRunes[frame.Direction]))
			case game.CellBody:
				sb.WriteString(bodyCell)
			case game.CellItem:
				sb.WriteString(itemCell)
			default:
				sb.WriteString(voidCell)
			}
		}
		if y < board.Height()-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m GameViewModel) renderStatusPanel(frame game.Frame) string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Player Stats ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("%s%s\n", focusedStyle.Render("● "), m.playerName))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", frame.Score))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", frame.Growth+1))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", frame.Direction))
	statusContent.WriteString(fmt.Sprintf("Tick: %d\n", frame.Tick))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	if m.deps.Keyboard != nil {
		statusContent.WriteString("WASD / Arrows: Move\n")
	} else {
		statusContent.WriteString("Autopilot is steering\n")
	}
	statusContent.WriteString("Q / Ctrl+C: Quit Game\n")

	return statusContent.String()
}

func renderFault(err error, width, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(1, 3)
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render("ENGINE FAULT"),
		"",
		fmt.Sprintf("%v", err),
		"",
		helpStyle.Render("Press Enter to exit."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, style.Render(content))
}

// listenForGameUpdates waits for the next message from the game loop.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.deps.Updates.UpdateChannel
	ctx := m.deps.Ctx
	return func() tea.Msg {
		select {
		case msg := <-updates:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}
