package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const leaderboardSize = 10

const (
	buttonRestart = iota
	buttonLeaderboard
	buttonExit
)

var gameOverButtons = []string{"RESTART (R)", "LEADERBOARD", "EXIT"}

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	Final          game.Frame
	Scores         []game.Score
	ScoresErr      error
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

type leaderboardMsg struct {
	scores []game.Score
	err    error
}

var errNoLeaderboard = errors.New("high scores are disabled")

func fetchLeaderboard(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Leaderboard == nil {
			return leaderboardMsg{err: errNoLeaderboard}
		}
		scores, err := deps.Leaderboard.GetHighScores(deps.Ctx, leaderboardSize, 0)
		return leaderboardMsg{scores: scores, err: err}
	}
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

func finalTitle(frame game.Frame) (string, lipgloss.Color) {
	if frame.Status == game.StatusWon {
		return "B O A R D   C L E A R E D", lipgloss.Color("42")
	}
	return "G A M E   O V E R", lipgloss.Color("9")
}

func causeText(cause game.DeathCause) string {
	switch cause {
	case game.CauseBorder:
		return "Hit the wall"
	case game.CauseSelf:
		return "Bit your own tail"
	}
	return "No room to grow"
}

// RenderGameOverScreen draws the final stats and buttons.
func (g *GameOverState) RenderGameOverScreen(playerName string) string {
	text, color := finalTitle(g.Final)
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Padding(1, 5).
		Align(lipgloss.Center).
		Render(text)

	stats := fmt.Sprintf("\n%s\n\nPlayer: %s\nScore: %d\nLength: %d\nTicks survived: %d\n",
		causeText(g.Final.Cause), playerName, g.Final.Score, g.Final.Growth+1, g.Final.Tick)

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = gameOverButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats,
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboardScreen draws the best stored scores.
func (g *GameOverState) RenderLeaderboardScreen(instruction string) string {
	var tableContent strings.Builder

	nameWidth := 20
	scoreWidth := 8
	causeWidth := 8

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
		leaderboardHeaderStyle.Width(causeWidth).Render("Cause"),
	)
	tableContent.WriteString(header + "\n")

	switch {
	case g.ScoresErr != nil:
		tableContent.WriteString(helpStyle.Render(g.ScoresErr.Error()) + "\n")
	case len(g.Scores) == 0:
		tableContent.WriteString(helpStyle.Render("No scores yet.") + "\n")
	}

	for i, score := range g.Scores {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
			leaderboardRowStyle.Width(causeWidth).Render(score.Cause),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("LEADERBOARD (TOP 10)")
	help := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render(instruction)

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		help,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}

// LeaderboardModel shows the leaderboard before any game was played.
type LeaderboardModel struct {
	deps  Deps
	state GameOverState
}

func NewLeaderboardModel(deps Deps, w, h int) LeaderboardModel {
	return LeaderboardModel{
		deps:  deps,
		state: GameOverState{ScreenWidth: w, ScreenHeight: h},
	}
}

func (m LeaderboardModel) Init() tea.Cmd {
	return fetchLeaderboard(m.deps)
}

func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.ScreenWidth, m.state.ScreenHeight = msg.Width, msg.Height
	case leaderboardMsg:
		m.state.Scores = msg.scores
		m.state.ScoresErr = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return m, func() tea.Msg { return QuitLeaderboardMsg{} }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LeaderboardModel) View() string {
	return m.state.RenderLeaderboardScreen("Press ESC or ENTER to go back.")
}
