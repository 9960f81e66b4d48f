package ui

import (
	"context"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	LeaderboardScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Leaderboard
type SetupSubmitMsg struct {
	Name string
}

// QuitLeaderboardMsg returns from the intro leaderboard to the intro screen.
type QuitLeaderboardMsg struct{}

// Leaderboard is the read side of the high score store. It may be nil.
type Leaderboard interface {
	GetHighScores(ctx context.Context, limit, offset int) ([]game.Score, error)
}

// Deps is everything the UI needs from the driving process.
type Deps struct {
	Ctx         context.Context
	GameManager *game.GameManager
	Updates     *game.MessageRenderer
	// Keyboard is nil when an autopilot steers the snake.
	Keyboard    *game.ChannelSource
	Leaderboard Leaderboard
}

type ControllerModel struct {
	CurrentScreen Screen
	deps          Deps
	loopStarted   bool

	IntroModel       tea.Model
	SetupModel       tea.Model
	GameModel        tea.Model
	LeaderboardModel tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(deps Deps, screenWidth int, screenHeight int) ControllerModel {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		deps:          deps,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			return m.LeaderboardModel.View()
		}
		return "Leaderboard Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		var cmds []tea.Cmd
		for _, child := range []*tea.Model{&m.IntroModel, &m.SetupModel, &m.GameModel, &m.LeaderboardModel} {
			if *child != nil {
				*child, cmd = (*child).Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		m.CurrentScreen = LeaderboardScreen
		m.LeaderboardModel = NewLeaderboardModel(m.deps, m.ScreenWidth, m.ScreenHeight)
		return m, m.LeaderboardModel.Init()

	case QuitLeaderboardMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case SetupSubmitMsg:
		m.CurrentScreen = GameScreen
		m.deps.GameManager.SetPlayerName(msg.Name)
		m.GameModel = NewGameModel(m.deps, msg.Name, m.ScreenWidth, m.ScreenHeight)
		cmds := []tea.Cmd{m.GameModel.Init()}
		if !m.loopStarted {
			m.loopStarted = true
			cmds = append(cmds, startGameLoop(m.deps))
		}
		return m, tea.Batch(cmds...)
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
		}
	}
	return m, cmd
}

// startGameLoop runs the driver for the lifetime of the UI. An engine fault
// comes back as EngineFaultMsg.
func startGameLoop(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if err := deps.GameManager.StartGameLoop(deps.Ctx); err != nil {
			return game.EngineFaultMsg{Err: err}
		}
		return nil
	}
}
