package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	session, err := game.NewSession(game.SessionOptions{
		Dimensions: game.Dimensions{Width: 30, Height: 15},
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	updates := game.NewMessageRenderer(ctx.Done())
	keyboard := game.NewChannelSource()
	return Deps{
		Ctx:         ctx,
		GameManager: game.NewGameManager(session, keyboard, game.WithRenderer(updates)),
		Updates:     updates,
		Keyboard:    keyboard,
	}
}

func TestControllerFlow(t *testing.T) {
	deps := newTestDeps(t)
	var model tea.Model = NewControllerModel(deps, 100, 40)

	model, _ = model.Update(IntroSubmitMsg(0))
	if got := model.(ControllerModel).CurrentScreen; got != SetupScreen {
		t.Fatalf("screen = %v, want setup", got)
	}

	model, cmd := model.Update(SetupSubmitMsg{Name: "neo"})
	if cmd == nil {
		t.Fatal("submitting the name returned no command")
	}
	controller := model.(ControllerModel)
	if controller.CurrentScreen != GameScreen || controller.GameModel == nil {
		t.Fatalf("screen = %v, want game", controller.CurrentScreen)
	}
	if deps.GameManager.PlayerName() != "neo" {
		t.Fatalf("player name = %q", deps.GameManager.PlayerName())
	}
}

func TestControllerLeaderboardWithoutStore(t *testing.T) {
	deps := newTestDeps(t)
	var model tea.Model = NewControllerModel(deps, 100, 40)

	model, cmd := model.Update(IntroSubmitMsg(1))
	if model.(ControllerModel).CurrentScreen != LeaderboardScreen {
		t.Fatal("did not switch to the leaderboard")
	}
	model, _ = model.Update(cmd())
	if !strings.Contains(model.View(), errNoLeaderboard.Error()) {
		t.Fatalf("view does not explain the missing store:\n%s", model.View())
	}

	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(cmd())
	if model.(ControllerModel).CurrentScreen != IntroScreen {
		t.Fatal("esc did not return to the intro")
	}
}

func TestGameViewPushesDirections(t *testing.T) {
	deps := newTestDeps(t)
	var view tea.Model = NewGameModel(deps, "neo", 100, 40)

	view, _ = view.Update(game.GameTickMsg{Frame: deps.GameManager.Session.Frame()})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	if got := deps.Keyboard.PollDirection(); got != game.Up {
		t.Fatalf("first queued direction = %v, want up", got)
	}
	if got := deps.Keyboard.PollDirection(); got != game.Left {
		t.Fatalf("second queued direction = %v, want left", got)
	}
	if !strings.Contains(view.View(), "Score: 0") {
		t.Fatalf("status panel missing score:\n%s", view.View())
	}
}

func TestGameViewGameOver(t *testing.T) {
	deps := newTestDeps(t)
	var view tea.Model = NewGameModel(deps, "neo", 100, 40)

	final := game.Frame{Status: game.StatusOver, Cause: game.CauseBorder, Score: 15, Growth: 15, Tick: 42}
	view, _ = view.Update(game.GameOverMsg{Frame: final})

	out := view.View()
	for _, want := range []string{"G A M E   O V E R", "Hit the wall", "Score: 15", "Length: 16"} {
		if !strings.Contains(out, want) {
			t.Fatalf("game over view missing %q:\n%s", want, out)
		}
	}

	// Arrow keys now move the button selection, not the snake.
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := deps.Keyboard.PollDirection(); got != game.None {
		t.Fatalf("key leaked to the snake: %v", got)
	}
	if got := view.(GameViewModel).gameOverState.SelectedButton; got != buttonLeaderboard {
		t.Fatalf("selected button = %d, want leaderboard", got)
	}
}

func TestGameViewFault(t *testing.T) {
	deps := newTestDeps(t)
	var view tea.Model = NewGameModel(deps, "neo", 100, 40)

	view, _ = view.Update(game.EngineFaultMsg{Err: game.ErrGrowthCapacity})
	if !strings.Contains(view.View(), "ENGINE FAULT") {
		t.Fatalf("fault view:\n%s", view.View())
	}
}

func TestGameViewWonText(t *testing.T) {
	deps := newTestDeps(t)
	var view tea.Model = NewGameModel(deps, "neo", 100, 40)

	final := game.Frame{Status: game.StatusWon, Score: 10, Growth: 5, Tick: 12}
	view, _ = view.Update(game.GameOverMsg{Frame: final})

	out := view.View()
	for _, want := range []string{"B O A R D   C L E A R E D", "No room to grow"} {
		if !strings.Contains(out, want) {
			t.Fatalf("won view missing %q:\n%s", want, out)
		}
	}
}

func TestIntroMenu(t *testing.T) {
	var intro tea.Model = NewIntroModel(100, 40)
	if !strings.Contains(intro.View(), "> Play") {
		t.Fatalf("cursor not on play:\n%s", intro.View())
	}

	intro, _ = intro.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(intro.View(), "> Leaderboard") {
		t.Fatalf("cursor not on leaderboard:\n%s", intro.View())
	}
	_, cmd := intro.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if msg := cmd(); msg != IntroSubmitMsg(1) {
		t.Fatalf("enter sent %v, want leaderboard", msg)
	}

	// Wraps around to the first entry.
	intro, _ = intro.Update(tea.KeyMsg{Type: tea.KeyDown})
	if _, cmd = intro.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd() != IntroSubmitMsg(0) {
		t.Fatal("menu did not wrap to play")
	}
}
