package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// GameTickMsg carries the frame of a tick that left the game running.
type GameTickMsg struct {
	Frame Frame
}

// GameOverMsg carries the final frame of a lost or won game.
type GameOverMsg struct {
	Frame Frame
}

// EngineFaultMsg reports that the game loop stopped on an engine fault.
type EngineFaultMsg struct {
	Err error
}

// ScoreRecorder persists finished games.
type ScoreRecorder interface {
	SaveScore(ctx context.Context, score Score) (int64, error)
}

// GameManager drives one Session: it paces ticks, polls the input source,
// hands frames to the renderer and records finished games.
type GameManager struct {
	Session  *Session
	Input    DirectionSource
	Renderer Renderer
	Scores   ScoreRecorder

	tickDuration   time.Duration
	restartChannel chan struct{}

	mu         sync.Mutex
	playerName string
	isRunning  bool
	recorded   bool
}

type ManagerOption func(*GameManager)

func WithTickDuration(d time.Duration) ManagerOption {
	return func(gm *GameManager) {
		if d > 0 {
			gm.tickDuration = d
		}
	}
}

func WithRenderer(r Renderer) ManagerOption {
	return func(gm *GameManager) { gm.Renderer = r }
}

func WithScoreRecorder(rec ScoreRecorder) ManagerOption {
	return func(gm *GameManager) { gm.Scores = rec }
}

func NewGameManager(session *Session, input DirectionSource, opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		Session:        session,
		Input:          input,
		tickDuration:   GameTickDuration,
		restartChannel: make(chan struct{}, 1),
		playerName:     "anonymous",
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

func (gm *GameManager) SetPlayerName(name string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if name != "" {
		gm.playerName = name
	}
}

func (gm *GameManager) PlayerName() string {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.playerName
}

func (gm *GameManager) IsRunning() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.isRunning
}

// Restart asks the loop to reset the session before the next tick.
func (gm *GameManager) Restart() {
	select {
	case gm.restartChannel <- struct{}{}:
	default:
	}
}

// StartGameLoop runs until ctx is done or an engine fault occurs. The fault is
// returned; cancellation returns nil. Calling it on a running manager is a no-op.
func (gm *GameManager) StartGameLoop(ctx context.Context) error {
	gm.mu.Lock()
	if gm.isRunning {
		gm.mu.Unlock()
		return nil
	}
	gm.isRunning = true
	gm.mu.Unlock()
	defer func() {
		gm.mu.Lock()
		gm.isRunning = false
		gm.mu.Unlock()
	}()

	log.Info("Game loop started.", "tick", gm.tickDuration, "player", gm.PlayerName())
	ticker := time.NewTicker(gm.tickDuration)
	defer ticker.Stop()

	gm.publish(gm.Session.Frame())
	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped.", "player", gm.PlayerName())
			return nil
		case <-gm.restartChannel:
			gm.processRestart()
		case <-ticker.C:
			if err := gm.processGameTick(ctx); err != nil {
				log.Error("Engine fault, stopping game loop", "error", err)
				return err
			}
		}
	}
}

func (gm *GameManager) processRestart() {
	if err := gm.Session.Restart(); err != nil {
		log.Error("Restart failed", "error", err)
		return
	}
	if src, ok := gm.Input.(*ChannelSource); ok {
		src.Clear()
	}
	gm.mu.Lock()
	gm.recorded = false
	gm.mu.Unlock()
	log.Debug("Session restarted", "player", gm.PlayerName())
	gm.publish(gm.Session.Frame())
}

// processGameTick runs one physics step. Finished games issue no further ticks.
func (gm *GameManager) processGameTick(ctx context.Context) error {
	if gm.Session.Status() != StatusPlaying {
		return nil
	}

	requested := None
	if gm.Input != nil {
		requested = gm.Input.PollDirection()
	}
	frame, err := gm.Session.Tick(requested)
	if err != nil {
		return fmt.Errorf("tick %d: %w", frame.Tick, err)
	}
	if frame.Status != StatusPlaying {
		log.Info("Game finished", "player", gm.PlayerName(), "status", frame.Status,
			"cause", frame.Cause, "score", frame.Score, "ticks", frame.Tick)
		gm.recordScore(ctx, frame)
	}
	gm.publish(frame)
	return nil
}

func (gm *GameManager) recordScore(ctx context.Context, frame Frame) {
	gm.mu.Lock()
	if gm.Scores == nil || gm.recorded {
		gm.mu.Unlock()
		return
	}
	gm.recorded = true
	name := gm.playerName
	gm.mu.Unlock()

	id, err := gm.Scores.SaveScore(ctx, ScoreFromFrame(name, frame))
	if err != nil {
		log.Error("High score persist failed", "player", name, "error", err)
		return
	}
	log.Debug("High score saved", "player", name, "id", id, "score", frame.Score)
}

func (gm *GameManager) publish(frame Frame) {
	if observer, ok := gm.Input.(FrameObserver); ok {
		observer.Observe(frame)
	}
	if gm.Renderer != nil {
		gm.Renderer.Render(frame)
	}
}

// MessageRenderer forwards frames as tea messages on UpdateChannel. Running
// frames are dropped when the reader lags; final frames wait for the reader
// until Done is closed.
type MessageRenderer struct {
	UpdateChannel chan tea.Msg
	Done          <-chan struct{}
}

func NewMessageRenderer(done <-chan struct{}) *MessageRenderer {
	return &MessageRenderer{
		UpdateChannel: make(chan tea.Msg, 16),
		Done:          done,
	}
}

func (r *MessageRenderer) Render(frame Frame) {
	if frame.Status == StatusPlaying {
		select {
		case r.UpdateChannel <- GameTickMsg{Frame: frame}:
		default:
		}
		return
	}
	select {
	case r.UpdateChannel <- GameOverMsg{Frame: frame}:
	case <-r.Done:
	}
}
