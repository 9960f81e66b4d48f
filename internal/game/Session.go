package game

import (
	"errors"
	"fmt"
)

// SessionOptions configures a new Session. Zero values fall back to defaults.
type SessionOptions struct {
	Dimensions Dimensions
	Reward     int
	// MaxSegments caps the body storage; 0 means the interior cell count.
	MaxSegments int
	// Seed seeds the item placer when Random is nil; 0 means the current time.
	Seed   int64
	Random RandomSource
}

// Frame is an immutable snapshot handed to renderers after each tick.
type Frame struct {
	Board     Board
	Score     int
	Growth    int
	Status    Status
	Cause     DeathCause
	Tick      uint64
	Head      Position
	Direction Direction
	Item      Position
	Body      []Position
}

// Session bundles every entity of one game. It is not safe for concurrent use;
// a single driver owns it and calls Tick once per step.
type Session struct {
	dims   Dimensions
	rules  Rules
	placer *ItemPlacer
	snake  *Snake
	item   Position
	score  int
	status Status
	cause  DeathCause
	tick   uint64
	fault  error
	board  Board
}

// NewSession centres the head, leaves the direction at None and places the first item.
func NewSession(opts SessionOptions) (*Session, error) {
	dims, err := NewDimensions(opts.Dimensions.Width, opts.Dimensions.Height)
	if err != nil {
		return nil, err
	}

	reward := opts.Reward
	if reward <= 0 {
		reward = DefaultReward
	}
	capacity := opts.MaxSegments
	if capacity <= 0 || capacity > dims.InteriorCells() {
		capacity = dims.InteriorCells()
	}

	placer := NewSeededItemPlacer(opts.Seed)
	if opts.Random != nil {
		placer = NewItemPlacer(opts.Random)
	}

	s := &Session{
		dims:   dims,
		rules:  Rules{Reward: reward},
		placer: placer,
		snake:  NewSnake(dims.Center(), capacity),
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Dimensions() Dimensions { return s.dims }
func (s *Session) Snake() *Snake          { return s.snake }
func (s *Session) Item() Position         { return s.item }
func (s *Session) Score() int             { return s.score }
func (s *Session) Status() Status         { return s.status }
func (s *Session) Reward() int            { return s.rules.Reward }

// Tick advances the game by one step. requested is the pending player input,
// None when there is none. Once the game is over or won Tick only returns the
// final frame. An engine fault is returned as an error and sticks until Restart.
func (s *Session) Tick(requested Direction) (Frame, error) {
	if s.fault != nil {
		return s.Frame(), fmt.Errorf("%w: %w", ErrSessionFaulted, s.fault)
	}
	if s.status != StatusPlaying {
		return s.Frame(), nil
	}

	if requested != None {
		s.snake.ApplyDirection(requested)
	}
	s.snake.Move()
	s.tick++

	verdict := s.rules.Evaluate(s.snake, s.item, s.dims)
	s.score += verdict.ScoreDelta
	if verdict.Status == StatusOver {
		s.status = StatusOver
		s.cause = verdict.Cause
		s.rebuild()
		return s.Frame(), nil
	}

	if verdict.ItemConsumed {
		if err := s.consumeItem(); err != nil {
			s.fault = err
			s.rebuild()
			return s.Frame(), err
		}
	}

	s.snake.UpdateTail()
	s.rebuild()
	return s.Frame(), nil
}

func (s *Session) consumeItem() error {
	// Head plus the grown body would cover the whole interior: nothing left to place.
	if s.snake.Growth()+s.rules.Reward+1 >= s.dims.InteriorCells() {
		s.status = StatusWon
		return nil
	}
	if err := s.snake.Grow(s.rules.Reward); err != nil {
		return err
	}
	item, err := s.placer.Place(s.snake.Occupied(), s.dims)
	if errors.Is(err, ErrBoardFull) {
		s.status = StatusWon
		return nil
	}
	if err != nil {
		return err
	}
	s.item = item
	return nil
}

// Restart resets the snake, score and status and places a fresh item. The
// dimensions and the random source are kept.
func (s *Session) Restart() error {
	return s.reset()
}

func (s *Session) reset() error {
	s.snake.Reset(s.dims.Center())
	s.score = 0
	s.status = StatusPlaying
	s.cause = CauseNone
	s.tick = 0
	s.fault = nil

	item, err := s.placer.Place(s.snake.Occupied(), s.dims)
	if err != nil {
		return err
	}
	s.item = item
	s.rebuild()
	return nil
}

func (s *Session) rebuild() {
	s.board = Rebuild(s.snake, s.item, s.dims)
}

func (s *Session) Frame() Frame {
	return Frame{
		Board:     s.board,
		Score:     s.score,
		Growth:    s.snake.Growth(),
		Status:    s.status,
		Cause:     s.cause,
		Tick:      s.tick,
		Head:      s.snake.Head(),
		Direction: s.snake.Direction(),
		Item:      s.item,
		Body:      s.snake.Segments(),
	}
}
