package game

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid leaves no interior play space.
	ErrInvalidDimensions = errors.New("grid dimensions must be at least 5x5")
	// ErrGrowthCapacity is an engine fault: the body storage cannot hold the requested growth.
	// It is never a normal game over.
	ErrGrowthCapacity = errors.New("snake body storage exhausted")
	// ErrBoardFull means no interior cell is free for the next item.
	ErrBoardFull = errors.New("no free interior cell for item")
	// ErrSessionFaulted is returned by Tick after an engine fault until Restart.
	ErrSessionFaulted = errors.New("session faulted")
	ErrScoreNotFound  = errors.New("score not found")
)
