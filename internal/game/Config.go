package game

import "time"

const (
	DefaultWidth     = 30
	DefaultHeight    = 15
	GameTickDuration = 100 * time.Millisecond
)

// DefaultSessionOptions is the 30x15 board of the classic console game.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Dimensions: Dimensions{Width: DefaultWidth, Height: DefaultHeight},
		Reward:     DefaultReward,
	}
}
