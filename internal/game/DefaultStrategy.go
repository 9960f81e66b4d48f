package game

import (
	"math"
	"sync"
)

// GreedyPilot steers toward the item while refusing moves that die on the next
// tick. It observes frames and answers PollDirection from the last one.
type GreedyPilot struct {
	mu    sync.Mutex
	frame *Frame
}

func NewGreedyPilot() *GreedyPilot {
	return &GreedyPilot{}
}

func (g *GreedyPilot) Observe(frame Frame) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frame = &frame
}

func (g *GreedyPilot) PollDirection() Direction {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frame == nil || g.frame.Status != StatusPlaying {
		return None
	}
	return nextBestDirection(*g.frame)
}

func nextBestDirection(frame Frame) Direction {
	current := frame.Direction
	best := None
	bestDist := math.MaxInt32

	for _, dir := range Directions {
		// Reversals are rejected by the snake anyway.
		if current != None && dir == current.Opposite() {
			continue
		}
		next := frame.Head.Step(dir)
		if !isSafe(frame, next) {
			continue
		}

		dist := GetManhattanDistance(next, frame.Item)
		// Prefer keeping the current heading on ties.
		if dir == current {
			dist--
		}
		if dist < bestDist {
			bestDist = dist
			best = dir
		}
	}

	if best == current {
		return None
	}
	return best
}

// isSafe mirrors the rules for the next tick: the board marks the border and
// body[1:growth], which is exactly what the next Evaluate checks.
func isSafe(frame Frame, next Position) bool {
	switch frame.Board.At(next.X, next.Y) {
	case CellBorder, CellBody:
		return false
	}
	return true
}
