package game

import (
	"math/rand"
	"time"
)

// RandomSource is the part of *rand.Rand the placer needs.
type RandomSource interface {
	Intn(n int) int
}

// ItemPlacer picks free interior cells. The random source is seeded once and
// reused for every attempt.
type ItemPlacer struct {
	rng RandomSource
}

func NewItemPlacer(rng RandomSource) *ItemPlacer {
	return &ItemPlacer{rng: rng}
}

// NewSeededItemPlacer seeds math/rand with seed, or with the current time when seed is 0.
func NewSeededItemPlacer(seed int64) *ItemPlacer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewItemPlacer(rand.New(rand.NewSource(seed)))
}

// FreeCells counts interior cells not present in occupied.
func FreeCells(occupied map[Position]struct{}, dims Dimensions) int {
	free := dims.InteriorCells()
	for pos := range occupied {
		if dims.IsInterior(pos) {
			free--
		}
	}
	return free
}

// Place samples the interior uniformly until it draws a cell outside occupied.
// The loop itself is unbounded, so it refuses to start when nothing is free.
func (p *ItemPlacer) Place(occupied map[Position]struct{}, dims Dimensions) (Position, error) {
	if FreeCells(occupied, dims) <= 0 {
		return Sentinel, ErrBoardFull
	}
	for {
		candidate := Position{
			X: 1 + p.rng.Intn(dims.Width-2),
			Y: 1 + p.rng.Intn(dims.Height-2),
		}
		if _, taken := occupied[candidate]; taken {
			continue
		}
		return candidate, nil
	}
}
