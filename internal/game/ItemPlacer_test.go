package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPlaceAvoidsOccupiedBorderAndOrigin(t *testing.T) {
	dims := Dimensions{Width: 12, Height: 9}
	placer := NewItemPlacer(rand.New(rand.NewSource(7)))
	rng := rand.New(rand.NewSource(99))

	for round := 0; round < 500; round++ {
		occupied := make(map[Position]struct{})
		n := rng.Intn(dims.InteriorCells() - 1)
		for i := 0; i < n; i++ {
			occupied[Position{X: 1 + rng.Intn(dims.Width-2), Y: 1 + rng.Intn(dims.Height-2)}] = struct{}{}
		}

		pos, err := placer.Place(occupied, dims)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if _, taken := occupied[pos]; taken {
			t.Fatalf("round %d: placed on occupied cell %v", round, pos)
		}
		if dims.IsBorder(pos) || pos == Sentinel {
			t.Fatalf("round %d: placed on border %v", round, pos)
		}
	}
}

func TestPlaceFindsLastFreeCell(t *testing.T) {
	dims := Dimensions{Width: 6, Height: 6}
	free := Position{X: 3, Y: 4}
	occupied := make(map[Position]struct{})
	for y := 1; y < dims.Height-1; y++ {
		for x := 1; x < dims.Width-1; x++ {
			if p := (Position{X: x, Y: y}); p != free {
				occupied[p] = struct{}{}
			}
		}
	}

	pos, err := NewSeededItemPlacer(1).Place(occupied, dims)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if pos != free {
		t.Fatalf("placed at %v, want %v", pos, free)
	}
}

func TestPlaceOnFullBoard(t *testing.T) {
	dims := Dimensions{Width: 5, Height: 5}
	occupied := make(map[Position]struct{})
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			occupied[Position{X: x, Y: y}] = struct{}{}
		}
	}
	if _, err := NewSeededItemPlacer(1).Place(occupied, dims); !errors.Is(err, ErrBoardFull) {
		t.Fatalf("err = %v, want ErrBoardFull", err)
	}
}

func TestFreeCellsIgnoresBorderEntries(t *testing.T) {
	dims := Dimensions{Width: 5, Height: 5}
	occupied := map[Position]struct{}{
		Sentinel:     {},
		{X: 2, Y: 2}: {},
		{X: 4, Y: 1}: {},
		{X: 1, Y: 3}: {},
	}
	if got := FreeCells(occupied, dims); got != 7 {
		t.Fatalf("FreeCells = %d, want 7", got)
	}
}
