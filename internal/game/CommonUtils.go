package game

import (
	"fmt"
	"strings"
)

// Position is a grid coordinate. Row 0 is the top row.
type Position struct {
	X, Y int
}

// Sentinel is the parked value of unused body slots. It sits on the border corner
// so it is never a legal head or item position.
var Sentinel = Position{X: 0, Y: 0}

func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four cardinal directions in a fixed order.
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// ParseDirection accepts the names produced by Direction.String, case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "none", "":
		return None, true
	}
	return None, false
}

const MinDimension = 5

// Dimensions is the fixed size of a session grid.
type Dimensions struct {
	Width  int
	Height int
}

func NewDimensions(width, height int) (Dimensions, error) {
	if width < MinDimension || height < MinDimension {
		return Dimensions{}, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return Dimensions{Width: width, Height: height}, nil
}

func (d Dimensions) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.Width && p.Y < d.Height
}

// IsBorder reports whether p is on the outer ring. Cells outside the grid count as border.
func (d Dimensions) IsBorder(p Position) bool {
	if !d.Contains(p) {
		return true
	}
	return p.X == 0 || p.Y == 0 || p.X == d.Width-1 || p.Y == d.Height-1
}

func (d Dimensions) IsInterior(p Position) bool {
	return !d.IsBorder(p)
}

func (d Dimensions) InteriorCells() int {
	return (d.Width - 2) * (d.Height - 2)
}

func (d Dimensions) Center() Position {
	return Position{X: d.Width / 2, Y: d.Height / 2}
}

func GetManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
