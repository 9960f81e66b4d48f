package game

import "strings"

// Cell is the classification of one board square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBorder
	CellHead
	CellBody
	CellItem
)

func (c Cell) Rune() rune {
	switch c {
	case CellBorder:
		return '#'
	case CellHead:
		return 'O'
	case CellBody:
		return 'o'
	case CellItem:
		return '*'
	}
	return '.'
}

// Board is a derived view of the session, rebuilt every tick. It is never an
// input to the physics.
type Board struct {
	dims  Dimensions
	cells []Cell
}

// Rebuild classifies every cell from the snake, the item and the fixed border.
// Precedence is Border, Head, Item, Body.
func Rebuild(snake *Snake, item Position, dims Dimensions) Board {
	body := make(map[Position]struct{}, snake.Growth())
	for i := 1; i < snake.Growth(); i++ {
		if seg := snake.body[i]; seg != Sentinel {
			body[seg] = struct{}{}
		}
	}

	board := Board{dims: dims, cells: make([]Cell, dims.Width*dims.Height)}
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			pos := Position{X: x, Y: y}
			var cell Cell
			switch {
			case dims.IsBorder(pos):
				cell = CellBorder
			case pos == snake.Head():
				cell = CellHead
			case pos == item:
				cell = CellItem
			default:
				if _, ok := body[pos]; ok {
					cell = CellBody
				}
			}
			board.cells[y*dims.Width+x] = cell
		}
	}
	return board
}

func (b Board) Width() int  { return b.dims.Width }
func (b Board) Height() int { return b.dims.Height }

// At returns the cell at (x, y); anything off the grid reads as border.
func (b Board) At(x, y int) Cell {
	if !b.dims.Contains(Position{X: x, Y: y}) {
		return CellBorder
	}
	return b.cells[y*b.dims.Width+x]
}

func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((b.dims.Width + 1) * b.dims.Height)
	for y := 0; y < b.dims.Height; y++ {
		for x := 0; x < b.dims.Width; x++ {
			sb.WriteRune(b.At(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
