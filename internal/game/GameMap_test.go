package game

import "testing"

func TestRebuild(t *testing.T) {
	dims := Dimensions{Width: 7, Height: 6}
	s := NewSnake(Position{X: 4, Y: 2}, dims.InteriorCells())
	s.Grow(4)
	s.body[0] = Position{X: 3, Y: 2}
	s.body[1] = Position{X: 2, Y: 2}
	s.body[2] = Position{X: 2, Y: 3}
	// body[3] stays parked on the sentinel.

	board := Rebuild(s, Position{X: 5, Y: 4}, dims)

	want := "" +
		"#######\n" +
		"#.....#\n" +
		"#.o.O.#\n" +
		"#.o...#\n" +
		"#....*#\n" +
		"#######\n"
	if got := board.String(); got != want {
		t.Fatalf("board:\n%s\nwant:\n%s", got, want)
	}
	if board.At(0, 0) != CellBorder {
		t.Fatal("sentinel corner must stay border")
	}
	if board.At(-1, 3) != CellBorder || board.At(7, 0) != CellBorder {
		t.Fatal("cells off the grid must read as border")
	}
}

func TestRebuildPrecedence(t *testing.T) {
	dims := Dimensions{Width: 5, Height: 5}
	s := NewSnake(Position{X: 2, Y: 2}, dims.InteriorCells())
	s.Grow(3)
	s.body[1] = Position{X: 2, Y: 2}
	s.body[2] = Position{X: 1, Y: 1}

	// Head over body and item, item over body.
	board := Rebuild(s, Position{X: 1, Y: 1}, dims)
	if board.At(2, 2) != CellHead {
		t.Fatalf("cell (2,2) = %v, want head", board.At(2, 2))
	}
	if board.At(1, 1) != CellItem {
		t.Fatalf("cell (1,1) = %v, want item", board.At(1, 1))
	}

	// Head on the border renders as border.
	s.head = Position{X: 0, Y: 2}
	board = Rebuild(s, Position{X: 3, Y: 3}, dims)
	if board.At(0, 2) != CellBorder {
		t.Fatalf("cell (0,2) = %v, want border", board.At(0, 2))
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	dims := Dimensions{Width: 10, Height: 8}
	s := NewSnake(dims.Center(), dims.InteriorCells())
	item := Position{X: 2, Y: 2}
	if Rebuild(s, item, dims).String() != Rebuild(s, item, dims).String() {
		t.Fatal("Rebuild is not idempotent")
	}
}
