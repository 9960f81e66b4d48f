package game

import (
	"errors"
	"testing"
)

func TestApplyDirection(t *testing.T) {
	tests := []struct {
		name      string
		current   Direction
		requested Direction
		accepted  bool
		want      Direction
	}{
		{"reverse rejected", Right, Left, false, Right},
		{"turn up accepted", Right, Up, true, Up},
		{"turn down accepted", Right, Down, true, Down},
		{"same direction accepted", Right, Right, true, Right},
		{"none rejected", Right, None, false, Right},
		{"any direction from none", None, Left, true, Left},
		{"none from none rejected", None, None, false, None},
		{"vertical reverse rejected", Up, Down, false, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(Position{X: 5, Y: 5}, 10)
			s.direction = tt.current
			if got := s.ApplyDirection(tt.requested); got != tt.accepted {
				t.Fatalf("ApplyDirection(%v) = %v, want %v", tt.requested, got, tt.accepted)
			}
			if s.Direction() != tt.want {
				t.Fatalf("direction = %v, want %v", s.Direction(), tt.want)
			}
		})
	}
}

func TestMove(t *testing.T) {
	start := Position{X: 5, Y: 5}
	tests := []struct {
		dir  Direction
		want Position
	}{
		{None, start},
		{Up, Position{X: 5, Y: 4}},
		{Down, Position{X: 5, Y: 6}},
		{Left, Position{X: 4, Y: 5}},
		{Right, Position{X: 6, Y: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			s := NewSnake(start, 10)
			s.ApplyDirection(tt.dir)
			s.Move()
			if s.Head() != tt.want {
				t.Fatalf("head = %v, want %v", s.Head(), tt.want)
			}
			if s.LastHead() != start {
				t.Fatalf("last head = %v, want %v", s.LastHead(), start)
			}
		})
	}
}

func TestUpdateTailStoresPreMoveHead(t *testing.T) {
	for _, growth := range []int{0, 1, 2, 5, 9} {
		s := NewSnake(Position{X: 1, Y: 1}, 20)
		if err := s.Grow(growth); err != nil {
			t.Fatalf("Grow(%d): %v", growth, err)
		}
		s.ApplyDirection(Right)
		for step := 0; step < 12; step++ {
			before := s.Head()
			s.Move()
			s.UpdateTail()
			if s.Segment(0) != before {
				t.Fatalf("growth %d step %d: body[0] = %v, want %v", growth, step, s.Segment(0), before)
			}
		}
	}
}

func TestUpdateTailRipples(t *testing.T) {
	s := NewSnake(Position{X: 1, Y: 1}, 10)
	if err := s.Grow(3); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	s.ApplyDirection(Right)
	for i := 0; i < 4; i++ {
		s.Move()
		s.UpdateTail()
	}
	// Head at (5,1); trail holds the three previous heads.
	want := []Position{{X: 4, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 1}}
	got := s.Segments()
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Slots past the growth count are untouched.
	if s.Segment(3) != Sentinel {
		t.Fatalf("body[3] = %v, want sentinel", s.Segment(3))
	}
}

func TestGrowPreservesSegments(t *testing.T) {
	s := NewSnake(Position{X: 1, Y: 1}, 10)
	s.Grow(2)
	s.ApplyDirection(Right)
	s.Move()
	s.UpdateTail()
	s.Move()
	s.UpdateTail()
	before := s.Segments()

	if err := s.Grow(3); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	after := s.Segments()
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("body[%d] changed from %v to %v", i, before[i], after[i])
		}
	}
	for i := len(before); i < len(after); i++ {
		if after[i] != Sentinel {
			t.Fatalf("new slot %d = %v, want sentinel", i, after[i])
		}
	}
}

func TestGrowBeyondCapacity(t *testing.T) {
	s := NewSnake(Position{X: 1, Y: 1}, 4)
	if err := s.Grow(4); err != nil {
		t.Fatalf("Grow to capacity: %v", err)
	}
	err := s.Grow(1)
	if !errors.Is(err, ErrGrowthCapacity) {
		t.Fatalf("err = %v, want ErrGrowthCapacity", err)
	}
	if s.Growth() != 4 {
		t.Fatalf("growth = %d after failed Grow, want 4", s.Growth())
	}
}

func TestHitsBodyIgnoresNeckAndSentinel(t *testing.T) {
	s := NewSnake(Position{X: 3, Y: 3}, 10)
	s.Grow(3)
	s.body[0] = Position{X: 2, Y: 3}
	s.body[1] = Position{X: 1, Y: 3}

	if s.HitsBody(Position{X: 2, Y: 3}) {
		t.Fatal("body[0] must not count as a collision")
	}
	if !s.HitsBody(Position{X: 1, Y: 3}) {
		t.Fatal("body[1] must count as a collision")
	}
	if s.HitsBody(Sentinel) {
		t.Fatal("sentinel slot must not count as a collision")
	}
}
