package game

import "fmt"

// Snake owns the head, the current direction and the body history.
// body[0] is the segment nearest the head, body[growth-1] the tail tip. The
// backing storage is allocated once at full capacity and only ever reset to
// the Sentinel.
type Snake struct {
	head      Position
	lastHead  Position
	direction Direction
	body      []Position
	growth    int
}

// NewSnake parks every body slot on the Sentinel. capacity is the largest
// growth count the snake can ever reach.
func NewSnake(head Position, capacity int) *Snake {
	s := &Snake{body: make([]Position, capacity)}
	s.Reset(head)
	return s
}

func (s *Snake) Head() Position       { return s.head }
func (s *Snake) Direction() Direction { return s.direction }
func (s *Snake) Growth() int          { return s.growth }
func (s *Snake) Capacity() int        { return len(s.body) }

// LastHead is the head position before the most recent Move.
func (s *Snake) LastHead() Position { return s.lastHead }

// Segment returns body[i]; i must be below Capacity.
func (s *Snake) Segment(i int) Position { return s.body[i] }

// Segments copies the active part of the body, body[0:growth].
func (s *Snake) Segments() []Position {
	out := make([]Position, s.growth)
	copy(out, s.body[:s.growth])
	return out
}

// ApplyDirection accepts any cardinal direction except the exact reverse of the
// current one. None is not a valid request.
func (s *Snake) ApplyDirection(requested Direction) bool {
	if requested == None {
		return false
	}
	if s.direction != None && requested == s.direction.Opposite() {
		return false
	}
	s.direction = requested
	return true
}

func (s *Snake) Move() {
	s.lastHead = s.head
	s.head = s.head.Step(s.direction)
}

// UpdateTail ripples the body one slot toward the tail and stores the pre-move
// head in body[0]. Whatever sat in body[growth-1] is dropped.
func (s *Snake) UpdateTail() {
	if len(s.body) == 0 {
		return
	}
	for i := s.growth - 1; i > 0; i-- {
		s.body[i] = s.body[i-1]
	}
	s.body[0] = s.lastHead
}

func (s *Snake) Grow(amount int) error {
	if amount <= 0 {
		return nil
	}
	if s.growth+amount > len(s.body) {
		return fmt.Errorf("%w: growth %d+%d exceeds capacity %d", ErrGrowthCapacity, s.growth, amount, len(s.body))
	}
	s.growth += amount
	return nil
}

func (s *Snake) Reset(head Position) {
	s.head = head
	s.lastHead = head
	s.direction = None
	s.growth = 0
	for i := range s.body {
		s.body[i] = Sentinel
	}
}

// HitsBody reports whether p lies on body[1:growth]. Sentinel slots never collide.
func (s *Snake) HitsBody(p Position) bool {
	if p == Sentinel {
		return false
	}
	for i := 1; i < s.growth; i++ {
		if s.body[i] == p {
			return true
		}
	}
	return false
}

// Occupied is every cell the snake covers now or will cover once UpdateTail
// runs for this tick.
func (s *Snake) Occupied() map[Position]struct{} {
	occupied := make(map[Position]struct{}, s.growth+2)
	occupied[s.head] = struct{}{}
	occupied[s.lastHead] = struct{}{}
	for i := 0; i < s.growth; i++ {
		if s.body[i] != Sentinel {
			occupied[s.body[i]] = struct{}{}
		}
	}
	return occupied
}
