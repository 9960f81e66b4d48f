package game

// Status is the state of a session.
type Status int

const (
	StatusPlaying Status = iota
	StatusOver
	// StatusWon means the snake can no longer fit a new item on the board.
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusOver:
		return "over"
	case StatusWon:
		return "won"
	}
	return "unknown"
}

// DeathCause says which rule ended a game.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseBorder
	CauseSelf
)

func (c DeathCause) String() string {
	switch c {
	case CauseBorder:
		return "border"
	case CauseSelf:
		return "self"
	}
	return "none"
}

const DefaultReward = 5

// Verdict is the outcome of one tick's rule evaluation.
type Verdict struct {
	Status       Status
	ScoreDelta   int
	Grew         bool
	ItemConsumed bool
	Cause        DeathCause
}

type Rules struct {
	// Reward is both the score and the growth granted per item.
	Reward int
}

// Evaluate runs after Move and before UpdateTail, so the body still holds the
// positions from the start of the tick. A border hit ends evaluation; item
// consumption and self collision are reported independently.
func (r Rules) Evaluate(snake *Snake, item Position, dims Dimensions) Verdict {
	head := snake.Head()
	if dims.IsBorder(head) {
		return Verdict{Status: StatusOver, Cause: CauseBorder}
	}

	verdict := Verdict{Status: StatusPlaying}
	if head == item {
		verdict.ScoreDelta = r.Reward
		verdict.Grew = true
		verdict.ItemConsumed = true
	}
	if snake.HitsBody(head) {
		verdict.Status = StatusOver
		verdict.Cause = CauseSelf
	}
	return verdict
}
