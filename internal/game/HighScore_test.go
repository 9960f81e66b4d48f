package game

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestHighScoreService(t *testing.T) *HighScoreService {
	t.Helper()
	service, err := NewHighScoreService(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("NewHighScoreService: %v", err)
	}
	t.Cleanup(func() { service.Close() })
	return service
}

func TestHighScoreServiceRoundTrip(t *testing.T) {
	service := newTestHighScoreService(t)
	ctx := context.Background()

	for _, s := range []Score{
		{PlayerName: "ada", Score: 10, Length: 11, Outcome: "over", Cause: "border"},
		{PlayerName: "bob", Score: 25, Length: 26, Outcome: "over", Cause: "self", Board: "#####\n"},
		{PlayerName: "cy", Score: 5, Length: 6, Outcome: "over", Cause: "border"},
	} {
		if _, err := service.SaveScore(ctx, s); err != nil {
			t.Fatalf("SaveScore(%s): %v", s.PlayerName, err)
		}
	}

	count, err := service.GetTotalScoreCount(ctx)
	if err != nil || count != 3 {
		t.Fatalf("GetTotalScoreCount = %d, %v", count, err)
	}

	scores, err := service.GetHighScores(ctx, 2, 0)
	if err != nil {
		t.Fatalf("GetHighScores: %v", err)
	}
	if len(scores) != 2 || scores[0].PlayerName != "bob" || scores[1].PlayerName != "ada" {
		t.Fatalf("unexpected page %+v", scores)
	}
	if scores[0].Board != "" {
		t.Fatal("leaderboard page should not carry boards")
	}
	if scores[0].CreatedAt.IsZero() {
		t.Fatal("created_at was not read back")
	}

	stored, err := service.GetScore(ctx, scores[0].ID)
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if stored.Board != "#####\n" || stored.Cause != "self" {
		t.Fatalf("stored score %+v", stored)
	}
}

func TestHighScoreServiceMissingScore(t *testing.T) {
	service := newTestHighScoreService(t)
	if _, err := service.GetScore(context.Background(), 404); !errors.Is(err, ErrScoreNotFound) {
		t.Fatalf("err = %v, want ErrScoreNotFound", err)
	}
}

func TestScoreFromFrame(t *testing.T) {
	s := newTestSession(t, SessionOptions{Random: newScriptedRandom(4, 4)})
	for s.Status() == StatusPlaying {
		mustTick(t, s, Left)
	}
	score := ScoreFromFrame("eve", s.Frame())
	if score.Outcome != "over" || score.Cause != "border" || score.Length != 1 {
		t.Fatalf("score %+v", score)
	}
	if score.Board != s.Frame().Board.String() {
		t.Fatal("score does not carry the final board")
	}
}
