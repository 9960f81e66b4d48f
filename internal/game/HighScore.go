package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const tableName = "high_scores"

// Score is one finished game.
type Score struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Length     int       `json:"length"`
	Outcome    string    `json:"outcome"`
	Cause      string    `json:"cause"`
	Board      string    `json:"board,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoreFromFrame builds the record for a finished game.
func ScoreFromFrame(playerName string, frame Frame) Score {
	return Score{
		PlayerName: playerName,
		Score:      frame.Score,
		Length:     frame.Growth + 1,
		Outcome:    frame.Status.String(),
		Cause:      frame.Cause.String(),
		Board:      frame.Board.String(),
	}
}

type HighScoreService struct {
	db *sql.DB
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return service, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		length INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		cause TEXT NOT NULL,
		board TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := serviceImpl.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveScore(ctx context.Context, score Score) (int64, error) {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, length, outcome, cause, board)
	VALUES (?, ?, ?, ?, ?, ?);`

	res, err := serviceImpl.db.ExecContext(ctx, insertSQL,
		score.PlayerName, score.Score, score.Length, score.Outcome, score.Cause, score.Board)
	if err != nil {
		return 0, fmt.Errorf("failed to insert high score for %s: %w", score.PlayerName, err)
	}
	return res.LastInsertId()
}

// GetHighScores retrieves a page of scores, best first. Boards are left out.
func (serviceImpl *HighScoreService) GetHighScores(ctx context.Context, limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, length, outcome, cause, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, created_at ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.QueryContext(ctx, selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var score Score
		if err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.Length,
			&score.Outcome, &score.Cause, &score.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

func (serviceImpl *HighScoreService) GetScore(ctx context.Context, id int64) (Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, length, outcome, cause, board, created_at
	FROM ` + tableName + ` WHERE id = ?;`

	var score Score
	err := serviceImpl.db.QueryRowContext(ctx, selectSQL, id).Scan(&score.ID, &score.PlayerName,
		&score.Score, &score.Length, &score.Outcome, &score.Cause, &score.Board, &score.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Score{}, fmt.Errorf("%w: id %d", ErrScoreNotFound, id)
	}
	if err != nil {
		return Score{}, fmt.Errorf("failed to load score %d: %w", id, err)
	}
	return score, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount(ctx context.Context) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := serviceImpl.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}
