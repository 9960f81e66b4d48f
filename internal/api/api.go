// Package api serves the read-only leaderboard over HTTP.
package api

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	cellSize     = 16
	maxThumbSize = 2048
)

// ScoreStore is the read side of the high score service.
type ScoreStore interface {
	GetHighScores(ctx context.Context, limit, offset int) ([]game.Score, error)
	GetTotalScoreCount(ctx context.Context) (int, error)
	GetScore(ctx context.Context, id int64) (game.Score, error)
}

func NewRouter(store ScoreStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/scores", ListScoresHandler(store))
	router.GET("/scores/:id", GetScoreHandler(store))
	router.GET("/scores/:id/board.png", BoardImageHandler(store))
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("HTTP request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}

func ListScoresHandler(store ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(limit, maxLimit)
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}

		ctx := c.Request.Context()
		scores, err := store.GetHighScores(ctx, limit, offset)
		if err != nil {
			log.Error("Failed to list scores", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scores"})
			return
		}
		total, err := store.GetTotalScoreCount(ctx)
		if err != nil {
			log.Error("Failed to count scores", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count scores"})
			return
		}
		if scores == nil {
			scores = []game.Score{}
		}
		c.JSON(http.StatusOK, gin.H{"scores": scores, "total": total})
	}
}

func GetScoreHandler(store ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		score, ok := loadScore(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, score)
	}
}

// BoardImageHandler draws the final board of a stored game. width scales the
// image down to a thumbnail.
func BoardImageHandler(store ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		score, ok := loadScore(c, store)
		if !ok {
			return
		}

		img, err := RenderBoardImage(score.Board)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if w := c.Query("width"); w != "" {
			width, err := strconv.Atoi(w)
			if err != nil || width <= 0 || width > maxThumbSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "width must be between 1 and 2048"})
				return
			}
			img = imaging.Resize(img, width, 0, imaging.NearestNeighbor)
		}

		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := png.Encode(c.Writer, img); err != nil {
			log.Error("Failed to encode board image", "id", score.ID, "error", err)
		}
	}
}

func loadScore(c *gin.Context, store ScoreStore) (game.Score, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return game.Score{}, false
	}
	score, err := store.GetScore(c.Request.Context(), id)
	if errors.Is(err, game.ErrScoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "score not found"})
		return game.Score{}, false
	}
	if err != nil {
		log.Error("Failed to load score", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load score"})
		return game.Score{}, false
	}
	return score, true
}

var cellColors = map[rune]color.Color{
	'#': color.RGBA{R: 0xd7, G: 0x87, B: 0x00, A: 0xff},
	'O': color.RGBA{R: 0x5f, G: 0xff, B: 0xff, A: 0xff},
	'o': color.RGBA{R: 0x00, G: 0xd7, B: 0x87, A: 0xff},
	'*': color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	'.': color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff},
}

// RenderBoardImage draws a board in the text form produced by game.Board.String.
func RenderBoardImage(board string) (image.Image, error) {
	rows := strings.Split(strings.TrimRight(board, "\n"), "\n")
	if len(rows) == 0 || rows[0] == "" {
		return nil, errors.New("score has no board snapshot")
	}
	width := len([]rune(rows[0]))

	dc := gg.NewContext(width*cellSize, len(rows)*cellSize)
	dc.SetColor(cellColors['.'])
	dc.Clear()
	for y, row := range rows {
		for x, r := range []rune(row) {
			col, ok := cellColors[r]
			if !ok {
				return nil, errors.New("board snapshot contains an unknown cell")
			}
			dc.SetColor(col)
			switch r {
			case 'O', '*':
				dc.DrawCircle(float64(x*cellSize)+cellSize/2, float64(y*cellSize)+cellSize/2, cellSize/2-1)
			default:
				dc.DrawRectangle(float64(x*cellSize), float64(y*cellSize), cellSize, cellSize)
			}
			dc.Fill()
		}
	}
	return dc.Image(), nil
}
