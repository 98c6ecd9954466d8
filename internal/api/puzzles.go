package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doublestrike/puzzle-backend/internal/dao"
	"github.com/doublestrike/puzzle-backend/internal/pregen"
	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

// PuzzleApi serves fresh and pre-generated Double Strike puzzles and
// manages background batch-generation jobs.
type PuzzleApi struct {
	PuzzleRepository dao.PuzzleRepository
	BatchFactory     *pregen.BatchFactory
	activeJobs       map[string]pregen.Worker
	mu               sync.RWMutex
}

func NewPuzzleApi(puzzleRepo dao.PuzzleRepository, batchFactory *pregen.BatchFactory) *PuzzleApi {
	return &PuzzleApi{
		PuzzleRepository: puzzleRepo,
		BatchFactory:     batchFactory,
		activeJobs:       make(map[string]pregen.Worker),
	}
}

// Puzzle generates a puzzle on demand. Query params: pieces (default 5)
// and an optional survivor piece letter.
func (p *PuzzleApi) Puzzle(ctx *gin.Context) {
	pieces, err := strconv.Atoi(ctx.DefaultQuery("pieces", "5"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "pieces should be an integer",
		})
		return
	}

	survivor := puzgen.NoPiece
	if letter := ctx.Query("survivor"); letter != "" {
		survivor, err = puzgen.KindFromLetter(letter)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}

	gen := puzgen.NewGenerator(nil, p.BatchFactory.Weights)
	err = gen.GenerateWithSurvivor(ctx.Request.Context(), pieces, survivor)
	if errors.Is(err, puzgen.ErrPieceCountRange) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	puzzle, err := gen.Puzzle()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, puzzle)
}

// StoredPuzzle samples a pre-generated puzzle from the repository.
func (p *PuzzleApi) StoredPuzzle(ctx *gin.Context) {
	pieces, err := strconv.Atoi(ctx.DefaultQuery("pieces", "5"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "pieces should be an integer",
		})
		return
	}

	puzzle, err := p.PuzzleRepository.GetRandomPuzzleForPieces(pieces)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, puzzle)
}

// RecentPuzzles lists the most recently stored puzzles.
func (p *PuzzleApi) RecentPuzzles(ctx *gin.Context) {
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "limit should be a positive integer",
		})
		return
	}

	puzzles, err := p.PuzzleRepository.GetRecentPuzzles(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"puzzles": puzzles,
	})
}

// StartJob launches a background batch-generation job and returns its id.
func (p *PuzzleApi) StartJob(ctx *gin.Context) {
	pieces, err := strconv.Atoi(ctx.DefaultQuery("pieces", "5"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "pieces should be an integer",
		})
		return
	}
	count, err := strconv.Atoi(ctx.DefaultQuery("count", "10"))
	if err != nil || count <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "count should be a positive integer",
		})
		return
	}
	if pieces < puzgen.MinPieces || pieces > puzgen.MaxPieces {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "pieces outside supported range",
		})
		return
	}

	worker := p.BatchFactory.CreateBatch(pieces, count)
	id := uuid.NewString()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeJobs[id] = worker
	worker.StartWork()
	ctx.JSON(http.StatusOK, gin.H{
		"job_id": id,
	})
}

// JobStatus reports a running job's progress; finished jobs are removed
// once their outcome has been delivered.
func (p *PuzzleApi) JobStatus(ctx *gin.Context) {
	id := ctx.Param("job_id")
	p.mu.Lock()
	defer p.mu.Unlock()
	worker, ok := p.activeJobs[id]
	if !ok {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	if !worker.Done() {
		ctx.JSON(http.StatusOK, gin.H{
			"done":     false,
			"progress": worker.Progress(),
		})
		return
	}

	delete(p.activeJobs, id)
	if worker.Error() != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"done":  true,
			"error": worker.Error().Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"done":   true,
		"result": worker.Result(),
	})
}
