package pregen

import (
	"context"
	"log"
	"sync"

	"github.com/doublestrike/puzzle-backend/internal/dao"
	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

// BatchFactory builds batch-generation workers sharing one repository and
// weight table.
type BatchFactory struct {
	Repo    dao.PuzzleRepository
	Weights puzgen.WeightTable
}

func NewBatchFactory(repo dao.PuzzleRepository, weights puzgen.WeightTable) *BatchFactory {
	return &BatchFactory{
		Repo:    repo,
		Weights: weights,
	}
}

// CreateBatch returns a worker that generates count puzzles of the given
// piece count and stores them through the repository.
func (f *BatchFactory) CreateBatch(pieces, count int) *BatchWorker {
	return &BatchWorker{
		repo:    f.Repo,
		weights: f.Weights,
		pieces:  pieces,
		count:   count,
	}
}

// BatchWorker generates a fixed number of puzzles in the background.
type BatchWorker struct {
	mu        sync.Mutex
	puzzles   []puzgen.Puzzle
	generated int
	err       error
	done      bool

	repo    dao.PuzzleRepository
	weights puzgen.WeightTable
	pieces  int
	count   int
}

func (w *BatchWorker) StartWork() {
	go w.Run()
}

func (w *BatchWorker) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *BatchWorker) Result() interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.puzzles
}

func (w *BatchWorker) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count == 0 {
		return 1
	}
	return float64(w.generated) / float64(w.count)
}

func (w *BatchWorker) Error() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *BatchWorker) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
	w.done = true
}

// Run executes the batch synchronously; StartWork wraps it in a
// goroutine for polling through the Worker interface.
func (w *BatchWorker) Run() {
	gen := puzgen.NewGenerator(nil, w.weights)

	for i := 0; i < w.count; i++ {
		if err := gen.Generate(context.Background(), w.pieces); err != nil {
			w.fail(err)
			return
		}
		puzzle, err := gen.Puzzle()
		if err != nil {
			w.fail(err)
			return
		}
		if err := VerifyEncoding(puzzle); err != nil {
			w.fail(err)
			return
		}
		if err := w.repo.InsertPuzzle(puzzle); err != nil {
			w.fail(err)
			return
		}

		w.mu.Lock()
		w.puzzles = append(w.puzzles, puzzle)
		w.generated++
		w.mu.Unlock()
		log.Printf("stored %d-piece puzzle (%d/%d)", w.pieces, i+1, w.count)
	}

	w.mu.Lock()
	w.done = true
	w.mu.Unlock()
}
