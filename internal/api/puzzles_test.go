package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doublestrike/puzzle-backend/internal/pregen"
	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

type stubRepo struct {
	mu      sync.Mutex
	puzzles []puzgen.Puzzle
}

func (r *stubRepo) InsertPuzzle(p puzgen.Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puzzles = append(r.puzzles, p)
	return nil
}

func (r *stubRepo) InsertAllPuzzles(ps []puzgen.Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puzzles = append(r.puzzles, ps...)
	return nil
}

func (r *stubRepo) GetRandomPuzzleForPieces(pieces int) (puzgen.Puzzle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.puzzles {
		if p.PieceCount == pieces {
			return p, nil
		}
	}
	return puzgen.Puzzle{}, fmt.Errorf("no stored puzzle with %d pieces", pieces)
}

func (r *stubRepo) GetRecentPuzzles(limit int64) ([]puzgen.Puzzle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.puzzles, nil
}

func (r *stubRepo) stored() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.puzzles)
}

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	puzzleApi := NewPuzzleApi(repo, pregen.NewBatchFactory(repo, nil))

	r := gin.New()
	r.GET("/api/puzzle", puzzleApi.Puzzle)
	r.GET("/api/puzzle/stored", puzzleApi.StoredPuzzle)
	r.GET("/api/puzzle/recent", puzzleApi.RecentPuzzles)
	r.POST("/api/jobs", puzzleApi.StartJob)
	r.GET("/api/jobs/:job_id", puzzleApi.JobStatus)
	return r
}

func TestPuzzleEndpointGenerates(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle?pieces=4", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}

	var puzzle puzgen.Puzzle
	if err := json.Unmarshal(rr.Body.Bytes(), &puzzle); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if puzzle.PieceCount != 4 {
		t.Fatalf("puzzle has %d pieces, want 4", puzzle.PieceCount)
	}
	if len(puzzle.Solution) != 3 {
		t.Fatalf("puzzle has %d moves, want 3", len(puzzle.Solution))
	}
}

func TestPuzzleEndpointForcedSurvivor(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle?pieces=3&survivor=K", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}

	var puzzle puzgen.Puzzle
	if err := json.Unmarshal(rr.Body.Bytes(), &puzzle); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !puzzle.HasKing || puzzle.Survivor != "K" {
		t.Fatalf("expected king survivor, got %+v", puzzle)
	}
}

func TestPuzzleEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	for _, target := range []string{
		"/api/puzzle?pieces=99",
		"/api/puzzle?pieces=abc",
		"/api/puzzle?pieces=4&survivor=Z",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, rr.Code)
		}
	}
}

func TestStoredPuzzleEndpoint(t *testing.T) {
	repo := &stubRepo{}
	repo.puzzles = append(repo.puzzles, puzgen.Puzzle{
		StartFEN:   "8/8/8/8/4K3/5Q2/5R2/8 w - - 0 1",
		Solution:   []string{"Qf3xf2", "Ke4xf3"},
		PieceCount: 3,
		Survivor:   "K",
		HasKing:    true,
	})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle/stored?pieces=3", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/puzzle/stored?pieces=7", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing size: status %d, want 404", rr.Code)
	}
}

func TestRecentPuzzlesEndpoint(t *testing.T) {
	repo := &stubRepo{}
	repo.puzzles = append(repo.puzzles, puzgen.Puzzle{PieceCount: 3}, puzgen.Puzzle{PieceCount: 4})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle/recent", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Puzzles []puzgen.Puzzle `json:"puzzles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(payload.Puzzles) != 2 {
		t.Fatalf("got %d puzzles, want 2", len(payload.Puzzles))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/puzzle/recent?limit=0", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("limit=0: status %d, want 400", rr.Code)
	}
}

func TestJobLifecycle(t *testing.T) {
	repo := &stubRepo{}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs?pieces=3&count=2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("start job: status %d, body %s", rr.Code, rr.Body.String())
	}

	var started struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode job id: %v", err)
	}
	if started.JobID == "" {
		t.Fatal("empty job id")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+started.JobID, nil)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("job status: %d", rr.Code)
		}

		var status struct {
			Done  bool   `json:"done"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if status.Done {
			if status.Error != "" {
				t.Fatalf("job failed: %s", status.Error)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if got := repo.stored(); got != 2 {
		t.Fatalf("job stored %d puzzles, want 2", got)
	}

	// A delivered job is forgotten.
	req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+started.JobID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("finished job still known: status %d", rr.Code)
	}
}

func TestJobStatusUnknownID(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
}
