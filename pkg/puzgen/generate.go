package puzgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Piece-count bounds accepted by Generate. They match the range the
// training UI offers.
const (
	MinPieces = 3
	MaxPieces = 27
)

// Retry budgets: maxSteps bounds relocation steps inside one attempt,
// maxAttempts bounds whole-attempt restarts before generation gives up.
const (
	maxSteps    = 100
	maxAttempts = 10000
)

// movesPerPiece is the relocation cap: each identity moves at most twice.
const movesPerPiece = 2

var (
	ErrPieceCountRange = errors.New("piece count outside configured bounds")
	ErrExhausted       = errors.New("no valid puzzle found within retry budget")
	ErrNoPuzzle        = errors.New("no puzzle generated yet")
)

// Move is one entry of a puzzle solution, read in forward play order:
// the piece with identity ID captures the Captured piece on To. Piece is
// the kind after the move, so a promoting pawn records its promoted kind
// together with the Promotion flag.
type Move struct {
	From      Square
	To        Square
	Piece     PieceKind
	Captured  PieceKind
	ID        int
	Promotion bool
}

// Generator builds Double Strike puzzles: positions where every move is a
// capture, each piece moves at most twice, and exactly one piece (the
// king, when present) survives the full solution.
//
// A Generator is a single logical actor; it must not be shared between
// goroutines without synchronization.
type Generator struct {
	rng     *rand.Rand
	weights WeightTable

	board    Board
	solution []Move
	ok       bool
}

// NewGenerator returns a generator drawing from rng with the given weight
// table. A nil rng gets a time-seeded source; nil weights fall back to
// DefaultWeights. Injecting a seeded rng makes generation reproducible.
func NewGenerator(rng *rand.Rand, weights WeightTable) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if weights == nil {
		weights = DefaultWeights
	}
	return &Generator{rng: rng, weights: weights}
}

// Generate builds a puzzle with exactly pieces pieces, drawing the
// surviving piece kind at random. On success the board and solution are
// readable through the accessors until the next Generate call; on failure
// no state from the failed search is retained.
func (g *Generator) Generate(ctx context.Context, pieces int) error {
	return g.generate(ctx, pieces, NoPiece)
}

// GenerateWithSurvivor is Generate with the surviving piece kind forced.
func (g *Generator) GenerateWithSurvivor(ctx context.Context, pieces int, survivor PieceKind) error {
	return g.generate(ctx, pieces, survivor)
}

func (g *Generator) generate(ctx context.Context, pieces int, survivor PieceKind) error {
	g.ok = false
	g.solution = nil
	g.board = Board{}

	if pieces < MinPieces || pieces > MaxPieces {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPieceCountRange, pieces, MinPieces, MaxPieces)
	}

	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		board, moves, ok := attempt(g.rng, g.weights, pieces, survivor)
		if !ok {
			continue
		}
		if err := validateSolution(board, moves); err != nil {
			continue
		}

		g.board = board
		g.solution = moves
		g.ok = true
		return nil
	}
	return ErrExhausted
}

// attempt runs one reverse-construction pass on fresh state. It returns
// the initial board and the solution in forward order, or ok=false when
// the step budget ran out or a placement was structurally invalid.
func attempt(rng *rand.Rand, weights WeightTable, pieces int, survivor PieceKind) (Board, []Move, bool) {
	var board Board
	moved := make(map[int]int)
	moves := make([]Move, 0, pieces-1)
	lastDraw := NoPiece

	if survivor == NoPiece {
		survivor = allKinds[rng.Intn(len(allKinds))]
	}
	if _, err := board.Place(randomSquare(rng, survivor), survivor); err != nil {
		return Board{}, nil, false
	}

	for step := 0; step < maxSteps && board.Count() < pieces; step++ {
		movable := movableSquares(&board, moved)
		if len(movable) == 0 {
			// Everyone is out of moves; try to unblock with a brand-new
			// piece. Such a piece is never captured later, so the forward
			// validator rejects the attempt if it stays around.
			empties := board.emptySquares()
			if len(empties) == 0 {
				return Board{}, nil, false
			}
			kind := drawKind(rng, weights, lastDraw, false)
			lastDraw = kind
			if _, err := board.Place(empties[rng.Intn(len(empties))], kind); err != nil {
				return Board{}, nil, false
			}
			continue
		}

		from := movable[rng.Intn(len(movable))]
		mover := board.PieceAt(from)

		to, promo, ok := pickOrigin(rng, &board, mover.Kind, from)
		if !ok {
			continue
		}

		movedKind := mover.Kind
		if promo {
			movedKind = Pawn
		}
		board.relocate(from, to, movedKind)
		moved[mover.ID]++

		captured := drawKind(rng, weights, lastDraw, false)
		lastDraw = captured
		if _, err := board.Place(from, captured); err != nil {
			return Board{}, nil, false
		}

		moves = append(moves, Move{
			From:      to,
			To:        from,
			Piece:     mover.Kind,
			Captured:  captured,
			ID:        mover.ID,
			Promotion: promo,
		})
	}

	if board.Count() != pieces {
		return Board{}, nil, false
	}

	// The list was recorded end-of-game first; flip it into play order.
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return board, moves, true
}

// pickOrigin chooses the square the mover is imagined to have come from.
// A non-pawn standing on the promotion rank prefers pawn origins: the
// forward move then reads as a promoting pawn capture, with the mover
// relocated backward as the pawn it once was.
func pickOrigin(rng *rand.Rand, board *Board, kind PieceKind, from Square) (Square, bool, bool) {
	if kind != King && kind != Pawn && from.Y == 0 {
		if cands := originCandidates(board, Pawn, from); len(cands) > 0 {
			return cands[rng.Intn(len(cands))], true, true
		}
	}
	cands := originCandidates(board, kind, from)
	if len(cands) == 0 {
		return Square{}, false, false
	}
	return cands[rng.Intn(len(cands))], false, true
}

// originCandidates lists the empty squares the piece could have moved in
// from, under the backward reading of the legality rule.
func originCandidates(board *Board, kind PieceKind, from Square) []Square {
	cands := make([]Square, 0, 8)
	for _, s := range board.emptySquares() {
		if legalMove(board, kind, from, s, true) {
			cands = append(cands, s)
		}
	}
	return cands
}

// movableSquares lists squares of pieces that still have relocation
// budget left.
func movableSquares(board *Board, moved map[int]int) []Square {
	squares := make([]Square, 0, 32)
	for _, s := range board.occupiedSquares() {
		if moved[board.PieceAt(s).ID] < movesPerPiece {
			squares = append(squares, s)
		}
	}
	return squares
}

// randomSquare picks a square for the survivor; pawns stay off the back
// rank.
func randomSquare(rng *rand.Rand, kind PieceKind) Square {
	minY := 0
	if kind == Pawn {
		minY = 1
	}
	return Square{X: rng.Intn(8), Y: minY + rng.Intn(8-minY)}
}

// Solution returns the validated move list of the last generated puzzle.
func (g *Generator) Solution() ([]Move, error) {
	if !g.ok {
		return nil, ErrNoPuzzle
	}
	out := make([]Move, len(g.solution))
	copy(out, g.solution)
	return out, nil
}

// InitialBoard returns a copy of the last generated starting position.
func (g *Generator) InitialBoard() (Board, error) {
	if !g.ok {
		return Board{}, ErrNoPuzzle
	}
	return g.board, nil
}
