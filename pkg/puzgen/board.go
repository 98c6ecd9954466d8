package puzgen

import (
	"errors"
	"fmt"
)

// PieceKind enumerates the kinds a board cell can hold. The zero value
// means the cell is empty.
type PieceKind int8

const (
	NoPiece PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindLetters = map[PieceKind]byte{
	King:   'K',
	Queen:  'Q',
	Rook:   'R',
	Bishop: 'B',
	Knight: 'N',
	Pawn:   'P',
}

// allKinds is the fixed draw order, so that seeded generations stay
// reproducible.
var allKinds = []PieceKind{King, Queen, Rook, Bishop, Knight, Pawn}

func (k PieceKind) String() string {
	c, ok := kindLetters[k]
	if !ok {
		return "-"
	}
	return string(c)
}

// KindFromLetter parses a single piece letter (K, Q, R, B, N, P).
func KindFromLetter(s string) (PieceKind, error) {
	for kind, c := range kindLetters {
		if len(s) == 1 && s[0] == c {
			return kind, nil
		}
	}
	return NoPiece, fmt.Errorf("unknown piece letter %q", s)
}

// Square addresses a board cell. X is the file (0 = a-file), Y the rank
// index counted from the top of the board, so Y = 0 is rank 8. Rank 8 is
// the promotion rank: pawns capture toward decreasing Y.
type Square struct {
	X, Y int
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.X, 8-s.Y)
}

func inBounds(s Square) bool {
	return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8
}

// Piece is an occupied cell: a kind plus the identity assigned at
// placement. Identity survives relocation (and promotion) but not capture.
type Piece struct {
	Kind PieceKind
	ID   int
}

var ErrPawnBackRank = errors.New("pawn may not be placed on the back rank")

// Board is an 8x8 grid of optional pieces plus the identity counter.
// It is a plain value: copying the struct yields an independent board,
// which is how the validator snapshots the initial position.
type Board struct {
	cells  [8][8]Piece
	nextID int
}

func (b *Board) PieceAt(s Square) Piece {
	return b.cells[s.Y][s.X]
}

func (b *Board) empty(s Square) bool {
	return b.cells[s.Y][s.X].Kind == NoPiece
}

// Place puts a fresh piece on an empty square and returns its identity.
func (b *Board) Place(s Square, kind PieceKind) (int, error) {
	if !inBounds(s) {
		return 0, fmt.Errorf("square %v out of bounds", s)
	}
	if !b.empty(s) {
		return 0, fmt.Errorf("square %v is occupied", s)
	}
	if kind == Pawn && s.Y == 0 {
		return 0, ErrPawnBackRank
	}
	b.nextID++
	b.cells[s.Y][s.X] = Piece{Kind: kind, ID: b.nextID}
	return b.nextID, nil
}

// relocate moves the piece on from to the empty square to, optionally
// rewriting its kind (un-promotion keeps the identity but not the kind).
func (b *Board) relocate(from, to Square, kind PieceKind) {
	p := b.cells[from.Y][from.X]
	p.Kind = kind
	b.cells[to.Y][to.X] = p
	b.cells[from.Y][from.X] = Piece{}
}

func (b *Board) clear(s Square) {
	b.cells[s.Y][s.X] = Piece{}
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b.cells[y][x].Kind != NoPiece {
				n++
			}
		}
	}
	return n
}

// HasKing reports whether a king is anywhere on the board.
func (b *Board) HasKing() bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b.cells[y][x].Kind == King {
				return true
			}
		}
	}
	return false
}

// emptySquares lists unoccupied cells in scan order.
func (b *Board) emptySquares() []Square {
	squares := make([]Square, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b.cells[y][x].Kind == NoPiece {
				squares = append(squares, Square{X: x, Y: y})
			}
		}
	}
	return squares
}

// occupiedSquares lists occupied cells in scan order.
func (b *Board) occupiedSquares() []Square {
	squares := make([]Square, 0, 32)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b.cells[y][x].Kind != NoPiece {
				squares = append(squares, Square{X: x, Y: y})
			}
		}
	}
	return squares
}
