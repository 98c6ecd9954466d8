package puzgen

import "fmt"

// validateSolution replays moves forward against a copy of the initial
// board and checks every rule the puzzle promises: each move captures the
// declared piece with the declared mover, is legal for its kind, and no
// identity moves more than twice. At the end exactly one piece must
// remain, and it must be the king whenever the initial board has one.
//
// Any error discards the whole attempt; callers never surface it.
func validateSolution(initial Board, moves []Move) error {
	board := initial
	hadKing := initial.HasKing()
	used := make(map[int]int)

	for i, m := range moves {
		mover := board.PieceAt(m.From)
		moverKind := m.Piece
		if m.Promotion {
			moverKind = Pawn
		}
		if mover.Kind != moverKind {
			return fmt.Errorf("move %d: expected %v on %v, found %v", i, moverKind, m.From, mover.Kind)
		}
		if mover.ID != m.ID {
			return fmt.Errorf("move %d: identity mismatch on %v", i, m.From)
		}

		target := board.PieceAt(m.To)
		if target.Kind == NoPiece {
			return fmt.Errorf("move %d: %v is empty, every move must capture", i, m.To)
		}
		if target.Kind == King {
			return fmt.Errorf("move %d: king on %v cannot be captured", i, m.To)
		}
		if target.Kind != m.Captured {
			return fmt.Errorf("move %d: expected to capture %v on %v, found %v", i, m.Captured, m.To, target.Kind)
		}

		if !legalMove(&board, moverKind, m.From, m.To, false) {
			return fmt.Errorf("move %d: %v from %v to %v is not legal", i, moverKind, m.From, m.To)
		}

		if used[m.ID] >= movesPerPiece {
			return fmt.Errorf("move %d: piece %d already moved twice", i, m.ID)
		}
		used[m.ID]++

		board.clear(m.To)
		board.relocate(m.From, m.To, m.Piece)
	}

	if n := board.Count(); n != 1 {
		return fmt.Errorf("%d pieces left after solution, want 1", n)
	}
	if hadKing {
		survivor := board.PieceAt(board.occupiedSquares()[0])
		if survivor.Kind != King {
			return fmt.Errorf("king present but %v survived", survivor.Kind)
		}
	}
	return nil
}
