package pregen

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/doublestrike/puzzle-backend/pkg/puzgen"
)

// VerifyEncoding re-parses a puzzle's FEN with an independent chess
// library and cross-checks the piece count and solution length before the
// puzzle is stored or served.
func VerifyEncoding(p puzgen.Puzzle) error {
	fen, err := chess.FEN(p.StartFEN)
	if err != nil {
		return fmt.Errorf("puzzle FEN %q does not parse: %w", p.StartFEN, err)
	}

	game := chess.NewGame(fen)
	placed := len(game.Position().Board().SquareMap())
	if placed != p.PieceCount {
		return fmt.Errorf("FEN %q decodes to %d pieces, document says %d", p.StartFEN, placed, p.PieceCount)
	}

	if len(p.Solution) != p.PieceCount-1 {
		return fmt.Errorf("%d-piece puzzle carries %d moves", p.PieceCount, len(p.Solution))
	}
	return nil
}
