package puzgen

import "fmt"

// Notation renders the move in the algebraic form the trainer displays.
// Pawn captures read as "exd6" (with "=Q" appended on promotion), all
// other pieces spell out the source square: "Nb1xc3".
func (m Move) Notation() string {
	if m.Piece == Pawn || m.Promotion {
		s := fmt.Sprintf("%cx%s", 'a'+m.From.X, m.To)
		if m.Promotion {
			s += "=" + m.Piece.String()
		}
		return s
	}
	return fmt.Sprintf("%s%sx%s", m.Piece, m.From, m.To)
}

// SolutionNotation returns the solution of the last generated puzzle as
// an ordered list of algebraic strings.
func (g *Generator) SolutionNotation() ([]string, error) {
	if !g.ok {
		return nil, ErrNoPuzzle
	}
	out := make([]string, len(g.solution))
	for i, m := range g.solution {
		out[i] = m.Notation()
	}
	return out, nil
}
