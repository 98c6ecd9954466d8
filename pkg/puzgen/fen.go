package puzgen

import (
	"fmt"
	"strings"
)

// fenSuffix carries the fixed non-board FEN fields: white to move, no
// castling, no en passant, clocks at the start.
const fenSuffix = " w - - 0 1"

// Encode renders the board field of a FEN string: ranks top to bottom,
// empty runs collapsed into digits. All pieces render as white.
func (b *Board) Encode() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			p := b.cells[y][x]
			if p.Kind == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteByte(kindLetters[p.Kind])
		}
		if empty != 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if y != 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FullFEN appends the fixed game-state fields to the board encoding.
func (b *Board) FullFEN() string {
	return b.Encode() + fenSuffix
}

// BoardFEN returns the board field of the last generated puzzle.
func (g *Generator) BoardFEN() (string, error) {
	if !g.ok {
		return "", ErrNoPuzzle
	}
	return g.board.Encode(), nil
}

// FullFEN returns the complete six-field FEN of the last generated puzzle.
func (g *Generator) FullFEN() (string, error) {
	if !g.ok {
		return "", ErrNoPuzzle
	}
	return g.board.FullFEN(), nil
}
