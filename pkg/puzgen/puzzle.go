package puzgen

import "encoding/json"

// Puzzle is the stored/served form of a generated puzzle.
type Puzzle struct {
	StartFEN   string   `json:"start_fen" bson:"start_fen"`
	Solution   []string `json:"solution" bson:"solution"`
	PieceCount int      `json:"piece_count" bson:"piece_count"`
	Survivor   string   `json:"survivor" bson:"survivor"`
	HasKing    bool     `json:"has_king" bson:"has_king"`
}

func (p Puzzle) String() string {
	j, _ := json.MarshalIndent(p, "", "\t")
	return string(j)
}

// Puzzle assembles the document for the last generated puzzle.
func (g *Generator) Puzzle() (Puzzle, error) {
	if !g.ok {
		return Puzzle{}, ErrNoPuzzle
	}
	notation, err := g.SolutionNotation()
	if err != nil {
		return Puzzle{}, err
	}

	end := g.board
	for _, m := range g.solution {
		end.clear(m.To)
		end.relocate(m.From, m.To, m.Piece)
	}
	last := end.PieceAt(end.occupiedSquares()[0])

	return Puzzle{
		StartFEN:   g.board.FullFEN(),
		Solution:   notation,
		PieceCount: g.board.Count(),
		Survivor:   last.Kind.String(),
		HasKing:    g.board.HasKing(),
	}, nil
}
