package puzgen

import "math/rand"

// WeightTable holds the relative draw weight of each piece kind. The king
// weight only matters for draws that explicitly allow kings (the survivor
// pick); fresh mid-generation pieces never include it.
type WeightTable map[PieceKind]float64

// DefaultWeights is the stock table. The heavy king weight makes
// king-last-standing puzzles the common case when the survivor is drawn at
// random.
var DefaultWeights = WeightTable{
	Pawn:   3,
	Knight: 4,
	Bishop: 4,
	Rook:   2,
	Queen:  1,
	King:   100,
}

// repeatPenalty damps the kind drawn immediately before, so captured
// pieces do not run in streaks.
const repeatPenalty = 0.1

// drawKind samples a piece kind from weights. The kind drawn last has its
// weight damped for this draw only; kings are skipped unless allowed.
// Iteration runs in the fixed allKinds order so a seeded rng reproduces
// the same sequence.
func drawKind(rng *rand.Rand, weights WeightTable, last PieceKind, allowKing bool) PieceKind {
	total := 0.0
	for _, kind := range allKinds {
		if kind == King && !allowKing {
			continue
		}
		w := weights[kind]
		if kind == last {
			w *= repeatPenalty
		}
		total += w
	}
	if total <= 0 {
		return Pawn
	}

	roll := rng.Float64() * total
	for _, kind := range allKinds {
		if kind == King && !allowKing {
			continue
		}
		w := weights[kind]
		if kind == last {
			w *= repeatPenalty
		}
		roll -= w
		if roll < 0 {
			return kind
		}
	}
	return Pawn
}

// WeightConfig is the YAML shape of a weight table, the file format used
// by the pre-generation binary.
type WeightConfig struct {
	Pawn   float64 `yaml:"pawn"`
	Knight float64 `yaml:"knight"`
	Bishop float64 `yaml:"bishop"`
	Rook   float64 `yaml:"rook"`
	Queen  float64 `yaml:"queen"`
	King   float64 `yaml:"king"`
}

func (c WeightConfig) Table() WeightTable {
	return WeightTable{
		Pawn:   c.Pawn,
		Knight: c.Knight,
		Bishop: c.Bishop,
		Rook:   c.Rook,
		Queen:  c.Queen,
		King:   c.King,
	}
}
