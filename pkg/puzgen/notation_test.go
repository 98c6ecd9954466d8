package puzgen

import "testing"

func TestMoveNotation(t *testing.T) {
	cases := []struct {
		name string
		move Move
		want string
	}{
		{
			"pawn capture",
			Move{From: Square{4, 3}, To: Square{3, 2}, Piece: Pawn, Captured: Knight},
			"exd6",
		},
		{
			"pawn promotion",
			Move{From: Square{2, 1}, To: Square{3, 0}, Piece: Queen, Captured: Rook, Promotion: true},
			"cxd8=Q",
		},
		{
			"knight capture",
			Move{From: Square{1, 7}, To: Square{2, 5}, Piece: Knight, Captured: Pawn},
			"Nb1xc3",
		},
		{
			"king capture",
			Move{From: Square{4, 4}, To: Square{5, 5}, Piece: King, Captured: Bishop},
			"Ke4xf3",
		},
	}

	for _, tc := range cases {
		if got := tc.move.Notation(); got != tc.want {
			t.Errorf("%s: notation %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSquareString(t *testing.T) {
	if got := (Square{0, 0}).String(); got != "a8" {
		t.Fatalf("top-left square is %q, want a8", got)
	}
	if got := (Square{7, 7}).String(); got != "h1" {
		t.Fatalf("bottom-right square is %q, want h1", got)
	}
}
