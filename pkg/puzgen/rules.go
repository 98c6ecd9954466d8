package puzgen

// legalMove reports whether kind could move between the two squares on b.
// Occupancy of the destination is the caller's concern; this only checks
// the movement pattern and, for sliding pieces, that the line between the
// squares is clear.
//
// backward flips the pawn's rank direction: the reverse constructor asks
// where a pawn could have come from, so its delta runs toward increasing Y
// instead of the forward capture direction (decreasing Y, toward rank 8).
func legalMove(b *Board, kind PieceKind, from, to Square, backward bool) bool {
	if !inBounds(from) || !inBounds(to) || from == to {
		return false
	}
	dx := to.X - from.X
	dy := to.Y - from.Y

	switch kind {
	case Pawn:
		want := -1
		if backward {
			want = 1
		}
		return dy == want && (dx == 1 || dx == -1)
	case Knight:
		return (abs(dx) == 2 && abs(dy) == 1) || (abs(dx) == 1 && abs(dy) == 2)
	case Bishop:
		return abs(dx) == abs(dy) && clearLine(b, from, to)
	case Rook:
		return (dx == 0 || dy == 0) && clearLine(b, from, to)
	case Queen:
		return (dx == 0 || dy == 0 || abs(dx) == abs(dy)) && clearLine(b, from, to)
	case King:
		return abs(dx) <= 1 && abs(dy) <= 1
	}
	return false
}

// clearLine checks that every square strictly between from and to is empty.
// The endpoints themselves are not inspected.
func clearLine(b *Board, from, to Square) bool {
	stepX := sign(to.X - from.X)
	stepY := sign(to.Y - from.Y)
	x, y := from.X+stepX, from.Y+stepY
	for x != to.X || y != to.Y {
		if b.cells[y][x].Kind != NoPiece {
			return false
		}
		x += stepX
		y += stepY
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
