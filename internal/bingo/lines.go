// internal/bingo/lines.go
//
// Winning line catalog and bingo detection.
//
// The catalog is built once from the board geometry in a fixed order:
// rows 0..Size-1, columns 0..Size-1, then the two diagonals. CheckBingo
// walks it in that order, so when several lines complete at once the
// earliest one in the catalog is reported.

package bingo

var catalog = buildCatalog()

func buildCatalog() []Line {
	lines := make([]Line, 0, 2*Size+2)

	for row := 0; row < Size; row++ {
		l := Line{Type: LineRow, Index: row}
		for col := 0; col < Size; col++ {
			l.Squares[col] = row*Size + col
		}
		lines = append(lines, l)
	}

	for col := 0; col < Size; col++ {
		l := Line{Type: LineColumn, Index: col}
		for row := 0; row < Size; row++ {
			l.Squares[row] = row*Size + col
		}
		lines = append(lines, l)
	}

	lead := Line{Type: LineDiagonal, Index: 0}
	anti := Line{Type: LineDiagonal, Index: 1}
	for i := 0; i < Size; i++ {
		lead.Squares[i] = i*Size + i
		anti.Squares[i] = i*Size + (Size - 1 - i)
	}
	return append(lines, lead, anti)
}

// WinningLines returns the 12 winning lines in catalog order.
// The result is a copy; callers may modify it freely.
func WinningLines() []Line {
	out := make([]Line, len(catalog))
	copy(out, catalog)
	return out
}

// CheckBingo returns the first fully marked line, if any.
func CheckBingo(b Board) (Line, bool) {
	for _, l := range catalog {
		if complete(b, l) {
			return l, true
		}
	}
	return Line{}, false
}

func complete(b Board, l Line) bool {
	for _, id := range l.Squares {
		if !b[id].IsMarked {
			return false
		}
	}
	return true
}

// HighlightedSquareIDs returns the set of ids on line, or an empty set for nil.
func HighlightedSquareIDs(line *Line) map[int]struct{} {
	out := make(map[int]struct{}, LineSize)
	if line == nil {
		return out
	}
	for _, id := range line.Squares {
		out[id] = struct{}{}
	}
	return out
}
