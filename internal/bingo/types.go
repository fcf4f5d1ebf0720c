// internal/bingo/types.go
//
// Core type definitions for the bingo engine.
// Defines:
//   - Square: one cell of the board (question prompt or free space).
//   - Board: 25 squares in row-major order, handled as a value snapshot.
//   - Line / LineType: a winning pattern of five square ids.

package bingo

// Board geometry. Center is derived so the free space follows the grid size.
const (
	Size     = 5
	Cells    = Size * Size
	Center   = Cells / 2
	Prompts  = Cells - 1 // squares that receive a pool question
	LineSize = Size
)

// Square is a single cell on the board.
type Square struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	IsMarked    bool   `json:"isMarked"`
	IsFreeSpace bool   `json:"isFreeSpace"`
}

// Board holds the squares indexed by id (row = id / Size, col = id % Size).
// It is an array, so assignment copies it and Toggle never aliases its input.
type Board [Cells]Square

// LineType names the shape of a winning line.
type LineType string

const (
	LineRow      LineType = "row"
	LineColumn   LineType = "column"
	LineDiagonal LineType = "diagonal"
)

// Line is one winning pattern.
// Index is the row/column number, or 0 (top-left to bottom-right) and
// 1 (top-right to bottom-left) for diagonals.
type Line struct {
	Type    LineType      `json:"type"`
	Index   int           `json:"index"`
	Squares [LineSize]int `json:"squares"`
}

// MarkedCount returns how many squares are marked, free space included.
func (b Board) MarkedCount() int {
	n := 0
	for _, sq := range b {
		if sq.IsMarked {
			n++
		}
	}
	return n
}

// Rows splits the board into Size rows for rendering.
func (b Board) Rows() [][]Square {
	out := make([][]Square, Size)
	for r := 0; r < Size; r++ {
		out[r] = b[r*Size : (r+1)*Size]
	}
	return out
}
