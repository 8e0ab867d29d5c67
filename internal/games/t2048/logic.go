package t2048

// Direction is a slide direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Size is the board dimension.
const Size = 4

// Row is one line of tiles; 0 is empty.
type Row [Size]int

// Board is the tile grid, indexed [row][col].
type Board [Size]Row

// SlideRow packs the tiles of row toward index 0 and merges equal
// neighbours in a single pass: a tile produced by a merge never merges again
// in the same move. It returns the new row and the number of merges.
func SlideRow(row Row) (Row, int) {
	var out Row
	n, merges := 0, 0
	merged := false
	for _, v := range row {
		if v == 0 {
			continue
		}
		if n > 0 && !merged && out[n-1] == v {
			out[n-1] *= 2
			merges++
			merged = true
			continue
		}
		out[n] = v
		n++
		merged = false
	}
	return out, merges
}

func reverse(row Row) Row {
	var out Row
	for i := range row {
		out[i] = row[Size-1-i]
	}
	return out
}

func transpose(b Board) Board {
	var out Board
	for r := range Size {
		for c := range Size {
			out[r][c] = b[c][r]
		}
	}
	return out
}

// Slide moves every tile in dir. It returns the new board, the number of
// merges and whether anything moved.
func Slide(b Board, dir Direction) (Board, int, bool) {
	work := b
	if dir == DirUp || dir == DirDown {
		work = transpose(work)
	}

	backward := dir == DirRight || dir == DirDown
	merges := 0
	for r := range work {
		row := work[r]
		if backward {
			row = reverse(row)
		}
		slid, m := SlideRow(row)
		if backward {
			slid = reverse(slid)
		}
		work[r] = slid
		merges += m
	}

	if dir == DirUp || dir == DirDown {
		work = transpose(work)
	}
	return work, merges, work != b
}

// EmptyCells returns the [row, col] of every empty tile in row-major order.
func EmptyCells(b Board) [][2]int {
	var cells [][2]int
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// CanMove reports whether any slide would change the board.
func CanMove(b Board) bool {
	for r := range Size {
		for c := range Size {
			v := b[r][c]
			if v == 0 {
				return true
			}
			if c < Size-1 && b[r][c+1] == v {
				return true
			}
			if r < Size-1 && b[r+1][c] == v {
				return true
			}
		}
	}
	return false
}
