package tetris

import (
	"hash/fnv"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Playfield dimensions.
const (
	Width         = 10
	VisibleHeight = 20
	HiddenRows    = 2
	Height        = VisibleHeight + HiddenRows
)

// Grid is the playfield: a fixed background of cell colors plus the falling
// piece. The origin is the bottom-left cell. Grid holds no pointers, so a
// plain assignment is a full independent copy.
//
// Movement methods report failure with true: MoveDown returns true when the
// piece has landed, MoveSideways and Turn when the move was rejected, Spawn
// on collision. A rejected operation leaves the grid unchanged.
type Grid struct {
	background [Height][Width]Color
	marked     [Height]bool

	current    Piece
	hasCurrent bool
	last       Piece
	hasLast    bool
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() Grid {
	return *g
}

// Cell returns the background color at (x, y), or Empty when out of bounds.
func (g *Grid) Cell(x, y int) Color {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Empty
	}
	return g.background[y][x]
}

// SetCell writes a background cell. Out-of-bounds writes are ignored.
func (g *Grid) SetCell(x, y int, c Color) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	g.background[y][x] = c
}

// Current returns the falling piece, if any.
func (g *Grid) Current() (Piece, bool) {
	return g.current, g.hasCurrent
}

// LastPiece returns the most recently merged piece, if any.
func (g *Grid) LastPiece() (Piece, bool) {
	return g.last, g.hasLast
}

// ClearCurrent removes the falling piece without merging it.
func (g *Grid) ClearCurrent() {
	g.current = Piece{}
	g.hasCurrent = false
}

// Fits reports whether every mino of p is on the board over an empty cell.
func (g *Grid) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Width || c.Y < 0 || c.Y >= Height {
			return false
		}
		if g.background[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// Spawn places a North-facing piece of shape s at its spawn anchor. It
// returns true when the spawn cells are occupied, leaving the grid as it was.
func (g *Grid) Spawn(s Shape) bool {
	p := NewPiece(s, Height)
	for _, c := range p.Cells() {
		if g.background[c.Y][c.X] != Empty {
			return true
		}
	}
	g.current = p
	g.hasCurrent = true
	return false
}

// CanMoveDown reports whether the falling piece can shift down one row.
func (g *Grid) CanMoveDown() bool {
	if !g.hasCurrent {
		return false
	}
	for _, c := range g.current.Cells() {
		if c.Y-1 < 0 || g.background[c.Y-1][c.X] != Empty {
			return false
		}
	}
	return true
}

// MoveDown shifts the falling piece down one row. It returns true when the
// piece has landed and did not move.
func (g *Grid) MoveDown() bool {
	if !g.CanMoveDown() {
		return true
	}
	g.current.Anchor.Y--
	return false
}

// Drop moves the falling piece down until it lands and returns the number of
// rows it fell.
func (g *Grid) Drop() int {
	rows := 0
	for !g.MoveDown() {
		rows++
	}
	return rows
}

// MoveSideways shifts the falling piece one column; dir is -1 for left and
// +1 for right. It returns true when a wall or a filled cell blocks the move.
func (g *Grid) MoveSideways(dir int) bool {
	if !g.hasCurrent {
		return true
	}
	for _, c := range g.current.Cells() {
		if dir < 0 && c.X <= 0 {
			return true
		}
		if dir > 0 && c.X >= Width-1 {
			return true
		}
		if g.background[c.Y][c.X+dir] != Empty {
			return true
		}
	}
	g.current.Anchor.X += dir
	return false
}

// Turn rotates the falling piece dir quarter turns in place (positive is
// clockwise). No kick offsets are tried: if the rotated minos leave the board
// or overlap the background the turn is rejected and Turn returns true.
func (g *Grid) Turn(dir int) bool {
	if !g.hasCurrent {
		return true
	}
	next := g.current
	next.Facing = next.Facing.Turn(dir)
	if !g.Fits(next) {
		return true
	}
	g.current = next
	return false
}

// Merge writes the falling piece into the background and clears it.
// It panics if any target cell is already filled.
func (g *Grid) Merge() {
	if !g.hasCurrent {
		return
	}
	color := g.current.Color()
	for _, c := range g.current.Cells() {
		if g.background[c.Y][c.X] != Empty {
			panic("tetris: merge onto filled cell")
		}
		g.background[c.Y][c.X] = color
	}
	g.last = g.current
	g.hasLast = true
	g.ClearCurrent()
}

// MarkLinesToClear marks every full row and returns how many were marked.
func (g *Grid) MarkLinesToClear() int {
	n := 0
	for y := 0; y < Height; y++ {
		g.marked[y] = g.rowFull(y)
		if g.marked[y] {
			n++
		}
	}
	return n
}

func (g *Grid) rowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if g.background[y][x] == Empty {
			return false
		}
	}
	return true
}

// MarkedRows returns the rows marked by the last MarkLinesToClear, bottom first.
func (g *Grid) MarkedRows() []int {
	var rows []int
	for y, m := range g.marked {
		if m {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearMarkedLines removes the marked rows, shifting everything above each
// one down, and returns the number of rows removed.
func (g *Grid) ClearMarkedLines() int {
	removed := 0
	for y := 0; y < Height; y++ {
		if !g.marked[y] {
			continue
		}
		g.marked[y] = false
		row := y - removed
		copy(g.background[row:Height-1], g.background[row+1:Height])
		g.background[Height-1] = [Width]Color{}
		removed++
	}
	return removed
}

// ColumnHeight returns one more than the highest filled row in column x,
// or 0 for an empty column.
func (g *Grid) ColumnHeight(x int) int {
	for y := Height - 1; y >= 0; y-- {
		if g.background[y][x] != Empty {
			return y + 1
		}
	}
	return 0
}

// FilledCells returns the number of non-empty background cells.
func (g *Grid) FilledCells() int {
	n := 0
	for y := range g.background {
		for x := range g.background[y] {
			if g.background[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

// Hash returns a 64-bit FNV-1a digest of the background occupancy.
// Colors are ignored, so grids with the same filled cells hash alike.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	var buf [2]byte
	for y := range g.background {
		var bits uint16
		for x := range g.background[y] {
			if g.background[y][x] != Empty {
				bits |= 1 << x
			}
		}
		buf[0] = byte(bits)
		buf[1] = byte(bits >> 8)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Occupancy returns the background as a string of '0'/'1', row 0 first.
func (g *Grid) Occupancy() string {
	var sb strings.Builder
	sb.Grow(Width * Height)
	for y := range g.background {
		for x := range g.background[y] {
			if g.background[y][x] != Empty {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// String draws the grid top row first: '.' empty, '#' background,
// '@' falling piece.
func (g *Grid) String() string {
	var current [4]core.Point
	if g.hasCurrent {
		current = g.current.Cells()
	}
	var sb strings.Builder
	for y := Height - 1; y >= 0; y-- {
		for x := 0; x < Width; x++ {
			ch := byte('.')
			if g.background[y][x] != Empty {
				ch = '#'
			}
			if g.hasCurrent {
				for _, c := range current {
					if c.X == x && c.Y == y {
						ch = '@'
					}
				}
			}
			sb.WriteByte(ch)
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FromRows builds a grid from a picture of its bottom rows. The last string
// is row 0; '.' and ' ' are empty, any other byte is a filled cell.
func FromRows(rows ...string) Grid {
	var g Grid
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x := 0; x < len(row) && x < Width; x++ {
			if row[x] != '.' && row[x] != ' ' {
				g.SetCell(x, y, Red)
			}
		}
	}
	return g
}
