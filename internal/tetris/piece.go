// Package tetris models the playfield: the seven piece shapes with their
// rotation tables, the grid with its collision and line-clear rules, and the
// bag randomizer feeding the next-piece queue.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Shape identifies one of the seven tetriminos.
type Shape uint8

const (
	O Shape = iota
	I
	T
	L
	J
	S
	Z

	numShapes = 7
)

// Shapes lists every shape in catalog order.
var Shapes = [numShapes]Shape{O, I, T, L, J, S, Z}

var shapeNames = [numShapes]string{"O", "I", "T", "L", "J", "S", "Z"}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	if int(s) >= numShapes {
		return fmt.Sprintf("Shape(%d)", s)
	}
	return shapeNames[s]
}

// ParseShape converts a single-letter name back into a Shape.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("tetris: unknown shape %q", name)
}

// Color is the tag stored in a grid cell. Empty is the zero value.
type Color uint8

const (
	Empty Color = iota
	Yellow
	Cyan
	Purple
	Orange
	Blue
	Green
	Red
)

// Color returns the fixed cell color of the shape.
func (s Shape) Color() Color {
	return Color(s) + 1
}

// Facing is a rotation state.
type Facing uint8

const (
	North Facing = iota
	East
	South
	West
)

// Turn returns the facing reached by rotating dir quarter turns
// (positive is clockwise).
func (f Facing) Turn(dir int) Facing {
	return Facing(((int(f)+dir)%4 + 4) % 4)
}

func (f Facing) String() string {
	return [...]string{"N", "E", "S", "W"}[f&3]
}

// mask is an N×N occupancy matrix; row 0 is the top row.
type mask struct {
	n     int
	cells [4][4]bool
}

// rotations holds one mask per shape and facing. Only North is written out;
// the other facings are derived at init by clockwise rotation.
var rotations [numShapes][4]mask

var northMasks = [numShapes][]string{
	O: {
		"##",
		"##",
	},
	I: {
		"....",
		"####",
		"....",
		"....",
	},
	T: {
		".#.",
		"###",
		"...",
	},
	L: {
		"..#",
		"###",
		"...",
	},
	J: {
		"#..",
		"###",
		"...",
	},
	S: {
		".##",
		"##.",
		"...",
	},
	Z: {
		"##.",
		".##",
		"...",
	},
}

func init() {
	for s, rows := range northMasks {
		m := mask{n: len(rows)}
		for r, row := range rows {
			for c, ch := range row {
				m.cells[r][c] = ch == '#'
			}
		}
		rotations[s][North] = m
		for f := East; f <= West; f++ {
			rotations[s][f] = rotateClockwise(rotations[s][f-1])
		}
	}
}

func rotateClockwise(m mask) mask {
	out := mask{n: m.n}
	for r := 0; r < m.n; r++ {
		for c := 0; c < m.n; c++ {
			out.cells[r][c] = m.cells[m.n-1-c][r]
		}
	}
	return out
}

// MinimalRotations reports how many facings of a shape produce distinct
// placements: 1 for O, 2 for I, S and Z, 4 for T, J and L.
func MinimalRotations(s Shape) int {
	switch s {
	case O:
		return 1
	case I, S, Z:
		return 2
	default:
		return 4
	}
}

// SpawnAnchor returns the anchor a freshly spawned piece of shape s gets on a
// grid of the given height.
func SpawnAnchor(s Shape, height int) core.Point {
	if s == O {
		return core.Pt(4, height)
	}
	return core.Pt(3, height)
}

// Piece is a shape with a facing and an anchor. The anchor is the board
// coordinate just above the mask's top-left corner: mask cell (xi, yi) lands
// on column anchor.X+xi and row anchor.Y-yi-1. Piece is a plain value;
// assigning it copies it.
type Piece struct {
	Shape  Shape
	Facing Facing
	Anchor core.Point
}

// NewPiece returns a North-facing piece at its spawn anchor.
func NewPiece(s Shape, height int) Piece {
	if int(s) >= numShapes {
		panic(fmt.Sprintf("tetris: unknown shape %d", s))
	}
	return Piece{Shape: s, Facing: North, Anchor: SpawnAnchor(s, height)}
}

// Color returns the piece's cell color.
func (p Piece) Color() Color {
	return p.Shape.Color()
}

// Size returns the side length of the piece's rotation mask.
func (p Piece) Size() int {
	return rotations[p.Shape][p.Facing].n
}

// Cells returns the board coordinates of the four minos.
func (p Piece) Cells() [4]core.Point {
	return cellsAt(p.Shape, p.Facing, p.Anchor)
}

func cellsAt(s Shape, f Facing, anchor core.Point) [4]core.Point {
	var out [4]core.Point
	m := &rotations[s][f]
	i := 0
	for yi := 0; yi < m.n; yi++ {
		for xi := 0; xi < m.n; xi++ {
			if !m.cells[yi][xi] {
				continue
			}
			out[i] = core.Pt(anchor.X+xi, anchor.Y-yi-1)
			i++
		}
	}
	return out
}

func (p Piece) String() string {
	return fmt.Sprintf("%s%s@(%d,%d)", p.Shape, p.Facing, p.Anchor.X, p.Anchor.Y)
}
