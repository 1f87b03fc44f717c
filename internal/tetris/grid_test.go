package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blockfall/internal/core"
)

// bottomRows renders the lowest n background rows, top first, in the same
// picture format FromRows accepts.
func bottomRows(g *Grid, n int) []string {
	rows := make([]string, 0, n)
	for y := n - 1; y >= 0; y-- {
		b := make([]byte, Width)
		for x := 0; x < Width; x++ {
			b[x] = '.'
			if g.Cell(x, y) != Empty {
				b[x] = '#'
			}
		}
		rows = append(rows, string(b))
	}
	return rows
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	f()
}

func TestSpawnOnEmptyGrid(t *testing.T) {
	for _, s := range Shapes {
		var g Grid
		if g.Spawn(s) {
			t.Errorf("Spawn(%s) on empty grid reported collision", s)
		}
		p, ok := g.Current()
		if !ok || p.Shape != s || p.Facing != North {
			t.Errorf("Spawn(%s) current = %v, %v", s, p, ok)
		}
	}
}

func TestSpawnCollisionKeepsCurrent(t *testing.T) {
	var g Grid
	if g.Spawn(T) {
		t.Fatal("T spawn collided on empty grid")
	}
	before := g.Clone()

	g.SetCell(5, 21, Red)
	if !g.Spawn(O) {
		t.Fatal("Spawn(O) over a filled cell should collide")
	}
	p, ok := g.Current()
	if !ok || p.Shape != T {
		t.Errorf("current after collision = %v, %v; want the T untouched", p, ok)
	}
	want, _ := before.Current()
	if p != want {
		t.Errorf("current moved: %v -> %v", want, p)
	}
}

func TestDropLandsOnFloor(t *testing.T) {
	tests := []struct {
		shape   Shape
		rows    int
		anchorY int
	}{
		{O, 20, 2},
		{I, 20, 2},
		{T, 20, 2},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			var g Grid
			g.Spawn(tt.shape)
			if got := g.Drop(); got != tt.rows {
				t.Errorf("Drop() = %d, want %d", got, tt.rows)
			}
			if g.CanMoveDown() {
				t.Error("CanMoveDown() after Drop should be false")
			}
			if !g.MoveDown() {
				t.Error("MoveDown() after Drop should report landed")
			}
			p, _ := g.Current()
			if p.Anchor.Y != tt.anchorY {
				t.Errorf("anchor.Y = %d, want %d", p.Anchor.Y, tt.anchorY)
			}
		})
	}
}

func TestDropOntoStack(t *testing.T) {
	g := FromRows(
		"....##....",
		"..######..",
	)
	g.Spawn(O)
	if got := g.Drop(); got != 18 {
		t.Errorf("Drop() = %d, want 18", got)
	}
}

func TestMoveSidewaysWalls(t *testing.T) {
	var g Grid
	g.Spawn(O)

	moves := 0
	for !g.MoveSideways(-1) {
		moves++
	}
	if moves != 4 {
		t.Errorf("O moved left %d times, want 4", moves)
	}
	p, _ := g.Current()
	if p.Anchor.X != 0 {
		t.Errorf("anchor.X = %d, want 0", p.Anchor.X)
	}

	moves = 0
	for !g.MoveSideways(1) {
		moves++
	}
	if moves != 8 {
		t.Errorf("O moved right %d times, want 8", moves)
	}
	p, _ = g.Current()
	if p.Anchor.X != 8 {
		t.Errorf("anchor.X = %d, want 8", p.Anchor.X)
	}
}

func TestMoveSidewaysBlockedByNeighbor(t *testing.T) {
	var g Grid
	g.Spawn(O)
	g.SetCell(3, 20, Blue)

	if !g.MoveSideways(-1) {
		t.Fatal("move into a filled cell should be blocked")
	}
	p, _ := g.Current()
	if p.Anchor.X != 4 {
		t.Errorf("blocked move changed anchor.X to %d", p.Anchor.X)
	}
	if g.MoveSideways(1) {
		t.Error("move right should be free")
	}
}

func TestSidewaysReachStaysOnBoard(t *testing.T) {
	for _, s := range Shapes {
		for r := 0; r < 4; r++ {
			for _, dir := range []int{-1, 1} {
				var g Grid
				g.Spawn(s)
				for i := 0; i < r; i++ {
					if g.Turn(1) {
						t.Fatalf("%s turn %d rejected on empty grid", s, i)
					}
				}
				for !g.MoveSideways(dir) {
				}
				p, _ := g.Current()
				for _, c := range p.Cells() {
					if c.X < 0 || c.X >= Width {
						t.Errorf("%s r=%d dir=%d left the board at %v", s, r, dir, c)
					}
				}
				if !g.Fits(p) {
					t.Errorf("%s r=%d dir=%d does not fit after sliding", s, r, dir)
				}
			}
		}
	}
}

func TestTurn(t *testing.T) {
	var g Grid
	g.Spawn(T)
	if g.Turn(1) {
		t.Fatal("clockwise turn on empty grid rejected")
	}
	p, _ := g.Current()
	if p.Facing != East {
		t.Errorf("facing = %s, want E", p.Facing)
	}
	if g.Turn(-1) || g.Turn(-1) {
		t.Fatal("counter-clockwise turns rejected")
	}
	p, _ = g.Current()
	if p.Facing != West {
		t.Errorf("facing = %s, want W", p.Facing)
	}
}

func TestTurnDoesNotKick(t *testing.T) {
	var g Grid
	g.Spawn(I)
	g.Turn(1) // vertical in column 5
	for !g.MoveSideways(-1) {
	}
	before, _ := g.Current()
	if before.Anchor.X != -2 {
		t.Fatalf("vertical I against the left wall has anchor.X %d, want -2", before.Anchor.X)
	}

	if !g.Turn(1) {
		t.Fatal("turn that would leave the board should be rejected")
	}
	after, _ := g.Current()
	if after != before {
		t.Errorf("rejected turn changed piece: %v -> %v", before, after)
	}
}

func TestTurnBlockedByBackground(t *testing.T) {
	var g Grid
	g.Spawn(T)
	g.SetCell(4, 19, Green)
	if !g.Turn(1) {
		t.Error("turn into a filled cell should be rejected")
	}
	p, _ := g.Current()
	if p.Facing != North {
		t.Errorf("facing = %s after rejected turn", p.Facing)
	}
}

func TestMerge(t *testing.T) {
	var g Grid
	g.Spawn(O)
	g.Drop()
	g.Merge()

	if _, ok := g.Current(); ok {
		t.Error("current piece should be absent after merge")
	}
	if got := g.FilledCells(); got != 4 {
		t.Errorf("FilledCells() = %d, want 4", got)
	}
	for _, c := range []core.Point{{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 4, Y: 1}, {X: 5, Y: 1}} {
		if g.Cell(c.X, c.Y) != Yellow {
			t.Errorf("cell %v = %d, want yellow", c, g.Cell(c.X, c.Y))
		}
	}
	last, ok := g.LastPiece()
	if !ok || last.Shape != O {
		t.Errorf("LastPiece() = %v, %v", last, ok)
	}
}

func TestMergeOntoFilledCellPanics(t *testing.T) {
	var g Grid
	g.Spawn(O)
	g.SetCell(4, 21, Red)
	mustPanic(t, g.Merge)
}

func TestClearMarkedLines(t *testing.T) {
	g := FromRows(
		"#.........",
		".#........",
		"##########",
		"..#.......",
		"...#......",
		"##########",
		"....#.....",
		".....#....",
	)

	if got := g.MarkLinesToClear(); got != 2 {
		t.Fatalf("MarkLinesToClear() = %d, want 2", got)
	}
	if diff := cmp.Diff([]int{2, 5}, g.MarkedRows()); diff != "" {
		t.Errorf("marked rows mismatch (-want +got):\n%s", diff)
	}
	if got := g.ClearMarkedLines(); got != 2 {
		t.Fatalf("ClearMarkedLines() = %d, want 2", got)
	}

	want := []string{
		"..........",
		"..........",
		"#.........",
		".#........",
		"..#.......",
		"...#......",
		"....#.....",
		".....#....",
	}
	if diff := cmp.Diff(want, bottomRows(&g, 8)); diff != "" {
		t.Errorf("grid after clear mismatch (-want +got):\n%s", diff)
	}
	if len(g.MarkedRows()) != 0 {
		t.Error("marks should be reset after clearing")
	}
}

func TestClearTopRow(t *testing.T) {
	var g Grid
	for x := 0; x < Width; x++ {
		g.SetCell(x, Height-1, Cyan)
	}
	g.SetCell(0, Height-2, Cyan)
	g.MarkLinesToClear()
	if got := g.ClearMarkedLines(); got != 1 {
		t.Fatalf("ClearMarkedLines() = %d, want 1", got)
	}
	if g.FilledCells() != 1 || g.Cell(0, Height-2) != Cyan {
		t.Errorf("rows below a cleared top row should stay put:\n%s", g.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := FromRows("###.......")
	g.Spawn(L)
	orig := g.String()

	c := g.Clone()
	c.MoveSideways(1)
	c.Turn(1)
	c.Drop()
	c.Merge()
	c.SetCell(9, 0, Red)

	if g.String() != orig {
		t.Errorf("mutating the clone changed the original:\n%s", g.String())
	}
	if p, ok := g.Current(); !ok || p.Shape != L {
		t.Errorf("original lost its current piece: %v, %v", p, ok)
	}
}

func TestHash(t *testing.T) {
	a := FromRows("##........")
	b := FromRows("##........")
	b.SetCell(0, 0, Blue)
	c := FromRows("#.#.......")

	if a.Hash() != b.Hash() {
		t.Error("grids with equal occupancy should hash alike")
	}
	if a.Hash() == c.Hash() {
		t.Error("grids with different occupancy should hash differently")
	}
	b.Spawn(T)
	if a.Hash() != b.Hash() {
		t.Error("the falling piece should not affect the hash")
	}
}

func TestColumnHeight(t *testing.T) {
	g := FromRows(
		"#.........",
		"..........",
		"#.#.......",
	)
	want := []int{3, 0, 1, 0}
	for x, h := range want {
		if got := g.ColumnHeight(x); got != h {
			t.Errorf("ColumnHeight(%d) = %d, want %d", x, got, h)
		}
	}
}

func TestORightThenHardDrop(t *testing.T) {
	var g Grid
	g.Spawn(O)
	for i := 0; i < 3; i++ {
		if g.MoveSideways(1) {
			t.Fatalf("move right %d blocked", i)
		}
	}
	g.Drop()
	g.Merge()
	g.MarkLinesToClear()
	if n := g.ClearMarkedLines(); n != 0 {
		t.Errorf("cleared %d lines, want 0", n)
	}

	want := []string{
		".......##.",
		".......##.",
	}
	if diff := cmp.Diff(want, bottomRows(&g, 2)); diff != "" {
		t.Errorf("floor mismatch (-want +got):\n%s", diff)
	}
	if _, ok := g.Current(); ok {
		t.Error("current piece should be absent")
	}
}

func TestOLeftOnceRestsAtColumnThree(t *testing.T) {
	var g Grid
	g.Spawn(O)
	g.MoveSideways(-1)
	g.Drop()
	g.Merge()

	want := []string{
		"...##.....",
		"...##.....",
	}
	if diff := cmp.Diff(want, bottomRows(&g, 2)); diff != "" {
		t.Errorf("floor mismatch (-want +got):\n%s", diff)
	}
}

func TestOccupancy(t *testing.T) {
	g := FromRows("#........#")
	occ := g.Occupancy()
	if len(occ) != Width*Height {
		t.Fatalf("len = %d", len(occ))
	}
	if occ[:Width] != "1000000001" {
		t.Errorf("row 0 = %q", occ[:Width])
	}
}
