package vtengine

import "testing"

func newTestGrid(w, h, hist int) *Grid {
	return NewGrid(w, h, hist, true, func(string) {})
}

func TestGridPutAndWideUnpair(t *testing.T) {
	g := newTestGrid(10, 3, 0)
	g.Put(Cell{Image: '中'}, 2, 0)
	line := g.Line(0)
	if line.Image(2) != '中' {
		t.Fatalf("Image(2) = %q, want 中", line.Image(2))
	}
	if !line.Cell(3).IsWideRightHalf() {
		t.Fatal("column after a wide char should be its right half")
	}

	// Writing into the right half must blank both halves of the pair.
	g.Put(Cell{Image: 'x'}, 3, 0)
	if line.Cell(2).IsWideRightHalf() || line.Image(2) == '中' {
		t.Fatal("writing into a wide pair's right half must clear the left half too")
	}
	if line.Image(3) != 'x' {
		t.Fatal("the new write itself should land")
	}
}

func TestGridInsertShiftsRight(t *testing.T) {
	g := newTestGrid(5, 1, 0)
	for i, r := range []rune{'a', 'b', 'c'} {
		g.Put(Cell{Image: r}, i, 0)
	}
	g.Insert(Cell{Image: 'Z'}, 1, 0)
	line := g.Line(0)
	want := []rune{'a', 'Z', 'b', 'c', ' '}
	for i, r := range want {
		if line.Image(i) != r {
			t.Fatalf("column %d = %q, want %q", i, line.Image(i), r)
		}
	}
}

func TestGridScrollHDeleteLeft(t *testing.T) {
	g := newTestGrid(5, 1, 0)
	for i, r := range []rune{'a', 'b', 'c', 'd', 'e'} {
		g.Put(Cell{Image: r}, i, 0)
	}
	g.ScrollH(2, 0, 0, 4, DefaultColor)
	line := g.Line(0)
	want := []rune{'c', 'd', 'e', ' ', ' '}
	for i, r := range want {
		if line.Image(i) != r {
			t.Fatalf("after delete-left column %d = %q, want %q", i, line.Image(i), r)
		}
	}
}

func TestGridScrollVPushesToHistory(t *testing.T) {
	g := newTestGrid(5, 3, 10)
	g.Line(0).SetCell(0, Cell{Image: 'a'}, nil)
	g.Line(1).SetCell(0, Cell{Image: 'b'}, nil)
	g.Line(2).SetCell(0, Cell{Image: 'c'}, nil)
	g.ScrollV(1, 0, 2, 0, DefaultColor)
	if g.HistLen() != 1 {
		t.Fatalf("HistLen() = %d, want 1", g.HistLen())
	}
	if g.HistLine(0).Image(0) != 'a' {
		t.Fatalf("history line 0 = %q, want a", g.HistLine(0).Image(0))
	}
	if g.Line(0).Image(0) != 'b' || g.Line(1).Image(0) != 'c' {
		t.Fatal("rows did not shift up correctly")
	}
	if g.Line(2).Image(0) != ' ' {
		t.Fatal("vacated bottom row should be blank")
	}
}

func TestGridScrollVDownBringsBlanksAtTop(t *testing.T) {
	g := newTestGrid(5, 3, 0)
	g.Line(0).SetCell(0, Cell{Image: 'a'}, nil)
	g.Line(1).SetCell(0, Cell{Image: 'b'}, nil)
	g.ScrollV(-1, 0, 2, 0, DefaultColor)
	if g.Line(0).Image(0) != ' ' {
		t.Fatal("new top row should be blank after scroll-down")
	}
	if g.Line(1).Image(0) != 'a' {
		t.Fatal("row a should have moved down to row 1")
	}
}

func TestGridClearArea(t *testing.T) {
	g := newTestGrid(5, 2, 0)
	g.Put(Cell{Image: 'x', Attr: AttrBold}, 1, 0)
	g.ClearArea(0, 0, 4, 1, DefaultColor)
	if !g.Line(0).IsBlank() || !g.Line(1).IsBlank() {
		t.Fatal("ClearArea should blank the whole region")
	}
}

func TestGridWrapAdvancesAndScrolls(t *testing.T) {
	g := newTestGrid(5, 2, 0)
	y := g.Wrap(Cell{Image: 'Z'}, 0, 0, 1, false, DefaultColor)
	if y != 1 {
		t.Fatalf("Wrap from row 0 of 2 should advance to row 1, got %d", y)
	}
	if g.Line(1).Image(0) != 'Z' {
		t.Fatal("wrapped char should land at column 0 of the new row")
	}

	y2 := g.Wrap(Cell{Image: 'Y'}, 1, 0, 1, false, DefaultColor)
	if y2 != 1 {
		t.Fatalf("Wrap at bottom margin should scroll and stay at bot, got %d", y2)
	}
	if g.Line(1).Image(0) != 'Y' {
		t.Fatal("wrapped char should land on the scrolled-in row")
	}
}

func TestGridResizeGrowsAndShrinks(t *testing.T) {
	g := newTestGrid(5, 2, 0)
	g.Put(Cell{Image: 'x'}, 0, 0)
	g.Resize(8, 4)
	if g.Width() != 8 || g.Height() != 4 {
		t.Fatalf("Resize did not take effect: %dx%d", g.Width(), g.Height())
	}
	if g.Line(0).Image(0) != 'x' {
		t.Fatal("Resize should preserve existing content")
	}
	g.Resize(3, 1)
	if g.Width() != 3 || g.Height() != 1 {
		t.Fatalf("Resize shrink did not take effect: %dx%d", g.Width(), g.Height())
	}
}

func TestGridClearScrollback(t *testing.T) {
	g := newTestGrid(5, 2, 10)
	g.Line(0).SetCell(0, Cell{Image: 'a'}, nil)
	g.ScrollV(1, 0, 1, 0, DefaultColor)
	if g.HistLen() == 0 {
		t.Fatal("expected a history line before clearing")
	}
	g.ClearScrollback()
	if g.HistLen() != 0 {
		t.Fatal("ClearScrollback should empty history")
	}
}
