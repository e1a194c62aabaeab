package vtengine

import "testing"

func TestNewLineIsBlankAndShared(t *testing.T) {
	l := newLine(10)
	if l.owned {
		t.Fatal("fresh line should alias shared null attrs")
	}
	if !l.IsBlank() {
		t.Fatal("fresh line should be blank")
	}
	if l.Width() != 10 {
		t.Fatalf("Width() = %d, want 10", l.Width())
	}
}

func TestSetCellMintsOwnedStorageOnlyWhenNeeded(t *testing.T) {
	l := newLine(5)
	l.SetCell(2, Cell{Image: ' '}, nil)
	if l.owned {
		t.Fatal("writing a default-rendition blank should not mint owned storage")
	}
	l.SetCell(2, Cell{Image: 'x', Attr: AttrBold}, nil)
	if !l.owned {
		t.Fatal("writing a non-default cell should mint owned storage")
	}
	if l.Image(2) != 'x' || l.Attr(2) != AttrBold {
		t.Fatalf("Cell(2) wrong after SetCell: image=%q attr=%v", l.Image(2), l.Attr(2))
	}
}

func TestSetCellDoesNotDisturbOtherColumns(t *testing.T) {
	l := newLine(5)
	l.SetCell(1, Cell{Image: 'a', Attr: AttrBold}, nil)
	l.SetCell(3, Cell{Image: 'b', Attr: AttrUnderline}, nil)
	if l.Attr(1) != AttrBold || l.Attr(3) != AttrUnderline {
		t.Fatal("owned attrs should be independent per column")
	}
	if l.Image(0) != ' ' || l.Attr(0) != 0 {
		t.Fatal("untouched column should remain default blank")
	}
}

func TestClearRangeResetsToBCE(t *testing.T) {
	l := newLine(5)
	l.SetCell(0, Cell{Image: 'x', Attr: AttrBold}, nil)
	bg := NewIndexedColor(3)
	l.ClearRange(0, 5, bg, nil)
	for c := 0; c < 5; c++ {
		if l.Image(c) != ' ' || l.Attr(c) != 0 || l.ColorBG(c) != bg {
			t.Fatalf("column %d not cleared to bce blank: image=%q attr=%v bg=%v", c, l.Image(c), l.Attr(c), l.ColorBG(c))
		}
	}
}

func TestLineCloneIsIndependent(t *testing.T) {
	l := newLine(5)
	l.SetCell(0, Cell{Image: 'x', Attr: AttrBold}, nil)
	c := l.clone()
	c.SetCell(0, Cell{Image: 'y'}, nil)
	if l.Image(0) != 'x' {
		t.Fatal("mutating a clone should not affect the original")
	}
}

func TestLineResetReleasesOwnedStorage(t *testing.T) {
	l := newLine(5)
	l.SetCell(0, Cell{Image: 'x', Attr: AttrBold}, nil)
	l.reset()
	if l.owned {
		t.Fatal("reset should release owned storage")
	}
	if !l.IsBlank() {
		t.Fatal("reset line should be blank")
	}
}

func TestSetCellWithoutDegradeDoesNotWarn(t *testing.T) {
	l := newLine(3)
	warned := false
	warn := func(string) { warned = true }
	// SetCell with default rendition never allocates, so exercise the path
	// where a real write succeeds normally; the degrade path itself is only
	// reachable via an actual allocation failure, which this test can't
	// force without runtime support. It asserts the non-degraded path does
	// not spuriously warn.
	l.SetCell(1, Cell{Image: 'z'}, warn)
	if warned {
		t.Fatal("ordinary SetCell should not warn")
	}
}
