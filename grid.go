package vtengine

// Grid owns the matrix of screen lines and the scrollback ring (§3, §4.1).
// It knows nothing about cursor position or rendition state; those live in
// Window. All coordinates are 0-based; x may equal width for the
// deferred-wrap column.
type Grid struct {
	width, height int

	lines []*Line // height owned slots, row-major

	histCap  int
	histSlots []*Line
	histIdx  int
	histLen  int

	compactHist bool
	warn        func(string)
}

// NewGrid creates a blank grid of the given size with a scrollback ring of
// histCap lines (0 disables history — scroll-off lines are simply discarded).
func NewGrid(width, height, histCap int, compactHist bool, warn func(string)) *Grid {
	g := &Grid{
		width:       width,
		height:      height,
		lines:       make([]*Line, height),
		histCap:     histCap,
		compactHist: compactHist,
		warn:        warn,
	}
	if histCap > 0 {
		g.histSlots = make([]*Line, histCap)
	}
	for i := range g.lines {
		g.lines[i] = newLine(width)
	}
	return g
}

// Width returns the number of display columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of display rows.
func (g *Grid) Height() int { return g.height }

// Line returns the row at y, or nil if y is out of range.
func (g *Grid) Line(y int) *Line {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.lines[y]
}

// unpairWideAt blanks both halves of any wide pair straddling column x of
// row y, so a write at x never leaves a half-pair behind (§3 invariant).
func (g *Grid) unpairWideAt(y, x int) {
	if y < 0 || y >= g.height || x < 0 || x >= g.width {
		return
	}
	line := g.lines[y]
	cur := line.Cell(x)
	if cur.IsWideRightHalf() && x-1 >= 0 {
		line.SetCell(x-1, NullCell, g.warn)
		line.SetCell(x, NullCell, g.warn)
		return
	}
	if cur.IsWide() && x+1 < g.width {
		right := line.Cell(x + 1)
		if right.IsWideRightHalf() {
			line.SetCell(x, NullCell, g.warn)
			line.SetCell(x+1, NullCell, g.warn)
		}
	}
}

// Put writes c at (x,y), killing any wide-pair neighbor first (§4.1 put()).
// x may equal width to write the deferred-wrap sentinel column.
func (g *Grid) Put(c Cell, x, y int) {
	if y < 0 || y >= g.height || x < 0 || x > g.width {
		return
	}
	g.unpairWideAt(y, x-1)
	g.unpairWideAt(y, x)
	g.unpairWideAt(y, x+1)

	line := g.lines[y]
	line.SetCell(x, c, g.warn)

	if x < g.width && (c.MBCS != 0 || isWideRune(c.Image)) {
		if x+1 <= g.width {
			g.unpairWideAt(y, x+2)
			line.SetCell(x+1, MakeWideRightHalf(c), g.warn)
		}
	}
}

// Insert shifts cells [x, width) right by one (two if c is wide), dropping
// the last cell(s), then writes c at (x,y) (§4.1 insert()).
func (g *Grid) Insert(c Cell, x, y int) {
	n := 1
	if c.MBCS != 0 || isWideRune(c.Image) {
		n = 2
	}
	g.ScrollH(-n, y, x, g.width-1, c.ColorBG)
	g.Put(c, x, y)
}

// ScrollH shifts row y within [xs,xe] by n columns: positive n deletes from
// the left (content moves left, right margin cleared); negative n inserts
// from the right (content moves right, left margin cleared). Cleared
// columns are bce-colored blanks (§4.1 scrollH()).
func (g *Grid) ScrollH(n, y, xs, xe int, bce Color) {
	if y < 0 || y >= g.height || n == 0 {
		return
	}
	if xs < 0 {
		xs = 0
	}
	if xe >= g.width {
		xe = g.width - 1
	}
	if xs > xe {
		return
	}
	line := g.lines[y]
	width := xe - xs + 1
	blank := blankWithBG(bce)

	if n > 0 {
		if n > width {
			n = width
		}
		g.unpairWideAt(y, xs-1)
		g.unpairWideAt(y, xe)
		for c := xs; c <= xe-n; c++ {
			line.SetCell(c, line.Cell(c+n), g.warn)
		}
		for c := xe - n + 1; c <= xe; c++ {
			line.SetCell(c, blank, g.warn)
		}
		return
	}

	n = -n
	if n > width {
		n = width
	}
	g.unpairWideAt(y, xs)
	g.unpairWideAt(y, xe+1)
	for c := xe; c >= xs+n; c-- {
		line.SetCell(c, line.Cell(c-n), g.warn)
	}
	for c := xs; c < xs+n; c++ {
		line.SetCell(c, blank, g.warn)
	}
}

// ScrollV rotates the lines in region [ys,ye] by n: positive n scrolls the
// region up (content toward ys, new blanks appear at the bottom; if ys==top
// the vacated top lines are pushed to scrollback first); negative n
// scrolls down (content toward ye, new blanks appear at the top). top is
// the enclosing scroll region's top margin, passed separately from ys
// since IL/DL rotate a sub-range starting below the region's top and must
// not feed scrollback (§4.1 ScrollV(), ansi.c:2018 "ys == win->w_top").
// Rotation reuses the vacated *Line objects instead of allocating new ones
// (§9 "preserve by moving line payloads"); a scroll larger than the region
// behaves as a full clear (§8 property 5).
func (g *Grid) ScrollV(n, ys, ye, top int, bce Color) {
	if ys < 0 {
		ys = 0
	}
	if ye >= g.height {
		ye = g.height - 1
	}
	if ys > ye || n == 0 {
		return
	}
	regionHeight := ye - ys + 1

	if n > 0 {
		if n > regionHeight {
			n = regionHeight
		}
		vacated := append([]*Line(nil), g.lines[ys:ys+n]...)

		if ys == top {
			push := n
			if g.compactHist {
				used := g.findUsedLine(ys+n-1, ys)
				if used < ys {
					push = 0
				} else {
					push = used - ys + 1
				}
			}
			for i := 0; i < push; i++ {
				g.addLineToHist(vacated[i])
			}
		}

		copy(g.lines[ys:ye-n+1], g.lines[ys+n:ye+1])
		for i, ml := range vacated {
			ml.reset()
			ml.ClearRange(0, g.width, bce, g.warn)
			g.lines[ye-n+1+i] = ml
		}
		return
	}

	n = -n
	if n > regionHeight {
		n = regionHeight
	}
	vacated := append([]*Line(nil), g.lines[ye-n+1:ye+1]...)
	copy(g.lines[ys+n:ye+1], g.lines[ys:ye-n+1])
	for i, ml := range vacated {
		ml.reset()
		ml.ClearRange(0, g.width, bce, g.warn)
		g.lines[ys+i] = ml
	}
}

// ClearArea rectangular-clears [xs,xe]x[ys,ye], wide-pair aware at the
// edges, filling with bce-colored blanks (§4.1 clearArea()).
func (g *Grid) ClearArea(xs, ys, xe, ye int, bce Color) {
	if ys < 0 {
		ys = 0
	}
	if ye >= g.height {
		ye = g.height - 1
	}
	for y := ys; y <= ye; y++ {
		g.unpairWideAt(y, xs-1)
		g.unpairWideAt(y, xe+1)
		g.lines[y].ClearRange(xs, xe+1, bce, g.warn)
	}
}

// Wrap terminates the deferred-wrap column: writes a null into column
// width, scrolls the region up by one if y is already at bot, otherwise
// advances y, then writes c into column 0 via Insert or Put (§4.1 wrap()).
func (g *Grid) Wrap(c Cell, y, top, bot int, ins bool, bce Color) int {
	if y < 0 || y >= g.height {
		return y
	}
	g.lines[y].SetCell(g.width, NullCell, g.warn)
	g.lines[y].wrapped = true
	if y == bot {
		g.ScrollV(1, top, bot, top, bce)
	} else {
		y++
	}
	if ins {
		g.Insert(c, 0, y)
	} else {
		g.Put(c, 0, y)
	}
	return y
}

// addLineToHist pushes ml's content into the scrollback ring, reusing
// storage when the existing slot is the same width (§4.1 addLineToHist()).
func (g *Grid) addLineToHist(ml *Line) {
	if g.histCap <= 0 {
		return
	}
	idx := g.histIdx
	slot := g.histSlots[idx]
	if slot == nil || len(slot.image) != len(ml.image) {
		g.histSlots[idx] = ml.clone()
	} else {
		slot.image, ml.image = ml.image, slot.image
		slot.attrs, ml.attrs = ml.attrs, slot.attrs
		slot.owned, ml.owned = ml.owned, slot.owned
		slot.width, ml.width = ml.width, slot.width
		slot.wrapped, ml.wrapped = ml.wrapped, slot.wrapped
		g.histSlots[idx] = slot
	}
	if g.histLen < g.histCap {
		g.histLen++
	}
	g.histIdx++
	if g.histIdx >= g.histCap {
		g.histIdx = 0
	}
}

// findUsedLine scans bottom-up from ye to ys for the last non-blank row,
// returning ys-1 if none is used (§4.1 findUsedLine(), used by compacthist).
func (g *Grid) findUsedLine(ye, ys int) int {
	for y := ye; y >= ys; y-- {
		if y < 0 || y >= g.height {
			continue
		}
		if !g.lines[y].IsBlank() {
			return y
		}
	}
	return ys - 1
}

// HistLen returns the number of lines currently held in scrollback.
func (g *Grid) HistLen() int { return g.histLen }

// HistLine returns scrollback line index (0 = oldest), or nil out of range.
func (g *Grid) HistLine(index int) *Line {
	if index < 0 || index >= g.histLen {
		return nil
	}
	if g.histLen < g.histCap {
		return g.histSlots[index]
	}
	return g.histSlots[(g.histIdx+index)%g.histCap]
}

// ClearScrollback discards all stored scrollback lines.
func (g *Grid) ClearScrollback() {
	for i := range g.histSlots {
		g.histSlots[i] = nil
	}
	g.histIdx = 0
	g.histLen = 0
}

// Resize changes grid dimensions, preserving content at the top-left
// corner. Growing adds blank rows/columns; shrinking discards the rest.
func (g *Grid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width != g.width {
		for _, l := range g.lines {
			resizeLine(l, width)
		}
		g.width = width
	}
	if height == g.height {
		return
	}
	if height > g.height {
		grown := make([]*Line, height)
		copy(grown, g.lines)
		for i := g.height; i < height; i++ {
			grown[i] = newLine(width)
		}
		g.lines = grown
	} else {
		g.lines = g.lines[:height]
	}
	g.height = height
}

// resizeLine grows or shrinks l's arrays to the new width in place,
// preserving existing columns.
func resizeLine(l *Line, width int) {
	growSharedNull(width)
	n := width + 1
	newImage := make([]rune, n)
	for i := range newImage {
		newImage[i] = ' '
	}
	copy(newImage, l.image)
	l.image = newImage
	if l.owned {
		a := l.attrs
		na := &lineAttrs{
			attr:    make([]Attr, n),
			font:    make([]byte, n),
			fontx:   make([]byte, n),
			colorbg: make([]Color, n),
			colorfg: make([]Color, n),
		}
		copy(na.attr, a.attr)
		copy(na.font, a.font)
		copy(na.fontx, a.fontx)
		copy(na.colorbg, a.colorbg)
		copy(na.colorfg, a.colorfg)
		l.attrs = na
	} else {
		l.attrs = sharedNullAttrs
	}
	l.width = width
}
