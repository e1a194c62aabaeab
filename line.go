package vtengine

// lineAttrs holds the five lazily-allocated per-line channels: attr, font,
// fontx, colorbg, colorfg. A blank line aliases sharedNullAttrs instead of
// allocating its own copies; fixLine mints real storage on first
// non-default write (§3, §4.1 fixLine).
type lineAttrs struct {
	attr    []Attr
	font    []byte
	fontx   []byte
	colorbg []Color
	colorfg []Color
}

// sharedNullAttrs is reused by every blank line of every width up to its
// current capacity; Line never writes through it directly.
var sharedNullAttrs = &lineAttrs{}

func growSharedNull(width int) {
	if len(sharedNullAttrs.attr) >= width+1 {
		return
	}
	n := width + 1
	sharedNullAttrs.attr = make([]Attr, n)
	sharedNullAttrs.font = make([]byte, n)
	sharedNullAttrs.fontx = make([]byte, n)
	sharedNullAttrs.colorbg = make([]Color, n)
	sharedNullAttrs.colorfg = make([]Color, n)
}

// Line (mline) is one row of the grid: an owned image array of width+1
// runes (column width is the deferred-wrap slot) plus a lazily-allocated
// lineAttrs. wrapped records whether the line ended by wrapping rather
// than an explicit newline/clear.
type Line struct {
	width   int
	image   []rune
	attrs   *lineAttrs
	owned   bool
	wrapped bool
}

// newLine creates a blank line of the given width, aliasing the shared
// null attribute storage.
func newLine(width int) *Line {
	growSharedNull(width)
	image := make([]rune, width+1)
	for i := range image {
		image[i] = ' '
	}
	return &Line{width: width, image: image, attrs: sharedNullAttrs}
}

// fixLine lazily allocates this line's own attribute storage if c carries
// any non-default channel. On allocation failure it degrades: the caller
// continues to write into the (now guaranteed non-nil) shared arrays,
// which silently drops the non-default channel — §7 ResourceExhausted.
func (l *Line) fixLine(c Cell, warn func(string)) {
	if l.owned {
		return
	}
	if c.Attr == 0 && c.Font == 0 && c.FontX == 0 && c.ColorBG.IsDefault() && c.ColorFG.IsDefault() {
		return
	}
	n := l.width + 1
	defer func() {
		if r := recover(); r != nil {
			if warn != nil {
				warn("line allocation failed, degrading rendition channel")
			}
			l.attrs = sharedNullAttrs
			l.owned = false
		}
	}()
	l.attrs = &lineAttrs{
		attr:    make([]Attr, n),
		font:    make([]byte, n),
		fontx:   make([]byte, n),
		colorbg: make([]Color, n),
		colorfg: make([]Color, n),
	}
	l.owned = true
}

// Width returns the number of display columns (excludes the deferred-wrap slot).
func (l *Line) Width() int { return l.width }

// Image returns the codepoint at col, safe for col in [0, width].
func (l *Line) Image(col int) rune {
	if col < 0 || col >= len(l.image) {
		return ' '
	}
	return l.image[col]
}

// Attr returns the rendition bitset at col, safe for col in [0, width].
func (l *Line) Attr(col int) Attr {
	if col < 0 || col >= len(l.attrs.attr) {
		return 0
	}
	return l.attrs.attr[col]
}

// Font returns the charset selector at col.
func (l *Line) Font(col int) byte {
	if col < 0 || col >= len(l.attrs.font) {
		return 0
	}
	return l.attrs.font[col]
}

// FontX returns the extra CJK high byte at col.
func (l *Line) FontX(col int) byte {
	if col < 0 || col >= len(l.attrs.fontx) {
		return 0
	}
	return l.attrs.fontx[col]
}

// ColorBG returns the background color at col.
func (l *Line) ColorBG(col int) Color {
	if col < 0 || col >= len(l.attrs.colorbg) {
		return DefaultColor
	}
	return l.attrs.colorbg[col]
}

// ColorFG returns the foreground color at col.
func (l *Line) ColorFG(col int) Color {
	if col < 0 || col >= len(l.attrs.colorfg) {
		return DefaultColor
	}
	return l.attrs.colorfg[col]
}

// Cell assembles the cell at col from the parallel arrays.
func (l *Line) Cell(col int) Cell {
	return Cell{
		Image:   l.Image(col),
		Font:    l.Font(col),
		FontX:   l.FontX(col),
		Attr:    l.Attr(col),
		ColorBG: l.ColorBG(col),
		ColorFG: l.ColorFG(col),
	}
}

// SetCell writes c at col, lazily minting owned storage first if needed.
func (l *Line) SetCell(col int, c Cell, warn func(string)) {
	if col < 0 || col >= len(l.image) {
		return
	}
	l.fixLine(c, warn)
	l.image[col] = c.Image
	if !l.owned {
		return
	}
	if col < len(l.attrs.attr) {
		l.attrs.attr[col] = c.Attr
	}
	if col < len(l.attrs.font) {
		l.attrs.font[col] = c.Font
	}
	if col < len(l.attrs.fontx) {
		l.attrs.fontx[col] = c.FontX
	}
	if col < len(l.attrs.colorbg) {
		l.attrs.colorbg[col] = c.ColorBG
	}
	if col < len(l.attrs.colorfg) {
		l.attrs.colorfg[col] = c.ColorFG
	}
}

// ClearRange resets columns [start, end) to bce-colored blanks.
func (l *Line) ClearRange(start, end int, bce Color, warn func(string)) {
	if start < 0 {
		start = 0
	}
	if end > l.width {
		end = l.width
	}
	blank := blankWithBG(bce)
	for c := start; c < end; c++ {
		l.SetCell(c, blank, warn)
	}
}

// IsBlank reports whether every visible column holds the default blank cell.
func (l *Line) IsBlank() bool {
	if l.owned {
		for c := 0; c < l.width; c++ {
			if l.Attr(c) != 0 || !l.ColorBG(c).IsDefault() || !l.ColorFG(c).IsDefault() {
				return false
			}
		}
	}
	for c := 0; c < l.width; c++ {
		if l.image[c] != ' ' {
			return false
		}
	}
	return true
}

// clone returns a deep copy, used when moving a line's payload into history
// (§9: "preserve by moving line payloads rather than cloning" — Grid keeps
// the move-not-copy discipline at the ring-slot level; addLineToHist
// clones only when the target slot is empty or holds a different width).
func (l *Line) clone() *Line {
	out := &Line{width: l.width, wrapped: l.wrapped}
	out.image = append([]rune(nil), l.image...)
	if l.owned {
		out.owned = true
		out.attrs = &lineAttrs{
			attr:    append([]Attr(nil), l.attrs.attr...),
			font:    append([]byte(nil), l.attrs.font...),
			fontx:   append([]byte(nil), l.attrs.fontx...),
			colorbg: append([]Color(nil), l.attrs.colorbg...),
			colorfg: append([]Color(nil), l.attrs.colorfg...),
		}
	} else {
		out.attrs = sharedNullAttrs
	}
	return out
}

// reset blanks l in place, releasing owned storage back to the shared null (§5 resource lifetimes).
func (l *Line) reset() {
	for i := range l.image {
		l.image[i] = ' '
	}
	l.attrs = sharedNullAttrs
	l.owned = false
	l.wrapped = false
}
