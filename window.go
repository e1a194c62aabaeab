package vtengine

// savedCursorState is the snapshot taken by DECSC (ESC 7) / CSI s and
// restored by DECRC (ESC 8) / CSI u, and also stashed across an alternate
// screen switch under mode 1049 (§4.4, §6).
type savedCursorState struct {
	cx, cy   int
	attr     Attr
	fg, bg   Color
	origin   bool
	charsets [4]byte
	gl, gr   int
}

// Window (the original engine's WinDesc) aggregates every piece of state a
// single terminal needs: the grid(s), cursor and rendition, charset and
// mode state, the parser and decoder pipeline stages, and the hooks used to
// talk to the layer above (§3, §4).
type Window struct {
	cfg *Config

	grid    *Grid
	altGrid *Grid
	usingAlt bool

	parser  *Parser
	decoder *CharsetDecoder
	logger  *Logger
	bridge  *LayerBridge

	cx, cy int

	attr   Attr
	fg, bg Color

	charsets [4]byte
	gl, gr   int
	ss       int // 0 none, 2 or 3 pending single shift

	originMode     bool
	autoWrap       bool
	insertMode     bool
	newlineMode    bool
	reverseVideo   bool
	cursorVisible  bool
	cursorStyle    int
	keypadApp      bool
	cursorKeysApp  bool
	mouseMode      int
	bracketedPaste bool

	top, bot int

	tabStops []bool

	saved    savedCursorState
	altSaved savedCursorState

	title     string
	aka       string
	akaPrefix string
	autoAka   int // 0 disabled, else 1-based row to scan on the next linefeed

	printing bool
	printBuf []byte
	printSink PrinterSink
}

// WindowOption configures a Window at construction time.
type WindowOption func(*Window)

// WithBridge sets the LayerBridge used to notify the layer above of state
// changes. If omitted, a no-op bridge is used.
func WithBridge(b *LayerBridge) WindowOption {
	return func(w *Window) { w.bridge = b }
}

// WithLogger attaches a session/diagnostic logger.
func WithLogger(lg *Logger) WindowOption {
	return func(w *Window) { w.logger = lg }
}

// WithEncoding sets the initial input encoding (default EncodingUTF8).
func WithEncoding(enc Encoding) WindowOption {
	return func(w *Window) { w.decoder.SetEncoding(enc) }
}

// WithPrinterSink attaches the external sink media-copy output is sent to.
func WithPrinterSink(sink PrinterSink) WindowOption {
	return func(w *Window) { w.printSink = sink }
}

// New creates a Window of the given size (§3, §5).
func New(width, height int, cfg *Config, opts ...WindowOption) *Window {
	if cfg == nil {
		cfg = NewConfig()
	}
	w := &Window{
		cfg:           cfg,
		bridge:        NewNoopBridge(),
		autoWrap:      true,
		cursorVisible: true,
		bot:           height - 1,
		printSink:     NoopPrinterSink{},
	}
	w.decoder = NewCharsetDecoder(EncodingUTF8)
	w.parser = NewParser(w.warn)
	w.parser.Accept8BitC1 = cfg.Accept8BitC1
	w.grid = NewGrid(width, height, cfg.HistCap, cfg.CompactHist, w.warn)
	w.resetTabStops()
	w.charsets = [4]byte{'B', 'B', 'B', 'B'}
	for _, opt := range opts {
		opt(w)
	}
	w.bridge.fill()
	return w
}

func (w *Window) warn(msg string) {
	if w.logger != nil {
		w.logger.Warn(msg)
	}
}

// resetTabStops lays out default tab stops every cfg.TabWidth columns,
// re-derived whenever the grid width changes (§6 resetAnsiState, resize).
func (w *Window) resetTabStops() {
	width := w.grid.Width()
	w.tabStops = make([]bool, width)
	step := w.cfg.TabWidth
	if step <= 0 {
		step = 8
	}
	for x := step; x < width; x += step {
		w.tabStops[x] = true
	}
}

// WriteString is the single entrypoint for feeding program output through
// the decode/parse/dispatch pipeline (§4 data flow, §9 single mutator /
// FIFO ordering). It is not safe for concurrent use from multiple
// goroutines; callers serialize writes themselves, same as the original
// engine's single-threaded event loop.
func (w *Window) WriteString(buf []byte) {
	if w.logger != nil {
		w.logger.Write(buf)
	}
	for _, b := range buf {
		r, status := w.decoder.Feed(b)
		switch status {
		case DecodePending:
			continue
		case DecodeInvalid:
			w.parser.Feed(r, w)
			// the triggering byte restarts a fresh decode (§4.2, §7).
			if r2, status2 := w.decoder.Feed(b); status2 == DecodeRune {
				w.parser.Feed(r2, w)
			}
		case DecodeRune:
			w.parser.Feed(r, w)
		}
	}
}

// ResetAnsiState reinitializes cursor, rendition, modes, scroll region, and
// tab stops to power-on defaults without touching screen content (§6).
func (w *Window) ResetAnsiState() {
	w.cx, w.cy = 0, 0
	w.attr = 0
	w.fg, w.bg = DefaultColor, DefaultColor
	w.originMode = false
	w.autoWrap = true
	w.insertMode = false
	w.newlineMode = false
	w.reverseVideo = false
	w.cursorVisible = true
	w.cursorStyle = 0
	w.keypadApp = false
	w.cursorKeysApp = false
	w.mouseMode = 0
	w.bracketedPaste = false
	w.top, w.bot = 0, w.grid.Height()-1
	w.resetTabStops()
	w.ResetCharsets()
	w.parser.Reset()
	w.bridge.RefreshAll()
}

// ResetCharsets restores G0-G3 to ASCII and GL/GR to their defaults (§6).
func (w *Window) ResetCharsets() {
	w.charsets = [4]byte{'B', 'B', 'B', 'B'}
	w.gl, w.gr = 0, 1
	w.ss = 0
}

// SetCharsets designates chars[i] into slot G(i) for each non-zero byte,
// leaving slots the caller passes 0 for untouched (§6 setCharsets, mirrors
// the original's per-slot ASCII/special-graphics/national designations).
func (w *Window) SetCharsets(chars [4]byte) {
	for i, c := range chars {
		if c != 0 {
			w.charsets[i] = c
		}
	}
}

// ChangeAKA sets the window's auto-title name directly, as opposed to the
// inferred auto-AKA scan in aka.go (§6 changeAKA).
func (w *Window) ChangeAKA(name string) {
	w.aka = name
	w.bridge.AKAChanged(name)
}

// CurrentGrid returns the grid currently on screen (primary or alternate).
func (w *Window) CurrentGrid() *Grid { return w.grid }

// Cursor returns the current logical cursor position.
func (w *Window) Cursor() (x, y int) { return w.cx, w.cy }

// Resize changes both grids' dimensions and re-derives tab stops and the
// scroll region, clamping the cursor into bounds (§4.1 Resize, §6).
func (w *Window) Resize(width, height int) {
	w.grid.Resize(width, height)
	if w.altGrid != nil {
		w.altGrid.Resize(width, height)
	}
	if w.cx > width {
		w.cx = width
	}
	if w.cy >= height {
		w.cy = height - 1
	}
	w.bot = height - 1
	if w.top >= height {
		w.top = 0
	}
	w.resetTabStops()
	w.bridge.RefreshAll()
}
