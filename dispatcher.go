package vtengine

// Print handles one decoded codepoint of program output, first applying the
// active GL charset translation (translateGL); combining marks attach to the existing base cell, wide characters occupy
// two columns with a sentinel right half, and the deferred-wrap column is
// resolved before the new cell lands (§3, §4.1 put()/wrap()).
func (w *Window) Print(r rune) {
	r = w.translateGL(r)

	if isCombiningRune(r) {
		w.attachCombining(r)
		return
	}

	width := w.grid.Width()
	if w.cx >= width {
		if w.autoWrap {
			w.cy = w.grid.Wrap(w.renderedCell(r), w.cy, w.top, w.bot, w.insertMode, w.bg)
			w.cx = 0
			if r != 0 && isWideRune(r) {
				w.cx = 2
			} else {
				w.cx = 1
			}
			w.bridge.Refresh(w.cy, w.cy+1)
			w.bridge.CursorMoved(w.cx, w.cy)
			return
		}
		w.cx = width - 1
	}

	c := w.renderedCell(r)
	if w.insertMode {
		w.grid.Insert(c, w.cx, w.cy)
	} else {
		w.grid.Put(c, w.cx, w.cy)
	}
	if isWideRune(r) {
		w.cx += 2
	} else {
		w.cx++
	}
	if w.cx > width {
		w.cx = width
	}
	w.bridge.Refresh(w.cy, w.cy+1)
	w.bridge.CursorMoved(w.cx, w.cy)
}

func (w *Window) renderedCell(r rune) Cell {
	return Cell{Image: r, Attr: w.attr, ColorFG: w.fg, ColorBG: w.bg}
}

// attachCombining folds a combining mark onto the base cell to its left via
// NFC composition, walking past a wide-pair right-half sentinel to find the
// real base (§3 invariant, §4.1). A mark that doesn't compose with its base
// (no precomposed codepoint exists) is dropped; Cell holds one rune per
// column and has no side channel for an uncomposed mark run.
func (w *Window) attachCombining(mark rune) {
	x := w.cx - 1
	if x < 0 {
		return
	}
	line := w.grid.Line(w.cy)
	if line == nil {
		return
	}
	cell := line.Cell(x)
	if cell.IsWideRightHalf() && x-1 >= 0 {
		x--
		cell = line.Cell(x)
	}
	composed := nfcCompose(cell.Image, mark)
	if composed == cell.Image {
		return
	}
	cell.Image = composed
	line.SetCell(x, cell, w.warn)
	w.bridge.Refresh(w.cy, w.cy+1)
}

// translateGL applies the active GL/single-shift charset designation to
// codepoints below 0x80 (§4.2 charset designation): DEC special graphics
// remaps the line-drawing range and the UK national charset ('A') remaps
// '#' to '£'; any other designation leaves the codepoint as is. Codepoints from multi-byte
// encodings pass through unchanged.
func (w *Window) translateGL(r rune) rune {
	if r >= 0x80 {
		return r
	}
	slot := w.gl
	if w.ss != 0 {
		slot = w.ss
		w.ss = 0
	}
	switch w.charsets[slot] {
	case '0':
		return decSpecialGraphics(r)
	case 'A':
		return ukNationalCharset(r)
	default:
		return r
	}
}

func decSpecialGraphics(r rune) rune {
	if r < 0x60 || r > 0x7E {
		return r
	}
	return decGraphicsTable[r-0x60]
}

var decGraphicsTable = [31]rune{
	'◆', '▒', '␉', '␌', '␍', '␊', '°',
	'±', '␤', '␋', '┘', '┐', '┌', '└',
	'┼', '⎺', '⎻', '─', '⎼', '⎽', '├',
	'┤', '┴', '┬', '│', '≤', '≥', 'π',
	'≠', '£', '·',
}

func ukNationalCharset(r rune) rune {
	if r == '#' {
		return '£'
	}
	return r
}

// Execute handles C0 control functions (§4.1).
func (w *Window) Execute(b byte) {
	switch b {
	case 0x07:
		w.bridge.Bell(w.cfg.VisualBell)
	case 0x08:
		if w.cx > 0 {
			w.cx--
		}
		w.bridge.CursorMoved(w.cx, w.cy)
	case 0x09:
		w.tabForward()
	case 0x0A, 0x0B, 0x0C:
		w.linefeed()
		if w.newlineMode {
			w.cx = 0
		}
	case 0x0D:
		w.cx = 0
		w.bridge.CursorMoved(w.cx, w.cy)
	case 0x0E:
		w.gl = 1
	case 0x0F:
		w.gl = 0
	case 0x18, 0x1A:
		w.parser.Reset()
	default:
	}
}

func (w *Window) tabForward() {
	width := w.grid.Width()
	x := w.cx + 1
	for x < width && !w.tabStops[x] {
		x++
	}
	if x >= width {
		x = width - 1
	}
	w.cx = x
	w.bridge.CursorMoved(w.cx, w.cy)
}

// linefeed moves the cursor down one row, scrolling the region if already
// at the bottom margin (§4.1). When auto-AKA scanning is armed, the row it
// names is scanned for a candidate title before it scrolls off (§4.6,
// ansi.c Special('\n') calling FindAKA() ahead of LineFeed()).
func (w *Window) linefeed() {
	if w.autoAka > 0 {
		w.findAKA()
	}
	if w.cy == w.bot {
		if w.autoAka > 1 {
			w.autoAka--
		}
		w.grid.ScrollV(1, w.top, w.bot, w.top, w.bg)
		w.bridge.RefreshAll()
	} else if w.cy < w.grid.Height()-1 {
		w.cy++
	}
	w.bridge.CursorMoved(w.cx, w.cy)
}

func (w *Window) reverseLinefeed() {
	if w.cy == w.top {
		w.grid.ScrollV(-1, w.top, w.bot, w.top, w.bg)
		w.bridge.RefreshAll()
	} else if w.cy > 0 {
		w.cy--
	}
	w.bridge.CursorMoved(w.cx, w.cy)
}

// EscDispatch handles two-character (and charset-designation) escape
// sequences (§4.1, §4.2).
func (w *Window) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(', ')', '*', '+':
			slot := intermediates[0] - '('
			w.charsets[slot] = final
			return
		case '#':
			if final == '8' {
				w.decaln()
			}
			return
		}
	}
	switch final {
	case 'D':
		w.linefeed()
	case 'M':
		w.reverseLinefeed()
	case 'E':
		w.linefeed()
		w.cx = 0
		w.bridge.CursorMoved(w.cx, w.cy)
	case 'H':
		if w.cx < len(w.tabStops) {
			w.tabStops[w.cx] = true
		}
	case '7':
		w.saveCursor(&w.saved)
	case '8':
		w.restoreCursor(&w.saved)
	case 'c':
		w.fullReset()
	case '=':
		w.keypadApp = true
		w.bridge.KeypadMode(true)
	case '>':
		w.keypadApp = false
		w.bridge.KeypadMode(false)
	case 'N':
		w.ss = 2
	case 'O':
		w.ss = 3
	default:
	}
}

// decaln fills the whole screen with 'E' at default rendition (DECALN,
// used by terminals' self-test screen).
func (w *Window) decaln() {
	for y := 0; y < w.grid.Height(); y++ {
		line := w.grid.Line(y)
		for x := 0; x < w.grid.Width(); x++ {
			line.SetCell(x, Cell{Image: 'E'}, w.warn)
		}
	}
	w.bridge.RefreshAll()
}

func (w *Window) saveCursor(dst *savedCursorState) {
	dst.cx, dst.cy = w.cx, w.cy
	dst.attr = w.attr
	dst.fg, dst.bg = w.fg, w.bg
	dst.origin = w.originMode
	dst.charsets = w.charsets
	dst.gl, dst.gr = w.gl, w.gr
}

func (w *Window) restoreCursor(src *savedCursorState) {
	w.cx, w.cy = src.cx, src.cy
	w.attr = src.attr
	w.fg, w.bg = src.fg, src.bg
	w.originMode = src.origin
	w.charsets = src.charsets
	w.gl, w.gr = src.gl, src.gr
	w.bridge.CursorMoved(w.cx, w.cy)
}

func (w *Window) fullReset() {
	w.ResetAnsiState()
	w.grid.ClearArea(0, 0, w.grid.Width()-1, w.grid.Height()-1, DefaultColor)
	w.grid.ClearScrollback()
	w.bridge.RefreshAll()
}

// CSIDispatch handles CSI-introduced control sequences (§4.1).
func (w *Window) CSIDispatch(params []int, private byte, intermediates []byte, final byte) {
	p := func(i, def int) int {
		if i >= len(params) || params[i] == 0 {
			return def
		}
		return params[i]
	}

	if private == '?' {
		w.csiPrivateMode(params, final)
		return
	}
	if private == '>' && final == 'c' {
		w.secondaryDeviceAttributes()
		return
	}
	if len(intermediates) == 1 && intermediates[0] == ' ' && final == 'q' {
		w.cursorStyle = p(0, 0)
		w.bridge.CursorStyle(w.cursorStyle)
		return
	}

	switch final {
	case 'A':
		w.moveCursor(0, -p(0, 1))
	case 'B':
		w.moveCursor(0, p(0, 1))
	case 'C':
		w.moveCursor(p(0, 1), 0)
	case 'D':
		w.moveCursor(-p(0, 1), 0)
	case 'E':
		w.moveCursor(0, p(0, 1))
		w.cx = 0
	case 'F':
		w.moveCursor(0, -p(0, 1))
		w.cx = 0
	case 'G', '`':
		w.cx = clamp(p(0, 1)-1, 0, w.grid.Width()-1)
		w.bridge.CursorMoved(w.cx, w.cy)
	case 'd':
		w.cy = clamp(p(0, 1)-1, 0, w.grid.Height()-1)
		w.bridge.CursorMoved(w.cx, w.cy)
	case 'H', 'f':
		w.cursorPosition(p(0, 1), p(1, 1))
	case 'J':
		w.eraseDisplay(p(0, 0))
	case 'K':
		w.eraseLine(p(0, 0))
	case 'L':
		w.insertLines(p(0, 1))
	case 'M':
		w.deleteLines(p(0, 1))
	case 'P':
		w.deleteChars(p(0, 1))
	case '@':
		w.insertChars(p(0, 1))
	case 'X':
		w.eraseChars(p(0, 1))
	case 'S':
		w.grid.ScrollV(p(0, 1), w.top, w.bot, w.top, w.bg)
		w.bridge.RefreshAll()
	case 'T':
		w.grid.ScrollV(-p(0, 1), w.top, w.bot, w.top, w.bg)
		w.bridge.RefreshAll()
	case 'r':
		w.setScrollRegion(p(0, 1), p(1, w.grid.Height()))
	case 'm':
		w.selectGraphicRendition(params)
	case 'n':
		w.deviceStatusReport(p(0, 0))
	case 'c':
		if private == 0 && p(0, 0) == 0 {
			w.primaryDeviceAttributes()
		}
	case 's':
		w.saveCursor(&w.saved)
	case 'u':
		w.restoreCursor(&w.saved)
	case 'g':
		w.clearTabStops(p(0, 0))
	default:
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (w *Window) moveCursor(dx, dy int) {
	w.cx = clamp(w.cx+dx, 0, w.grid.Width()-1)
	w.cy = clamp(w.cy+dy, 0, w.grid.Height()-1)
	w.bridge.CursorMoved(w.cx, w.cy)
}

// cursorPosition implements CUP/HVP, honoring origin mode's scroll-region
// relative addressing (§4.1).
func (w *Window) cursorPosition(row, col int) {
	top, bot := 0, w.grid.Height()-1
	if w.originMode {
		top, bot = w.top, w.bot
	}
	w.cy = clamp(top+row-1, top, bot)
	w.cx = clamp(col-1, 0, w.grid.Width()-1)
	w.bridge.CursorMoved(w.cx, w.cy)
}

func (w *Window) eraseDisplay(mode int) {
	width, height := w.grid.Width(), w.grid.Height()
	switch mode {
	case 0:
		w.grid.ClearArea(w.cx, w.cy, width-1, w.cy, w.bg)
		w.grid.ClearArea(0, w.cy+1, width-1, height-1, w.bg)
	case 1:
		w.grid.ClearArea(0, 0, width-1, w.cy-1, w.bg)
		w.grid.ClearArea(0, w.cy, w.cx, w.cy, w.bg)
	case 2, 3:
		w.grid.ClearArea(0, 0, width-1, height-1, w.bg)
		if mode == 3 {
			w.grid.ClearScrollback()
		}
	}
	w.bridge.RefreshAll()
}

func (w *Window) eraseLine(mode int) {
	width := w.grid.Width()
	switch mode {
	case 0:
		w.grid.ClearArea(w.cx, w.cy, width-1, w.cy, w.bg)
	case 1:
		w.grid.ClearArea(0, w.cy, w.cx, w.cy, w.bg)
	case 2:
		w.grid.ClearArea(0, w.cy, width-1, w.cy, w.bg)
	}
	w.bridge.Refresh(w.cy, w.cy+1)
}

func (w *Window) insertLines(n int) {
	if w.cy < w.top || w.cy > w.bot {
		return
	}
	w.grid.ScrollV(-n, w.cy, w.bot, w.top, w.bg)
	w.bridge.RefreshAll()
}

func (w *Window) deleteLines(n int) {
	if w.cy < w.top || w.cy > w.bot {
		return
	}
	w.grid.ScrollV(n, w.cy, w.bot, w.top, w.bg)
	w.bridge.RefreshAll()
}

func (w *Window) deleteChars(n int) {
	w.grid.ScrollH(n, w.cy, w.cx, w.grid.Width()-1, w.bg)
	w.bridge.Refresh(w.cy, w.cy+1)
}

func (w *Window) insertChars(n int) {
	w.grid.ScrollH(-n, w.cy, w.cx, w.grid.Width()-1, w.bg)
	w.bridge.Refresh(w.cy, w.cy+1)
}

func (w *Window) eraseChars(n int) {
	end := w.cx + n
	if end > w.grid.Width() {
		end = w.grid.Width()
	}
	w.grid.ClearArea(w.cx, w.cy, end-1, w.cy, w.bg)
	w.bridge.Refresh(w.cy, w.cy+1)
}

func (w *Window) setScrollRegion(top, bot int) {
	height := w.grid.Height()
	top = clamp(top-1, 0, height-1)
	bot = clamp(bot-1, 0, height-1)
	if top >= bot {
		top, bot = 0, height-1
	}
	w.top, w.bot = top, bot
	w.cx, w.cy = 0, 0
	if w.originMode {
		w.cy = w.top
	}
	w.bridge.CursorMoved(w.cx, w.cy)
}

func (w *Window) clearTabStops(mode int) {
	switch mode {
	case 0:
		if w.cx < len(w.tabStops) {
			w.tabStops[w.cx] = false
		}
	case 3:
		for i := range w.tabStops {
			w.tabStops[i] = false
		}
	}
}

// csiPrivateMode handles "CSI ? Pm h/l" DEC private mode set/reset (§4.1, §6).
func (w *Window) csiPrivateMode(params []int, final byte) {
	if final != 'h' && final != 'l' {
		return
	}
	on := final == 'h'
	for _, mode := range params {
		switch mode {
		case 1:
			w.cursorKeysApp = on
			w.bridge.CursorKeysMode(on)
		case 5:
			w.reverseVideo = on
			w.bridge.RefreshAll()
		case 6:
			w.originMode = on
			w.cursorPosition(1, 1)
		case 7:
			w.autoWrap = on
		case 9:
			if on {
				w.mouseMode = 9
			} else {
				w.mouseMode = 0
			}
			w.bridge.MouseMode(w.mouseMode)
		case 25:
			w.cursorVisible = on
			w.bridge.CursorVisibility(on)
		case 47, 1047:
			w.setAltScreen(on, mode == 1047)
		case 1000, 1001, 1002, 1003:
			if on {
				w.mouseMode = mode
			} else {
				w.mouseMode = 0
			}
			w.bridge.MouseMode(w.mouseMode)
		case 1048:
			if on {
				w.saveCursor(&w.saved)
			} else {
				w.restoreCursor(&w.saved)
			}
		case 1049:
			if on {
				w.saveCursor(&w.altSaved)
				w.setAltScreen(true, true)
			} else {
				w.setAltScreen(false, true)
				w.restoreCursor(&w.altSaved)
			}
		case 2004:
			w.bracketedPaste = on
			w.bridge.BracketedPaste(on)
		}
	}
}

// setAltScreen switches between the primary and alternate grid (§4.1, §6
// modes 47/1047/1049). clearOnSwitch matches 1047/1049's clear-on-enter
// behavior; plain 47 leaves alternate-screen content as the program left it.
func (w *Window) setAltScreen(enable, clearOnSwitch bool) {
	if !w.cfg.UseAltScreen || enable == w.usingAlt {
		return
	}
	if enable {
		if w.altGrid == nil {
			w.altGrid = NewGrid(w.grid.Width(), w.grid.Height(), 0, false, w.warn)
		}
		w.grid, w.altGrid = w.altGrid, w.grid
		w.usingAlt = true
		if clearOnSwitch {
			w.grid.ClearArea(0, 0, w.grid.Width()-1, w.grid.Height()-1, DefaultColor)
		}
	} else {
		w.grid, w.altGrid = w.altGrid, w.grid
		w.usingAlt = false
	}
	w.bridge.AltScreen(w.usingAlt)
	w.bridge.RefreshAll()
}

// selectGraphicRendition applies SGR codes in order, after the original's
// rendlist attribute-bit table: 0 resets attributes and colors, 22 clears
// both bold and dim, each other attribute code sets or clears one Attr bit,
// and the color codes set the fg or bg channel.
func (w *Window) selectGraphicRendition(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		code := params[i]
		switch {
		case code == 0:
			w.attr = 0
			w.fg, w.bg = DefaultColor, DefaultColor
		case code == 1:
			w.attr |= AttrBold
		case code == 2:
			w.attr |= AttrDim
		case code == 3:
			w.attr |= AttrStandout
		case code == 4:
			w.attr |= AttrUnderline
		case code == 5:
			w.attr |= AttrBlink
		case code == 7:
			w.attr |= AttrReverse
		case code == 22:
			w.attr &^= AttrBold | AttrDim
		case code == 23:
			w.attr &^= AttrStandout
		case code == 24:
			w.attr &^= AttrUnderline
		case code == 25:
			w.attr &^= AttrBlink
		case code == 27:
			w.attr &^= AttrReverse
		case code >= 30 && code <= 37:
			w.fg = NewIndexedColor(uint8(code - 30))
		case code == 38:
			i = w.parseExtendedColor(params, i, true)
		case code == 39:
			w.fg = DefaultColor
		case code >= 40 && code <= 47:
			w.bg = NewIndexedColor(uint8(code - 40))
		case code == 48:
			i = w.parseExtendedColor(params, i, false)
		case code == 49:
			w.bg = DefaultColor
		case code >= 90 && code <= 97:
			w.fg = NewIndexedColor(uint8(code - 90 + 8))
		case code >= 100 && code <= 107:
			w.bg = NewIndexedColor(uint8(code - 100 + 8))
		}
	}
}

// parseExtendedColor consumes the "5;n" (indexed) or "2;r;g;b" (truecolor)
// sub-parameters following SGR 38/48, returning the new scan index.
func (w *Window) parseExtendedColor(params []int, i int, fg bool) int {
	if i+1 >= len(params) {
		return i
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			col := NewIndexedColor(uint8(params[i+2]))
			if fg {
				w.fg = col
			} else {
				w.bg = col
			}
			return i + 2
		}
	case 2:
		if i+4 < len(params) {
			col := NewTrueColor(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
			if fg {
				w.fg = col
			} else {
				w.bg = col
			}
			return i + 4
		}
	}
	return i
}

// StringDispatch handles OSC/DCS/APC/PM/AKA string control functions (§4.3, §6).
func (w *Window) StringDispatch(kind StringKind, data []byte) {
	switch kind {
	case StringOSC:
		w.handleOSC(data)
	case StringAKA:
		name := string(data)
		w.ChangeAKA(name)
		if name == "" {
			// An empty AKA string requests auto-title inference: scan the
			// row currently under the cursor for a candidate name the next
			// time a linefeed retires it (§6, ansi.c AKA case).
			w.autoAka = w.cy + 1
		}
	default:
	}
}

func (w *Window) handleOSC(data []byte) {
	sep := -1
	for i, b := range data {
		if b == ';' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return
	}
	code := string(data[:sep])
	payload := data[sep+1:]
	switch code {
	case "0", "2":
		w.title = string(payload)
		w.bridge.TitleChanged(w.title)
	case "52":
		psep := -1
		for i, b := range payload {
			if b == ';' {
				psep = i
				break
			}
		}
		if psep >= 0 {
			w.bridge.ClipboardWrite(string(payload[:psep]), payload[psep+1:])
		}
	}
}

// PrinterStart begins media-copy capture (§4.4 media copy, CSI 5i).
func (w *Window) PrinterStart() {
	w.printing = true
	w.printBuf = w.printBuf[:0]
}

// PrinterByte appends one byte of captured output while printing is active.
func (w *Window) PrinterByte(b byte) {
	if !w.printing {
		return
	}
	if len(w.printBuf) < maxStringLen*4 {
		w.printBuf = append(w.printBuf, b)
	}
}

// PrinterEnd closes media-copy capture and flushes the buffer to the
// configured sink (CSI 4i).
func (w *Window) PrinterEnd() {
	if !w.printing {
		return
	}
	w.printing = false
	if w.printSink != nil {
		if err := w.printSink.Write(w.printBuf); err != nil {
			w.warn("printer sink write failed, disabling output: " + err.Error())
			w.printSink = nil
		}
	}
	w.bridge.Print(w.printBuf)
	w.printBuf = nil
}
