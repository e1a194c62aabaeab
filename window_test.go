package vtengine

import "testing"

func newTestWindow(w, h int) *Window {
	return New(w, h, NewConfig(WithHistCap(100)))
}

func lineText(win *Window, y int) string {
	line := win.CurrentGrid().Line(y)
	runes := make([]rune, line.Width())
	for x := 0; x < line.Width(); x++ {
		runes[x] = line.Image(x)
	}
	return string(runes)
}

func TestWindowPlainTextAdvancesCursor(t *testing.T) {
	win := newTestWindow(10, 3)
	win.WriteString([]byte("hi"))
	x, y := win.Cursor()
	if x != 2 || y != 0 {
		t.Fatalf("cursor = %d,%d, want 2,0", x, y)
	}
	if got := lineText(win, 0)[:2]; got != "hi" {
		t.Fatalf("line 0 = %q, want prefix hi", got)
	}
}

func TestWindowCRLF(t *testing.T) {
	win := newTestWindow(10, 3)
	win.WriteString([]byte("ab\r\ncd"))
	x, y := win.Cursor()
	if x != 2 || y != 1 {
		t.Fatalf("cursor = %d,%d, want 2,1", x, y)
	}
	if lineText(win, 0)[:2] != "ab" || lineText(win, 1)[:2] != "cd" {
		t.Fatalf("line0=%q line1=%q", lineText(win, 0), lineText(win, 1))
	}
}

func TestWindowAutowrap(t *testing.T) {
	win := newTestWindow(3, 2)
	win.WriteString([]byte("abcd"))
	x, y := win.Cursor()
	if y != 1 {
		t.Fatalf("expected wrap to row 1, got y=%d", y)
	}
	if lineText(win, 0) != "abc" {
		t.Fatalf("row 0 = %q, want abc", lineText(win, 0))
	}
	if lineText(win, 1)[:1] != "d" {
		t.Fatalf("row 1 = %q, want prefix d", lineText(win, 1))
	}
	_ = x
}

func TestWindowCursorPositioning(t *testing.T) {
	win := newTestWindow(10, 10)
	win.WriteString([]byte("\x1b[5;3H"))
	x, y := win.Cursor()
	if x != 2 || y != 4 {
		t.Fatalf("cursor after CUP = %d,%d, want 2,4", x, y)
	}
}

func TestWindowSGRColor(t *testing.T) {
	win := newTestWindow(10, 3)
	win.WriteString([]byte("\x1b[31mX"))
	if win.fg.Tag() != ColorIndexed || win.fg.Index() != 1 {
		t.Fatalf("fg after SGR 31 = %+v, want indexed 1", win.fg)
	}
	line := win.CurrentGrid().Line(0)
	if line.ColorFG(0) != NewIndexedColor(1) {
		t.Fatalf("cell fg = %v, want indexed 1", line.ColorFG(0))
	}
}

func TestWindowSGRReset(t *testing.T) {
	win := newTestWindow(10, 3)
	win.WriteString([]byte("\x1b[1;31m\x1b[0mY"))
	if win.attr != 0 || !win.fg.IsDefault() {
		t.Fatalf("SGR 0 should reset rendition, got attr=%v fg=%v", win.attr, win.fg)
	}
}

func TestWindowEraseDisplay(t *testing.T) {
	win := newTestWindow(5, 2)
	win.WriteString([]byte("abcde"))
	win.WriteString([]byte("\x1b[H\x1b[2J"))
	if !win.CurrentGrid().Line(0).IsBlank() {
		t.Fatal("ED 2 should clear the whole screen")
	}
}

func TestWindowScrollRegionConstrainsLinefeed(t *testing.T) {
	win := newTestWindow(5, 5)
	win.WriteString([]byte("\x1b[2;4r")) // region rows 2-4 (1-based)
	win.cx, win.cy = 0, win.bot
	win.WriteString([]byte("\n"))
	if win.cy != win.bot {
		t.Fatalf("cursor should stay at bottom margin after scroll, got %d", win.cy)
	}
}

func TestWindowAltScreenSwitch(t *testing.T) {
	win := newTestWindow(5, 3)
	win.WriteString([]byte("main"))
	win.WriteString([]byte("\x1b[?1049h"))
	if !win.usingAlt {
		t.Fatal("mode 1049 should switch to the alternate screen")
	}
	win.WriteString([]byte("alt"))
	win.WriteString([]byte("\x1b[?1049l"))
	if win.usingAlt {
		t.Fatal("mode 1049 reset should switch back to the primary screen")
	}
	if lineText(win, 0)[:4] != "main" {
		t.Fatalf("primary screen content should survive alt-screen round trip, got %q", lineText(win, 0))
	}
}

func TestWindowBracketedPasteMode(t *testing.T) {
	win := newTestWindow(5, 3)
	var gotOn bool
	win.bridge.BracketedPaste = func(on bool) { gotOn = on }
	win.WriteString([]byte("\x1b[?2004h"))
	if !win.bracketedPaste || !gotOn {
		t.Fatal("mode 2004 should enable bracketed paste and notify the bridge")
	}
}

func TestWindowOSCTitle(t *testing.T) {
	win := newTestWindow(10, 3)
	var got string
	win.bridge.TitleChanged = func(title string) { got = title }
	win.WriteString([]byte("\x1b]0;hello\x07"))
	if got != "hello" || win.title != "hello" {
		t.Fatalf("title = %q, want hello", got)
	}
}

func TestWindowDSRCursorPositionReport(t *testing.T) {
	win := newTestWindow(10, 10)
	var reply []byte
	win.bridge.Response = func(data []byte) { reply = append(reply, data...) }
	win.WriteString([]byte("\x1b[3;5H\x1b[6n"))
	want := "\x1b[3;5R"
	if string(reply) != want {
		t.Fatalf("CPR reply = %q, want %q", string(reply), want)
	}
}

func TestWindowResetAnsiStateClearsModes(t *testing.T) {
	win := newTestWindow(10, 5)
	win.WriteString([]byte("\x1b[1m\x1b[?7l"))
	win.ResetAnsiState()
	if win.attr != 0 || !win.autoWrap {
		t.Fatal("ResetAnsiState should restore default rendition and autowrap")
	}
}

func TestWindowResizePreservesTopLeft(t *testing.T) {
	win := newTestWindow(5, 3)
	win.WriteString([]byte("hi"))
	win.Resize(8, 4)
	if win.CurrentGrid().Width() != 8 || win.CurrentGrid().Height() != 4 {
		t.Fatal("Resize should change grid dimensions")
	}
	if lineText(win, 0)[:2] != "hi" {
		t.Fatal("Resize should preserve existing content")
	}
}
