package vtengine

// LayerBridge is the set of hooks a Window calls out through whenever
// something happens that the layer above (pty lifecycle, display renderer,
// multiplexer policy) needs to know about. Each field is an independent
// function value rather than a fat interface, following the teacher's
// middleware-hook pattern: a caller that only cares about title changes
// wires TitleChanged and leaves the rest nil-safe via NewNoopBridge.
type LayerBridge struct {
	// Refresh reports that rows [y0,y1) changed and should be redrawn.
	Refresh func(y0, y1 int)
	// RefreshAll reports that the whole visible grid should be redrawn,
	// e.g. after a resize or alt-screen switch.
	RefreshAll func()
	// CursorMoved reports the new cursor position.
	CursorMoved func(x, y int)
	// CursorVisibility reports DECTCEM changes.
	CursorVisibility func(visible bool)
	// CursorStyle reports DECSCUSR changes.
	CursorStyle func(style int)
	// TitleChanged reports an OSC 0/2 window-title update.
	TitleChanged func(title string)
	// AKAChanged reports a hardstatus/AKA name update (§6 changeAKA).
	AKAChanged func(aka string)
	// Bell reports a BEL; visual reports whether it should be a visual
	// flash rather than an audible beep (§5 Config.VisualBell).
	Bell func(visual bool)
	// KeypadMode reports DECKPAM/DECKPNM changes.
	KeypadMode func(application bool)
	// CursorKeysMode reports DECCKM changes.
	CursorKeysMode func(application bool)
	// MouseMode reports a mouse-tracking mode change (0 disables tracking).
	MouseMode func(mode int)
	// BracketedPaste reports mode 2004 changes.
	BracketedPaste func(enabled bool)
	// AltScreen reports entry/exit of the alternate screen.
	AltScreen func(active bool)
	// Response delivers bytes that must be written back upstream to the
	// program attached to the pty (DA/DSR/CPR replies and similar).
	Response func(data []byte)
	// ClipboardWrite delivers an OSC 52 clipboard-set request.
	ClipboardWrite func(selection string, data []byte)
	// Print delivers a media-copy buffer once CSI 4i closes it.
	Print func(data []byte)
}

// NewNoopBridge returns a LayerBridge whose every hook is a safe no-op
// (or, for Response, discards the reply), so a caller can wire only the
// hooks it cares about without nil-checking the rest.
func NewNoopBridge() *LayerBridge {
	return &LayerBridge{
		Refresh:          func(int, int) {},
		RefreshAll:       func() {},
		CursorMoved:      func(int, int) {},
		CursorVisibility: func(bool) {},
		CursorStyle:      func(int) {},
		TitleChanged:     func(string) {},
		AKAChanged:       func(string) {},
		Bell:             func(bool) {},
		KeypadMode:       func(bool) {},
		CursorKeysMode:   func(bool) {},
		MouseMode:        func(int) {},
		BracketedPaste:   func(bool) {},
		AltScreen:        func(bool) {},
		Response:         func([]byte) {},
		ClipboardWrite:   func(string, []byte) {},
		Print:            func([]byte) {},
	}
}

// fill replaces any nil hook in b with the corresponding no-op, so a
// partially-constructed LayerBridge is always safe to call through.
func (b *LayerBridge) fill() {
	noop := NewNoopBridge()
	if b.Refresh == nil {
		b.Refresh = noop.Refresh
	}
	if b.RefreshAll == nil {
		b.RefreshAll = noop.RefreshAll
	}
	if b.CursorMoved == nil {
		b.CursorMoved = noop.CursorMoved
	}
	if b.CursorVisibility == nil {
		b.CursorVisibility = noop.CursorVisibility
	}
	if b.CursorStyle == nil {
		b.CursorStyle = noop.CursorStyle
	}
	if b.TitleChanged == nil {
		b.TitleChanged = noop.TitleChanged
	}
	if b.AKAChanged == nil {
		b.AKAChanged = noop.AKAChanged
	}
	if b.Bell == nil {
		b.Bell = noop.Bell
	}
	if b.KeypadMode == nil {
		b.KeypadMode = noop.KeypadMode
	}
	if b.CursorKeysMode == nil {
		b.CursorKeysMode = noop.CursorKeysMode
	}
	if b.MouseMode == nil {
		b.MouseMode = noop.MouseMode
	}
	if b.BracketedPaste == nil {
		b.BracketedPaste = noop.BracketedPaste
	}
	if b.AltScreen == nil {
		b.AltScreen = noop.AltScreen
	}
	if b.Response == nil {
		b.Response = noop.Response
	}
	if b.ClipboardWrite == nil {
		b.ClipboardWrite = noop.ClipboardWrite
	}
	if b.Print == nil {
		b.Print = noop.Print
	}
}
