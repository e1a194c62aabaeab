// Package vtengine implements the state machine behind a VT100/ANSI/xterm
// terminal: it consumes the byte stream a pty-attached program writes,
// maintains the screen grid, cursor, rendition, charset, and scroll-region
// state those bytes describe, and notifies a caller-supplied LayerBridge of
// the results. It does not open a pty, draw pixels, or parse shell
// commands; those concerns live one layer up.
//
// A Window is the entry point:
//
//	win := vtengine.New(80, 24, vtengine.NewConfig())
//	win.WriteString(output)
//
// Everything the program attached to the pty needs to see back (cursor
// position reports, device attributes, clipboard writes) is delivered
// through the Window's LayerBridge rather than returned from WriteString,
// since a single write can produce zero, one, or many such replies.
package vtengine
