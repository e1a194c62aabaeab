package vtengine

import "strings"

// SetAKAPrefix sets the stored prefix auto-AKA scanning looks past, e.g. a
// shell prompt string the caller knows precedes the command name.
func (w *Window) SetAKAPrefix(prefix string) {
	w.akaPrefix = prefix
}

// AutoAKA scans a line of freshly-written output for a candidate window
// title the way the original engine's automatic-title inference does: it
// looks past the stored prefix for the first whitespace-delimited token,
// and if that token's first byte is one of '!', '%', '^' (a job-control or
// su-style decoration character) it defers to the token after that one
// instead of using the decoration itself as the title (§6 changeAKA,
// supplemented from the original's auto-title scan).
func (w *Window) AutoAKA(line string) {
	rest := line
	if w.akaPrefix != "" {
		idx := strings.Index(line, w.akaPrefix)
		if idx < 0 {
			return
		}
		rest = line[idx+len(w.akaPrefix):]
	}
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return
	}
	tok := tokens[0]
	if len(tok) > 0 && isDeferralChar(tok[0]) && len(tokens) > 1 {
		tok = tokens[1]
	}
	tok = strings.TrimLeftFunc(tok, isDeferralRune)
	if tok == "" {
		return
	}
	w.ChangeAKA(tok)
}

// findAKA runs the automatic title scan armed by an empty AKA string: it
// reads the row named by autoAka (falling back to the cursor row) off the
// grid and feeds it through AutoAKA, then disarms or re-arms autoAka per
// the scanned token, mirroring ansi.c's FindAKA().
func (w *Window) findAKA() {
	row := w.cy
	if w.autoAka > 0 && w.autoAka <= w.grid.Height() {
		row = w.autoAka - 1
	}
	line := w.grid.Line(row)
	if line == nil {
		w.autoAka = 0
		return
	}
	var sb strings.Builder
	for x := 0; x < line.Width(); x++ {
		sb.WriteRune(line.Image(x))
	}
	text := strings.TrimRight(sb.String(), " ")
	if text == "" {
		w.autoAka = 0
		return
	}
	w.autoAka = 0
	rest := text
	if idx := strings.Index(text, w.akaPrefix); w.akaPrefix != "" && idx >= 0 {
		rest = text[idx+len(w.akaPrefix):]
	}
	if f := strings.Fields(rest); len(f) > 0 && isDeferralChar(f[0][0]) {
		// A decorated first token defers the scan to the following line.
		w.autoAka = row + 2
		return
	}
	w.AutoAKA(text)
}

func isDeferralChar(b byte) bool {
	return b == '!' || b == '%' || b == '^'
}

func isDeferralRune(r rune) bool {
	return r == '!' || r == '%' || r == '^'
}
