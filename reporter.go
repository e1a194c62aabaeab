package vtengine

import "strconv"

// deviceStatusReport answers CSI n (DSR): mode 5 is the generic "ok" status,
// mode 6 is the cursor position report (CPR), relative to the scroll region
// when origin mode is active (§4.1, §6 reports).
func (w *Window) deviceStatusReport(mode int) {
	switch mode {
	case 5:
		w.respond("\x1b[0n")
	case 6:
		row, col := w.cy+1, w.cx+1
		if w.originMode {
			row -= w.top
		}
		w.respond("\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R")
	}
}

// primaryDeviceAttributes answers CSI c (DA): a VT100-with-advanced-video
// identification, matching what the original engine reports.
func (w *Window) primaryDeviceAttributes() {
	w.respond("\x1b[?1;2c")
}

// secondaryDeviceAttributes answers CSI > c (DA2) with a terminal-type and
// firmware-version tuple built from Config.NVersion.
func (w *Window) secondaryDeviceAttributes() {
	w.respond("\x1b[>83;" + w.cfg.NVersion + ";0c")
}

// respond delivers a bounded response string upstream through the bridge,
// truncating runaway replies rather than growing without limit (§7).
func (w *Window) respond(s string) {
	if len(s) > maxStringLen {
		s = s[:maxStringLen]
	}
	w.bridge.Response([]byte(s))
}
