// Command demo feeds a short ANSI transcript through a Window and prints
// the resulting screen content, as a minimal usage example for the engine.
package main

import (
	"fmt"
	"strings"

	"github.com/vtcore/vtengine"
)

func main() {
	var title string
	bridge := vtengine.NewNoopBridge()
	bridge.TitleChanged = func(t string) { title = t }

	win := vtengine.New(40, 6, vtengine.NewConfig(), vtengine.WithBridge(bridge))

	win.WriteString([]byte("\x1b]0;My Terminal Title\x07"))
	win.WriteString([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!\r\n"))
	win.WriteString([]byte("\x1b[1;4mBold and Underlined\x1b[0m\r\n"))
	win.WriteString([]byte("Normal text\r\n"))

	fmt.Println("=== Terminal Content ===")
	grid := win.CurrentGrid()
	for y := 0; y < grid.Height(); y++ {
		line := grid.Line(y)
		var sb strings.Builder
		for x := 0; x < line.Width(); x++ {
			sb.WriteRune(line.Image(x))
		}
		fmt.Println(strings.TrimRight(sb.String(), " "))
	}

	x, y := win.Cursor()
	fmt.Printf("Cursor position: col=%d, row=%d\n", x, y)
	fmt.Printf("Window title: %s\n", title)
}
