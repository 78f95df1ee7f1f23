package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the interactive player.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm gradient, amber into rose.
	lines := []struct {
		text  string
		color string
	}{
		{`  ______    _           _       `, "#fbbf24"},
		{` |  ____|  | |         | |      `, "#f59e0b"},
		{` | |__ __ _| |__  _   _| | __ _ `, "#f97316"},
		{` |  __/ _' | '_ \| | | | |/ _' |`, "#fb7185"},
		{` | | | (_| | |_) | |_| | | (_| |`, "#f43f5e"},
		{` |_|  \__,_|_.__/ \__,_|_|\__,_|`, "#e11d48"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
