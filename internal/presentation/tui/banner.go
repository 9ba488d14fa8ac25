package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  _  __              _                  _       `, "#fbbf24"},
	{` | |/ /__ ___ __ __ (_)__ _ _ _ _ _  (_)__ _ `, "#f59e0b"},
	{` | ' </ _`+"`"+` \ V  V / / _`+"`"+` | '_| ' \ | / _`+"`"+` |`, "#d97706"},
	{` |_|\_\__,_|\_/\_/|_\__,_|_| |_||_||_\__,_|`, "#b45309"},
}

// PrintBanner writes the colored startup banner and the version line to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)).Bold())
	}
	fmt.Fprintln(w, termenv.String("  ☕ asystent kawiarni v"+version).Foreground(p.Color("#a8a29e")).Italic())
	fmt.Fprintln(w)
}
