package report

import (
	"fmt"
	"io"
	"strings"
)

const progressBarWidth = 50

// Progress renders a single-line progress bar for the console, overwriting
// the previous line with a carriage return.
func Progress(w io.Writer, currentHours, totalHours float64) {
	if totalHours <= 0 {
		return
	}
	frac := currentHours / totalHours
	if frac > 1 {
		frac = 1
	}
	pos := int(progressBarWidth * frac)
	var b strings.Builder
	for i := 0; i < progressBarWidth; i++ {
		switch {
		case i < pos:
			b.WriteByte('=')
		case i == pos:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(w, "\r[%s] %5.1f%% (%.2f/%.2f hours)", b.String(), frac*100, currentHours, totalHours)
}
