package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// Width is the printed width of s, escapes excluded.
func Width(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders a progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	done = min(max(done, 0), total)
	filled := done * width / total
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

// Progress redraws one progress line in place. Pass done == total to end
// the line.
func Progress(label string, done, total int) {
	fmt.Fprintf(out, "\r%s %s %d/%d", label, C(current.Accent, ProgressBar(done, total, 24)), done, total)
	if done >= total {
		fmt.Fprintln(out)
	}
}

// PanelString frames lines in a box using the current theme.
func PanelString(lines []string) string {
	t := current
	maxw := 0
	for _, ln := range lines {
		maxw = max(maxw, Width(ln))
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		b.WriteString(t.V + " " + ln + strings.Repeat(" ", maxw-Width(ln)) + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// Panel prints PanelString to stdout.
func Panel(lines []string) { fmt.Fprint(out, PanelString(lines)) }
