package ui

import "strings"

// Theme bundles palette, glyphs and box borders.
// All helpers pull from `current`.
type Theme struct {
	Name                                                 string
	Title, Muted, Accent, Success, Error, Pending, Price string
	CornerTL, CornerTR, CornerBL, CornerBR               string
	H, V                                                 string
	Bullet, BarFull, BarEmpty                            string
}

// Themes lists the accepted names for SetTheme.
var Themes = []string{"classic", "neon", "mono"}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow, Price: fgGreen,
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		Bullet: "•", BarFull: "█", BarEmpty: "░",
	}
}

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: fgMagenta, Muted: fgGray, Accent: fgCyan,
			Success: fgGreen, Error: fgRed, Pending: "\033[93m", Price: fgCyan,
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Bullet: "◆", BarFull: "▰", BarEmpty: "▱",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:     "mono",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			Bullet: "-", BarFull: "#", BarEmpty: ".",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }

// Dim renders s faint, for secondary fields.
func Dim(s string) string { return C(dim, s) }
