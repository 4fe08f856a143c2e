package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/wishlist/internal/model"
)

const (
	// CardWidth is the outer width of a grid card, borders included.
	CardWidth  = 32
	cardInner  = CardWidth - 4
	cardLines  = 8
	cardGap    = 1
	listIndent = 2
)

// Options carry the UI state a render depends on.
type Options struct {
	Width      int
	DateLayout string
	Selected   int  // snapshot index, -1 for none
	CheckingID int  // item whose price check is in flight
	Disabled   bool // another operation is in flight
}

// Columns is how many grid cards fit in width.
func Columns(mode model.ViewMode, width int) int {
	if mode == model.ViewList {
		return 1
	}
	n := (width + cardGap) / (CardWidth + cardGap)
	return max(n, 1)
}

// Rows renders the snapshot as layout rows in snapshot order. Row i holds
// items [i*Columns, (i+1)*Columns). An empty snapshot yields the empty state
// whatever the mode.
func Rows(items []model.Item, mode model.ViewMode, opt Options) []string {
	if len(items) == 0 {
		return []string{EmptyState()}
	}
	cards := Cards(items, opt.DateLayout)
	cols := Columns(mode, opt.Width)
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		blocks := make([]string, 0, cols*2)
		for i := start; i < end; i++ {
			if mode == model.ViewList {
				blocks = append(blocks, ListRow(cards[i], opt.Width, i == opt.Selected, opt))
				continue
			}
			if i > start {
				blocks = append(blocks, strings.Repeat(" ", cardGap))
			}
			blocks = append(blocks, GridCard(cards[i], i == opt.Selected, opt))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return rows
}

// Render is Rows joined into one block.
func Render(items []model.Item, mode model.ViewMode, opt Options) string {
	return lipgloss.JoinVertical(lipgloss.Left, Rows(items, mode, opt)...)
}

func EmptyState() string {
	icon := strings.Join([]string{
		"┌─────────────┐",
		"│             │",
		"├────┐   ┌────┤",
		"│    └───┘    │",
		"└─────────────┘",
	}, "\n")
	return lipgloss.NewStyle().Padding(1, 4).Render(lipgloss.JoinVertical(lipgloss.Center,
		mutedStyle.Render(icon),
		"",
		titleStyle.Render("Your wishlist is empty"),
		mutedStyle.Render("Add your first item to start tracking prices!"),
	))
}

// GridCard is the compact layout: no creation date, no metadata block,
// absent price and last-checked lines are left out.
func GridCard(c Card, selected bool, opt Options) string {
	lines := []string{imageLine(c.Image, cardInner)}
	lines = append(lines, categoryStyle.Render(truncate(strings.ToUpper(c.Category), cardInner)))
	lines = append(lines, titleStyle.Render(truncate(c.Name, cardInner)))
	if c.Price != "" {
		lines = append(lines, priceStyle.Render(c.Price))
	}
	if c.LastChecked != "" {
		lines = append(lines, mutedStyle.Render("Last checked: "+c.LastChecked))
	}
	if c.URL != "" {
		lines = append(lines, linkStyle.Render(truncate("View Product → "+c.Host, cardInner)))
	}
	lines = append(lines, actionLines(c, opt, cardInner)...)

	st := cardStyle
	if selected {
		st = selectedCardStyle
	}
	return st.Width(cardInner + 2).Height(cardLines).Render(strings.Join(lines, "\n"))
}

// ListRow is the detailed layout with placeholders, creation date and a
// metadata block.
func ListRow(c Card, width int, selected bool, opt Options) string {
	inner := max(width-listIndent-2, 40)

	price := mutedStyle.Render("No price set")
	if c.Price != "" {
		price = priceStyle.Render(c.Price)
	}
	checked := c.LastChecked
	if checked == "" {
		checked = "Never"
	}
	created := c.CreatedAt
	if created == "" {
		created = "unknown"
	}

	head := titleStyle.Render(truncate(c.Name, inner/2)) + "  " +
		categoryStyle.Render(strings.ToUpper(truncate(c.Category, inner/4))) + "  " + price
	dates := mutedStyle.Render(fmt.Sprintf("Added: %s · Last checked: %s", created, checked))

	source := "none"
	if c.URL != "" {
		source = c.Host
	}
	image := "none"
	if c.Image != "" {
		image = c.Image
	}
	meta := mutedStyle.Render(truncate(fmt.Sprintf("#%d · Currency: %s · Source: %s · Image: %s",
		c.ID, orDash(c.Currency), source, image), inner))

	lines := []string{head, dates, meta}
	if c.URL != "" {
		lines = append(lines, linkStyle.Render(truncate("View Product → "+c.URL, inner)))
	}
	lines = append(lines, strings.Join(actionLines(c, opt, inner), "  "))

	st := rowStyle
	if selected {
		st = selectedRowStyle
	}
	return st.Width(inner).Render(strings.Join(lines, "\n"))
}

func imageLine(path string, width int) string {
	if path == "" {
		return mutedStyle.Render(imagePlaceholder)
	}
	return mutedStyle.Render(truncate("[img] "+path, width))
}

// actionLines renders the per-item controls. A control whose request is in
// flight reads "Checking..."; all controls are dimmed while disabled.
func actionLines(c Card, opt Options, width int) []string {
	label := func(a Action) string {
		text := "[" + ActionKeys[a] + "] " + string(a)
		switch {
		case a == ActionCheckPrice && opt.CheckingID == c.ID:
			return pendingStyle.Render("Checking...")
		case opt.Disabled:
			return mutedStyle.Render(text)
		case a == ActionDelete:
			return dangerStyle.Render(text)
		}
		return keyStyle.Render(text)
	}
	var out []string
	if c.Has(ActionCheckPrice) {
		out = append(out, label(ActionCheckPrice))
	}
	rest := label(ActionHistory) + "  " + label(ActionDelete)
	if lipgloss.Width(rest) > width {
		return append(out, label(ActionHistory), label(ActionDelete))
	}
	return append(out, rest)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
