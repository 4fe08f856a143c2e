// Package chart draws a price history as a terminal line chart.
package chart

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/money"
)

type Point struct {
	Label string
	At    time.Time
	Price decimal.Decimal
}

// Series is the time-ordered label/price data handed to a Chart.
type Series struct {
	Legend string
	Symbol string
	Points []Point
}

// NewSeries orders entries by check time, oldest first.
func NewSeries(entries []model.PriceHistoryEntry, currency, dateLayout string) Series {
	sym := money.Symbol(currency)
	pts := make([]Point, 0, len(entries))
	for _, e := range entries {
		pts = append(pts, Point{Label: e.CheckedAt.Date(dateLayout), At: e.CheckedAt.Time, Price: e.Price})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].At.Before(pts[j].At) })
	return Series{Legend: "Price (" + sym + ")", Symbol: sym, Points: pts}
}

func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

func (s Series) Prices() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Tick formats an axis value the way prices are shown elsewhere.
func (s Series) Tick(v decimal.Decimal) string { return s.Symbol + v.StringFixed(2) }

var (
	legendStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	axisStyle   = lipgloss.NewStyle().Faint(true)
)

const (
	dot  = '●'
	line = '·'
)

// Chart is one rendered history. Callers keep at most one alive.
type Chart struct {
	series Series
}

func New(s Series) *Chart { return &Chart{series: s} }

func (c *Chart) Series() Series { return c.series }

// Render draws the chart into roughly width x height cells.
func (c *Chart) Render(width, height int) string {
	s := c.series
	if len(s.Points) == 0 {
		return axisStyle.Render("no data")
	}
	lo, hi := bounds(s.Prices())
	ticks := []string{s.Tick(hi), s.Tick(lo.Add(hi).Div(decimal.NewFromInt(2))), s.Tick(lo)}
	gutter := 0
	for _, t := range ticks {
		if w := lipgloss.Width(t); w > gutter {
			gutter = w
		}
	}

	plotW := max(width-gutter-2, 10)
	plotH := max(height-3, 3) // legend + axis + labels
	grid := make([][]rune, plotH)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotW))
	}

	lof, hif := lo.InexactFloat64(), hi.InexactFloat64()
	row := func(v float64) int {
		r := int(math.Round((hif - v) / (hif - lof) * float64(plotH-1)))
		return min(max(r, 0), plotH-1)
	}
	col := func(i int) int {
		if len(s.Points) == 1 {
			return plotW / 2
		}
		return i * (plotW - 1) / (len(s.Points) - 1)
	}

	for i := 0; i+1 < len(s.Points); i++ {
		x0, x1 := col(i), col(i+1)
		v0, v1 := s.Points[i].Price.InexactFloat64(), s.Points[i+1].Price.InexactFloat64()
		for x := x0 + 1; x < x1; x++ {
			v := v0 + (v1-v0)*float64(x-x0)/float64(x1-x0)
			grid[row(v)][x] = line
		}
	}
	for i, p := range s.Points {
		grid[row(p.Price.InexactFloat64())][col(i)] = dot
	}

	var b strings.Builder
	b.WriteString(legendStyle.Render(s.Legend))
	b.WriteByte('\n')
	for r := range grid {
		label := ""
		switch r {
		case 0:
			label = ticks[0]
		case plotH / 2:
			label = ticks[1]
		case plotH - 1:
			label = ticks[2]
		}
		b.WriteString(axisStyle.Render(padLeft(label, gutter) + " │"))
		b.WriteString(lineStyle.Render(string(grid[r])))
		b.WriteByte('\n')
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", gutter) + " └" + strings.Repeat("─", plotW)))
	b.WriteByte('\n')
	b.WriteString(axisStyle.Render(strings.Repeat(" ", gutter+2) + xLabels(s.Labels(), plotW)))
	return b.String()
}

// bounds widens a flat series so it still has a vertical range.
func bounds(prices []decimal.Decimal) (lo, hi decimal.Decimal) {
	lo, hi = decimal.Min(prices[0], prices...), decimal.Max(prices[0], prices...)
	if lo.Equal(hi) {
		pad := lo.Abs().Div(decimal.NewFromInt(10))
		if pad.IsZero() {
			pad = decimal.NewFromInt(1)
		}
		lo, hi = lo.Sub(pad), hi.Add(pad)
	}
	return lo, hi
}

func xLabels(labels []string, width int) string {
	first, last := labels[0], labels[len(labels)-1]
	if len(labels) == 1 || first == last {
		return first
	}
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		return first
	}
	return first + strings.Repeat(" ", gap) + last
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
