package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/wishlist/internal/app"
	"github.com/Makepad-fr/wishlist/internal/summary"
	"github.com/Makepad-fr/wishlist/internal/view"
)

func (m Model) View() string {
	switch {
	case m.alert != "":
		return m.place(dialogStyle.Render(m.alert + "\n\n" + helpStyle.Render("enter ok")))
	case m.confirm != nil:
		body := app.DeleteConfirmPrompt + "\n" + titleStyle.Render(m.confirm.Name) +
			"\n\n" + helpStyle.Render("y yes · n no")
		return m.place(dialogStyle.Render(body))
	case m.modal != modalNone:
		return m.place(m.modalBox())
	}

	header, sum, footer := m.header(), m.summaryPanel(), m.footer()
	parts := []string{header}
	if sum != "" {
		parts = append(parts, sum)
	}
	parts = append(parts, m.visibleRows())
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)

	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

func (m Model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// modalRect is where place puts the open modal.
func (m Model) modalRect() (x, y, w, h int) {
	box := m.modalBox()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	return max((m.width-w)/2, 0), max((m.height-h)/2, 0), w, h
}

func (m Model) modalBox() string {
	switch m.modal {
	case modalAdd:
		return modalStyle.Render(m.form.view())
	case modalHistory:
		return modalStyle.Render(m.historyView())
	}
	return ""
}

func (m Model) historyView() string {
	if m.chart == nil {
		return ""
	}
	w := min(max(m.width-12, 30), 90)
	h := min(max(m.height-12, 6), 18)
	s := m.chart.Series()
	return modalTitleStyle.Render("Price History") + "  " + m.chartName + "  " + mutedStyle.Render(s.Legend) +
		"\n\n" + m.chart.Render(w, h) +
		"\n\n" + helpStyle.Render("esc close")
}

func (m Model) header() string {
	title := titleStyle.Render("Wishlist") + "  " + mutedStyle.Render(string(m.mode)+" view")
	var status string
	switch op, _ := m.flight.Current(); op {
	case "":
		status = accentStyle.Render("P Check All Prices")
	case app.OpCheckAll:
		status = m.spin.View() + pendingStyle.Render(" Checking...")
	default:
		status = m.spin.View() + pendingStyle.Render(" Working...")
	}
	return title + "   " + status + "\n"
}

func (m Model) summaryPanel() string {
	return view.RenderSummary(summary.Summarize(m.d.Store().Snapshot()))
}

func (m Model) footer() string {
	return helpStyle.Render(m.help.View(m.keys))
}

func (m Model) renderOptions() view.Options {
	opt := view.Options{
		Width:      m.width,
		DateLayout: m.opt.DateLayout,
		Selected:   m.selected,
		Disabled:   m.flight.Busy(),
	}
	if op, id := m.flight.Current(); op == app.OpCheck {
		opt.CheckingID = id
	}
	return opt
}

func (m Model) rows() []string {
	return view.Rows(m.d.Store().Snapshot(), m.mode, m.renderOptions())
}

// itemsHeight is the room left for item rows below the header and summary.
func (m Model) itemsHeight() int {
	used := lipgloss.Height(m.header()) + lipgloss.Height(m.footer()) + 1
	if s := m.summaryPanel(); s != "" {
		used += lipgloss.Height(s)
	}
	return max(m.height-used, 1)
}

func fits(rows []string, height int) bool {
	total := 0
	for _, r := range rows {
		total += lipgloss.Height(r)
	}
	return total <= height
}

// visibleRows renders rows from the scroll offset while they fit. The first
// one is always shown.
func (m Model) visibleRows() string {
	rows := m.rows()
	if m.offset < len(rows) {
		rows = rows[m.offset:]
	}
	avail := m.itemsHeight()
	out := make([]string, 0, len(rows))
	used := 0
	for i, r := range rows {
		h := lipgloss.Height(r)
		if i > 0 && used+h > avail {
			break
		}
		out = append(out, r)
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
