// Package tui is the interactive wishlist client built on Bubble Tea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/wishlist/internal/app"
	"github.com/Makepad-fr/wishlist/internal/chart"
	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/view"
)

// ViewPrefs persists the chosen layout.
type ViewPrefs interface {
	ViewMode() (model.ViewMode, error)
	SetViewMode(model.ViewMode) error
}

type Options struct {
	DateLayout string
	ExportDir  string
	Log        *zap.Logger
}

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalHistory
)

// Model owns all client state: the view mode, the selection, the open
// modal, the current chart and the in-flight operation. The snapshot itself
// lives in the dispatcher's store.
type Model struct {
	ctx    context.Context
	d      *app.Dispatcher
	prefs  ViewPrefs
	log    *zap.Logger
	opt    Options
	flight *app.Flight

	mode          model.ViewMode
	selected      int
	offset        int // first visible layout row
	width, height int

	modal     modalKind
	form      addForm
	chart     *chart.Chart // at most one live chart
	chartName string

	alert   string
	confirm *model.Item // delete awaiting y/n

	keys keyMap
	help help.Model
	spin spinner.Model
}

type loadedMsg struct{ err error }

type actionMsg struct {
	op      string
	outcome app.Outcome
}

type historyMsg struct {
	item   model.Item
	series chart.Series
	err    error
}

// New resolves the stored view mode once; later toggles write it back.
func New(ctx context.Context, d *app.Dispatcher, prefs ViewPrefs, opt Options) Model {
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	mode, err := prefs.ViewMode()
	if err != nil {
		opt.Log.Warn("read view preference", zap.Error(err))
	}
	return Model{
		ctx:    ctx,
		d:      d,
		prefs:  prefs,
		log:    opt.Log,
		opt:    opt,
		flight: &app.Flight{},
		mode:   mode,
		width:  100,
		height: 30,
		form:   newAddForm(),
		keys:   newKeyMap(),
		help:   help.New(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spin.Tick)
}

// ---------------------------------------------------
// commands
// ---------------------------------------------------

func (m Model) load() tea.Cmd {
	d, ctx := m.d, m.ctx
	return func() tea.Msg {
		_, err := d.Load(ctx)
		return loadedMsg{err: err}
	}
}

// action runs fn and, if its outcome asks for it, the full reload, before
// reporting back. The snapshot is never patched locally.
func (m Model) action(op string, fn func(context.Context) app.Outcome) tea.Cmd {
	d, ctx := m.d, m.ctx
	return func() tea.Msg {
		return actionMsg{op: op, outcome: d.Settle(ctx, fn(ctx))}
	}
}

func (m Model) history(it model.Item) tea.Cmd {
	d, ctx := m.d, m.ctx
	return func() tea.Msg {
		s, err := d.History(ctx, it)
		return historyMsg{item: it, series: s, err: err}
	}
}

// ---------------------------------------------------
// update
// ---------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clamp()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		// load failures are logged by the dispatcher; the old snapshot stays
		if op, _ := m.flight.Current(); op == app.OpReload {
			m.end()
		}
		m.clamp()
		return m, nil

	case actionMsg:
		m.end()
		if msg.op == app.OpAdd && msg.outcome.Reload {
			m.closeModal()
		}
		if msg.outcome.Alert != "" {
			m.alert = msg.outcome.Alert
		}
		m.clamp()
		return m, nil

	case historyMsg:
		m.end()
		if msg.err != nil {
			m.alert = app.HistoryAlert(msg.err)
			return m, nil
		}
		m.chart, m.chartName = chart.New(msg.series), msg.item.Name
		m.modal = modalHistory
		return m, nil

	case tea.MouseMsg:
		return m.mouse(msg), nil

	case tea.KeyMsg:
		return m.keypress(msg)
	}
	return m, nil
}

func (m Model) keypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// blocking dialogs first
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ", "q":
			m.alert = ""
		}
		return m, nil
	}
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y":
			it := *m.confirm
			m.confirm = nil
			if !m.begin(app.OpDelete, it.ID) {
				return m, nil
			}
			d := m.d
			return m, m.action(app.OpDelete, func(ctx context.Context) app.Outcome { return d.Delete(ctx, it.ID) })
		case "n", "N", "esc", "q":
			m.confirm = nil
		}
		return m, nil
	}

	switch m.modal {
	case modalAdd:
		return m.formKey(msg)
	case modalHistory:
		switch msg.String() {
		case "esc", "q", "enter":
			m.closeModal()
		}
		return m, nil
	}
	return m.mainKey(msg)
}

func (m Model) mainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := view.Columns(m.mode, m.width)
	d := m.d

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-cols)
	case key.Matches(msg, m.keys.Down):
		m.move(cols)
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)

	case key.Matches(msg, m.keys.Toggle):
		m.mode = m.mode.Toggle()
		if err := m.prefs.SetViewMode(m.mode); err != nil {
			m.log.Warn("save view preference", zap.Error(err))
		}
		m.offset = 0
		m.clamp()

	case key.Matches(msg, m.keys.Add):
		if !m.flight.Busy() {
			m.form = newAddForm()
			m.modal = modalAdd
		}

	case key.Matches(msg, m.keys.Check):
		it, ok := m.current()
		if !ok || !it.HasURL() || !m.begin(app.OpCheck, it.ID) {
			return m, nil
		}
		return m, m.action(app.OpCheck, func(ctx context.Context) app.Outcome { return d.CheckPrice(ctx, it) })

	case key.Matches(msg, m.keys.CheckAll):
		if !m.begin(app.OpCheckAll, 0) {
			return m, nil
		}
		items := d.Store().Snapshot()
		return m, m.action(app.OpCheckAll, func(ctx context.Context) app.Outcome { return d.CheckAll(ctx, items, nil) })

	case key.Matches(msg, m.keys.History):
		it, ok := m.current()
		if !ok || !m.begin(app.OpHistory, it.ID) {
			return m, nil
		}
		return m, m.history(it)

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.current(); ok && !m.flight.Busy() {
			m.confirm = &it
		}

	case key.Matches(msg, m.keys.Export):
		if !m.begin(app.OpExport, 0) {
			return m, nil
		}
		dir := m.opt.ExportDir
		return m, m.action(app.OpExport, func(ctx context.Context) app.Outcome {
			_, o := d.Export(ctx, dir)
			return o
		})

	case key.Matches(msg, m.keys.Reload):
		if !m.begin(app.OpReload, 0) {
			return m, nil
		}
		return m, m.load()
	}
	return m, nil
}

func (m Model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving() {
		return m, nil
	}
	if msg.String() == "esc" {
		m.closeModal()
		return m, nil
	}
	var (
		cmd    tea.Cmd
		submit bool
	)
	m.form, cmd, submit = m.form.update(msg)
	if !submit {
		return m, cmd
	}
	in, err := m.form.item()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	if !m.begin(app.OpAdd, 0) {
		return m, nil
	}
	d := m.d
	return m, m.action(app.OpAdd, func(ctx context.Context) app.Outcome { return d.Add(ctx, in) })
}

// mouse closes an open modal on a left click outside its box.
func (m Model) mouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}
	if m.modal == modalNone || m.alert != "" || m.confirm != nil || m.saving() {
		return m
	}
	x, y, w, h := m.modalRect()
	if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
		m.closeModal()
	}
	return m
}

// ---------------------------------------------------
// state helpers
// ---------------------------------------------------

// begin claims the single in-flight slot and disables the action keys.
func (m *Model) begin(op string, itemID int) bool {
	if !m.flight.Begin(op, itemID) {
		return false
	}
	m.keys.setActionsEnabled(false)
	return true
}

func (m *Model) end() {
	m.flight.End()
	m.keys.setActionsEnabled(true)
}

// saving reports whether the add form's create request is still running.
// The form stays up and frozen until it settles.
func (m Model) saving() bool {
	op, _ := m.flight.Current()
	return op == app.OpAdd
}

func (m *Model) closeModal() {
	if m.modal == modalAdd {
		m.form = newAddForm()
	}
	m.modal = modalNone
}

func (m Model) current() (model.Item, bool) {
	items := m.d.Store().Snapshot()
	if m.selected < 0 || m.selected >= len(items) {
		return model.Item{}, false
	}
	return items[m.selected], true
}

func (m *Model) move(delta int) {
	n := m.d.Store().Len()
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
	m.scrollToSelection()
}

// clamp keeps the selection inside the snapshot after it changed.
func (m *Model) clamp() {
	n := m.d.Store().Len()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	rows := m.rows()
	cols := view.Columns(m.mode, m.width)
	sel := m.selected / cols
	if sel < m.offset {
		m.offset = sel
	}
	for m.offset < sel && !fits(rows[m.offset:sel+1], m.itemsHeight()) {
		m.offset++
	}
	if m.offset >= len(rows) {
		m.offset = max(len(rows)-1, 0)
	}
}
