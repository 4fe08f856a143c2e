package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Makepad-fr/wishlist/internal/api"
	"github.com/Makepad-fr/wishlist/internal/app"
	"github.com/Makepad-fr/wishlist/internal/app/apptest"
	"github.com/Makepad-fr/wishlist/internal/auth"
	"github.com/Makepad-fr/wishlist/internal/config"
	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/prefs"
	"github.com/Makepad-fr/wishlist/internal/ui"
)

type harness struct {
	f        *apptest.FakeAPI
	opt      Options
	out, err bytes.Buffer
}

func newHarness(t *testing.T, f *apptest.FakeAPI, stdin string) *harness {
	t.Helper()
	t.Setenv(auth.EnvToken, "")
	dir := t.TempDir()
	h := &harness{f: f}
	h.opt = Options{
		Config: &config.Config{DateLayout: "2006-01-02", ExportDir: dir, ConfigDir: dir},
		Log:    zaptest.NewLogger(t),
		API:    f,
		Auth:   auth.NewStore(dir),
		Prefs:  prefs.NewStore(dir),
		In:     strings.NewReader(stdin),
	}
	ui.SetTheme("mono")
	ui.SetOutput(&h.out, &h.err)
	t.Cleanup(func() {
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetTheme("classic")
		ui.SetColorForcing(false, false)
	})
	return h
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.opt)
}

func sample() *apptest.FakeAPI {
	return &apptest.FakeAPI{Items: []model.Item{
		apptest.Priced(1, "Lamp", "20", "GBP", "https://shop.example/lamp"),
		apptest.Priced(2, "Desk", "150", "USD", ""),
	}}
}

func TestRun_UsageErrors(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 2, h.run())
	require.Equal(t, 2, h.run("nope"))
	require.Contains(t, h.err.String(), "unknown subcommand: nope")
	require.Equal(t, 2, h.run("rm"))
	require.Equal(t, 2, h.run("check", "abc"))
	require.Equal(t, 2, h.run("view", "tiles"))
	require.Equal(t, 0, h.run("help"))
	require.Contains(t, h.out.String(), "check-all")
}

func TestRemove_DeclinedMakesNoRequest(t *testing.T) {
	h := newHarness(t, sample(), "n\n")
	require.Equal(t, 0, h.run("rm", "1"))
	require.Contains(t, h.out.String(), app.DeleteConfirmPrompt)
	require.Contains(t, h.out.String(), "cancelled")
	require.Empty(t, h.f.Deleted)
}

func TestRemove_ConfirmedOrForced(t *testing.T) {
	h := newHarness(t, sample(), "y\n")
	require.Equal(t, 0, h.run("rm", "1"))
	require.Equal(t, 0, h.run("rm", "-y", "2"))
	require.Equal(t, []int{1, 2}, h.f.Deleted)
	require.Contains(t, h.out.String(), "removed Lamp")
}

func TestRemove_UnknownID(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 1, h.run("rm", "9", "-y"))
	require.Contains(t, h.err.String(), "no item with id 9")
	require.Empty(t, h.f.Deleted)
}

func TestRemove_FailureExitsOne(t *testing.T) {
	f := sample()
	f.DelErr = apptest.ErrTransport
	h := newHarness(t, f, "")
	require.Equal(t, 1, h.run("rm", "1", "-y"))
	require.Contains(t, h.err.String(), app.AlertDeleteFailed)
}

func TestAdd_ValidatesThenCreates(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 2, h.run("add", "-name", "Dune"))
	require.Contains(t, h.err.String(), "Category is required")
	require.Empty(t, h.f.Created)

	require.Equal(t, 0, h.run("add", "-type", "Book", "-name", "Dune", "-price", "9.99", "-currency", "eur", "-auto-image=false"))
	require.Len(t, h.f.Created, 1)
	c := h.f.Created[0]
	require.Equal(t, "Book", c.Type)
	require.Equal(t, "9.99", c.Price)
	require.Equal(t, "EUR", c.Currency)
	require.False(t, c.AutoFetchImage)
}

func TestCheck(t *testing.T) {
	f := sample()
	f.Checks = map[int]api.CheckResult{1: apptest.Success("17.5")}
	h := newHarness(t, f, "")

	require.Equal(t, 0, h.run("check", "1"))
	require.Contains(t, h.out.String(), "Price updated: £17.50")

	require.Equal(t, 2, h.run("check", "2"))
	require.Contains(t, h.err.String(), "has no URL")
	require.Equal(t, []int{1}, f.CheckCalls())
}

func TestCheck_NoPriceExitsOne(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 1, h.run("check", "1"))
	require.Contains(t, h.err.String(), app.AlertCheckNoPrice)
}

func TestCheckAll_OnlyItemsWithURL(t *testing.T) {
	f := sample()
	f.Items = append(f.Items, apptest.Priced(3, "Chair", "40", "GBP", "https://shop.example/chair"))
	f.Checks = map[int]api.CheckResult{3: apptest.Success("35")}
	h := newHarness(t, f, "")

	require.Equal(t, 0, h.run("check-all"))
	require.Equal(t, []int{1, 3}, f.CheckCalls())
	require.Contains(t, h.out.String(), "Updated 1 of 2 items.")
	require.Contains(t, h.out.String(), "2/2")
}

func TestHistory(t *testing.T) {
	f := sample()
	h := newHarness(t, f, "")
	require.Equal(t, 1, h.run("history", "1"))
	require.Contains(t, h.err.String(), app.AlertNoHistory)

	f.History = map[int][]model.PriceHistoryEntry{1: {
		{Price: mustPrice("20"), CheckedAt: mustTime(t, "2024-01-02T12:00:00")},
		{Price: mustPrice("18"), CheckedAt: mustTime(t, "2024-01-05T12:00:00")},
	}}
	require.Equal(t, 0, h.run("history", "1"))
	out := h.out.String()
	require.Contains(t, out, "Price (£)")
	require.Contains(t, out, "2024-01-02")
	require.Contains(t, out, "£18.00")
}

func TestSummaryAndList(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 0, h.run("summary"))
	out := h.out.String()
	require.Contains(t, out, "£20.00")
	require.Contains(t, out, "$150.00")

	h.out.Reset()
	require.Equal(t, 0, h.run("ls", "-view", "list"))
	require.Contains(t, h.out.String(), "Lamp")
	require.Contains(t, h.out.String(), "Desk")
}

func TestView_PersistsPreference(t *testing.T) {
	h := newHarness(t, sample(), "")
	require.Equal(t, 0, h.run("view", "list"))
	mode, err := h.opt.Prefs.ViewMode()
	require.NoError(t, err)
	require.Equal(t, model.ViewList, mode)

	h.out.Reset()
	require.Equal(t, 0, h.run("view"))
	require.Equal(t, "list\n", h.out.String())
}

func TestExport_WritesServerFile(t *testing.T) {
	f := sample()
	f.CSV = "ID,Name\n1,Lamp\n"
	f.CSVName = "wishlist_export_20240101_120000.csv"
	h := newHarness(t, f, "")
	dir := t.TempDir()

	require.Equal(t, 0, h.run("export", dir))
	b, err := os.ReadFile(filepath.Join(dir, f.CSVName))
	require.NoError(t, err)
	require.Equal(t, f.CSV, string(b))
}

func TestAuth_LoginStatusLogout(t *testing.T) {
	h := newHarness(t, sample(), "Bearer tok-123\n")
	require.Equal(t, 0, h.run("auth", "login"))
	require.Equal(t, "tok-123", h.opt.Auth.Token())

	require.Equal(t, 0, h.run("auth", "status"))
	require.Contains(t, h.out.String(), "source: file")
	require.Contains(t, h.out.String(), "expires: (unknown)")

	require.Equal(t, 0, h.run("auth", "whoami"))
	require.Contains(t, h.out.String(), "Opaque token")

	require.Equal(t, 0, h.run("auth", "logout"))
	require.Empty(t, h.opt.Auth.Token())
	require.Equal(t, 2, h.run("auth", "whoami"))
}

func mustPrice(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustTime(t *testing.T, s string) model.Timestamp {
	t.Helper()
	ts, err := model.ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}
