package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Makepad-fr/wishlist/internal/api"
	"github.com/Makepad-fr/wishlist/internal/app/apptest"
	"github.com/Makepad-fr/wishlist/internal/model"
)

var _ API = (*apptest.FakeAPI)(nil)

func newDispatcher(t *testing.T, f *apptest.FakeAPI) *Dispatcher {
	t.Helper()
	return NewDispatcher(f, zaptest.NewLogger(t), "2006-01-02")
}

func TestLoad_ReplacesSnapshot(t *testing.T) {
	f := &apptest.FakeAPI{Items: []model.Item{{ID: 1}, {ID: 2}}}
	d := newDispatcher(t, f)

	items, err := d.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, items, d.Store().Snapshot())
	require.Equal(t, 2, d.Store().Len())
}

func TestLoad_FailureKeepsPreviousSnapshot(t *testing.T) {
	f := &apptest.FakeAPI{Items: []model.Item{{ID: 1, Name: "kept"}}}
	d := newDispatcher(t, f)
	_, err := d.Load(context.Background())
	require.NoError(t, err)

	f.ListErr = apptest.ErrTransport
	_, err = d.Load(context.Background())
	require.ErrorIs(t, err, apptest.ErrTransport)

	snap := d.Store().Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, "kept", snap[0].Name)
}

func TestSettle_ReloadsOnlyWhenAsked(t *testing.T) {
	f := &apptest.FakeAPI{}
	d := newDispatcher(t, f)

	d.Settle(context.Background(), Outcome{Alert: "x"})
	require.Equal(t, 0, f.Lists)
	d.Settle(context.Background(), Outcome{Reload: true})
	require.Equal(t, 1, f.Lists)
}

func TestAdd(t *testing.T) {
	f := &apptest.FakeAPI{}
	d := newDispatcher(t, f)

	o := d.Add(context.Background(), model.NewItem{Type: "Book", Name: "Dune", Currency: "GBP"})
	require.Equal(t, Outcome{Reload: true}, o)
	require.Len(t, f.Created, 1)

	f.AddErr = &api.StatusError{Code: 500}
	o = d.Add(context.Background(), model.NewItem{Type: "Book", Name: "Emma"})
	require.Equal(t, Outcome{Alert: AlertAddFailed}, o)
}

func TestDelete_ReloadsOnlyOnSuccess(t *testing.T) {
	f := &apptest.FakeAPI{}
	d := newDispatcher(t, f)

	require.Equal(t, Outcome{Reload: true}, d.Delete(context.Background(), 4))
	require.Equal(t, []int{4}, f.Deleted)

	f.DelErr = &api.StatusError{Code: 404}
	require.Equal(t, Outcome{Alert: AlertDeleteFailed}, d.Delete(context.Background(), 5))
	require.Equal(t, []int{4, 5}, f.Deleted)
}

func TestCheckPrice_Outcomes(t *testing.T) {
	item := apptest.Priced(1, "Dune", "10", "GBP", "https://shop/1")
	f := &apptest.FakeAPI{Checks: map[int]api.CheckResult{1: apptest.Success("8.5")}}
	d := newDispatcher(t, f)

	o := d.CheckPrice(context.Background(), item)
	require.Equal(t, Outcome{Alert: "Price updated: £8.50", Reload: true}, o)

	item.ID = 2 // no canned answer: server says success=false
	require.Equal(t, Outcome{Alert: AlertCheckNoPrice}, d.CheckPrice(context.Background(), item))

	f.CheckErr = map[int]error{3: apptest.ErrTransport}
	item.ID = 3
	require.Equal(t, Outcome{Alert: AlertCheckFailed}, d.CheckPrice(context.Background(), item))
}

func TestCheckPrice_UnknownCurrencyUsesCode(t *testing.T) {
	f := &apptest.FakeAPI{Checks: map[int]api.CheckResult{1: apptest.Success("1200")}}
	o := newDispatcher(t, f).CheckPrice(context.Background(), apptest.Priced(1, "x", "1", "JPY", "u"))
	require.Equal(t, "Price updated: JPY1200.00", o.Alert)
}

func TestCheckAll_OnlyItemsWithURL_Sequential(t *testing.T) {
	items := []model.Item{
		apptest.Priced(1, "a", "1", "GBP", "https://a"),
		apptest.Priced(2, "b", "1", "GBP", "https://b"),
		{ID: 3, Name: "no url"},
	}
	f := &apptest.FakeAPI{Checks: map[int]api.CheckResult{1: apptest.Success("2")}}
	d := newDispatcher(t, f)

	var progress [][2]int
	o := d.CheckAll(context.Background(), items, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	require.Equal(t, []int{1, 2}, f.CheckCalls())
	require.Equal(t, Outcome{Alert: "Updated 1 of 2 items.", Reload: true}, o)
	require.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)
}

func TestCheckAll_FailureDoesNotAbort(t *testing.T) {
	items := []model.Item{
		apptest.Priced(1, "a", "1", "GBP", "https://a"),
		apptest.Priced(2, "b", "1", "GBP", "https://b"),
		apptest.Priced(3, "c", "1", "GBP", "https://c"),
	}
	f := &apptest.FakeAPI{
		Checks:   map[int]api.CheckResult{2: apptest.Success("3"), 3: apptest.Success("4")},
		CheckErr: map[int]error{1: apptest.ErrTransport},
	}
	o := newDispatcher(t, f).CheckAll(context.Background(), items, nil)
	require.Equal(t, []int{1, 2, 3}, f.CheckCalls())
	require.Equal(t, "Updated 2 of 3 items.", o.Alert)
}

func TestCheckAll_SuccessFlagWithErrorStatusIsNotCounted(t *testing.T) {
	p := decimal.NewFromInt(1)
	f := &apptest.FakeAPI{Checks: map[int]api.CheckResult{1: {Success: true, Price: &p, StatusCode: 500}}}
	o := newDispatcher(t, f).CheckAll(context.Background(), []model.Item{{ID: 1, URL: "u"}}, nil)
	require.Equal(t, "Updated 0 of 1 items.", o.Alert)
}

func TestCheckAll_NoURLs(t *testing.T) {
	f := &apptest.FakeAPI{}
	o := newDispatcher(t, f).CheckAll(context.Background(), []model.Item{{ID: 1}}, nil)
	require.Empty(t, f.CheckCalls())
	require.Equal(t, "Updated 0 of 0 items.", o.Alert)
}

func TestHistory(t *testing.T) {
	day := func(d int) model.Timestamp {
		return model.Timestamp{Time: time.Date(2024, 2, d, 12, 0, 0, 0, time.UTC)}
	}
	f := &apptest.FakeAPI{History: map[int][]model.PriceHistoryEntry{
		1: {
			{Price: decimal.NewFromInt(12), CheckedAt: day(2)},
			{Price: decimal.NewFromInt(10), CheckedAt: day(1)},
		},
	}}
	d := newDispatcher(t, f)

	s, err := d.History(context.Background(), model.Item{ID: 1, Currency: "USD"})
	require.NoError(t, err)
	require.Equal(t, "Price ($)", s.Legend)
	require.Equal(t, []string{"2024-02-01", "2024-02-02"}, s.Labels())

	_, err = d.History(context.Background(), model.Item{ID: 2})
	require.ErrorIs(t, err, ErrNoHistory)
	require.Equal(t, AlertNoHistory, HistoryAlert(err))

	f.HistErr = apptest.ErrTransport
	_, err = d.History(context.Background(), model.Item{ID: 1})
	require.ErrorIs(t, err, apptest.ErrTransport)
	require.Equal(t, AlertHistoryFailed, HistoryAlert(err))
}

func TestExport_UsesServerName(t *testing.T) {
	dir := t.TempDir()
	f := &apptest.FakeAPI{CSV: "ID,Name\n1,Dune\n", CSVName: "wishlist_export_20240101_000000.csv"}
	path, o := newDispatcher(t, f).Export(context.Background(), dir)

	require.Equal(t, filepath.Join(dir, "wishlist_export_20240101_000000.csv"), path)
	require.Equal(t, "Exported to "+path, o.Alert)
	require.False(t, o.Reload)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ID,Name\n1,Dune\n", string(b))
}

func TestExport_FallbackNameAndFailure(t *testing.T) {
	dir := t.TempDir()
	f := &apptest.FakeAPI{CSV: "x"}
	d := newDispatcher(t, f)
	d.now = func() time.Time { return time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC) }

	path, _ := d.Export(context.Background(), dir)
	require.Equal(t, filepath.Join(dir, "wishlist_export_20240607_080910.csv"), path)

	f.CSVErr = errors.New("boom")
	path, o := d.Export(context.Background(), dir)
	require.Equal(t, "", path)
	require.Equal(t, AlertExportFailed, o.Alert)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1) // temp file cleaned up
}
