// Package app turns user actions into API round trips and owns the item
// snapshot they refresh.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/wishlist/internal/api"
	"github.com/Makepad-fr/wishlist/internal/chart"
	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/money"
)

// API is the subset of the REST client the dispatcher needs.
type API interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, in model.NewItem) (*model.Item, error)
	DeleteItem(ctx context.Context, id int) error
	CheckPrice(ctx context.Context, id int) (api.CheckResult, error)
	PriceHistory(ctx context.Context, id int) ([]model.PriceHistoryEntry, error)
	ExportCSV(ctx context.Context, w io.Writer) (string, error)
}

var _ API = (*api.Client)(nil)

// ErrNoHistory means the item has no recorded prices.
var ErrNoHistory = errors.New("no price history")

// User-facing alert texts.
const (
	AlertAddFailed       = "Failed to add item. Please try again."
	AlertDeleteFailed    = "Failed to delete item. Please try again."
	AlertCheckFailed     = "Failed to check price. Please try again."
	AlertCheckNoPrice    = "Could not fetch price from URL. Please check manually."
	AlertCheckAllFailed  = "Failed to check prices. Please try again."
	AlertNoHistory       = "No price history available for this item."
	AlertHistoryFailed   = "Failed to load price history. Please try again."
	AlertExportFailed    = "Failed to export CSV. Please try again."
	DeleteConfirmPrompt  = "Are you sure you want to delete this item?"
	exportFallbackLayout = "20060102_150405"
)

// Outcome is what an action leaves for the caller: an optional alert and
// whether the snapshot must be reloaded from the server.
type Outcome struct {
	Alert  string
	Reload bool
}

type Dispatcher struct {
	api        API
	store      *Store
	log        *zap.Logger
	dateLayout string
	now        func() time.Time
}

func NewDispatcher(a API, log *zap.Logger, dateLayout string) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{api: a, store: &Store{}, log: log, dateLayout: dateLayout, now: time.Now}
}

func (d *Dispatcher) Store() *Store { return d.store }

// Load replaces the snapshot on success. On failure the error is logged
// and the previous snapshot is left as it was.
func (d *Dispatcher) Load(ctx context.Context) ([]model.Item, error) {
	items, err := d.api.ListItems(ctx)
	if err != nil {
		d.log.Error("load items", zap.Error(err))
		return nil, err
	}
	d.store.Replace(items)
	d.log.Debug("loaded items", zap.Int("count", len(items)))
	return items, nil
}

// Settle performs the reload an outcome asks for.
func (d *Dispatcher) Settle(ctx context.Context, o Outcome) Outcome {
	if o.Reload {
		_, _ = d.Load(ctx)
	}
	return o
}

func (d *Dispatcher) Add(ctx context.Context, in model.NewItem) Outcome {
	created, err := d.api.CreateItem(ctx, in)
	if err != nil {
		d.log.Error("add item", zap.String("name", in.Name), zap.Error(err))
		return Outcome{Alert: AlertAddFailed}
	}
	d.log.Info("added item", zap.Int("item_id", created.ID))
	return Outcome{Reload: true}
}

// Delete must only be called once the user has confirmed.
func (d *Dispatcher) Delete(ctx context.Context, id int) Outcome {
	if err := d.api.DeleteItem(ctx, id); err != nil {
		d.log.Error("delete item", zap.Int("item_id", id), zap.Error(err))
		return Outcome{Alert: AlertDeleteFailed}
	}
	d.log.Info("deleted item", zap.Int("item_id", id))
	return Outcome{Reload: true}
}

func (d *Dispatcher) CheckPrice(ctx context.Context, item model.Item) Outcome {
	res, err := d.api.CheckPrice(ctx, item.ID)
	if err != nil {
		d.log.Error("check price", zap.Int("item_id", item.ID), zap.Error(err))
		return Outcome{Alert: AlertCheckFailed}
	}
	if !res.Success || res.Price == nil {
		d.log.Warn("price not extracted", zap.Int("item_id", item.ID), zap.Int("status", res.StatusCode), zap.String("reason", res.Error))
		return Outcome{Alert: AlertCheckNoPrice}
	}
	return Outcome{
		Alert:  "Price updated: " + money.Format(item.Currency, *res.Price),
		Reload: true,
	}
}

// CheckAll checks every item with a URL, one request at a time, in
// snapshot order. A failed check is counted and the loop goes on.
// progress, if set, is called after each check.
func (d *Dispatcher) CheckAll(ctx context.Context, items []model.Item, progress func(done, total int)) Outcome {
	var targets []model.Item
	for _, it := range items {
		if it.HasURL() {
			targets = append(targets, it)
		}
	}
	ok := 0
	for i, it := range targets {
		res, err := d.api.CheckPrice(ctx, it.ID)
		switch {
		case err != nil:
			d.log.Error("check price", zap.Int("item_id", it.ID), zap.Error(err))
		case res.OK():
			ok++
		default:
			d.log.Warn("price not extracted", zap.Int("item_id", it.ID), zap.Int("status", res.StatusCode))
		}
		if progress != nil {
			progress(i+1, len(targets))
		}
		if ctx.Err() != nil {
			d.log.Warn("check all interrupted", zap.Int("done", i+1), zap.Int("total", len(targets)))
			return Outcome{Alert: AlertCheckAllFailed, Reload: true}
		}
	}
	d.log.Info("checked all prices", zap.Int("updated", ok), zap.Int("total", len(targets)))
	return Outcome{Alert: fmt.Sprintf("Updated %d of %d items.", ok, len(targets)), Reload: true}
}

// History fetches the item's price history as a chart series.
func (d *Dispatcher) History(ctx context.Context, item model.Item) (chart.Series, error) {
	entries, err := d.api.PriceHistory(ctx, item.ID)
	if err != nil {
		d.log.Error("price history", zap.Int("item_id", item.ID), zap.Error(err))
		return chart.Series{}, fmt.Errorf("price history %d: %w", item.ID, err)
	}
	if len(entries) == 0 {
		return chart.Series{}, ErrNoHistory
	}
	return chart.NewSeries(entries, item.Currency, d.dateLayout), nil
}

// HistoryAlert maps a History error to its alert text.
func HistoryAlert(err error) string {
	if errors.Is(err, ErrNoHistory) {
		return AlertNoHistory
	}
	return AlertHistoryFailed
}

// Export saves the server-generated CSV into dir and returns its path.
func (d *Dispatcher) Export(ctx context.Context, dir string) (string, Outcome) {
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, ".wishlist-export-*.csv")
	if err != nil {
		d.log.Error("export csv", zap.Error(err))
		return "", Outcome{Alert: AlertExportFailed}
	}
	name, err := d.api.ExportCSV(ctx, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		d.log.Error("export csv", zap.Error(err))
		return "", Outcome{Alert: AlertExportFailed}
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "wishlist_export_" + d.now().UTC().Format(exportFallbackLayout) + ".csv"
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		d.log.Error("export csv", zap.Error(err))
		return "", Outcome{Alert: AlertExportFailed}
	}
	d.log.Info("exported csv", zap.String("path", dst))
	return dst, Outcome{Alert: "Exported to " + dst}
}
