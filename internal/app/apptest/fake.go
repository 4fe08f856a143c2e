// Package apptest provides an in-memory stand-in for the wishlist API.
package apptest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Makepad-fr/wishlist/internal/api"
	"github.com/Makepad-fr/wishlist/internal/model"
)

var ErrTransport = errors.New("connection refused")

// FakeAPI records calls and replays canned answers. Unset check results
// reply like the server does when extraction fails.
type FakeAPI struct {
	mu sync.Mutex

	Items   []model.Item
	ListErr error
	Lists   int

	Created []model.NewItem
	AddErr  error

	Deleted []int
	DelErr  error

	Checked  []int
	Checks   map[int]api.CheckResult
	CheckErr map[int]error

	History     map[int][]model.PriceHistoryEntry
	HistErr     error
	HistoryReqs []int

	CSV     string
	CSVName string
	CSVErr  error
}

func (f *FakeAPI) ListItems(context.Context) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lists++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]model.Item{}, f.Items...), nil
}

func (f *FakeAPI) CreateItem(_ context.Context, in model.NewItem) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, in)
	if f.AddErr != nil {
		return nil, f.AddErr
	}
	return &model.Item{ID: 100 + len(f.Created), Type: in.Type, Name: in.Name, Currency: in.Currency}, nil
}

func (f *FakeAPI) DeleteItem(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	return f.DelErr
}

func (f *FakeAPI) CheckPrice(_ context.Context, id int) (api.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Checked = append(f.Checked, id)
	if err := f.CheckErr[id]; err != nil {
		return api.CheckResult{}, err
	}
	if res, ok := f.Checks[id]; ok {
		return res, nil
	}
	return api.CheckResult{Success: false, Error: "Could not fetch price", StatusCode: http.StatusBadRequest}, nil
}

func (f *FakeAPI) PriceHistory(_ context.Context, id int) ([]model.PriceHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HistoryReqs = append(f.HistoryReqs, id)
	if f.HistErr != nil {
		return nil, f.HistErr
	}
	return append([]model.PriceHistoryEntry{}, f.History[id]...), nil
}

func (f *FakeAPI) ExportCSV(_ context.Context, w io.Writer) (string, error) {
	if f.CSVErr != nil {
		return "", f.CSVErr
	}
	if _, err := io.WriteString(w, f.CSV); err != nil {
		return "", err
	}
	return f.CSVName, nil
}

// CheckCalls returns a copy of the check-price call log.
func (f *FakeAPI) CheckCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.Checked...)
}

// Success builds a successful check-price reply.
func Success(price string) api.CheckResult {
	p := decimal.RequireFromString(price)
	return api.CheckResult{Success: true, Price: &p, StatusCode: http.StatusOK}
}

// Priced builds an item with a price. url may be empty.
func Priced(id int, name, price, currency, url string) model.Item {
	p := decimal.RequireFromString(price)
	return model.Item{ID: id, Type: "Misc", Name: name, CurrentPrice: &p, Currency: currency, URL: url}
}
