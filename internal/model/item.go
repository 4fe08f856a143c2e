package model

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one tracked wishlist entry as the API returns it.
// A nil CurrentPrice means the item is not tracked yet.
type Item struct {
	ID           int              `json:"id"`
	Type         string           `json:"item_type"`
	Name         string           `json:"item_name"`
	URL          string           `json:"url"`
	ImagePath    string           `json:"image_path"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Currency     string           `json:"currency"`
	CreatedAt    *Timestamp       `json:"created_at"`
	LastChecked  *Timestamp       `json:"last_checked"`
}

func (it Item) HasPrice() bool { return it.CurrentPrice != nil }
func (it Item) HasURL() bool   { return strings.TrimSpace(it.URL) != "" }

// PriceHistoryEntry is one observed price. Entries are read-only.
type PriceHistoryEntry struct {
	Price     decimal.Decimal `json:"price"`
	CheckedAt Timestamp       `json:"checked_at"`
}

// NewItem is the creation payload sent as a multipart form.
type NewItem struct {
	Type           string
	Name           string
	URL            string
	Price          string // raw form value, "" when unset
	Currency       string
	AutoFetchImage bool
	ImageFile      string // local path, optional
}

// Normalize trims every field and upper-cases the currency. An empty
// currency is left empty; the server applies its default.
func (n NewItem) Normalize() NewItem {
	n.Type = strings.TrimSpace(n.Type)
	n.Name = strings.TrimSpace(n.Name)
	n.URL = strings.TrimSpace(n.URL)
	n.Price = strings.TrimSpace(n.Price)
	n.Currency = strings.ToUpper(strings.TrimSpace(n.Currency))
	n.ImageFile = strings.TrimSpace(n.ImageFile)
	return n
}

// Validate applies the checks the add form makes before submitting.
func (n NewItem) Validate() error {
	if n.Type == "" {
		return errors.New("Category is required")
	}
	if n.Name == "" {
		return errors.New("Name is required")
	}
	if n.URL != "" {
		u, err := url.ParseRequestURI(n.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("URL must start with http:// or https://")
		}
	}
	if n.Price != "" {
		p, err := decimal.NewFromString(n.Price)
		if err != nil || p.IsNegative() {
			return errors.New("Price must be a non-negative number")
		}
	}
	if n.Currency != "" && len(n.Currency) != 3 {
		return errors.New("Currency must be a 3-letter code")
	}
	if n.ImageFile != "" {
		fi, err := os.Stat(n.ImageFile)
		if err != nil || fi.IsDir() {
			return errors.New("Image file not found")
		}
	}
	return nil
}
