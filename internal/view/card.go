// Package view maps items to terminal markup. Everything here is a pure
// function of its inputs; nothing touches the terminal.
package view

import (
	"net/url"

	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/money"
)

type Action string

const (
	ActionCheckPrice Action = "Check Price"
	ActionHistory    Action = "History"
	ActionDelete     Action = "Delete"
)

// Keys bound to each per-item action.
var ActionKeys = map[Action]string{
	ActionCheckPrice: "p",
	ActionHistory:    "h",
	ActionDelete:     "d",
}

// Card is the view model for one item. Empty strings mean "absent".
type Card struct {
	ID          int
	Image       string
	Category    string
	Name        string
	Price       string
	Currency    string
	LastChecked string
	CreatedAt   string
	URL         string
	Host        string
	Actions     []Action
}

func NewCard(it model.Item, dateLayout string) Card {
	c := Card{
		ID:       it.ID,
		Image:    it.ImagePath,
		Category: it.Type,
		Name:     it.Name,
		Currency: it.Currency,
		URL:      it.URL,
	}
	if it.HasPrice() {
		c.Price = money.Format(it.Currency, *it.CurrentPrice)
	}
	if it.LastChecked != nil {
		c.LastChecked = it.LastChecked.Date(dateLayout)
	}
	if it.CreatedAt != nil {
		c.CreatedAt = it.CreatedAt.Date(dateLayout)
	}
	if it.HasURL() {
		c.Host = it.URL
		if u, err := url.Parse(it.URL); err == nil && u.Host != "" {
			c.Host = u.Host
		}
		c.Actions = append(c.Actions, ActionCheckPrice)
	}
	c.Actions = append(c.Actions, ActionHistory, ActionDelete)
	return c
}

func (c Card) Has(a Action) bool {
	for _, x := range c.Actions {
		if x == a {
			return true
		}
	}
	return false
}

func Cards(items []model.Item, dateLayout string) []Card {
	out := make([]Card, 0, len(items))
	for _, it := range items {
		out = append(out, NewCard(it, dateLayout))
	}
	return out
}
