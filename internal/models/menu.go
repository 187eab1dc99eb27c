package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MenuItem is a purchasable product. It is immutable once constructed.
type MenuItem struct {
	name      string
	unitPrice decimal.Decimal
}

// NewMenuItem validates and builds a menu item
func NewMenuItem(name string, unitPrice decimal.Decimal) (MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MenuItem{}, fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	if unitPrice.IsNegative() {
		return MenuItem{}, fmt.Errorf("%w: price of %s must not be negative", ErrInvalidMenuItem, name)
	}
	if !unitPrice.Equal(unitPrice.Round(2)) {
		return MenuItem{}, fmt.Errorf("%w: price of %s has more than two decimal places", ErrInvalidMenuItem, name)
	}
	return MenuItem{name: name, unitPrice: unitPrice}, nil
}

// MustMenuItem is NewMenuItem for static catalogs; it panics on invalid input
func MustMenuItem(name, unitPrice string) MenuItem {
	price, err := ParseMoney(unitPrice)
	if err != nil {
		panic(err)
	}
	item, err := NewMenuItem(name, price)
	if err != nil {
		panic(err)
	}
	return item
}

func (m MenuItem) Name() string { return m.name }
func (m MenuItem) UnitPrice() decimal.Decimal { return m.unitPrice }

// Catalog is the fixed list of items offered during a session
type Catalog struct {
	items []MenuItem
}

// NewCatalog creates a catalog; the input slice is copied
func NewCatalog(items []MenuItem) *Catalog {
	c := &Catalog{items: make([]MenuItem, len(items))}
	copy(c.items, items)
	return c
}

// DefaultCatalog returns the shop's standard pizza menu
func DefaultCatalog() *Catalog {
	return NewCatalog([]MenuItem{
		MustMenuItem("Margherita", "6.00"),
		MustMenuItem("Pepperoni", "8.00"),
		MustMenuItem("Hawaiian", "9.00"),
	})
}

// Items returns the menu in display order
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an entry by its zero-based position
func (c *Catalog) Item(index int) (MenuItem, bool) {
	if index < 0 || index >= len(c.items) {
		return MenuItem{}, false
	}
	return c.items[index], true
}

func (c *Catalog) Len() int {
	return len(c.items)
}
