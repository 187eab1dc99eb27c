package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one entry of an order: a menu item and the requested quantity
type LineItem struct {
	item     MenuItem
	quantity int
}

// NewLineItem binds an item to a quantity of at least 1
func NewLineItem(item MenuItem, quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return LineItem{item: item, quantity: quantity}, nil
}

func (l LineItem) Item() MenuItem { return l.item }
func (l LineItem) Quantity() int { return l.quantity }

// LineTotal is unit price times quantity, computed on every call
func (l LineItem) LineTotal() decimal.Decimal {
	return l.item.UnitPrice().Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Order is the in-progress list of line items for one customer.
// Lines are kept in insertion order and never merged.
type Order struct {
	lines []LineItem
}

// NewOrder creates an empty order
func NewOrder() *Order {
	return &Order{}
}

// AddItem appends a line to the end of the order
func (o *Order) AddItem(line LineItem) {
	o.lines = append(o.lines, line)
}

// Items returns a copy of the lines in insertion order
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.lines))
	copy(out, o.lines)
	return out
}

// Total sums every line total; zero for an empty order
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Clear removes all lines
func (o *Order) Clear() {
	o.lines = nil
}

func (o *Order) Len() int { return len(o.lines) }
func (o *Order) IsEmpty() bool { return len(o.lines) == 0 }
