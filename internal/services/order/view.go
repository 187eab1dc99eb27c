package order

import (
	"fmt"

	"pizza-pos/internal/models"
)

// MenuEntryView is one selectable catalog row
type MenuEntryView struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Display   string `json:"display"`
}

// LineView is one rendered order row
type LineView struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// OrderView is the full order as shown to the cashier
type OrderView struct {
	Lines []string   `json:"lines"`
	Items []LineView `json:"items"`
	Total string     `json:"total"`
}

// RenderMenu lists the catalog in display order
func RenderMenu(catalog *models.Catalog) []MenuEntryView {
	items := catalog.Items()
	out := make([]MenuEntryView, 0, len(items))
	for i, item := range items {
		price := models.FormatMoney(item.UnitPrice())
		out = append(out, MenuEntryView{
			Index:     i,
			Name:      item.Name(),
			UnitPrice: price,
			Display:   fmt.Sprintf("%s - %s", item.Name(), price),
		})
	}
	return out
}

// FormatLine renders a line as "Pepperoni x2 = $16.00"
func FormatLine(line models.LineItem) string {
	return fmt.Sprintf("%s x%d = %s", line.Item().Name(), line.Quantity(), models.FormatMoney(line.LineTotal()))
}

// RenderOrder builds the view of an order from its current state
func RenderOrder(order *models.Order) OrderView {
	lines := order.Items()
	view := OrderView{
		Lines: make([]string, 0, len(lines)),
		Items: make([]LineView, 0, len(lines)),
		Total: models.FormatMoney(order.Total()),
	}

	for _, line := range lines {
		view.Lines = append(view.Lines, FormatLine(line))
		view.Items = append(view.Items, LineView{
			Name:      line.Item().Name(),
			Quantity:  line.Quantity(),
			UnitPrice: models.FormatMoney(line.Item().UnitPrice()),
			LineTotal: models.FormatMoney(line.LineTotal()),
		})
	}

	return view
}

// ResultMessage is the single dialog text shown after a checkout
func ResultMessage(result *CheckoutResult) string {
	if !result.Succeeded() {
		return "Payment failed. Please try again."
	}
	tx := result.Transaction
	return fmt.Sprintf("Paid %s successfully via %s", models.FormatMoney(tx.Amount()), tx.Method().Label())
}
