package database

// Sales journal queries. Amounts are stored as integer cents.
const (
	InsertSaleSQL = `
		INSERT INTO sales (transaction_id, payment_method, amount_cents, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	InsertSaleLineSQL = `
		INSERT INTO sale_lines (sale_id, position, name, unit_price_cents, quantity, line_total_cents)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// Menu queries
const (
	SelectMenuItemsSQL = `
		SELECT name, unit_price_cents
		FROM menu_items
		WHERE active
		ORDER BY position ASC, id ASC`
)
