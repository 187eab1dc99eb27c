package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pizza-pos/internal/models"
)

// saleLine is a sale_lines row; money is stored in cents
type saleLine struct {
	Position       int
	Name           string
	UnitPriceCents int64
	Quantity       int
	LineTotalCents int64
}

// toCents converts a two-digit currency amount to integer cents
func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// fromCents converts integer cents back to a currency amount
func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func saleLines(tx *models.PaymentTransaction) []saleLine {
	lines := tx.Lines()
	rows := make([]saleLine, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, saleLine{
			Position:       i + 1,
			Name:           line.Item().Name(),
			UnitPriceCents: toCents(line.Item().UnitPrice()),
			Quantity:       line.Quantity(),
			LineTotalCents: toCents(line.LineTotal()),
		})
	}
	return rows
}

// RecordSale writes a processed transaction and its lines in one database transaction
func (db *DB) RecordSale(ctx context.Context, tx *models.PaymentTransaction) error {
	if tx.State() != models.StateProcessed {
		return fmt.Errorf("failed to record sale %s: transaction not processed", tx.ID())
	}

	dbTx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	var saleID int64
	err = dbTx.QueryRow(ctx, InsertSaleSQL,
		tx.ID(), string(tx.Method()), toCents(tx.Amount()), string(tx.Outcome()), tx.CreatedAt(),
	).Scan(&saleID)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	for _, line := range saleLines(tx) {
		_, err = dbTx.Exec(ctx, InsertSaleLineSQL,
			saleID, line.Position, line.Name, line.UnitPriceCents, line.Quantity, line.LineTotalCents)
		if err != nil {
			return fmt.Errorf("failed to insert sale line %d: %w", line.Position, err)
		}
	}

	if err = dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	db.logger.Debug("sale_recorded", fmt.Sprintf("Recorded sale %s", tx.ID()), tx.ID(), map[string]interface{}{
		"sale_id": saleID,
		"amount":  tx.Amount().StringFixed(2),
		"method":  string(tx.Method()),
	})

	return nil
}
