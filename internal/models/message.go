package models

import (
	"fmt"
	"time"
)

// PaymentLine is one order line as carried on the wire
type PaymentLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// PaymentSettledMessage is published after a transaction succeeds
type PaymentSettledMessage struct {
	TransactionID string        `json:"transaction_id"`
	Method        PaymentMethod `json:"payment_method"`
	Amount        string        `json:"amount"`
	Lines         []PaymentLine `json:"lines"`
	Timestamp     time.Time     `json:"timestamp"`
}

// CreatePaymentSettledMessage builds the notification for a processed transaction
func CreatePaymentSettledMessage(tx *PaymentTransaction) *PaymentSettledMessage {
	lines := make([]PaymentLine, 0, len(tx.lines))
	for _, line := range tx.lines {
		lines = append(lines, PaymentLine{
			Name:      line.Item().Name(),
			Quantity:  line.Quantity(),
			UnitPrice: line.Item().UnitPrice().StringFixed(2),
			LineTotal: line.LineTotal().StringFixed(2),
		})
	}

	return &PaymentSettledMessage{
		TransactionID: tx.ID(),
		Method:        tx.Method(),
		Amount:        tx.Amount().StringFixed(2),
		Lines:         lines,
		Timestamp:     tx.CreatedAt(),
	}
}

// GenerateRoutingKey generates a routing key for payment messages
func GenerateRoutingKey(method PaymentMethod) string {
	return fmt.Sprintf("payments.%s", method)
}
