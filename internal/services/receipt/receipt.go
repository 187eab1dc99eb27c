package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"pizza-pos/internal/models"
)

const receiptWidth = 32

// FormatReceipt renders a settled payment as a fixed-width plain-text receipt
func FormatReceipt(shopName string, msg *models.PaymentSettledMessage) string {
	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)

	b.WriteString(center(shopName))
	b.WriteString("\n")
	b.WriteString(msg.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")

	for _, line := range msg.Lines {
		left := fmt.Sprintf("%s x%d", line.Name, line.Quantity)
		b.WriteString(columns(left, formatAmount(line.LineTotal)))
		b.WriteString("\n")
	}

	b.WriteString(rule)
	b.WriteString("\n")
	b.WriteString(columns("TOTAL", formatAmount(msg.Amount)))
	b.WriteString("\n")
	b.WriteString(columns("Paid by", msg.Method.Label()))
	b.WriteString("\n")
	b.WriteString("Ref " + msg.TransactionID)

	return b.String()
}

// formatAmount re-renders a wire amount with the currency symbol
func formatAmount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return models.FormatMoney(d)
}

func columns(left, right string) string {
	pad := receiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= receiptWidth {
		return s
	}
	return strings.Repeat(" ", (receiptWidth-n)/2) + s
}
