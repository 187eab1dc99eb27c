package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how the customer settles an order
type PaymentMethod string

const (
	Cash       PaymentMethod = "cash"
	CreditCard PaymentMethod = "credit_card"
	MobilePay  PaymentMethod = "mobile_pay"
)

// PaymentMethods lists the accepted methods in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, CreditCard, MobilePay}
}

// Label returns the human-readable name shown to the cashier
func (m PaymentMethod) Label() string {
	switch m {
	case CreditCard:
		return "Credit Card"
	case MobilePay:
		return "Mobile Pay"
	default:
		return "Cash"
	}
}

// ParsePaymentMethod maps a free-form label to a method. Case, spaces,
// hyphens and underscores are ignored; anything unrecognized is Cash.
func ParsePaymentMethod(label string) PaymentMethod {
	key := strings.ToLower(label)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	switch key {
	case "creditcard", "card":
		return CreditCard
	case "mobilepay", "mobile":
		return MobilePay
	default:
		return Cash
	}
}

// Outcome is the terminal result of a payment attempt
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// TransactionState tracks whether a transaction has been processed
type TransactionState string

const (
	StatePending   TransactionState = "pending"
	StateProcessed TransactionState = "processed"
)

// Gateway settles an amount with a payment provider
type Gateway interface {
	Settle(amount decimal.Decimal, method PaymentMethod) Outcome
}

// ApproveAll is the in-store gateway: every settlement succeeds
type ApproveAll struct{}

func (ApproveAll) Settle(decimal.Decimal, PaymentMethod) Outcome {
	return OutcomeSucceeded
}

// PaymentTransaction records one attempt to settle an order. It keeps its own
// copy of the order lines so its amount cannot drift after creation.
type PaymentTransaction struct {
	id        string
	createdAt time.Time
	lines     []LineItem
	method    PaymentMethod
	amount    decimal.Decimal
	gateway   Gateway

	state   TransactionState
	outcome Outcome
}

// NewPaymentTransaction snapshots the order and settles through ApproveAll
func NewPaymentTransaction(order *Order, method PaymentMethod) *PaymentTransaction {
	return NewPaymentTransactionWithGateway(order, method, ApproveAll{})
}

// NewPaymentTransactionWithGateway snapshots the order and settles through gateway
func NewPaymentTransactionWithGateway(order *Order, method PaymentMethod, gateway Gateway) *PaymentTransaction {
	if gateway == nil {
		gateway = ApproveAll{}
	}
	return &PaymentTransaction{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		lines:     order.Items(),
		method:    method,
		amount:    order.Total(),
		gateway:   gateway,
		state:     StatePending,
	}
}

// Process attempts settlement once. A decline is reported as OutcomeFailed;
// calling Process again returns ErrTransactionMisuse.
func (t *PaymentTransaction) Process() (Outcome, error) {
	if t.state == StateProcessed {
		return t.outcome, fmt.Errorf("%w: transaction %s", ErrTransactionMisuse, t.id)
	}

	outcome := t.gateway.Settle(t.amount, t.method)
	if outcome != OutcomeSucceeded {
		outcome = OutcomeFailed
	}

	t.outcome = outcome
	t.state = StateProcessed
	return outcome, nil
}

func (t *PaymentTransaction) ID() string { return t.id }
func (t *PaymentTransaction) CreatedAt() time.Time { return t.createdAt }
func (t *PaymentTransaction) Method() PaymentMethod { return t.method }
func (t *PaymentTransaction) Amount() decimal.Decimal { return t.amount }
func (t *PaymentTransaction) State() TransactionState { return t.state }
func (t *PaymentTransaction) Outcome() Outcome { return t.outcome }
func (t *PaymentTransaction) Succeeded() bool { return t.outcome == OutcomeSucceeded }

// Lines returns the order lines captured at construction
func (t *PaymentTransaction) Lines() []LineItem {
	out := make([]LineItem, len(t.lines))
	copy(out, t.lines)
	return out
}
