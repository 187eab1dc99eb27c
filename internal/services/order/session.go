package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/models"
)

// SalesJournal stores processed transactions
type SalesJournal interface {
	RecordSale(ctx context.Context, tx *models.PaymentTransaction) error
}

// PaymentNotifier announces settled payments
type PaymentNotifier interface {
	PublishPayment(ctx context.Context, msg *models.PaymentSettledMessage) error
}

// Session is the state of one till: the shared catalog and the order being built.
// It is not safe for concurrent use.
type Session struct {
	catalog *models.Catalog
	order   *models.Order

	gateway  models.Gateway
	journal  SalesJournal
	notifier PaymentNotifier
	logger   *logger.Logger
}

// Option configures a Session
type Option func(*Session)

// WithGateway settles payments through g instead of approving everything
func WithGateway(g models.Gateway) Option {
	return func(s *Session) { s.gateway = g }
}

// WithJournal records every processed transaction in j
func WithJournal(j SalesJournal) Option {
	return func(s *Session) { s.journal = j }
}

// WithNotifier publishes settled payments through n
func WithNotifier(n PaymentNotifier) Option {
	return func(s *Session) { s.notifier = n }
}

// NewSession starts a session with an empty order
func NewSession(catalog *models.Catalog, log *logger.Logger, opts ...Option) *Session {
	s := &Session{
		catalog: catalog,
		order:   models.NewOrder(),
		gateway: models.ApproveAll{},
		logger:  log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckoutResult is what the adapter needs to show the payment dialog
type CheckoutResult struct {
	Transaction *models.PaymentTransaction
	Outcome     models.Outcome
}

// Succeeded reports whether the payment went through
func (r *CheckoutResult) Succeeded() bool {
	return r.Outcome == models.OutcomeSucceeded
}

func (s *Session) Catalog() *models.Catalog {
	return s.catalog
}

// Menu renders the catalog
func (s *Session) Menu() []MenuEntryView {
	return RenderMenu(s.catalog)
}

// View renders the current order
func (s *Session) View() OrderView {
	return RenderOrder(s.order)
}

// AddItem adds quantity of the catalog entry at index. A missing selection or a
// quantity below 1 leaves the order unchanged and returns false.
func (s *Session) AddItem(index, quantity int) bool {
	line, err := s.newLine(index, quantity)
	if err != nil {
		s.logger.Debug("add_item_ignored", "Ignored add to order", "", map[string]interface{}{
			"menu_index": index,
			"quantity":   quantity,
			"reason":     err.Error(),
		})
		return false
	}

	s.order.AddItem(line)
	s.logger.Debug("item_added", fmt.Sprintf("Added %s x%d", line.Item().Name(), line.Quantity()), "", map[string]interface{}{
		"menu_index": index,
		"line_total": line.LineTotal().StringFixed(2),
		"order_size": s.order.Len(),
	})
	return true
}

func (s *Session) newLine(index, quantity int) (models.LineItem, error) {
	item, ok := s.catalog.Item(index)
	if !ok {
		return models.LineItem{}, models.ErrNoSelection
	}
	if quantity < 1 {
		return models.LineItem{}, models.ErrInvalidQuantity
	}
	return models.NewLineItem(item, quantity)
}

// Clear empties the order
func (s *Session) Clear() {
	s.order.Clear()
	s.logger.Debug("order_cleared", "Order cleared", "", nil)
}

// Checkout pays the current order with method. On success the order is cleared,
// the sale is journaled and a notification is published; failures of those
// follow-ups are logged and do not change the outcome.
func (s *Session) Checkout(ctx context.Context, method models.PaymentMethod) (*CheckoutResult, error) {
	tx := models.NewPaymentTransactionWithGateway(s.order, method, s.gateway)
	requestID := tx.ID()

	outcome, err := tx.Process()
	if err != nil {
		s.logger.Error("payment_misuse", "Payment transaction processed twice", requestID, err, nil)
		return nil, err
	}

	fields := map[string]interface{}{
		"amount":  tx.Amount().StringFixed(2),
		"method":  string(method),
		"outcome": string(outcome),
		"lines":   len(tx.Lines()),
	}

	if outcome == models.OutcomeSucceeded {
		s.order.Clear()
		s.logger.Info("payment_succeeded", "Payment processed successfully", requestID, fields)
	} else {
		s.logger.Info("payment_failed", "Payment was declined", requestID, fields)
	}

	s.afterPayment(ctx, tx)

	return &CheckoutResult{Transaction: tx, Outcome: outcome}, nil
}

func (s *Session) afterPayment(ctx context.Context, tx *models.PaymentTransaction) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.journal != nil {
		if err := s.journal.RecordSale(ctx, tx); err != nil {
			s.logger.Error("sale_record_failed", "Failed to record sale", tx.ID(), err, nil)
		}
	}

	if s.notifier != nil && tx.Succeeded() {
		if err := s.notifier.PublishPayment(ctx, models.CreatePaymentSettledMessage(tx)); err != nil {
			s.logger.Error("payment_publish_failed", "Failed to publish payment notification", tx.ID(), err, nil)
		}
	}
}

// IsMisuse reports whether err is a programmer error rather than a business outcome
func IsMisuse(err error) bool {
	return errors.Is(err, models.ErrTransactionMisuse)
}
