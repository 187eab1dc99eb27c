package order

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/models"
)

type fakeJournal struct {
	recorded []*models.PaymentTransaction
	err      error
}

func (f *fakeJournal) RecordSale(ctx context.Context, tx *models.PaymentTransaction) error {
	f.recorded = append(f.recorded, tx)
	return f.err
}

type fakeNotifier struct {
	published []*models.PaymentSettledMessage
	err       error
}

func (f *fakeNotifier) PublishPayment(ctx context.Context, msg *models.PaymentSettledMessage) error {
	f.published = append(f.published, msg)
	return f.err
}

type declineAll struct{}

func (declineAll) Settle(decimal.Decimal, models.PaymentMethod) models.Outcome {
	return models.OutcomeFailed
}

func testCatalog() *models.Catalog {
	return models.NewCatalog([]models.MenuItem{
		models.MustMenuItem("Margherita", "6.00"),
		models.MustMenuItem("Pepperoni", "8.00"),
	})
}

func newTestSession(opts ...Option) *Session {
	return NewSession(testCatalog(), logger.NewWithWriter("test", io.Discard), opts...)
}

func TestSession_CheckoutScenario(t *testing.T) {
	journal := &fakeJournal{}
	notifier := &fakeNotifier{}
	s := newTestSession(WithJournal(journal), WithNotifier(notifier))

	require.True(t, s.AddItem(1, 2))
	view := s.View()
	assert.Equal(t, "$16.00", view.Total)
	assert.Equal(t, []string{"Pepperoni x2 = $16.00"}, view.Lines)

	require.True(t, s.AddItem(0, 1))
	view = s.View()
	assert.Equal(t, "$22.00", view.Total)
	assert.Equal(t, []string{"Pepperoni x2 = $16.00", "Margherita x1 = $6.00"}, view.Lines)

	result, err := s.Checkout(context.Background(), models.CreditCard)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, "22.00", result.Transaction.Amount().StringFixed(2))
	assert.Equal(t, "Paid $22.00 successfully via Credit Card", ResultMessage(result))

	view = s.View()
	assert.Equal(t, "$0.00", view.Total)
	assert.Empty(t, view.Lines)

	require.Len(t, journal.recorded, 1)
	assert.Same(t, result.Transaction, journal.recorded[0])
	require.Len(t, notifier.published, 1)
	assert.Equal(t, "22.00", notifier.published[0].Amount)
	assert.Equal(t, models.CreditCard, notifier.published[0].Method)
}

func TestSession_AddItemGuards(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		quantity int
	}{
		{name: "zero quantity", index: 0, quantity: 0},
		{name: "negative quantity", index: 1, quantity: -3},
		{name: "no selection", index: -1, quantity: 1},
		{name: "index past catalog", index: 2, quantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			require.True(t, s.AddItem(0, 1))
			before := s.View()

			assert.False(t, s.AddItem(tt.index, tt.quantity))
			assert.Equal(t, before, s.View())
		})
	}
}

func TestSession_Clear(t *testing.T) {
	s := newTestSession()
	s.AddItem(0, 3)
	s.AddItem(1, 1)
	s.Clear()

	view := s.View()
	assert.Equal(t, "$0.00", view.Total)
	assert.Empty(t, view.Lines)
}

func TestSession_DeclinedPaymentKeepsOrder(t *testing.T) {
	journal := &fakeJournal{}
	notifier := &fakeNotifier{}
	s := newTestSession(WithGateway(declineAll{}), WithJournal(journal), WithNotifier(notifier))
	s.AddItem(1, 1)

	result, err := s.Checkout(context.Background(), models.MobilePay)
	require.NoError(t, err)
	assert.False(t, result.Succeeded())
	assert.Equal(t, "Payment failed. Please try again.", ResultMessage(result))
	assert.Equal(t, "$8.00", s.View().Total)

	assert.Len(t, journal.recorded, 1)
	assert.Empty(t, notifier.published)
}

func TestSession_FollowUpFailuresDoNotFailPayment(t *testing.T) {
	s := newTestSession(
		WithJournal(&fakeJournal{err: errors.New("db down")}),
		WithNotifier(&fakeNotifier{err: errors.New("broker down")}),
	)
	s.AddItem(0, 1)

	result, err := s.Checkout(context.Background(), models.Cash)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Empty(t, s.View().Lines)
}

func TestSession_TransactionCannotBeReprocessed(t *testing.T) {
	s := newTestSession()
	s.AddItem(0, 1)

	result, err := s.Checkout(context.Background(), models.Cash)
	require.NoError(t, err)

	_, err = result.Transaction.Process()
	assert.True(t, IsMisuse(err))
	assert.True(t, result.Succeeded())
}
