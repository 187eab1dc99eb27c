package messaging

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/models"
)

type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func newTestConsumer() *Consumer {
	return &Consumer{
		logger:      logger.NewWithWriter("test", io.Discard),
		queueName:   ReceiptsQueue,
		consumerTag: "test",
		prefetch:    1,
	}
}

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantAcked   int
		wantNacked  int
		wantRequeue bool
	}{
		{name: "success acks", wantAcked: 1},
		{name: "transient failure requeues", handlerErr: errors.New("sink down"), wantNacked: 1, wantRequeue: true},
		{name: "discard drops", handlerErr: ErrDiscard, wantNacked: 1, wantRequeue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			delivery := amqp091.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(`{}`)}

			newTestConsumer().processMessage(context.Background(), delivery, func(ctx context.Context, body []byte) error {
				return tt.handlerErr
			})

			assert.Equal(t, tt.wantAcked, ack.acked)
			assert.Equal(t, tt.wantNacked, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}

func TestParseMessage(t *testing.T) {
	var msg models.PaymentSettledMessage
	assert.NoError(t, ParseMessage([]byte(`{"transaction_id":"t-1","payment_method":"cash","amount":"6.00"}`), &msg))
	assert.Equal(t, "t-1", msg.TransactionID)
	assert.Equal(t, models.Cash, msg.Method)

	err := ParseMessage([]byte(`not json`), &msg)
	assert.ErrorIs(t, err, ErrDiscard)
}
