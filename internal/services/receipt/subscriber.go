package receipt

import (
	"context"
	"errors"
	"fmt"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/messaging"
	"pizza-pos/internal/models"
)

// MessageSource is a queue consumer the subscriber reads settled payments from
type MessageSource interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber turns settled payment messages into receipts
type Subscriber struct {
	source   MessageSource
	sinks    []Sink
	shopName string
	logger   *logger.Logger
}

// NewSubscriber creates a receipt subscriber delivering to every sink
func NewSubscriber(source MessageSource, shopName string, log *logger.Logger, sinks ...Sink) *Subscriber {
	return &Subscriber{
		source:   source,
		sinks:    sinks,
		shopName: shopName,
		logger:   log,
	}
}

// Start consumes until ctx is cancelled or the consumer fails
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	sinkNames := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		sinkNames = append(sinkNames, sink.Name())
	}
	s.logger.Info("service_started", "Receipt subscriber started", requestID, map[string]interface{}{
		"sinks": sinkNames,
	})

	err := s.source.StartConsuming(ctx, s.HandleMessage)

	s.logger.Info("graceful_shutdown", "Stopping receipt subscriber", requestID, nil)
	if closeErr := s.source.Close(); closeErr != nil {
		s.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("receipt consumer failed: %w", err)
	}
	return nil
}

// HandleMessage renders one settled payment and hands it to every sink.
// The message is requeued only when no sink accepted it.
func (s *Subscriber) HandleMessage(ctx context.Context, body []byte) error {
	var msg models.PaymentSettledMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		return fmt.Errorf("failed to parse payment message: %w", err)
	}
	if msg.TransactionID == "" {
		return fmt.Errorf("%w: payment message without transaction id", messaging.ErrDiscard)
	}

	s.logger.Debug("payment_received", "Received settled payment", msg.TransactionID, map[string]interface{}{
		"amount": msg.Amount,
		"method": string(msg.Method),
		"lines":  len(msg.Lines),
	})

	text := FormatReceipt(s.shopName, &msg)

	var delivered int
	var lastErr error
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, text); err != nil {
			s.logger.Error("receipt_delivery_failed", fmt.Sprintf("Failed to deliver receipt via %s", sink.Name()), msg.TransactionID, err, nil)
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 && lastErr != nil {
		return fmt.Errorf("no sink accepted receipt %s: %w", msg.TransactionID, lastErr)
	}

	s.logger.Info("receipt_delivered", "Receipt delivered", msg.TransactionID, map[string]interface{}{
		"sinks_delivered": delivered,
	})
	return nil
}
