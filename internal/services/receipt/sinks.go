package receipt

import (
	"context"
	"fmt"
	"html"
	"io"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sink delivers a rendered receipt somewhere a person can read it
type Sink interface {
	Name() string
	Deliver(ctx context.Context, receipt string) error
}

// ConsoleSink prints receipts to a writer
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Deliver(_ context.Context, receipt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n\n", receipt); err != nil {
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// messageSender is the part of the bot API the Telegram sink uses
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts receipts to a single chat
type TelegramSink struct {
	api    messageSender
	chatID int64
}

// NewTelegramSink authorises the bot token and returns a sink for chatID
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramSink{api: api, chatID: chatID}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Deliver(_ context.Context, receipt string) error {
	// Monospace keeps the receipt columns aligned in the chat client
	msg := tgbotapi.NewMessage(s.chatID, "<pre>"+html.EscapeString(receipt)+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send receipt to chat %d: %w", s.chatID, err)
	}
	return nil
}
