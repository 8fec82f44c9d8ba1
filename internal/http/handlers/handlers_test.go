package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Cadmanstudio/orderrelay/internal/config"
	"github.com/Cadmanstudio/orderrelay/internal/flutterwave"
	"github.com/Cadmanstudio/orderrelay/internal/integrations"
)

const testStaffChatID = int64(-1002507060280)

type sentMessage struct {
	chatID int64
	text   string
	markup *integrations.ReplyMarkup
}

// fakeTelegram records outbound calls instead of hitting the Bot API.
type fakeTelegram struct {
	sent     []sentMessage
	acks     []string
	failNext error
}

func (f *fakeTelegram) SendMessage(ctx context.Context, chatID int64, text string) error {
	return f.SendMessageWithMarkup(ctx, chatID, text, nil)
}

func (f *fakeTelegram) SendMessageWithMarkup(ctx context.Context, chatID int64, text string, markup *integrations.ReplyMarkup) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeTelegram) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	f.acks = append(f.acks, callbackQueryID)
	return nil
}

var errSendFailed = errors.New("telegram unavailable")

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:         ":8080",
		TelegramToken:    "test-token",
		StaffChatID:      testStaffChatID,
		VerificationMode: flutterwave.VerifyNone,
		NotifyCustomer:   true,
	}
}

func newTestHandler(cfg *config.Config) (*Handler, *fakeTelegram) {
	fake := &fakeTelegram{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(fake, cfg, logger), fake
}
