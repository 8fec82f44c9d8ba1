package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Cadmanstudio/orderrelay/internal/config"
	"github.com/Cadmanstudio/orderrelay/internal/integrations"
	"github.com/Cadmanstudio/orderrelay/internal/rate"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// telegramSender is the outbound surface of integrations.TelegramClient.
type telegramSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithMarkup(ctx context.Context, chatID int64, text string, markup *integrations.ReplyMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error
}

type Handler struct {
	telegram  telegramSender
	cfg       *config.Config
	logger    *slog.Logger
	validator *validator.Validate
	// confirmOnce is nil unless confirmation dedup is configured; with it
	// set, replayed confirmations inside the TTL window are swallowed.
	confirmOnce *rate.WindowLimiter
}

func New(telegram telegramSender, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var confirmOnce *rate.WindowLimiter
	if cfg.ConfirmDedupTTL > 0 {
		confirmOnce = rate.NewWindowLimiter(1, cfg.ConfirmDedupTTL)
	}
	return &Handler{
		telegram:    telegram,
		cfg:         cfg,
		logger:      logger,
		validator:   validator.New(),
		confirmOnce: confirmOnce,
	}
}

func (h *Handler) loggerForRequest(r *http.Request) *slog.Logger {
	logger := h.logger
	if logger == nil {
		return slog.Default()
	}
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	return logger
}
