package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Cadmanstudio/orderrelay/internal/relay"
)

type telegramUpdate struct {
	Message       *telegramMessage       `json:"message"`
	CallbackQuery *telegramCallbackQuery `json:"callback_query"`
}

type telegramMessage struct {
	MessageID int          `json:"message_id"`
	Text      string       `json:"text"`
	Chat      telegramChat `json:"chat"`
}

type telegramChat struct {
	ID int64 `json:"id"`
}

type telegramCallbackQuery struct {
	ID   string       `json:"id"`
	From telegramUser `json:"from"`
	Data string       `json:"data"`
}

type telegramUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// TelegramWebhook handles bot updates: confirm-button presses and the
// customer's free-text delivery address replies.
func (h *Handler) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var update telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "invalid_json")
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleConfirmation(w, r, logger, update.CallbackQuery)
	case update.Message != nil:
		h.handleDeliveryAddress(w, r, logger, update.Message)
	default:
		writeError(w, http.StatusBadRequest, "invalid request")
	}
}

func (h *Handler) handleConfirmation(w http.ResponseWriter, r *http.Request, logger *slog.Logger, query *telegramCallbackQuery) {
	if err := h.telegram.AnswerCallbackQuery(r.Context(), query.ID, ""); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "ack_failed", "error", err)
	}

	customerID, err := relay.ParseConfirmPayload(query.Data)
	if err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "malformed_callback", "data", query.Data)
		writeError(w, http.StatusBadRequest, "invalid callback data")
		return
	}
	customerChatID, err := strconv.ParseInt(customerID, 10, 64)
	if err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "malformed_callback", "data", query.Data)
		writeError(w, http.StatusBadRequest, "invalid callback data")
		return
	}

	if h.confirmOnce != nil && !h.confirmOnce.Allow(customerID) {
		logger.Info("action", "action", "telegram_webhook", "status", "duplicate_confirmation", "customer_id", customerID)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Order already confirmed"})
		return
	}

	staffName := relay.StaffDisplayName(query.From.Username, query.From.ID)

	// Dispatch failures stay out of the synchronous response; Telegram would
	// otherwise keep redelivering the update.
	if err := h.telegram.SendMessage(r.Context(), customerChatID, relay.ConfirmationNotice(staffName)); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "customer_dispatch_failed", "customer_id", customerID, "error", err)
	}
	if err := h.telegram.SendMessage(r.Context(), h.cfg.StaffChatID, relay.StaffConfirmationNotice(customerID, staffName)); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "staff_dispatch_failed", "error", err)
	}

	logger.Info("action", "action", "telegram_webhook", "status", "order_confirmed", "customer_id", customerID, "staff", staffName)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Order confirmed"})
}

func (h *Handler) handleDeliveryAddress(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg *telegramMessage) {
	text := strings.TrimSpace(msg.Text)
	if text == "" || msg.Chat.ID == 0 {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if err := h.telegram.SendMessage(r.Context(), h.cfg.StaffChatID, relay.DeliveryAddressRelay(msg.Chat.ID, text)); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "address_relay_failed", "chat_id", msg.Chat.ID, "error", err)
	}

	logger.Info("action", "action", "telegram_webhook", "status", "address_relayed", "chat_id", msg.Chat.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
