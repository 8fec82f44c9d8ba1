package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Cadmanstudio/orderrelay/internal/flutterwave"
	"github.com/Cadmanstudio/orderrelay/internal/integrations"
	"github.com/Cadmanstudio/orderrelay/internal/relay"
)

const signatureHeader = "verif-hash"

const confirmButtonLabel = "✅ Confirm Order"

// FlutterwaveWebhook turns a verified completed charge into a staff order
// card with a confirm button. The signature covers the raw body, so the body
// is read before decoding.
func (h *Handler) FlutterwaveWebhook(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := flutterwave.VerifySignature(h.cfg.VerificationMode, h.cfg.FlutterwaveSecret, r.Header.Get(signatureHeader), body); err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "signature_rejected")
		writeError(w, http.StatusForbidden, "signature verification failed")
		return
	}

	var event flutterwave.Event
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "invalid_json")
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Struct(event); err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "invalid_payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !event.Completed() {
		logger.Info("action", "action", "flutterwave_webhook", "status", "ignored", "event", event.Event, "payment_status", event.Data.Status)
		writeError(w, http.StatusBadRequest, "payment not successful")
		return
	}

	customerID, err := relay.CustomerID(event.Data)
	if err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "no_customer_id", "tx_ref", event.Data.TxRef)
		writeError(w, http.StatusBadRequest, "no customer id in payment event")
		return
	}

	summary := relay.OrderSummary(event.Data, customerID)
	markup := integrations.SingleButton(confirmButtonLabel, relay.ConfirmPayload(customerID))
	if err := h.telegram.SendMessageWithMarkup(r.Context(), h.cfg.StaffChatID, summary, markup); err != nil {
		// Non-2xx lets the processor retry the webhook.
		logger.Warn("action", "action", "flutterwave_webhook", "status", "staff_dispatch_failed", "error", err)
		writeError(w, http.StatusBadGateway, "order dispatch failed")
		return
	}

	if h.cfg.NotifyCustomer {
		h.notifyCustomerPaymentReceived(r, logger, customerID, event.Data)
	}

	logger.Info("action", "action", "flutterwave_webhook", "status", "order_dispatched", "customer_id", customerID, "tx_ref", event.Data.TxRef)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Order sent"})
}

// notifyCustomerPaymentReceived is best effort; the staff card already went out.
func (h *Handler) notifyCustomerPaymentReceived(r *http.Request, logger *slog.Logger, customerID string, data flutterwave.Data) {
	chatID, err := strconv.ParseInt(customerID, 10, 64)
	if err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "customer_id_not_numeric", "customer_id", customerID)
		return
	}
	if err := h.telegram.SendMessage(r.Context(), chatID, relay.PaymentReceivedNotice(data)); err != nil {
		logger.Warn("action", "action", "flutterwave_webhook", "status", "customer_notice_failed", "error", err)
	}
}
