package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// telegramMessagesPerSecond stays under the Bot API's ~30 msg/s ceiling.
const telegramMessagesPerSecond = 25

// TelegramClient represents telegram client.
type TelegramClient struct {
	token   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// InlineKeyboardButton represents inline keyboard button.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

// ReplyMarkup represents reply markup.
type ReplyMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// SingleButton builds a one-button inline keyboard.
func SingleButton(text, callbackData string) *ReplyMarkup {
	return &ReplyMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{
			{Text: text, CallbackData: callbackData},
		}},
	}
}

// NewTelegramClient creates telegram client.
func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		token:   token,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(telegramMessagesPerSecond), telegramMessagesPerSecond),
	}
}

// SendMessage sends Markdown text to a chat.
func (t *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	return t.SendMessageWithMarkup(ctx, chatID, text, nil)
}

// SendMessageWithMarkup sends Markdown text with an optional inline keyboard.
func (t *TelegramClient) SendMessageWithMarkup(ctx context.Context, chatID int64, text string, markup *ReplyMarkup) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}
	return t.post(ctx, "sendMessage", payload)
}

// AnswerCallbackQuery acknowledges a button press so the client stops showing
// the pending spinner. Callers treat failures as best effort.
func (t *TelegramClient) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	callbackQueryID = strings.TrimSpace(callbackQueryID)
	if callbackQueryID == "" {
		return nil
	}

	payload := map[string]interface{}{
		"callback_query_id": callbackQueryID,
	}
	if strings.TrimSpace(text) != "" {
		payload["text"] = strings.TrimSpace(text)
	}
	return t.post(ctx, "answerCallbackQuery", payload)
}

// post handles internal post behavior.
func (t *TelegramClient) post(ctx context.Context, method string, payload map[string]interface{}) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram %s status %d", method, resp.StatusCode)
	}
	return nil
}
