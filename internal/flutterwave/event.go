package flutterwave

// Event is the webhook envelope Flutterwave posts on charge updates.
type Event struct {
	Event string `json:"event" validate:"required"`
	Data  Data   `json:"data"`
}

// Data carries the charge fields this service reads.
type Data struct {
	Status      string  `json:"status" validate:"required"`
	TxRef       string  `json:"tx_ref"`
	FlwRef      string  `json:"flw_ref"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Currency    string  `json:"currency"`
	PaymentType string  `json:"payment_type"`
	Meta        Meta    `json:"meta"`
}

// Meta holds the merchant-supplied metadata attached at checkout.
type Meta struct {
	TelegramUserID string `json:"telegram_user_id"`
	OrderDetails   string `json:"order_details"`
	Hostel         string `json:"hostel"`
	Room           string `json:"room"`
	Recipient      string `json:"recipient"`
}

const (
	eventChargeCompleted = "charge.completed"
	statusSuccessful     = "successful"
)

// Completed reports whether the event is a successful completed charge.
// Anything else must not trigger any notification.
func (e Event) Completed() bool {
	return e.Event == eventChargeCompleted && e.Data.Status == statusSuccessful
}
