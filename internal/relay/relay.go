package relay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cadmanstudio/orderrelay/internal/flutterwave"
)

var (
	// ErrNoCustomerID means the payment event carries no Telegram user id.
	ErrNoCustomerID = errors.New("no customer id in payment event")
	// ErrMalformedAction means a callback payload is not a confirm action.
	ErrMalformedAction = errors.New("malformed confirmation payload")
)

const confirmPrefix = "confirm_"

const notProvided = "Not provided"

// CustomerID extracts the paying customer's Telegram id from the charge.
// An explicit meta field wins; otherwise the id rides as the tx_ref segment
// after the first underscore, e.g. "order_42" -> "42".
func CustomerID(data flutterwave.Data) (string, error) {
	if id := strings.TrimSpace(data.Meta.TelegramUserID); id != "" {
		return id, nil
	}
	parts := strings.SplitN(data.TxRef, "_", 3)
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1], nil
	}
	return "", ErrNoCustomerID
}

// ConfirmPayload encodes the customer id into a callback payload.
func ConfirmPayload(customerID string) string {
	return confirmPrefix + customerID
}

// ParseConfirmPayload is the inverse of ConfirmPayload: everything after the
// confirm_ prefix is the customer id.
func ParseConfirmPayload(payload string) (string, error) {
	id, ok := strings.CutPrefix(payload, confirmPrefix)
	if !ok || id == "" {
		return "", ErrMalformedAction
	}
	return id, nil
}

// StaffDisplayName names the staff member who pressed the button, preferring
// the username when Telegram exposes one.
func StaffDisplayName(username string, id int64) string {
	if u := strings.TrimSpace(username); u != "" {
		return "@" + u
	}
	return fmt.Sprintf("User ID: %d", id)
}

// OrderSummary renders the staff-channel order card for a verified charge.
func OrderSummary(data flutterwave.Data, customerID string) string {
	var b strings.Builder
	b.WriteString("📦 *New Order Received!*\n\n")
	fmt.Fprintf(&b, "💰 Amount: %s %s\n", formatAmount(data.Amount), data.Currency)
	fmt.Fprintf(&b, "💳 Payment Type: %s\n", orElse(data.PaymentType, notProvided))
	fmt.Fprintf(&b, "🔗 Transaction Reference: %s\n\n", orElse(data.FlwRef, notProvided))

	b.WriteString("🛒 Items:\n")
	items := itemLines(data.Meta.OrderDetails)
	if len(items) == 0 {
		b.WriteString("No items listed\n")
	} else {
		for _, item := range items {
			b.WriteString("• " + item + "\n")
		}
	}

	fmt.Fprintf(&b, "\n🏠 Hostel: %s\n", orElse(data.Meta.Hostel, notProvided))
	fmt.Fprintf(&b, "🚪 Room: %s\n", orElse(data.Meta.Room, notProvided))
	fmt.Fprintf(&b, "🙋 Recipient: %s\n\n", orElse(data.Meta.Recipient, notProvided))

	fmt.Fprintf(&b, "👤 *Customer ID:* %s\n\n", customerID)
	b.WriteString("Click below to confirm:")
	return b.String()
}

// PaymentReceivedNotice tells the customer the charge landed and staff
// confirmation is pending.
func PaymentReceivedNotice(data flutterwave.Data) string {
	return fmt.Sprintf("✅ We received your payment of %s %s. Your order is awaiting staff confirmation.",
		formatAmount(data.Amount), data.Currency)
}

// ConfirmationNotice is sent to the customer once staff confirms; it asks for
// the delivery address so the free-text relay can pick the reply up.
func ConfirmationNotice(staffName string) string {
	return fmt.Sprintf("✅ Your order has been confirmed by %s.\n\n"+
		"Please reply with your delivery address (hostel and room) so we can deliver it. 📍", staffName)
}

// StaffConfirmationNotice mirrors the confirmation into the staff channel.
func StaffConfirmationNotice(customerID, staffName string) string {
	return fmt.Sprintf("🚀 Order for %s has been confirmed by %s.", customerID, staffName)
}

// DeliveryAddressRelay wraps a customer's free-text reply for the staff channel.
func DeliveryAddressRelay(chatID int64, text string) string {
	return fmt.Sprintf("📍 Delivery Address from %d:\n%s", chatID, text)
}

func itemLines(details string) []string {
	var out []string
	for _, line := range strings.Split(details, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func orElse(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
