package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("STAFF_CHAT_ID", "-1002507060280")
	t.Setenv("FLW_WEBHOOK_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIRM_DEDUP_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StaffChatID != -1002507060280 {
		t.Fatalf("unexpected staff chat id %d", cfg.StaffChatID)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if !cfg.NotifyCustomer {
		t.Fatalf("NotifyCustomer should default to true")
	}
	if cfg.ConfirmDedupTTL != 10*time.Minute {
		t.Fatalf("unexpected dedup ttl %v", cfg.ConfirmDedupTTL)
	}
}

func TestLoadMissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing bot token")
	}
}

func TestLoadMissingSecretWithVerification(t *testing.T) {
	setRequired(t)
	t.Setenv("FLW_WEBHOOK_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error: hmac mode needs a secret")
	}
}

func TestLoadSecretOptionalWhenVerificationOff(t *testing.T) {
	setRequired(t)
	t.Setenv("FLW_WEBHOOK_SECRET", "")
	t.Setenv("FLW_VERIFICATION_MODE", "none")

	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadNonNumericStaffChat(t *testing.T) {
	setRequired(t)
	t.Setenv("STAFF_CHAT_ID", "https://t.me/+invite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric staff chat id")
	}
}

func TestLoadPortFallback(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected PORT fallback, got %q", cfg.HTTPAddr)
	}
}
