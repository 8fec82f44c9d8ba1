package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Cadmanstudio/orderrelay/internal/flutterwave"
)

type Config struct {
	HTTPAddr          string
	TelegramToken     string
	StaffChatID       int64
	GroupInviteLink   string
	FlutterwaveSecret string
	VerificationMode  flutterwave.VerificationMode
	NotifyCustomer    bool
	ConfirmDedupTTL   time.Duration
	Logging           LoggingConfig
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

func Load() (*Config, error) {
	mode, err := flutterwave.ParseMode(getenv("FLW_VERIFICATION_MODE", string(flutterwave.VerifyHMAC)))
	if err != nil {
		return nil, fmt.Errorf("FLW_VERIFICATION_MODE: %w", err)
	}

	dedupTTL, err := getenvDuration("CONFIRM_DEDUP_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:          getenv("HTTP_ADDR", defaultHTTPAddr()),
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		GroupInviteLink:   os.Getenv("GROUP_INVITE_LINK"),
		FlutterwaveSecret: os.Getenv("FLW_WEBHOOK_SECRET"),
		VerificationMode:  mode,
		NotifyCustomer:    getenvBool("NOTIFY_CUSTOMER", true),
		ConfirmDedupTTL:   dedupTTL,
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	staffChat := os.Getenv("STAFF_CHAT_ID")
	if staffChat == "" {
		return nil, fmt.Errorf("STAFF_CHAT_ID is required")
	}
	staffChatID, err := strconv.ParseInt(staffChat, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("STAFF_CHAT_ID must be a numeric chat id: %w", err)
	}
	cfg.StaffChatID = staffChatID

	if cfg.VerificationMode != flutterwave.VerifyNone && cfg.FlutterwaveSecret == "" {
		return nil, fmt.Errorf("FLW_WEBHOOK_SECRET is required when FLW_VERIFICATION_MODE is %q", cfg.VerificationMode)
	}

	return cfg, nil
}

// defaultHTTPAddr honors the platform PORT convention before falling back.
func defaultHTTPAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10m: %w", key, err)
	}
	return parsed, nil
}
