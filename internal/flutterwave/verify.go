package flutterwave

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// VerificationMode selects how the verif-hash header is checked.
type VerificationMode string

const (
	// VerifyHMAC checks a hex HMAC-SHA256 of the raw body keyed by the secret.
	VerifyHMAC VerificationMode = "hmac"
	// VerifySecret checks plain equality of the header and the secret.
	VerifySecret VerificationMode = "secret"
	// VerifyNone trusts the payload as-is.
	VerifyNone VerificationMode = "none"
)

// ErrBadSignature rejects a webhook that did not come from the processor.
var ErrBadSignature = errors.New("signature verification failed")

// ParseMode parses a verification mode from configuration.
func ParseMode(value string) (VerificationMode, error) {
	switch VerificationMode(strings.ToLower(strings.TrimSpace(value))) {
	case VerifyHMAC:
		return VerifyHMAC, nil
	case VerifySecret:
		return VerifySecret, nil
	case VerifyNone:
		return VerifyNone, nil
	}
	return "", fmt.Errorf("unknown verification mode %q", value)
}

// VerifySignature checks the verif-hash header against the raw request body
// under the given mode. Comparisons are constant time in every mode.
func VerifySignature(mode VerificationMode, secret, signature string, body []byte) error {
	switch mode {
	case VerifyNone:
		return nil
	case VerifySecret:
		if subtle.ConstantTimeCompare([]byte(signature), []byte(secret)) != 1 {
			return ErrBadSignature
		}
		return nil
	case VerifyHMAC:
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
			return ErrBadSignature
		}
		return nil
	}
	return fmt.Errorf("unknown verification mode %q", mode)
}
