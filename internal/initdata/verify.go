package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"vitrina/internal/platform/metrics"
)

// webAppDataKey is the literal HMAC key Telegram specifies for deriving the
// per-bot signing secret.
const webAppDataKey = "WebAppData"

// Verifier checks that a launch payload was signed by Telegram for this bot.
// It fails closed on every error path and never panics or returns an error to
// the caller; the only side effect is logging and metrics.
type Verifier struct {
	botToken string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithLogger sets the logger used for verification failures.
func WithLogger(logger *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithMetrics enables verification result counters.
func WithMetrics(m *metrics.Metrics) VerifierOption {
	return func(v *Verifier) {
		v.metrics = m
	}
}

// NewVerifier creates a Verifier for the given bot token. An empty token is
// accepted at construction time but causes every verification to fail closed.
func NewVerifier(botToken string, opts ...VerifierOption) *Verifier {
	v := &Verifier{botToken: botToken}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// Verify reports whether the raw payload carries a valid Telegram signature.
//
// The scheme, reproduced exactly for compatibility:
//  1. parse the payload as key=value pairs and pop the hash field,
//  2. sort the remaining keys lexicographically and join key=value lines with \n,
//  3. secret = HMAC-SHA256(key="WebAppData", message=botToken),
//  4. signature = hex(HMAC-SHA256(key=secret, message=dataCheckString)),
//  5. compare with the popped hash in constant time.
func (v *Verifier) Verify(raw string) bool {
	if v.botToken == "" {
		// Configuration error: do not reveal specifics to callers, just deny.
		v.logger.Error("telegram bot token not configured, failing verification closed")
		v.count("no_secret")
		return false
	}

	values, err := url.ParseQuery(raw)
	if err != nil || raw == "" {
		v.logger.Warn("malformed init-data payload", "error", err)
		v.count("malformed")
		return false
	}

	expected := values.Get("hash")
	if expected == "" {
		v.logger.Warn("init-data payload missing hash field")
		v.count("malformed")
		return false
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(v.botToken))

	sig := hmac.New(sha256.New, secret.Sum(nil))
	sig.Write([]byte(dataCheckString))
	computed := hex.EncodeToString(sig.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(expected)) {
		v.count("bad_signature")
		return false
	}
	v.count("ok")
	return true
}

func (v *Verifier) count(result string) {
	if v.metrics != nil {
		v.metrics.PayloadVerifications.WithLabelValues(result).Inc()
	}
}
