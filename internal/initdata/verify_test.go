package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signPayload produces a payload signed the way Telegram signs launch data,
// implemented independently of the verifier under test.
func signPayload(t *testing.T, fields map[string]string, botToken string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	sig := hmac.New(sha256.New, secret.Sum(nil))
	sig.Write([]byte(strings.Join(lines, "\n")))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(sig.Sum(nil)))
	return values.Encode()
}

func testFields() map[string]string {
	return map[string]string{
		"user":      `{"id":42,"first_name":"Ann"}`,
		"auth_date": "1700000000",
		"query_id":  "AAE42",
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	raw := signPayload(t, testFields(), "bot-secret")
	v := NewVerifier("bot-secret")

	assert.True(t, v.Verify(raw))
}

func TestVerifyIsDeterministic(t *testing.T) {
	raw := signPayload(t, testFields(), "bot-secret")
	v := NewVerifier("bot-secret")

	assert.Equal(t, v.Verify(raw), v.Verify(raw))
}

func TestVerifyRejectsTamperedHash(t *testing.T) {
	raw := signPayload(t, testFields(), "bot-secret")

	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	hash := values.Get("hash")

	// Flip a single hex digit of the signature.
	flipped := "0"
	if hash[0] == '0' {
		flipped = "1"
	}
	values.Set("hash", flipped+hash[1:])

	v := NewVerifier("bot-secret")
	assert.False(t, v.Verify(values.Encode()))
}

func TestVerifyRejectsTamperedField(t *testing.T) {
	fields := testFields()
	raw := signPayload(t, fields, "bot-secret")

	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	values.Set("user", `{"id":43,"first_name":"Mallory"}`)

	v := NewVerifier("bot-secret")
	assert.False(t, v.Verify(values.Encode()))
}

func TestVerifyWrongSecretFails(t *testing.T) {
	raw := signPayload(t, testFields(), "bot-secret")
	v := NewVerifier("other-secret")

	assert.False(t, v.Verify(raw))
}

func TestVerifyMissingSecretFailsClosed(t *testing.T) {
	raw := signPayload(t, testFields(), "bot-secret")
	v := NewVerifier("")

	assert.NotPanics(t, func() {
		assert.False(t, v.Verify(raw))
	})
}

func TestVerifyMalformedPayloadFailsClosed(t *testing.T) {
	v := NewVerifier("bot-secret")

	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("%zz=broken"))
	assert.False(t, v.Verify("auth_date=1700000000"))
}
