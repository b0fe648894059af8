package initdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/sentinel"
)

func TestParseExtractsUserAndAuthDate(t *testing.T) {
	raw := "user=%7B%22id%22%3A42%2C%22first_name%22%3A%22Ann%22%2C%22username%22%3A%22ann%22%7D&auth_date=1700000000&hash=abc"

	data, err := Parse(raw)
	require.NoError(t, err)

	user, err := data.Identity()
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "42", user.Key())
	assert.Equal(t, int64(1700000000), data.AuthDate.Unix())
}

func TestParseWithoutUserYieldsNoIdentity(t *testing.T) {
	data, err := Parse("auth_date=1700000000&hash=abc")
	require.NoError(t, err)

	_, err = data.Identity()
	assert.ErrorIs(t, err, sentinel.ErrNoIdentity)
}

func TestParseEmptyPayloadFails(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestParseRejectsUndecodableUserField(t *testing.T) {
	_, err := Parse("user=%7Bnot-json&hash=abc")
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestIdentityDisplayName(t *testing.T) {
	assert.Equal(t, "Ann", Identity{FirstName: "Ann"}.DisplayName())
	assert.Equal(t, "Ann Lee", Identity{FirstName: "Ann", LastName: "Lee"}.DisplayName())
}
