package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSigner_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newClock(issued)
	signer := NewTokenSigner(testSecret, "recuperar-salt", 3600*time.Second, c.Now)

	token, claims, err := signer.Issue("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)

	tests := []struct {
		after time.Duration
		ok    bool
	}{
		{0, true},
		{3599 * time.Second, true},
		{3600 * time.Second, true},
		{3600*time.Second + 999*time.Millisecond, true},
		{3601 * time.Second, false},
		{48 * time.Hour, false},
	}

	for _, tt := range tests {
		c.Set(issued.Add(tt.after))
		got, err := signer.Verify(token)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrInvalidResetToken, tt.after.String())
			continue
		}
		require.NoError(t, err, tt.after.String())
		assert.Equal(t, "a@test.com", got.Email)
		assert.Equal(t, claims.TokenID, got.TokenID)
	}
}

func TestTokenSigner_IssuedInFuture(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newClock(issued)
	signer := NewTokenSigner(testSecret, "recuperar-salt", time.Hour, c.Now)

	token, _, err := signer.Issue("a@test.com")
	require.NoError(t, err)

	c.Set(issued.Add(-time.Minute))
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestTokenSigner_RejectsOtherPurposeAndSecret(t *testing.T) {
	c := newClock(time.Now())
	signer := NewTokenSigner(testSecret, "recuperar-salt", time.Hour, c.Now)

	other, _, err := NewTokenSigner(testSecret, "confirmar-salt", time.Hour, c.Now).Issue("a@test.com")
	require.NoError(t, err)
	_, err = signer.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	foreign, _, err := NewTokenSigner("otra-clave", "recuperar-salt", time.Hour, c.Now).Issue("a@test.com")
	require.NoError(t, err)
	_, err = signer.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestTokenSigner_RejectsTampering(t *testing.T) {
	c := newClock(time.Now())
	signer := NewTokenSigner(testSecret, "recuperar-salt", time.Hour, c.Now)

	token, _, err := signer.Issue("a@test.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// swap in the payload of a token for another address
	victim, _, err := signer.Issue("b@test.com")
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(victim, ".")[1] + "." + parts[2]

	for _, bad := range []string{
		"",
		"not-a-token",
		forged,
		token + "x",
		parts[0] + "." + parts[1] + ".",
	} {
		_, err := signer.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidResetToken, bad)
	}
}

func TestTokenSigner_RejectsUnsignedAndMissingClaims(t *testing.T) {
	now := time.Now()
	c := newClock(now)
	signer := NewTokenSigner(testSecret, "recuperar-salt", time.Hour, c.Now)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:  "a@test.com",
		Audience: jwt.ClaimStrings{"recuperar-salt"},
		IssuedAt: jwt.NewNumericDate(now),
		ID:       "x",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = signer.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	noIat, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "a@test.com",
		Audience: jwt.ClaimStrings{"recuperar-salt"},
		ID:       "x",
	}).SignedString(signer.key)
	require.NoError(t, err)
	_, err = signer.Verify(noIat)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
