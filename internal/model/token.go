package model

import (
	"time"
)

// ResetClaims is the verified content of a password reset token.
type ResetClaims struct {
	TokenID  string
	Email    string
	IssuedAt time.Time
}

// RedeemedToken marks a reset token as used when single-use resets are on.
type RedeemedToken struct {
	ID         string    `db:"id"`
	TokenID    string    `db:"token_id"`
	Email      string    `db:"correo"`
	RedeemedAt time.Time `db:"canjeado_en"`
	ExpiresAt  time.Time `db:"expira_en"`
}

func (t *RedeemedToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
