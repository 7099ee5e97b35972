package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

type TokenRepository interface {
	IsRedeemed(tokenID string) (bool, error)
	CleanupExpired(now time.Time) (int64, error)
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// insertRedemption records a reset token as used. The UNIQUE token_id
// column makes this the atomic check: only the first insert succeeds.
func insertRedemption(ext sqlx.Execer, t *model.RedeemedToken) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.RedeemedAt.IsZero() {
		t.RedeemedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tokens_canjeados (id, token_id, correo, canjeado_en, expira_en)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := ext.Exec(query, t.ID, t.TokenID, t.Email, t.RedeemedAt, t.ExpiresAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrTokenAlreadyUsed
		}
		return err
	}
	return nil
}

func (r *tokenRepository) IsRedeemed(tokenID string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM tokens_canjeados WHERE token_id = $1`, tokenID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CleanupExpired removes redemption markers whose token could no longer
// verify anyway. Run from the operator CLI.
func (r *tokenRepository) CleanupExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM tokens_canjeados WHERE expira_en < $1`, now)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}
