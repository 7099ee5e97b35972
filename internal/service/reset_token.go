package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

// TokenSigner issues and verifies password reset tokens.
//
// A token is an HS256 JWT carrying the email as subject, the purpose as
// audience, the issue time and a random ID. The signing key is derived from
// the secret and the purpose, so a token minted for another purpose never
// verifies here.
type TokenSigner struct {
	key     []byte
	purpose string
	maxAge  time.Duration
	now     func() time.Time
}

func NewTokenSigner(secret, purpose string, maxAge time.Duration, now func() time.Time) *TokenSigner {
	if now == nil {
		now = time.Now
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))

	return &TokenSigner{
		key:     mac.Sum(nil),
		purpose: purpose,
		maxAge:  maxAge,
		now:     now,
	}
}

func (s *TokenSigner) MaxAge() time.Duration {
	return s.maxAge
}

// Issue signs a new token bound to email.
func (s *TokenSigner) Issue(email string) (string, *model.ResetClaims, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.New().String(),
		Subject:  email,
		Audience: jwt.ClaimStrings{s.purpose},
		IssuedAt: jwt.NewNumericDate(s.now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", nil, err
	}

	return token, &model.ResetClaims{
		TokenID:  claims.ID,
		Email:    claims.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}

// Verify checks signature, algorithm, purpose and age. Age is compared in
// whole seconds: a token issued at T is accepted at T+maxAge and rejected
// one second later. Every failure is ErrInvalidResetToken.
func (s *TokenSigner) Verify(tokenString string) (*model.ResetClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.purpose),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidResetToken, err)
	}

	if claims.IssuedAt == nil || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidResetToken
	}

	elapsed := s.now().Unix() - claims.IssuedAt.Unix()
	if elapsed > int64(s.maxAge/time.Second) {
		return nil, ErrInvalidResetToken
	}

	return &model.ResetClaims{
		TokenID:  claims.ID,
		Email:    claims.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}
