package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/metrics"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

// ResetService runs the password recovery flow: request a link by email,
// then use the link to choose a new password.
type ResetService struct {
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	authService     *AuthService
	emailService    *EmailService
	signer          *TokenSigner
	appURL          string
	singleUse       bool

	pending sync.WaitGroup
}

func NewResetService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	authService *AuthService,
	emailService *EmailService,
	signer *TokenSigner,
	appURL string,
	singleUse bool,
) *ResetService {
	return &ResetService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		authService:     authService,
		emailService:    emailService,
		signer:          signer,
		appURL:          strings.TrimSuffix(appURL, "/"),
		singleUse:       singleUse,
	}
}

// ResetURL is the absolute link mailed to the user.
func (s *ResetService) ResetURL(token string) string {
	return s.appURL + "/restablecer/" + token
}

// RequestReset mails a reset link when email belongs to a user. The result
// does not reveal whether the address is registered: unknown addresses and
// mail delivery failures both return nil. Only a storage failure is reported.
// The email itself is sent in the background; Wait blocks until it is.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	if validation.ValidateEmail(email) != nil {
		metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetUnknownEmail).Inc()
		return nil
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetUnknownEmail).Inc()
			return nil
		}
		metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetUnavailable).Inc()
		return unavailable("failed to get user", err)
	}

	// signing and delivery happen after the response so a registered
	// address does not answer slower than an unknown one
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.sendReset(context.WithoutCancel(ctx), user)
	}()
	return nil
}

func (s *ResetService) sendReset(ctx context.Context, user *model.User) {
	token, claims, err := s.signer.Issue(user.Email)
	if err != nil {
		slog.Error("failed to sign reset token", "error", err, "user_id", user.ID)
		metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetMailFailed).Inc()
		return
	}

	err = s.emailService.SendPasswordReset(ctx, user.Email, user.Name, s.ResetURL(token), s.signer.MaxAge())
	if err != nil {
		slog.Error("password reset email not delivered", "error", err, "user_id", user.ID, "token_id", claims.TokenID)
		metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetMailFailed).Inc()
		return
	}

	slog.Info("password reset requested", "user_id", user.ID, "token_id", claims.TokenID)
	metrics.ResetRequestsTotal.WithLabelValues(metrics.ResetSent).Inc()
}

// Wait blocks until every reset email queued so far has been handled.
func (s *ResetService) Wait() {
	s.pending.Wait()
}

// CheckReset verifies token for the GET of the reset page and returns the
// email it is bound to.
func (s *ResetService) CheckReset(token string) (string, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return "", err
	}

	if s.singleUse {
		used, err := s.tokenRepository.IsRedeemed(claims.TokenID)
		if err != nil {
			return "", unavailable("failed to check token", err)
		}
		if used {
			return "", ErrInvalidResetToken
		}
	}

	return claims.Email, nil
}

// ConsumeReset verifies token again and overwrites the password of the user
// it is bound to. Nothing is changed on any failure. With single-use enabled
// the token is redeemed in the same transaction as the password update.
func (s *ResetService) ConsumeReset(token, newPassword string) error {
	claims, err := s.signer.Verify(token)
	if err != nil {
		metrics.ResetConsumedTotal.WithLabelValues(metrics.ConsumeInvalid).Inc()
		return err
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	var redemption *model.RedeemedToken
	if s.singleUse {
		redemption = &model.RedeemedToken{
			TokenID:   claims.TokenID,
			Email:     claims.Email,
			ExpiresAt: claims.IssuedAt.Add(s.signer.MaxAge()),
		}
	}

	err = s.userRepository.ResetPassword(claims.Email, hash, redemption)
	switch {
	case errors.Is(err, repository.ErrTokenAlreadyUsed):
		slog.Warn("password reset token replayed", "token_id", claims.TokenID)
		metrics.ResetConsumedTotal.WithLabelValues(metrics.ConsumeReplayed).Inc()
		return ErrInvalidResetToken
	case errors.Is(err, repository.ErrUserNotFound):
		metrics.ResetConsumedTotal.WithLabelValues(metrics.ConsumeInvalid).Inc()
		return ErrInvalidResetToken
	case err != nil:
		metrics.ResetConsumedTotal.WithLabelValues(metrics.ConsumeUnavailable).Inc()
		return unavailable("failed to reset password", err)
	}

	slog.Info("password reset", "token_id", claims.TokenID)
	metrics.ResetConsumedTotal.WithLabelValues(metrics.ConsumeOK).Inc()
	return nil
}
