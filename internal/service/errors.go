package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps storage failures the user can only retry.
	ErrUnavailable        = errors.New("storage unavailable")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrForbidden          = errors.New("forbidden")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
