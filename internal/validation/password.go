package validation

import "unicode/utf8"

const (
	MinPasswordLength = 6
	// bcrypt rejects anything longer than 72 bytes
	MaxPasswordBytes = 72
)

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password", "La contraseña debe tener al menos 6 caracteres.")
	}

	if len(password) > MaxPasswordBytes {
		return invalid("password", "La contraseña no puede superar los 72 caracteres.")
	}

	return nil
}
