package validation

import (
	"strings"
)

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks presence, length and the minimal shape of an address:
// it must contain both "@" and ".".
func ValidateEmail(email string) error {
	if email == "" {
		return invalid("correo", "El correo es obligatorio.")
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return invalid("correo", "El correo es demasiado largo (máximo 254 caracteres).")
	}

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return invalid("correo", "El correo no es válido.")
	}

	return nil
}
