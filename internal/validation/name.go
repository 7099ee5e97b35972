package validation

import (
	"strings"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

// ValidateRequired rejects blank values. label is the field name shown to the user.
func ValidateRequired(field, label, value string) error {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return invalid(field, "El campo "+label+" es obligatorio.")
	}

	if len(trimmed) > 100 {
		return invalid(field, "El campo "+label+" es demasiado largo (máximo 100 caracteres).")
	}

	return nil
}

// ValidatePresent rejects only the empty string. Unlike ValidateRequired it
// neither trims nor caps the length.
func ValidatePresent(field, label, value string) error {
	if value == "" {
		return invalid(field, "El campo "+label+" es obligatorio.")
	}
	return nil
}

// ParseRole maps the role chosen at registration to a stored role.
// Empty means student.
func ParseRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", model.RoleStudent, "student":
		return model.RoleStudent, nil
	case model.RoleInstructor, "instructor":
		return model.RoleInstructor, nil
	}
	return "", invalid("rol", "El rol debe ser alumno o profesor.")
}
