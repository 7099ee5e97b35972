package validation

import (
	"math"
	"strconv"
	"strings"
)

// maxPriceCents caps prices at one million.
const maxPriceCents = 100_000_000

// ParsePrice converts a decimal price ("9.99", "9,99") to cents.
// An empty value is a free course.
func ParsePrice(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	amount, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, invalid("precio", "El precio no es válido.")
	}
	if amount < 0 {
		return 0, invalid("precio", "El precio no puede ser negativo.")
	}

	cents := int64(math.Round(amount * 100))
	if cents > maxPriceCents {
		return 0, invalid("precio", "El precio es demasiado alto.")
	}
	return cents, nil
}

// ValidateURL accepts an empty value or an absolute http(s) URL or a root-relative path.
func ValidateURL(field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "/") {
		return nil
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return nil
	}
	return invalid(field, "La URL debe empezar por http:// o https://.")
}
