package ledger

import (
	"math"
	"strconv"
	"strings"
)

// MaxQuantity mayor cantidad admitida por movimiento y por existencia; coincide con las columnas INTEGER.
const MaxQuantity = math.MaxInt32

// WithinRange indica si current+delta queda en [-MaxQuantity, MaxQuantity].
func WithinRange(current, delta int) bool {
	n := int64(current) + int64(delta)
	return n >= -MaxQuantity && n <= MaxQuantity
}

// ParseQuantity interpreta una cantidad escrita a mano en una planilla.
// Tolera espacios y texto después de los dígitos ("10 bags", "12.0" → 12) y
// solo toma el entero inicial. ok es false si no hay dígitos iniciales, si el valor
// no es positivo o si supera MaxQuantity.
func ParseQuantity(raw string) (qty int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil || n <= 0 || n > MaxQuantity {
		return 0, false
	}
	return n, true
}
