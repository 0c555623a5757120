package company

import (
	"fmt"
	"strings"
)

// NormalizeNIP strips separators from a tax id and renders it as XXX-XXX-XX-XX.
// An empty value stays empty.
func NormalizeNIP(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '-' || r == ' ':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidNIP, raw)
		}
	}
	d := digits.String()
	if d == "" {
		return "", nil
	}
	if len(d) != 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidNIP, raw)
	}
	return d[0:3] + "-" + d[3:6] + "-" + d[6:8] + "-" + d[8:10], nil
}
