package validators

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailValid is a syntax check only; deliverability is not verified.
func IsEmailValid(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
