package validators

import "strings"

const minPhoneDigits = 6

// IsPhoneValid accepts digits with an optional leading '+', plus the
// separators people usually type (spaces, dashes, dots, parentheses).
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}
