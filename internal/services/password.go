package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const specialChars = "@#$!%&*"

// IsValidPassword reports whether a candidate password satisfies the
// signup policy: at least 8 characters, with at least one uppercase
// letter, one lowercase letter, one digit, and one of @#$!%&*.
// Classification is first-match per character: a character counts for
// at most one category, and characters outside all four categories
// count for none.
func IsValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case strings.ContainsRune(specialChars, ch):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
