package flows

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule checks one field value. It returns a user-facing message, or "" when
// the value passes. The whole form is available so rules can compare fields.
type Rule func(value string, form map[string]string) string

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)

	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	numberPattern = regexp.MustCompile(`\d`)
	// The allowed special characters come from the backend's password policy.
	symbolPattern = regexp.MustCompile(`[@$!%*?&#]`)
)

// Required rejects empty values.
func Required(msg string) Rule {
	return func(value string, _ map[string]string) string {
		if value == "" {
			return msg
		}
		return ""
	}
}

// Email rejects malformed addresses. Empty values are left to Required.
func Email() Rule {
	return func(value string, _ map[string]string) string {
		if value != "" && !emailPattern.MatchString(value) {
			return "Please enter a valid email"
		}
		return ""
	}
}

// Password enforces the platform password policy. Each missing character
// class yields its own message so the user knows exactly what to fix.
func Password() Rule {
	return func(value string, _ map[string]string) string {
		switch {
		case utf8.RuneCountInString(value) < 8:
			return "Password must be at least 8 characters"
		case !upperPattern.MatchString(value):
			return "Password must have at least one uppercase letter"
		case !lowerPattern.MatchString(value):
			return "Password must have at least one lowercase letter"
		case !numberPattern.MatchString(value):
			return "Password must have at least one number"
		case !symbolPattern.MatchString(value):
			return "Password must have at least one special character"
		}
		return ""
	}
}

// Digits rejects values containing anything but 0-9.
func Digits(msg string) Rule {
	return func(value string, _ map[string]string) string {
		if value != "" && !digitsPattern.MatchString(value) {
			return msg
		}
		return ""
	}
}

// ExactDigits rejects values that are not exactly n numeric characters.
func ExactDigits(n int, msg string) Rule {
	return func(value string, _ map[string]string) string {
		if utf8.RuneCountInString(value) != n || !digitsPattern.MatchString(value) {
			return msg
		}
		return ""
	}
}

// MinLen rejects values shorter than n characters.
func MinLen(n int, what string) Rule {
	return func(value string, _ map[string]string) string {
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("%s must be at least %d characters", what, n)
		}
		return ""
	}
}

// MaxLen rejects values longer than n characters.
func MaxLen(n int, what string) Rule {
	return func(value string, _ map[string]string) string {
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("%s must be at most %d characters", what, n)
		}
		return ""
	}
}

// Match rejects values that differ from another field. The message is
// attached to the field carrying this rule (the confirming field), never to
// the one it compares against.
func Match(other string, msg string) Rule {
	return func(value string, form map[string]string) string {
		if value != form[other] {
			return msg
		}
		return ""
	}
}
