package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxEmailTextLength caps text embedded in a notification.
const MaxEmailTextLength = 10000

var (
	tagRegex         = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
)

// SanitizeInput removes null bytes and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(strings.ReplaceAll(input, "\x00", ""))
}

// SanitizeForEmail removes control characters other than tab and line breaks,
// strips markup tags and truncates to MaxEmailTextLength characters.
func SanitizeForEmail(text string) string {
	sanitized := controlCharRegex.ReplaceAllString(text, "")
	sanitized = tagRegex.ReplaceAllString(sanitized, "")

	runes := []rune(sanitized)
	if len(runes) > MaxEmailTextLength {
		sanitized = string(runes[:MaxEmailTextLength])
	}
	return sanitized
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FormatUSPhone keeps the digits of a phone number, strips a leading country
// code 1 from 11-digit values and formats the result as (XXX) XXX-XXXX.
func FormatUSPhone(phone string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), true
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return len([]rune(s))
}

