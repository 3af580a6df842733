// Package validation provides custom validation rules and sanitizers for contact form fields.
package validation

import (
	"path"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/lawoffice/intake/internal/errors"
)

// Accepted attachment MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDoc  = "application/msword"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEJPEG = "image/jpeg"
	MIMEJPG  = "image/jpg"
	MIMEPNG  = "image/png"
	MIMEText = "text/plain"
)

var (
	nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

	emailRegex = regexp.MustCompile(
		"(?i)^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
			"@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$",
	)

	// ScriptPatterns flag script and markup injection in short text fields.
	ScriptPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)data:text/html`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)expression\(`),
	}

	// EmbedPatterns extend ScriptPatterns for free-text messages.
	EmbedPatterns = append(append([]*regexp.Regexp{}, ScriptPatterns...),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
	)

	// SelectPatterns flag injection in values chosen from a list.
	SelectPatterns = ScriptPatterns[:3]

	headerInjectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\r|\n`),
		regexp.MustCompile(`(?i)bcc:|cc:|to:|from:`),
		regexp.MustCompile(`(?i)content-type:`),
		regexp.MustCompile(`(?i)mime-version:`),
	}

	loopbackDomains = map[string]struct{}{
		"localhost": {},
		"127.0.0.1": {},
		"0.0.0.0":   {},
	}

	unsafeFilenamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\.(exe|bat|cmd|com|scr|vbs|js|jar|app|deb|rpm|dmg)$`),
		regexp.MustCompile(`(?i)\.(php|asp|jsp|cgi|sh|py|rb|pl)$`),
		regexp.MustCompile(`^\.`),
		regexp.MustCompile(`(?i)^(CON|PRN|AUX|NUL|COM[1-9]|LPT[1-9])(\.|$)`),
	}

	// AllowedMIMETypes lists the accepted attachment content types.
	AllowedMIMETypes = []string{MIMEPDF, MIMEDoc, MIMEDocx, MIMEJPEG, MIMEJPG, MIMEPNG, MIMEText}

	extensionMIME = map[string]string{
		"pdf":  MIMEPDF,
		"doc":  MIMEDoc,
		"docx": MIMEDocx,
		"jpg":  MIMEJPEG,
		"jpeg": MIMEJPEG,
		"png":  MIMEPNG,
		"txt":  MIMEText,
	}
)

// SpamWordMinLength and SpamWordMaxRepeats tune the repeated-word heuristic.
const (
	SpamWordMinLength  = 4
	SpamWordMaxRepeats = 20
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// MatchesAny reports whether s matches one of the patterns.
func MatchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// PersonName validates that a name only holds letters, spaces, hyphens, apostrophes and periods.
var PersonName = validation.NewStringRuleWithError(
	nameRegex.MatchString,
	validation.NewError(
		"validation_person_name",
		"Name can only contain letters, spaces, hyphens, apostrophes, and periods",
	),
)

// NoInjection rejects values matching any of the given patterns.
func NoInjection(patterns []*regexp.Regexp) validation.StringRule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return !MatchesAny(s, patterns)
		},
		validation.NewError("validation_injection", "contains invalid content"),
	)
}

// EmailAddress validates email syntax.
var EmailAddress = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "Please enter a valid email address"),
)

// NoHeaderInjection rejects values carrying line breaks or mail header names.
var NoHeaderInjection = NoInjection(headerInjectionPatterns).
	Error("Invalid email format detected")

// NotLoopbackDomain rejects addresses whose domain points at the local machine.
var NotLoopbackDomain = validation.NewStringRuleWithError(
	func(s string) bool {
		at := strings.LastIndex(s, "@")
		if at < 0 {
			return true
		}
		_, loopback := loopbackDomains[strings.ToLower(s[at+1:])]
		return !loopback
	},
	validation.NewError("validation_email_domain", "Invalid email domain"),
)

// USPhone validates that a value normalizes to a 10-digit US number.
var USPhone = validation.NewStringRuleWithError(
	func(s string) bool {
		_, ok := FormatUSPhone(s)
		return ok
	},
	validation.NewError("validation_us_phone", "Please enter a valid 10-digit US phone number"),
)

// NotSpam rejects text where a long word repeats beyond the spam threshold.
var NotSpam = validation.NewStringRuleWithError(
	func(s string) bool {
		return !IsSpam(s)
	},
	validation.NewError("validation_spam", "Message appears to be spam"),
)

// IsSpam reports whether any word of at least SpamWordMinLength characters
// appears more than SpamWordMaxRepeats times, ignoring case.
func IsSpam(text string) bool {
	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len([]rune(word)) < SpamWordMinLength {
			continue
		}
		counts[word]++
		if counts[word] > SpamWordMaxRepeats {
			return true
		}
	}
	return false
}

// SafeFilename rejects executable or script extensions, hidden files and
// Windows reserved device names.
var SafeFilename = validation.NewStringRuleWithError(
	func(s string) bool {
		return !MatchesAny(s, unsafeFilenamePatterns)
	},
	validation.NewError("validation_filename", "file name is not allowed"),
)

// NoNullByte rejects values carrying a null byte.
var NoNullByte = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.ContainsRune(s, 0)
	},
	validation.NewError("validation_null_byte", "contains invalid characters"),
)

// AllowedMIMEType validates an attachment content type against AllowedMIMETypes.
var AllowedMIMEType = validation.In(toAny(AllowedMIMETypes)...).
	Error("is not an accepted format")

// ExtensionMatchesMIME reports whether a known extension agrees with the declared
// content type. Unknown extensions are not checked.
func ExtensionMatchesMIME(filename, mimeType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	expected, known := extensionMIME[ext]
	if !known {
		return true
	}
	return expected == mimeType
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
