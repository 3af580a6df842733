// Package validator implements the contact form's client-side validation: per-field
// rules and sanitization, attachment staging, the honeypot short-circuit and the
// explicit submission state of the form.
package validator

import (
	validation "github.com/jellydator/validation"

	rules "github.com/lawoffice/intake/internal/validation"
)

// Field identifies a contact form input by its form name.
type Field string

// Contact form fields.
const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldPracticeArea Field = "practice-area"
	FieldMessage      Field = "message"
	FieldDocuments    Field = "documents"
	FieldHoneypot     Field = "bot-field"
)

// Length bounds of the text fields.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	EmailMaxLength   = 254
	MessageMinLength = 10
	MessageMaxLength = 5000
)

// RequiredMessage is shown for an empty required field before any specialized rule runs.
const RequiredMessage = "This field is required"

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Valid     bool   `json:"valid"`
	Sanitized string `json:"sanitized,omitempty"`
	Error     string `json:"error,omitempty"`
}

func result(sanitized string, err error) FieldResult {
	if err != nil {
		return FieldResult{Valid: false, Error: err.Error()}
	}
	return FieldResult{Valid: true, Sanitized: sanitized}
}

func invalid(message string) FieldResult {
	return FieldResult{Valid: false, Error: message}
}

// ValidateName checks a person name and returns it with null bytes and surrounding whitespace removed.
func ValidateName(name string) FieldResult {
	if name == "" {
		return invalid("Name is required")
	}

	sanitized := rules.SanitizeInput(name)
	err := validation.Validate(sanitized,
		validation.Required.Error("Name must be at least 2 characters"),
		validation.RuneLength(NameMinLength, 0).Error("Name must be at least 2 characters"),
		validation.RuneLength(0, NameMaxLength).Error("Name must be less than 100 characters"),
		rules.PersonName,
		rules.NoInjection(rules.ScriptPatterns).Error("Invalid characters detected in name"),
	)
	return result(sanitized, err)
}

// ValidateEmail checks an address and returns it trimmed and lowercased.
func ValidateEmail(email string) FieldResult {
	if email == "" {
		return invalid("Email is required")
	}

	sanitized := rules.NormalizeEmail(email)
	err := validation.Validate(sanitized,
		validation.Required.Error("Please enter a valid email address"),
		validation.RuneLength(0, EmailMaxLength).Error("Email address is too long"),
		rules.EmailAddress,
		rules.NoHeaderInjection,
		rules.NotLoopbackDomain,
	)
	return result(sanitized, err)
}

// ValidatePhone checks a US phone number and returns it formatted as (XXX) XXX-XXXX.
func ValidatePhone(phone string) FieldResult {
	if phone == "" {
		return invalid("Phone number is required")
	}

	formatted, ok := rules.FormatUSPhone(phone)
	if !ok {
		return result("", validation.Validate(phone, rules.USPhone))
	}
	return result(formatted, nil)
}

// ValidateMessage checks a free-text message and returns it sanitized for embedding in an email.
func ValidateMessage(message string) FieldResult {
	if message == "" {
		return invalid("Message is required")
	}

	sanitized := rules.SanitizeForEmail(message)
	err := validation.Validate(sanitized,
		validation.Required.Error("Message must be at least 10 characters"),
		validation.RuneLength(MessageMinLength, 0).Error("Message must be at least 10 characters"),
		validation.RuneLength(0, MessageMaxLength).Error("Message must be less than 5000 characters"),
		rules.NoInjection(rules.EmbedPatterns).Error("Message contains invalid content"),
		rules.NotSpam,
	)
	return result(sanitized, err)
}

// ValidatePracticeArea checks a selected practice area. A non-empty allowed list
// restricts the value to its members; an empty list accepts any value free of
// injection patterns.
func ValidatePracticeArea(area string, allowed []string) FieldResult {
	if area == "" {
		return invalid("Please select an area of practice")
	}

	sanitized := rules.SanitizeInput(area)
	checks := []validation.Rule{
		validation.Required.Error("Please select an area of practice"),
	}
	if len(allowed) > 0 {
		options := make([]any, len(allowed))
		for i, a := range allowed {
			options[i] = a
		}
		checks = append(checks, validation.In(options...).Error("Invalid practice area selected"))
	}
	checks = append(checks, rules.NoInjection(rules.SelectPatterns).Error("Invalid practice area"))

	return result(sanitized, validation.Validate(sanitized, checks...))
}
