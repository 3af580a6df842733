package validator

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lawoffice/intake/internal/intake/domain"
)

// Policy configures a Validator.
type Policy struct {
	// AllowedPracticeAreas restricts the practice area; empty accepts any clean value.
	AllowedPracticeAreas []string
	// Required lists the fields that must be filled.
	Required []Field
	// Upload bounds the attachments.
	Upload UploadPolicy
}

// DefaultRequiredFields are the fields marked required on the contact form.
func DefaultRequiredFields() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldPracticeArea, FieldMessage}
}

// formFields is the order in which fields are validated and reported.
var formFields = []Field{FieldName, FieldEmail, FieldPhone, FieldPracticeArea, FieldMessage}

// Form holds the raw values of the contact form.
type Form struct {
	Name         string
	Email        string
	Phone        string
	PracticeArea string
	Message      string
	BotField     string
	Attachments  []domain.Attachment
}

// Value returns the raw value of a text field.
func (f *Form) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldPracticeArea:
		return f.PracticeArea
	case FieldMessage:
		return f.Message
	case FieldHoneypot:
		return f.BotField
	default:
		return ""
	}
}

// Apply replaces name, email and phone with their normalized form where they validated.
func (f *Form) Apply(res FormResult) {
	if r, ok := res.Fields[FieldName]; ok && r.Valid && r.Sanitized != "" {
		f.Name = r.Sanitized
	}
	if r, ok := res.Fields[FieldEmail]; ok && r.Valid && r.Sanitized != "" {
		f.Email = r.Sanitized
	}
	if r, ok := res.Fields[FieldPhone]; ok && r.Valid && r.Sanitized != "" {
		f.Phone = r.Sanitized
	}
}

// Reset clears every value and staged attachment.
func (f *Form) Reset() {
	*f = Form{}
}

// HoneypotTriggered reports whether the hidden bot field carries a value.
func (f *Form) HoneypotTriggered() bool {
	return strings.TrimSpace(f.BotField) != ""
}

// FormResult is the outcome of validating a whole form.
type FormResult struct {
	Fields map[Field]FieldResult
	// Submission is the sanitized submission, set only when every field passed.
	Submission *domain.Submission
}

// Valid reports whether every field passed.
func (r FormResult) Valid() bool {
	return r.Submission != nil
}

// Errors returns the inline error of every failing field.
func (r FormResult) Errors() map[Field]string {
	errs := make(map[Field]string)
	for field, res := range r.Fields {
		if !res.Valid {
			errs[field] = res.Error
		}
	}
	return errs
}

// FirstError returns the first failing field in form order.
func (r FormResult) FirstError() (*Error, bool) {
	for _, field := range formFields {
		if res, ok := r.Fields[field]; ok && !res.Valid {
			return &Error{Field: field, Message: res.Error}, true
		}
	}
	if res, ok := r.Fields[FieldDocuments]; ok && !res.Valid {
		return &Error{Field: FieldDocuments, Message: res.Error}, true
	}
	return nil, false
}

// Validator applies the contact form rules.
type Validator struct {
	policy   Policy
	required map[Field]struct{}
}

// New creates a Validator. A policy without required fields uses DefaultRequiredFields.
func New(policy Policy) *Validator {
	if policy.Required == nil {
		policy.Required = DefaultRequiredFields()
	}
	required := make(map[Field]struct{}, len(policy.Required))
	for _, f := range policy.Required {
		required[f] = struct{}{}
	}
	return &Validator{policy: policy, required: required}
}

// Policy returns the validator configuration.
func (v *Validator) Policy() Policy {
	return v.policy
}

// IsRequired reports whether field must be filled.
func (v *Validator) IsRequired(field Field) bool {
	_, ok := v.required[field]
	return ok
}

// ValidateField validates one text field. The required check runs before any
// specialized rule, and an empty optional field passes.
func (v *Validator) ValidateField(field Field, value string) FieldResult {
	if value == "" {
		if v.IsRequired(field) {
			return invalid(RequiredMessage)
		}
		return FieldResult{Valid: true}
	}

	switch field {
	case FieldName:
		return ValidateName(value)
	case FieldEmail:
		return ValidateEmail(value)
	case FieldPhone:
		return ValidatePhone(value)
	case FieldMessage:
		return ValidateMessage(value)
	case FieldPracticeArea:
		return ValidatePracticeArea(value, v.policy.AllowedPracticeAreas)
	default:
		if v.IsRequired(field) && strings.TrimSpace(value) == "" {
			return invalid(RequiredMessage)
		}
		return FieldResult{Valid: true, Sanitized: value}
	}
}

// ValidateAttachments checks every attachment and the set-wide limits.
func (v *Validator) ValidateAttachments(files []domain.Attachment) FieldResult {
	upload := v.policy.Upload
	if upload.MaxFiles > 0 && len(files) > upload.MaxFiles {
		return invalid(fmt.Sprintf("Maximum %d files allowed", upload.MaxFiles))
	}

	var total int64
	for _, file := range files {
		if res := ValidateFile(file, upload.MaxFileBytes); !res.Valid {
			return res
		}
		total += file.Size
	}
	if upload.MaxTotalBytes > 0 && total > upload.MaxTotalBytes {
		return invalid(fmt.Sprintf("Total file size exceeds %s limit", humanize.IBytes(uint64(upload.MaxTotalBytes))))
	}
	return FieldResult{Valid: true}
}

// ValidateForm validates every field without stopping at the first failure, so
// each failing field gets its inline error. The sanitized submission is built
// only when all fields pass.
func (v *Validator) ValidateForm(form Form) FormResult {
	res := FormResult{Fields: make(map[Field]FieldResult, len(formFields)+1)}

	valid := true
	for _, field := range formFields {
		fr := v.ValidateField(field, form.Value(field))
		res.Fields[field] = fr
		valid = valid && fr.Valid
	}

	docs := v.ValidateAttachments(form.Attachments)
	res.Fields[FieldDocuments] = docs
	valid = valid && docs.Valid

	if !valid {
		return res
	}

	res.Submission = &domain.Submission{
		Name:         res.Fields[FieldName].Sanitized,
		Email:        res.Fields[FieldEmail].Sanitized,
		Phone:        res.Fields[FieldPhone].Sanitized,
		PracticeArea: domain.OptionalString(res.Fields[FieldPracticeArea].Sanitized),
		Message:      domain.OptionalString(res.Fields[FieldMessage].Sanitized),
		FileNames:    domain.AttachmentNames(form.Attachments),
	}
	return res
}
