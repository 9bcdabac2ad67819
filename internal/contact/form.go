// Package contact holds the contact form and newsletter signup state and the
// collaborator interfaces their submissions are handed to.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"laswell.com/web/internal/sanitize"
)

// Form field names, shared with the rendered inputs.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ErrUnknownField is returned by Set for a name outside Fields.
var ErrUnknownField = errors.New("contact: unknown field")

// Form is the local state of the contact form. It is never persisted.
type Form struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Set replaces exactly one field.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get returns the value of one field, empty for unknown names.
func (f Form) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	}
	return ""
}

// Reset empties all four fields.
func (f *Form) Reset() { *f = Form{} }

// Empty reports whether every field is blank.
func (f Form) Empty() bool { return f == Form{} }

// Normalize strips markup and surrounding whitespace from every field.
func (f *Form) Normalize() {
	f.Name = sanitize.Text(f.Name)
	f.Email = strings.ToLower(sanitize.Text(f.Email))
	f.Subject = sanitize.Text(f.Subject)
	f.Message = sanitize.Text(f.Message)
}

// Validate checks the form and returns a *SubmissionError of kind Invalid
// listing every failing field.
func (f Form) Validate() error {
	return validateStruct(f)
}

// Submit normalises and validates the form, hands it to s and resets the
// form once s accepted it. On failure the form keeps its values so the user
// can correct them.
func (f *Form) Submit(ctx context.Context, s Submitter) (Receipt, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	if s == nil {
		s = Unbound{}
	}
	receipt, err := s.SubmitContactForm(ctx, *f)
	if err != nil {
		return Receipt{}, err
	}
	f.Reset()
	return receipt, nil
}

// Signup is a newsletter subscription request.
type Signup struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// Normalize strips markup and lowercases the address.
func (s *Signup) Normalize() {
	s.Email = strings.ToLower(sanitize.Text(s.Email))
}

func (s Signup) Validate() error {
	return validateStruct(s)
}

// Subscribe validates the signup and hands it to sub.
func (s *Signup) Subscribe(ctx context.Context, sub Subscriber) (Receipt, error) {
	s.Normalize()
	if err := s.Validate(); err != nil {
		return Receipt{}, err
	}
	if sub == nil {
		sub = Unbound{}
	}
	receipt, err := sub.Subscribe(ctx, *s)
	if err != nil {
		return Receipt{}, err
	}
	s.Email = ""
	return receipt, nil
}
