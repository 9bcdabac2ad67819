package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ErrUnbound is wrapped by the Unavailable error Unbound returns.
var ErrUnbound = errors.New("contact: no submission sink bound")

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

// Submitter receives contact form submissions.
type Submitter interface {
	SubmitContactForm(ctx context.Context, f Form) (Receipt, error)
}

// Subscriber receives newsletter signups.
type Subscriber interface {
	Subscribe(ctx context.Context, s Signup) (Receipt, error)
}

// Kind classifies a failed submission.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindRateLimited
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SubmissionError is the failure result of both submission points.
type SubmissionError struct {
	Kind Kind
	// Fields maps form field names to user facing messages. Only set for
	// KindInvalid.
	Fields map[string]string
	Err    error
}

func (e *SubmissionError) Error() string {
	var b strings.Builder
	b.WriteString("contact: submission ")
	b.WriteString(e.Kind.String())
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString(" [")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Status maps the failure to an HTTP status code.
func (e *SubmissionError) Status() int {
	switch e.Kind {
	case KindInvalid:
		return http.StatusUnprocessableEntity
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// AsSubmissionError unwraps err to a *SubmissionError when it is one.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Unbound is the binding used when no sink is configured. Every submission
// fails with KindUnavailable.
type Unbound struct{}

func (Unbound) SubmitContactForm(context.Context, Form) (Receipt, error) {
	return Receipt{}, &SubmissionError{Kind: KindUnavailable, Err: ErrUnbound}
}

func (Unbound) Subscribe(context.Context, Signup) (Receipt, error) {
	return Receipt{}, &SubmissionError{Kind: KindUnavailable, Err: ErrUnbound}
}
