package contact

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSubmitter struct {
	mu      sync.Mutex
	forms   []Form
	signups []Signup
	err     error
}

func (r *recordingSubmitter) SubmitContactForm(_ context.Context, f Form) (Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Receipt{}, r.err
	}
	r.forms = append(r.forms, f)
	return Receipt{ID: "msg_test"}, nil
}

func (r *recordingSubmitter) Subscribe(_ context.Context, s Signup) (Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Receipt{}, r.err
	}
	r.signups = append(r.signups, s)
	return Receipt{ID: "sub_test"}, nil
}

func validForm() Form {
	return Form{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Sizing",
		Message: "Does the oxford run large?",
	}
}

func TestFormSetReplacesOneField(t *testing.T) {
	f := validForm()
	require.NoError(t, f.Set(FieldSubject, "Returns"))

	want := validForm()
	want.Subject = "Returns"
	assert.Equal(t, want, f)

	err := f.Set("phone", "555")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, want, f)
}

func TestFormGet(t *testing.T) {
	f := validForm()
	for _, field := range Fields {
		assert.NotEmpty(t, f.Get(field), field)
	}
	assert.Empty(t, f.Get("unknown"))
}

func TestSubmitResetsFormOnSuccess(t *testing.T) {
	sink := &recordingSubmitter{}
	f := validForm()

	receipt, err := f.Submit(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, "msg_test", receipt.ID)
	assert.True(t, f.Empty())
	require.Len(t, sink.forms, 1)
	assert.Equal(t, validForm(), sink.forms[0])
}

func TestSubmitKeepsValuesOnInvalidInput(t *testing.T) {
	sink := &recordingSubmitter{}
	f := validForm()
	f.Email = "not-an-email"
	f.Message = "   "

	_, err := f.Submit(context.Background(), sink)
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalid, se.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status())
	assert.Equal(t, "Enter a valid email address", se.Fields[FieldEmail])
	assert.Equal(t, "Message is required", se.Fields[FieldMessage])
	assert.NotContains(t, se.Fields, FieldName)

	assert.Equal(t, "not-an-email", f.Email)
	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Empty(t, sink.forms)
}

func TestSubmitReportsMaxLength(t *testing.T) {
	f := validForm()
	f.Name = strings.Repeat("a", 121)

	_, err := f.Submit(context.Background(), &recordingSubmitter{})
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, "Name must be at most 120 characters", se.Fields[FieldName])
}

func TestSubmitNormalizesInput(t *testing.T) {
	sink := &recordingSubmitter{}
	f := Form{
		Name:    "  <b>Ada</b> ",
		Email:   " ADA@Example.COM ",
		Subject: "Hi <script>alert(1)</script>",
		Message: "Fish &amp; chips",
	}

	_, err := f.Submit(context.Background(), sink)
	require.NoError(t, err)
	require.Len(t, sink.forms, 1)
	got := sink.forms[0]
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.NotContains(t, got.Subject, "<script>")
	assert.Equal(t, "Fish & chips", got.Message)
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	boom := errors.New("smtp down")
	sink := &recordingSubmitter{err: &SubmissionError{Kind: KindUnavailable, Err: boom}}
	f := validForm()

	_, err := f.Submit(context.Background(), sink)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, validForm(), f)
}

func TestSubmitWithoutSinkIsUnavailable(t *testing.T) {
	f := validForm()
	_, err := f.Submit(context.Background(), nil)

	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, se.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status())
	assert.ErrorIs(t, err, ErrUnbound)
	assert.False(t, f.Empty())
}

func TestSignupSubscribe(t *testing.T) {
	sink := &recordingSubmitter{}

	s := Signup{Email: " Reader@Example.com"}
	receipt, err := s.Subscribe(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, "sub_test", receipt.ID)
	assert.Empty(t, s.Email)
	require.Len(t, sink.signups, 1)
	assert.Equal(t, "reader@example.com", sink.signups[0].Email)

	bad := Signup{Email: "nope"}
	_, err = bad.Subscribe(context.Background(), sink)
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalid, se.Kind)
	assert.Equal(t, "nope", bad.Email)
}

func TestSubmissionErrorMessage(t *testing.T) {
	err := &SubmissionError{Kind: KindInvalid, Fields: map[string]string{"subject": "x", "email": "y"}}
	assert.Equal(t, "contact: submission invalid [email, subject]", err.Error())
	assert.Equal(t, http.StatusTooManyRequests, (&SubmissionError{Kind: KindRateLimited}).Status())
}

func TestWindowLimiter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	l := NewWindowLimiter(2, time.Minute, clock)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestNilWindowLimiterAllows(t *testing.T) {
	l := NewWindowLimiter(0, time.Minute, nil)
	assert.Nil(t, l)
	assert.True(t, l.Allow("anyone"))
}

func TestThrottledRejectsOverLimit(t *testing.T) {
	sink := &recordingSubmitter{}
	throttled := Throttled{
		Submitter:  sink,
		Subscriber: sink,
		Limiter:    NewWindowLimiter(1, time.Minute, nil),
	}
	ctx := WithClientKey(context.Background(), "10.0.0.1")
	assert.Equal(t, "10.0.0.1", ClientKey(ctx))

	f := validForm()
	_, err := f.Submit(ctx, throttled)
	require.NoError(t, err)

	f = validForm()
	_, err = f.Submit(ctx, throttled)
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, KindRateLimited, se.Kind)
	assert.False(t, f.Empty())

	// Signups are counted separately from messages.
	s := Signup{Email: "reader@example.com"}
	_, err = s.Subscribe(ctx, throttled)
	require.NoError(t, err)
	assert.Len(t, sink.forms, 1)
	assert.Len(t, sink.signups, 1)
}

func TestLogSinkLogsReceipt(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))
	sink.newID = func() string { return "01TEST" }
	sink.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600)) }

	receipt, err := sink.SubmitContactForm(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "msg_01TEST", receipt.ID)
	assert.Equal(t, time.UTC, receipt.ReceivedAt.Location())

	entries := logs.FilterMessage("contact form received").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "msg_01TEST", fields["receipt_id"])
	assert.Equal(t, "example.com", fields["email_domain"])
	assert.NotContains(t, fields, "email")

	receipt, err = sink.Subscribe(context.Background(), Signup{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "sub_01TEST", receipt.ID)
	assert.Equal(t, 1, logs.FilterMessage("newsletter signup received").Len())
}
