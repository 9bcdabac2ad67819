package contact

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"laswell.com/web/internal/requestctx"
)

var tracer = otel.Tracer("laswell.com/web/internal/contact")

// LogSink acknowledges submissions by writing them to the log. It is the
// default binding for both submission points.
type LogSink struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewLogSink returns a sink writing to logger. The request scoped logger in
// the submission context takes precedence when present.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{
		logger: logger.Named("contact"),
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
}

func (s *LogSink) SubmitContactForm(ctx context.Context, f Form) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "contact.SubmitContactForm")
	defer span.End()

	receipt := Receipt{ID: "msg_" + s.newID(), ReceivedAt: s.now().UTC()}
	span.SetAttributes(
		attribute.String("contact.receipt_id", receipt.ID),
		attribute.Int("contact.message_length", utf8.RuneCountInString(f.Message)),
	)
	s.loggerFor(ctx).Info("contact form received",
		zap.String("receipt_id", receipt.ID),
		zap.String("name", f.Name),
		zap.String("email_domain", emailDomain(f.Email)),
		zap.String("subject", f.Subject),
		zap.Int("message_length", utf8.RuneCountInString(f.Message)),
	)
	span.SetStatus(codes.Ok, "")
	return receipt, nil
}

func (s *LogSink) Subscribe(ctx context.Context, signup Signup) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "contact.Subscribe")
	defer span.End()

	receipt := Receipt{ID: "sub_" + s.newID(), ReceivedAt: s.now().UTC()}
	span.SetAttributes(attribute.String("contact.receipt_id", receipt.ID))
	s.loggerFor(ctx).Info("newsletter signup received",
		zap.String("receipt_id", receipt.ID),
		zap.String("email_domain", emailDomain(signup.Email)),
	)
	span.SetStatus(codes.Ok, "")
	return receipt, nil
}

func (s *LogSink) loggerFor(ctx context.Context) *zap.Logger {
	if l := requestctx.Logger(ctx); l != requestctx.NoopLogger() {
		return l.Named("contact")
	}
	return s.logger
}

// emailDomain keeps the domain only; full addresses stay out of the logs.
func emailDomain(email string) string {
	if _, domain, ok := strings.Cut(email, "@"); ok {
		return domain
	}
	return ""
}
