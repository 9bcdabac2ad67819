package contact

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether another submission from key is allowed.
type Limiter interface {
	Allow(key string) bool
}

// WindowLimiter allows limit submissions per key in each fixed window.
type WindowLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time
	mu     sync.Mutex
	store  map[string]windowEntry
}

type windowEntry struct {
	count int
	reset time.Time
}

// NewWindowLimiter returns nil when limit or window is not positive; a nil
// limiter allows everything.
func NewWindowLimiter(limit int, window time.Duration, clock func() time.Time) *WindowLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &WindowLimiter{
		limit:  limit,
		window: window,
		clock:  clock,
		store:  make(map[string]windowEntry),
	}
}

func (l *WindowLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "anonymous"
	}
	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.store[key]
	if !ok || now.After(entry.reset) {
		l.store[key] = windowEntry{count: 1, reset: now.Add(l.window)}
		l.pruneExpiredLocked(now)
		return true
	}
	if entry.count >= l.limit {
		return false
	}
	entry.count++
	l.store[key] = entry
	return true
}

func (l *WindowLimiter) pruneExpiredLocked(now time.Time) {
	for key, entry := range l.store {
		if now.After(entry.reset) {
			delete(l.store, key)
		}
	}
}

type clientKey struct{}

// WithClientKey records the caller identity used for throttling, usually the
// client IP.
func WithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKey{}, key)
}

// ClientKey returns the identity stored by WithClientKey.
func ClientKey(ctx context.Context) string {
	v, _ := ctx.Value(clientKey{}).(string)
	return v
}

// Throttled rejects submissions over the limit with KindRateLimited before
// they reach the wrapped sinks. Contact messages and signups are counted
// separately.
type Throttled struct {
	Submitter  Submitter
	Subscriber Subscriber
	Limiter    Limiter
}

func (t Throttled) SubmitContactForm(ctx context.Context, f Form) (Receipt, error) {
	if t.Limiter != nil && !t.Limiter.Allow("contact:"+ClientKey(ctx)) {
		return Receipt{}, &SubmissionError{Kind: KindRateLimited}
	}
	s := t.Submitter
	if s == nil {
		s = Unbound{}
	}
	return s.SubmitContactForm(ctx, f)
}

func (t Throttled) Subscribe(ctx context.Context, signup Signup) (Receipt, error) {
	if t.Limiter != nil && !t.Limiter.Allow("newsletter:"+ClientKey(ctx)) {
		return Receipt{}, &SubmissionError{Kind: KindRateLimited}
	}
	s := t.Subscriber
	if s == nil {
		s = Unbound{}
	}
	return s.Subscribe(ctx, signup)
}
