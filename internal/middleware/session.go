package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultSessionCookie   = "LASWELL_SESSION"
	defaultSessionLifetime = 30 * 24 * time.Hour
)

// ErrInvalidSessionConfig is returned by NewSessions for unusable keys.
var ErrInvalidSessionConfig = errors.New("session: invalid config")

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionData is the payload persisted in the signed session cookie.
type SessionData struct {
	ID        string    `json:"id"`
	CSRFToken string    `json:"csrf,omitempty"`
	Flash     *Flash    `json:"flash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	dirty bool
}

// MarkDirty flags the session for writing before the response is sent.
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetFlash stores a message for the next page render.
func (s *SessionData) SetFlash(kind, message string) {
	s.Flash = &Flash{Kind: kind, Message: message}
	s.MarkDirty()
}

// PopFlash returns and clears the pending flash message.
func (s *SessionData) PopFlash() *Flash {
	f := s.Flash
	if f != nil {
		s.Flash = nil
		s.MarkDirty()
	}
	return f
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	// HashKey signs the cookie. When empty a process-ephemeral key is
	// generated.
	HashKey  []byte
	BlockKey []byte
	Secure   bool
	Lifetime time.Duration
}

// Sessions loads and persists SessionData through securecookie.
type Sessions struct {
	codec    *securecookie.SecureCookie
	name     string
	secure   bool
	lifetime time.Duration
}

// NewSessions builds the session codec.
func NewSessions(opts SessionOptions) (*Sessions, error) {
	hashKey := opts.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, fmt.Errorf("%w: could not generate hash key", ErrInvalidSessionConfig)
		}
	}
	switch len(opts.BlockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: block key must be 16, 24 or 32 bytes", ErrInvalidSessionConfig)
	}
	var blockKey []byte
	if len(opts.BlockKey) > 0 {
		blockKey = opts.BlockKey
	}
	name := opts.CookieName
	if name == "" {
		name = defaultSessionCookie
	}
	lifetime := opts.Lifetime
	if lifetime <= 0 {
		lifetime = defaultSessionLifetime
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(lifetime.Seconds()))
	return &Sessions{codec: codec, name: name, secure: opts.Secure, lifetime: lifetime}, nil
}

// Secure reports whether cookies are marked Secure.
func (m *Sessions) Secure() bool { return m.secure }

// Middleware loads or initialises the session and writes it back before the
// first byte of the response when it changed.
func (m *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := m.read(r)
		if sd.ID == "" {
			now := time.Now().UTC()
			sd = &SessionData{ID: randID(), CSRFToken: newCSRFToken(), CreatedAt: now, UpdatedAt: now, dirty: true}
		}
		ctx := withSession(r.Context(), sd)

		sw := &sessionWriter{ResponseWriter: w}
		sw.beforeWrite = func() {
			if sd.dirty || !fromCookie {
				m.write(w, sd)
			}
		}
		next.ServeHTTP(sw, r.WithContext(ctx))
		if !sw.wrote {
			sw.beforeWrite()
		}
	})
}

func (m *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := m.codec.Decode(m.name, c.Value, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func (m *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	encoded, err := m.codec.Encode(m.name, sd)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.lifetime.Seconds()),
	})
	sd.dirty = false
}

// GetSession returns the session from the request context.
func GetSession(r *http.Request) *SessionData {
	if sd := sessionFromContext(r.Context()); sd != nil {
		return sd
	}
	return &SessionData{}
}

type sessionWriter struct {
	http.ResponseWriter
	beforeWrite func()
	wrote       bool
}

func (w *sessionWriter) WriteHeader(code int) {
	if !w.wrote {
		w.wrote = true
		w.beforeWrite()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
