// Package session implements signed-cookie browser sessions.
// Session state lives entirely in the cookie: a JSON payload signed with
// HMAC-SHA256 so clients cannot forge or tamper with it. Nothing is
// persisted server-side.
package session

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Session is the per-browser state carried by the signed cookie.
type Session struct {
	// UserID identifies the authenticated user; zero means anonymous.
	UserID int64 `json:"user_id,omitempty"`

	// Lang is the stored locale choice, if any.
	Lang string `json:"lang,omitempty"`

	// Flash is a one-shot message rendered and cleared on the next page.
	Flash *Flash `json:"flash,omitempty"`
}

// Flash is a one-shot user-facing message.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// IsAuthenticated reports whether the session belongs to a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

// PopFlash returns the pending flash message (if any) and clears it.
func (s *Session) PopFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}

// SetFlash stores a one-shot message for the next render.
func (s *Session) SetFlash(message, category string) {
	s.Flash = &Flash{Message: message, Category: category}
}

// Config holds session cookie settings.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte

	// CookieName is the session cookie name.
	CookieName string

	// MaxAge is the cookie lifetime; zero yields a browser-session cookie.
	MaxAge time.Duration

	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager loads and saves sessions on HTTP requests.
type Manager struct {
	codec  *Codec
	cfg    Config
	logger zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	return &Manager{
		codec:  NewCodec(cfg.Secret),
		cfg:    cfg,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Load reads the session from the request cookie. A missing cookie, a bad
// signature, or a corrupt payload all yield a fresh anonymous session;
// loading never fails.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return &Session{}
	}

	sess, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.logger.Debug().Err(err).Msg("discarding invalid session cookie")
		return &Session{}
	}
	return sess
}

// Save writes the session back to the response as a signed cookie.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) {
	value, err := m.codec.Encode(sess)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to encode session")
		return
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.cfg.MaxAge > 0 {
		cookie.MaxAge = int(m.cfg.MaxAge / time.Second)
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
