package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/session"
)

type contextKey int

const (
	sessionContextKey contextKey = iota
	localeContextKey
)

// SessionFromContext returns the session loaded for the current request.
func SessionFromContext(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionContextKey).(*session.Session); ok {
		return sess
	}
	return &session.Session{}
}

// LocaleFromContext returns the locale resolved for the current request.
func LocaleFromContext(ctx context.Context) i18n.Locale {
	if locale, ok := ctx.Value(localeContextKey).(i18n.Locale); ok {
		return locale
	}
	return i18n.DefaultLocale
}

// statusRecorder captures the response status code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// requestLogger logs every request with a generated request id and records
// request metrics.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		rt.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")

		rt.metrics.ObserveRequest(r.Method, r.URL.Path, rec.status)
	})
}

// withSessionLocale loads the session cookie and resolves the active locale
// for every request. Locale resolution runs regardless of login state; if a
// valid ?lang= parameter changed the session, the updated session is saved
// immediately so the choice sticks on subsequent requests.
func (rt *Router) withSessionLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := rt.sessions.Load(r)
		locale, changed := rt.resolver.Resolve(r, sess)
		if changed {
			rt.sessions.Save(w, sess)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		ctx = context.WithValue(ctx, localeContextKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireLogin gates protected routes. Anonymous requests are redirected to
// the login page with the attempted path carried in the next parameter so
// login can return the user to their original destination.
func (rt *Router) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.IsAuthenticated() {
			rt.logger.Info().Str("path", r.URL.Path).Msg("unauthorized access, redirect to login")
			http.Redirect(w, r, LoginRedirectTarget(r.URL.Path), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRedirectTarget builds the login redirect for an attempted path.
func LoginRedirectTarget(path string) string {
	return "/auth/login?next=" + url.QueryEscape(path)
}

// sanitizeNext accepts only same-site destinations for the post-login
// redirect: a path starting with a single "/". Anything else falls back to
// the dashboard.
func sanitizeNext(next string) string {
	if len(next) > 1 && next[0] == '/' && next[1] != '/' {
		return next
	}
	return "/dashboard"
}
