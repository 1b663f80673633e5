package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prn-tf/starterkit/internal/i18n"
)

// localeCookieMaxAge is one year. The cookies are what make a locale choice
// survive browser restarts; the session cookie alone typically does not.
const localeCookieMaxAge = 60 * 60 * 24 * 365

// handleSetLanguage sets the display language and returns to the previous
// page. An unsupported language is ignored: the current locale stays
// unchanged and the redirect still succeeds.
func (rt *Router) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}

	locale, ok := i18n.ParseLocale(chi.URLParam(r, "lang"))
	if !ok {
		rt.logger.Info().Str("lang", chi.URLParam(r, "lang")).Msg("invalid lang")
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	sess := SessionFromContext(r.Context())
	sess.Lang = locale.String()
	rt.sessions.Save(w, sess)

	// Both cookie keys carry the same value for compatibility.
	for _, name := range []string{i18n.CookieLocale, i18n.CookieLang} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    locale.String(),
			Path:     "/",
			MaxAge:   localeCookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
	}

	rt.logger.Info().Str("lang", locale.String()).Msg("language set")

	http.Redirect(w, r, target, http.StatusFound)
}
