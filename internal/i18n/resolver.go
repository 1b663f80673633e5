package i18n

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/prn-tf/starterkit/internal/session"
)

// Cookie names checked for a stored locale, in order. Both are written by
// the locale-switch endpoint; "locale" is the conventional key, "lang" is
// kept for compatibility.
const (
	CookieLocale = "locale"
	CookieLang   = "lang"
)

// QueryParam is the query parameter carrying an explicit locale override.
const QueryParam = "lang"

// supportedTags mirrors the Locale enumeration for Accept-Language
// negotiation. Order matters: index 0 is the matcher's fallback.
var supportedTags = []language.Tag{
	language.MustParse("zh-CN"),
	language.English,
}

var supportedLocales = []Locale{LocaleZhCN, LocaleEn}

var matcher = language.NewMatcher(supportedTags)

// Resolver picks the active locale for a request.
type Resolver struct {
	fallback Locale
}

// NewResolver creates a resolver with the given fallback locale.
func NewResolver(fallback Locale) *Resolver {
	if _, ok := ParseLocale(string(fallback)); !ok {
		fallback = DefaultLocale
	}
	return &Resolver{fallback: fallback}
}

// Resolve computes the active locale for the request, checking in strict
// priority order:
//
//  1. the ?lang= query parameter - a valid value is also written into the
//     session so later requests keep it (the caller persists the session);
//  2. the session's stored locale;
//  3. the "locale" then "lang" cookies;
//  4. Accept-Language negotiation, falling back to the default.
//
// It always returns a concrete supported locale. The boolean reports
// whether the session was mutated and needs saving.
func (r *Resolver) Resolve(req *http.Request, sess *session.Session) (Locale, bool) {
	if locale, ok := ParseLocale(req.URL.Query().Get(QueryParam)); ok {
		changed := sess.Lang != string(locale)
		sess.Lang = string(locale)
		return locale, changed
	}

	if locale, ok := ParseLocale(sess.Lang); ok {
		return locale, false
	}

	for _, name := range []string{CookieLocale, CookieLang} {
		if cookie, err := req.Cookie(name); err == nil {
			if locale, ok := ParseLocale(cookie.Value); ok {
				return locale, false
			}
		}
	}

	return r.negotiate(req.Header.Get("Accept-Language")), false
}

// negotiate matches the Accept-Language header against the supported set.
func (r *Resolver) negotiate(header string) Locale {
	if header == "" {
		return r.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return r.fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return r.fallback
	}
	return supportedLocales[index]
}
