package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prn-tf/starterkit/internal/session"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		raw    string
		want   Locale
		wantOK bool
	}{
		{"zh_CN", LocaleZhCN, true},
		{"en", LocaleEn, true},
		{"", "", false},
		{"fr", "", false},
		{"zh-CN", "", false},
		{"EN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			locale, ok := ParseLocale(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, locale)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(DefaultLocale)

	newRequest := func(target string) *http.Request {
		return httptest.NewRequest(http.MethodGet, target, nil)
	}

	t.Run("query param wins over everything", func(t *testing.T) {
		req := newRequest("/?lang=en")
		req.AddCookie(&http.Cookie{Name: CookieLocale, Value: "zh_CN"})
		req.Header.Set("Accept-Language", "zh-CN")
		sess := &session.Session{Lang: "zh_CN"}

		locale, changed := resolver.Resolve(req, sess)
		require.Equal(t, LocaleEn, locale)
		require.True(t, changed)
		require.Equal(t, "en", sess.Lang)
	})

	t.Run("query param matching session is not a change", func(t *testing.T) {
		sess := &session.Session{Lang: "en"}

		locale, changed := resolver.Resolve(newRequest("/?lang=en"), sess)
		require.Equal(t, LocaleEn, locale)
		require.False(t, changed)
	})

	t.Run("invalid query param is ignored", func(t *testing.T) {
		sess := &session.Session{Lang: "en"}

		locale, changed := resolver.Resolve(newRequest("/?lang=fr"), sess)
		require.Equal(t, LocaleEn, locale)
		require.False(t, changed)
		require.Equal(t, "en", sess.Lang)
	})

	t.Run("session wins over cookies", func(t *testing.T) {
		req := newRequest("/")
		req.AddCookie(&http.Cookie{Name: CookieLocale, Value: "zh_CN"})
		sess := &session.Session{Lang: "en"}

		locale, changed := resolver.Resolve(req, sess)
		require.Equal(t, LocaleEn, locale)
		require.False(t, changed)
	})

	t.Run("locale cookie wins over lang cookie", func(t *testing.T) {
		req := newRequest("/")
		req.AddCookie(&http.Cookie{Name: CookieLocale, Value: "en"})
		req.AddCookie(&http.Cookie{Name: CookieLang, Value: "zh_CN"})

		locale, _ := resolver.Resolve(req, &session.Session{})
		require.Equal(t, LocaleEn, locale)
	})

	t.Run("lang cookie used when locale cookie invalid", func(t *testing.T) {
		req := newRequest("/")
		req.AddCookie(&http.Cookie{Name: CookieLocale, Value: "fr"})
		req.AddCookie(&http.Cookie{Name: CookieLang, Value: "en"})

		locale, _ := resolver.Resolve(req, &session.Session{})
		require.Equal(t, LocaleEn, locale)
	})

	t.Run("accept-language negotiation", func(t *testing.T) {
		tests := []struct {
			header string
			want   Locale
		}{
			{"en-US,en;q=0.9", LocaleEn},
			{"en", LocaleEn},
			{"zh-CN,zh;q=0.9,en;q=0.8", LocaleZhCN},
			{"zh", LocaleZhCN},
			{"fr-FR,fr;q=0.9", DefaultLocale},
			{"", DefaultLocale},
			{";;;garbage", DefaultLocale},
		}

		for _, tt := range tests {
			req := newRequest("/")
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}

			locale, changed := resolver.Resolve(req, &session.Session{})
			require.Equal(t, tt.want, locale, "header %q", tt.header)
			require.False(t, changed)
		}
	})

	t.Run("no signals falls back to default", func(t *testing.T) {
		locale, changed := resolver.Resolve(newRequest("/"), &session.Session{})
		require.Equal(t, DefaultLocale, locale)
		require.False(t, changed)
	})
}

func TestNewResolver_InvalidFallback(t *testing.T) {
	resolver := NewResolver(Locale("nope"))

	locale, _ := resolver.Resolve(httptest.NewRequest(http.MethodGet, "/", nil), &session.Session{})
	require.Equal(t, DefaultLocale, locale)
}

func TestT(t *testing.T) {
	// Known keys translate per locale.
	require.Equal(t, "语言", T(LocaleZhCN, "nav.language"))
	require.Equal(t, "Language", T(LocaleEn, "nav.language"))

	// Exact messages surfaced to users on auth failures.
	require.Equal(t, "该邮箱已被注册，请直接登录或更换邮箱", T(LocaleZhCN, "error.email_taken"))
	require.Equal(t, "邮箱或密码错误", T(LocaleZhCN, "error.invalid_credentials"))
	require.Equal(t, "Invalid email or password", T(LocaleEn, "error.invalid_credentials"))

	// Unknown locale falls back to the default catalog.
	require.Equal(t, T(DefaultLocale, "nav.language"), T(Locale("fr"), "nav.language"))

	// Unknown key falls back to the key itself.
	require.Equal(t, "no.such.key", T(LocaleEn, "no.such.key"))
}
