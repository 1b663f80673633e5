package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded HTML templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"t": func(locale i18n.Locale, key string) string {
			return i18n.T(locale, key)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes a template with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.templates.ExecuteTemplate(w, name, data)
}

// PageData contains fields shared by all pages.
type PageData struct {
	Title         string
	Locale        i18n.Locale
	Authenticated bool
	UserEmail     string
	Flash         *session.Flash
}

// AuthPageData contains login/register page data.
type AuthPageData struct {
	PageData
	Email  string
	Next   string
	Errors FormErrors
}

// newPageData assembles the shared page fields for the current request.
// A pending flash message is consumed, and the cleared session is saved so
// the message renders exactly once.
func (rt *Router) newPageData(w http.ResponseWriter, r *http.Request, titleKey string) PageData {
	sess := SessionFromContext(r.Context())
	locale := LocaleFromContext(r.Context())

	flash := sess.PopFlash()
	if flash != nil {
		rt.sessions.Save(w, sess)
	}

	return PageData{
		Title:         i18n.T(locale, titleKey),
		Locale:        locale,
		Authenticated: sess.IsAuthenticated(),
		Flash:         flash,
	}
}

// render executes a template; failures are logged and reported as a plain
// 500 since the page cannot be recovered.
func (rt *Router) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := rt.renderer.Render(w, status, name, data); err != nil {
		rt.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}
