package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/starterkit/internal/domain"
	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/repository"
	"github.com/prn-tf/starterkit/internal/service"
	"github.com/prn-tf/starterkit/internal/session"
)

// memUserRepo is an in-memory repository.UserRepository for handler tests.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrEmailAlreadyRegistered
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, exists := m.users[email]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	for email, u := range m.users {
		if u.ID == user.ID {
			if email != user.Email {
				delete(m.users, email)
			}
			m.users[user.Email] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	for email, u := range m.users {
		if u.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memUserRepo) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	var items []*domain.User
	for _, u := range m.users {
		items = append(items, u)
	}
	return &repository.ListResult[domain.User]{Items: items, Total: int64(len(items))}, nil
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

// =============================================================================
// Test harness
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *memUserRepo) {
	t.Helper()

	repo := newMemUserRepo()
	logger := zerolog.Nop()

	rt, err := NewRouter(RouterConfig{
		UserService: service.NewUserService(repo, logger),
		Sessions:    session.NewManager(session.Config{Secret: []byte("test-secret-key")}, logger),
		Resolver:    i18n.NewResolver(i18n.DefaultLocale),
		Logger:      logger,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(rt.Handler())
	t.Cleanup(srv.Close)
	return srv, repo
}

// newTestClient returns a client with a cookie jar that does not follow
// redirects, so individual responses can be asserted.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()

	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func register(t *testing.T, client *http.Client, baseURL, email, password string) *http.Response {
	t.Helper()

	resp, _ := postForm(t, client, baseURL+"/auth/register", url.Values{
		"email":     {email},
		"password":  {password},
		"password2": {password},
	})
	return resp
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) (*http.Response, string) {
	t.Helper()

	return postForm(t, client, baseURL+"/auth/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

// =============================================================================
// Tests
// =============================================================================

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(t)

	t.Run("anonymous", func(t *testing.T) {
		resp, body := get(t, client, srv.URL+"/health")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, `{"status":"ok"}`, body)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})

	t.Run("authenticated", func(t *testing.T) {
		register(t, client, srv.URL, "health@example.com", "passw0rd")

		resp, body := get(t, client, srv.URL+"/health")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, `{"status":"ok"}`, body)
	})
}

func TestRegister(t *testing.T) {
	t.Run("success auto-logs-in and redirects to dashboard", func(t *testing.T) {
		srv, repo := newTestServer(t)
		client := newTestClient(t)

		resp := register(t, client, srv.URL, "alice@example.com", "passw0rd")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))

		// The gated page is reachable without a separate login.
		resp, body := get(t, client, srv.URL+"/dashboard")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "alice@example.com")

		user, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.True(t, user.IsActive)
	})

	t.Run("duplicate email re-renders with message and stores no second row", func(t *testing.T) {
		srv, repo := newTestServer(t)
		client := newTestClient(t)

		register(t, newTestClient(t), srv.URL, "bob@example.com", "passw0rd")

		resp, body := postForm(t, client, srv.URL+"/auth/register", url.Values{
			"email":     {"bob@example.com"},
			"password":  {"otherpw99"},
			"password2": {"otherpw99"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "该邮箱已被注册，请直接登录或更换邮箱")

		require.Len(t, repo.users, 1)
	})

	t.Run("weak password re-renders with policy message", func(t *testing.T) {
		srv, repo := newTestServer(t)
		client := newTestClient(t)

		resp, body := postForm(t, client, srv.URL+"/auth/register", url.Values{
			"email":     {"carol@example.com"},
			"password":  {"short"},
			"password2": {"short"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, i18n.T(i18n.DefaultLocale, "error.password_policy"))
		require.Empty(t, repo.users)
	})

	t.Run("password mismatch re-renders", func(t *testing.T) {
		srv, repo := newTestServer(t)
		client := newTestClient(t)

		resp, body := postForm(t, client, srv.URL+"/auth/register", url.Values{
			"email":     {"carol@example.com"},
			"password":  {"passw0rd"},
			"password2": {"passw0re"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, i18n.T(i18n.DefaultLocale, "error.password_mismatch"))
		require.Empty(t, repo.users)
	})

	t.Run("email is normalized before storing", func(t *testing.T) {
		srv, repo := newTestServer(t)
		client := newTestClient(t)

		register(t, client, srv.URL, "  Dave@Example.COM ", "passw0rd")

		_, err := repo.GetByEmail(context.Background(), "dave@example.com")
		require.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	register(t, newTestClient(t), srv.URL, "eve@example.com", "passw0rd")

	t.Run("success redirects to dashboard", func(t *testing.T) {
		client := newTestClient(t)

		resp, _ := login(t, client, srv.URL, "eve@example.com", "passw0rd")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))

		resp, _ = get(t, client, srv.URL+"/dashboard")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password and unknown email show the same message", func(t *testing.T) {
		client := newTestClient(t)
		wantMsg := i18n.T(i18n.DefaultLocale, "error.invalid_credentials")

		respWrong, bodyWrong := login(t, client, srv.URL, "eve@example.com", "wrongpw99")
		require.Equal(t, http.StatusOK, respWrong.StatusCode)
		require.Contains(t, bodyWrong, wantMsg)

		respUnknown, bodyUnknown := login(t, client, srv.URL, "nobody@example.com", "passw0rd")
		require.Equal(t, http.StatusOK, respUnknown.StatusCode)
		require.Contains(t, bodyUnknown, wantMsg)
	})

	t.Run("next parameter round-trips through the form", func(t *testing.T) {
		client := newTestClient(t)

		// The gated request redirects to the login page carrying next.
		resp, _ := get(t, client, srv.URL+"/dashboard")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		loc := resp.Header.Get("Location")
		require.Contains(t, loc, "/auth/login")
		require.Contains(t, loc, "next=%2Fdashboard")

		// The login page embeds next in the form.
		resp, body := get(t, client, srv.URL+loc)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, `name="next" value="/dashboard"`)

		// Submitting with next lands on the original destination.
		resp, _ = postForm(t, client, srv.URL+"/auth/login", url.Values{
			"email":    {"eve@example.com"},
			"password": {"passw0rd"},
			"next":     {"/dashboard"},
		})
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("off-site next falls back to dashboard", func(t *testing.T) {
		for _, next := range []string{"https://evil.example", "//evil.example", ""} {
			client := newTestClient(t)

			resp, _ := postForm(t, client, srv.URL+"/auth/login", url.Values{
				"email":    {"eve@example.com"},
				"password": {"passw0rd"},
				"next":     {next},
			})
			require.Equal(t, http.StatusFound, resp.StatusCode)
			require.Equal(t, "/dashboard", resp.Header.Get("Location"), "next %q", next)
		}
	})

	t.Run("empty form re-renders with field errors", func(t *testing.T) {
		client := newTestClient(t)

		resp, body := login(t, client, srv.URL, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, i18n.T(i18n.DefaultLocale, "error.email_required"))
		require.Contains(t, body, i18n.T(i18n.DefaultLocale, "error.password_required"))
	})
}

func TestLogout(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(t)

	register(t, client, srv.URL, "frank@example.com", "passw0rd")

	resp, _ := get(t, client, srv.URL+"/auth/logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/auth/login", resp.Header.Get("Location"))

	// The session no longer opens gated pages.
	resp, _ = get(t, client, srv.URL+"/dashboard")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "/auth/login")

	// Logging out again while anonymous still succeeds.
	resp, _ = get(t, client, srv.URL+"/auth/logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestRequireLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/dashboard", "/users"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := get(t, newTestClient(t), srv.URL+path)
			require.Equal(t, http.StatusFound, resp.StatusCode)

			loc := resp.Header.Get("Location")
			require.Contains(t, loc, "/auth/login")
			require.Contains(t, loc, "next="+url.QueryEscape(path))
		})
	}
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("anonymous goes to login", func(t *testing.T) {
		resp, _ := get(t, newTestClient(t), srv.URL+"/")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/auth/login", resp.Header.Get("Location"))
	})

	t.Run("authenticated goes to dashboard", func(t *testing.T) {
		client := newTestClient(t)
		register(t, client, srv.URL, "grace@example.com", "passw0rd")

		resp, _ := get(t, client, srv.URL+"/")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("valid language persists across requests", func(t *testing.T) {
		srv, _ := newTestServer(t)
		client := newTestClient(t)

		resp, _ := get(t, client, srv.URL+"/i18n/set/en")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/", resp.Header.Get("Location"))

		// Both locale cookies are written with a one-year lifetime.
		cookies := map[string]*http.Cookie{}
		for _, c := range resp.Cookies() {
			cookies[c.Name] = c
		}
		for _, name := range []string{"locale", "lang"} {
			require.Contains(t, cookies, name)
			require.Equal(t, "en", cookies[name].Value)
			require.Equal(t, localeCookieMaxAge, cookies[name].MaxAge)
			require.Equal(t, "/", cookies[name].Path)
		}

		// A later page renders in English.
		_, body := get(t, client, srv.URL+"/auth/login")
		require.Contains(t, body, "Language")
		require.NotContains(t, body, "语言")
	})

	t.Run("unsupported language keeps the current locale", func(t *testing.T) {
		srv, _ := newTestServer(t)
		client := newTestClient(t)

		resp, _ := get(t, client, srv.URL+"/i18n/set/fr")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Empty(t, resp.Cookies())

		_, body := get(t, client, srv.URL+"/auth/login")
		require.Contains(t, body, "语言")
	})

	t.Run("redirects back to the referring page", func(t *testing.T) {
		srv, _ := newTestServer(t)
		client := newTestClient(t)

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/i18n/set/en", nil)
		require.NoError(t, err)
		req.Header.Set("Referer", srv.URL+"/auth/register")

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, srv.URL+"/auth/register", resp.Header.Get("Location"))
	})

	t.Run("query parameter overrides and sticks in the session", func(t *testing.T) {
		srv, _ := newTestServer(t)
		client := newTestClient(t)

		_, body := get(t, client, srv.URL+"/auth/login?lang=en")
		require.Contains(t, body, "Language")

		// Without the parameter the stored choice still applies.
		_, body = get(t, client, srv.URL+"/auth/login")
		require.Contains(t, body, "Language")
	})
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		header string
		want   string
	}{
		{"en-US,en;q=0.9", "Language"},
		{"zh-CN,zh;q=0.9", "语言"},
		{"fr-FR,fr;q=0.9", "语言"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			client := newTestClient(t)

			req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/login", nil)
			require.NoError(t, err)
			req.Header.Set("Accept-Language", tt.header)

			resp, err := client.Do(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			resp.Body.Close()

			require.Contains(t, string(body), tt.want)
		})
	}
}

func TestFlashRendersOnce(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(t)

	register(t, client, srv.URL, "henry@example.com", "passw0rd")

	wantFlash := i18n.T(i18n.DefaultLocale, "flash.register_success")

	_, body := get(t, client, srv.URL+"/dashboard")
	require.Contains(t, body, wantFlash)

	// The message is consumed on first render.
	_, body = get(t, client, srv.URL+"/dashboard")
	require.NotContains(t, body, wantFlash)
}

func TestMetricsEndpoint(t *testing.T) {
	repo := newMemUserRepo()
	logger := zerolog.Nop()

	rt, err := NewRouter(RouterConfig{
		UserService: service.NewUserService(repo, logger),
		Sessions:    session.NewManager(session.Config{Secret: []byte("test-secret-key")}, logger),
		Resolver:    i18n.NewResolver(i18n.DefaultLocale),
		Logger:      logger,
		MetricsPath: "/metrics",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(rt.Handler())
	defer srv.Close()

	client := newTestClient(t)

	// Generate some traffic first so counters exist.
	get(t, client, srv.URL+"/health")
	register(t, client, srv.URL, "metrics@example.com", "passw0rd")

	resp, body := get(t, client, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "starterkit_http_requests_total")
	require.Contains(t, body, "starterkit_auth_events_total")
}

func TestSanitizeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/dashboard", "/dashboard"},
		{"/users", "/users"},
		{"", "/dashboard"},
		{"/", "/dashboard"},
		{"//evil.example", "/dashboard"},
		{"https://evil.example", "/dashboard"},
		{"dashboard", "/dashboard"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, sanitizeNext(tt.next), "next %q", tt.next)
	}
}

func TestLoginRedirectTarget(t *testing.T) {
	require.Equal(t, "/auth/login?next=%2Fdashboard", LoginRedirectTarget("/dashboard"))
	require.True(t, strings.HasPrefix(LoginRedirectTarget("/users"), "/auth/login?next="))
}
