package handler

import (
	"errors"
	"net/http"

	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/service"
	"github.com/prn-tf/starterkit/internal/session"
)

// handleRegisterPage renders the registration form.
func (rt *Router) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	data := AuthPageData{PageData: rt.newPageData(w, r, "register.title")}
	rt.render(w, http.StatusOK, "register.html", data)
}

// handleRegister processes a registration submission. Validation failures
// and duplicate emails re-render the form with HTTP 200 and inline errors;
// success auto-logs the new user in and redirects to the dashboard.
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	locale := LocaleFromContext(r.Context())
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	password2 := r.PostFormValue("password2")

	if errs := validateRegisterForm(email, password, password2, locale); errs != nil {
		data := AuthPageData{
			PageData: rt.newPageData(w, r, "register.title"),
			Email:    email,
			Errors:   errs,
		}
		rt.render(w, http.StatusOK, "register.html", data)
		return
	}

	output, err := rt.users.Register(r.Context(), service.RegisterInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			rt.metrics.AuthEvent("register", "failure")
			data := AuthPageData{
				PageData: rt.newPageData(w, r, "register.title"),
				Email:    email,
				Errors:   FormErrors{"email": i18n.T(locale, "error.email_taken")},
			}
			data.Flash = &session.Flash{Message: i18n.T(locale, "flash.email_taken"), Category: "warning"}
			rt.render(w, http.StatusOK, "register.html", data)
			return
		}
		rt.logger.Error().Err(err).Msg("registration failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Auto-login after successful registration.
	sess := SessionFromContext(r.Context())
	sess.UserID = output.User.ID
	sess.SetFlash(i18n.T(locale, "flash.register_success"), "success")
	rt.sessions.Save(w, sess)

	rt.metrics.AuthEvent("register", "success")
	rt.logger.Info().Str("email", output.User.Email).Msg("auto login after register")

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// handleLoginPage renders the login form, carrying an optional next
// destination through to the submission.
func (rt *Router) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := AuthPageData{
		PageData: rt.newPageData(w, r, "login.title"),
		Next:     r.URL.Query().Get("next"),
	}
	rt.render(w, http.StatusOK, "login.html", data)
}

// handleLogin processes a login submission. Unknown email and wrong
// password produce the same message so the two cases cannot be told apart.
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	locale := LocaleFromContext(r.Context())
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	if errs := validateLoginForm(email, password, locale); errs != nil {
		data := AuthPageData{
			PageData: rt.newPageData(w, r, "login.title"),
			Email:    email,
			Next:     next,
			Errors:   errs,
		}
		rt.render(w, http.StatusOK, "login.html", data)
		return
	}

	user, err := rt.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			rt.metrics.AuthEvent("login", "failure")
			data := AuthPageData{
				PageData: rt.newPageData(w, r, "login.title"),
				Email:    email,
				Next:     next,
				Errors:   FormErrors{"form": i18n.T(locale, "error.invalid_credentials")},
			}
			rt.render(w, http.StatusOK, "login.html", data)
			return
		}
		rt.logger.Error().Err(err).Msg("login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sess := SessionFromContext(r.Context())
	sess.UserID = user.ID
	rt.sessions.Save(w, sess)

	rt.metrics.AuthEvent("login", "success")

	http.Redirect(w, r, sanitizeNext(next), http.StatusFound)
}

// handleLogout clears the login state. Logging out while already anonymous
// is not an error.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	locale := LocaleFromContext(r.Context())

	sess := SessionFromContext(r.Context())
	sess.UserID = 0
	sess.SetFlash(i18n.T(locale, "flash.logged_out"), "info")
	rt.sessions.Save(w, sess)

	rt.metrics.AuthEvent("logout", "success")
	rt.logger.Info().Msg("logout")

	http.Redirect(w, r, "/auth/login", http.StatusFound)
}
