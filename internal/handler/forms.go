package handler

import (
	"net/mail"

	"github.com/prn-tf/starterkit/internal/i18n"
	"github.com/prn-tf/starterkit/internal/service"
)

// FormErrors maps a field name to its translated error message.
// Only the first failing check per field is reported.
type FormErrors map[string]string

// Has reports whether the field has an error. Used by templates.
func (e FormErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the error message for a field. Used by templates.
func (e FormErrors) Get(field string) string {
	return e[field]
}

// validateRegisterForm checks the registration form shape: email present
// and syntactically valid, password satisfying the policy, confirmation
// matching. Storage is not consulted here.
func validateRegisterForm(email, password, password2 string, locale i18n.Locale) FormErrors {
	errs := FormErrors{}

	if email == "" {
		errs["email"] = i18n.T(locale, "error.email_required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = i18n.T(locale, "error.email_invalid")
	}

	if password == "" {
		errs["password"] = i18n.T(locale, "error.password_required")
	} else if err := service.ValidatePassword(password); err != nil {
		errs["password"] = i18n.T(locale, "error.password_policy")
	}

	if password2 != password {
		errs["password2"] = i18n.T(locale, "error.password_mismatch")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateLoginForm checks the login form shape.
func validateLoginForm(email, password string, locale i18n.Locale) FormErrors {
	errs := FormErrors{}

	if email == "" {
		errs["email"] = i18n.T(locale, "error.email_required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = i18n.T(locale, "error.email_invalid")
	}

	if password == "" {
		errs["password"] = i18n.T(locale, "error.password_required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
