package handler

import (
	"net/http"
)

// handleIndex redirects to the dashboard when authenticated, otherwise to
// the login page.
func (rt *Router) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

// handleDashboard renders the dashboard for the logged-in user.
func (rt *Router) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := rt.newPageData(w, r, "dashboard.title")

	sess := SessionFromContext(r.Context())
	if user, err := rt.users.GetByID(r.Context(), sess.UserID); err == nil {
		data.UserEmail = user.Email
	}

	rt.render(w, http.StatusOK, "dashboard.html", data)
}

// handleUsers renders the user management placeholder page.
func (rt *Router) handleUsers(w http.ResponseWriter, r *http.Request) {
	data := rt.newPageData(w, r, "users.title")
	rt.render(w, http.StatusOK, "users.html", data)
}
