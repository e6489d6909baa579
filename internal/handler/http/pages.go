package http

import (
	"net/http"

	"github.com/MKhiriev/go-login-service/internal/utils"
)

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index.html", http.StatusOK, pageData{Title: "Login Service"})
}

// dashboard greets the authenticated user. Guarded by requirePrincipal.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	h.renderPage(w, r, "dashboard.html", http.StatusOK, pageData{Title: "Dashboard", Principal: principal})
}
