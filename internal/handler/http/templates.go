package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// pageData is the data passed into every HTML template.
type pageData struct {
	Title string

	// Error and Message are rendered as inline banners when non-empty.
	Error   string
	Message string

	// Token carries the reset token through the reset form round-trip.
	Token string

	// Principal is set on pages rendered for an authenticated user.
	Principal models.Principal
}

// renderPage executes the named template with data. Render failures after
// headers are out cannot be reported to the client, so they are only
// logged.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, statusCode int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.FromRequest(r).Err(err).Str("template", name).Msg("template rendering failed")
	}
}
