package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// forgotConfirmation is shown after every reset request, whether or not
// the email was registered, so the form cannot be used to probe accounts.
const forgotConfirmation = "If that email is registered, a reset link is on its way. Check your inbox."

func (h *Handler) getForgot(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "forgot.html", http.StatusOK, pageData{Title: "Reset password"})
}

func (h *Handler) postForgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid reset request form")
		h.renderPage(w, r, "forgot.html", http.StatusBadRequest, pageData{Title: "Reset password", Error: "Invalid form submission."})
		return
	}

	err := h.services.PasswordResetService.Request(ctx, r.PostFormValue("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid reset request data provided")
			h.renderPage(w, r, "forgot.html", http.StatusBadRequest, pageData{Title: "Reset password", Error: "Email is required."})
			return
		default:
			log.Err(err).Msg("unexpected error occurred during reset request")
			h.renderPage(w, r, "forgot.html", http.StatusInternalServerError, pageData{Title: "Reset password", Error: "Something went wrong. Try again later."})
			return
		}
	}

	h.renderPage(w, r, "forgot.html", http.StatusOK, pageData{Title: "Reset password", Message: forgotConfirmation})
}

func (h *Handler) getReset(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	h.renderPage(w, r, "reset.html", http.StatusOK, pageData{Title: "Choose a new password", Token: token})
}

func (h *Handler) postReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := chi.URLParam(r, "token")

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid reset form")
		h.renderPage(w, r, "reset.html", http.StatusBadRequest, pageData{Title: "Choose a new password", Token: token, Error: "Invalid form submission."})
		return
	}

	err := h.services.PasswordResetService.Reset(ctx, token, r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid reset data provided")
			h.renderPage(w, r, "reset.html", http.StatusBadRequest, pageData{Title: "Choose a new password", Token: token, Error: "A new password is required."})
			return
		case errors.Is(err, service.ErrResetTokenExpired):
			log.Err(err).Msg("expired reset token presented")
			h.renderPage(w, r, "reset.html", http.StatusGone, pageData{Title: "Choose a new password", Token: token, Error: "This reset link has expired. Request a new one."})
			return
		case errors.Is(err, service.ErrResetTokenInvalid):
			log.Err(err).Msg("invalid reset token presented")
			h.renderPage(w, r, "reset.html", http.StatusNotFound, pageData{Title: "Choose a new password", Token: token, Error: "This reset link is invalid or was already used."})
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password reset")
			h.renderPage(w, r, "reset.html", http.StatusInternalServerError, pageData{Title: "Choose a new password", Token: token, Error: "Something went wrong. Try again later."})
			return
		}
	}

	h.renderPage(w, r, "login.html", http.StatusOK, pageData{Title: "Sign in", Message: "Your password was updated. Sign in with your new password."})
}
