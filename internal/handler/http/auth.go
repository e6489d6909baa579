package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/service"
	"github.com/MKhiriev/go-login-service/internal/store"
	"github.com/MKhiriev/go-login-service/internal/utils"
)

// credentials is the JSON request body of the API register and login
// endpoints.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (h *Handler) getLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "login.html", http.StatusOK, pageData{Title: "Sign in"})
}

func (h *Handler) postLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid login form")
		h.renderPage(w, r, "login.html", http.StatusBadRequest, pageData{Title: "Sign in", Error: "Invalid form submission."})
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid login data provided")
			h.renderPage(w, r, "login.html", http.StatusBadRequest, pageData{Title: "Sign in", Error: "Email and password are required."})
			return
		case isCredentialFailure(err):
			// One message for unknown email, wrong password and disabled
			// account, so the form does not leak which one it was.
			log.Err(err).Msg("login rejected")
			h.renderPage(w, r, "login.html", http.StatusUnauthorized, pageData{Title: "Sign in", Error: "Invalid email or password."})
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.renderPage(w, r, "login.html", http.StatusInternalServerError, pageData{Title: "Sign in", Error: "Something went wrong. Try again later."})
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.renderPage(w, r, "login.html", http.StatusInternalServerError, pageData{Title: "Sign in", Error: "Something went wrong. Try again later."})
		return
	}

	h.setAccessCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) getRegister(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "register.html", http.StatusOK, pageData{Title: "Register"})
}

func (h *Handler) postRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid registration form")
		h.renderPage(w, r, "register.html", http.StatusBadRequest, pageData{Title: "Register", Error: "Invalid form submission."})
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, r.PostFormValue("email"), r.PostFormValue("password"), r.PostFormValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid registration data provided")
			h.renderPage(w, r, "register.html", http.StatusBadRequest, pageData{Title: "Register", Error: "Email and password are required."})
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			h.renderPage(w, r, "register.html", http.StatusConflict, pageData{Title: "Register", Error: "This email is already registered."})
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			h.renderPage(w, r, "register.html", http.StatusInternalServerError, pageData{Title: "Register", Error: "Something went wrong. Try again later."})
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.renderPage(w, r, "register.html", http.StatusInternalServerError, pageData{Title: "Register", Error: "Something went wrong. Try again later."})
		return
	}

	h.setAccessCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) postLogout(w http.ResponseWriter, r *http.Request) {
	h.clearAccessCookie(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *Handler) apiRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, creds.Email, creds.Password, creds.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			http.Error(w, "email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.setAccessCookie(w, token)
	utils.WriteJSON(w, registeredUser, http.StatusOK)
}

func (h *Handler) apiLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case isCredentialFailure(err):
			log.Err(err).Msg("login rejected")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.setAccessCookie(w, token)
	utils.WriteJSON(w, foundUser, http.StatusOK)
}

// apiMe returns the caller's principal. Guarded by requirePrincipal, so a
// missing principal never reaches this handler.
func (h *Handler) apiMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, principal, http.StatusOK)
}

// isCredentialFailure groups the login failures that must all surface as
// one generic 401.
func isCredentialFailure(err error) bool {
	return errors.Is(err, store.ErrNoUserWasFound) ||
		errors.Is(err, service.ErrWrongPassword) ||
		errors.Is(err, service.ErrUserDisabled)
}
