package http

import (
	"net/http"

	"github.com/MKhiriev/go-login-service/models"
)

// accessTokenCookie is the name of the cookie carrying the signed JWT.
const accessTokenCookie = "ACCESS_TOKEN"

// setAccessCookie writes the signed token into the access cookie.
//
// The cookie is HttpOnly so scripts cannot read it, scoped to the whole
// site, and limited to the token's own lifetime. SameSite=Lax keeps the
// cookie off cross-site subrequests while still sending it on top-level
// navigation. Secure and Domain come from configuration so local
// development over plain HTTP keeps working.
func (h *Handler) setAccessCookie(w http.ResponseWriter, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(h.appCfg.TokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.appCfg.CookieSecure,
		Domain:   h.appCfg.CookieDomain,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAccessCookie expires the access cookie immediately. Used on logout.
func (h *Handler) clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.appCfg.CookieSecure,
		Domain:   h.appCfg.CookieDomain,
		SameSite: http.SameSiteLaxMode,
	})
}
