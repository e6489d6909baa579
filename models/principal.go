package models

// RoleUser is the single authority granted to every enabled account.
// The system has no role hierarchy: all authenticated users are equally
// privileged.
const RoleUser = "ROLE_USER"

// Principal is the request-scoped identity established by the
// authentication middleware after a token has been verified and the
// referenced user loaded.
//
// It is an explicit value threaded through context instead of a global
// security holder, so handlers and tests never depend on hidden state.
type Principal struct {
	// UserID is the authenticated user's identifier.
	UserID int64 `json:"user_id"`

	// Email is the authenticated user's login identifier.
	Email string `json:"email"`

	// Name is the authenticated user's display name.
	Name string `json:"name"`

	// Authorities is the set of granted authorities.
	// Currently always [RoleUser].
	Authorities []string `json:"authorities"`
}
