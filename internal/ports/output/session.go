package output

import "rally/internal/domain/entities"

// SessionManager is the identity contract: issue a session token for an
// account and resolve a presented token back to the account. The core
// treats sessions as an opaque lookup.
type SessionManager interface {
	Issue(user *entities.User) (string, error)
	// Verify returns domain.ErrNotLoggedIn for missing, malformed or
	// expired tokens.
	Verify(token string) (*entities.User, error)
}
