package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

var _ output.SessionManager = (*Manager)(nil)

// Manager issues and verifies HS256 session tokens. The token carries
// the account's id, username and avatar so event actions don't need a
// user lookup per request.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  time.Now,
	}
}

type claims struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	jwt.RegisteredClaims
}

func (m *Manager) Issue(user *entities.User) (string, error) {
	now := m.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: user.Username,
		Avatar:   user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

func (m *Manager) Verify(tokenString string) (*entities.User, error) {
	if tokenString == "" {
		return nil, domain.ErrNotLoggedIn
	}
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock))
	if err != nil || !token.Valid || c.Subject == "" {
		return nil, domain.ErrNotLoggedIn
	}
	return &entities.User{
		ID:       c.Subject,
		Username: c.Username,
		Avatar:   c.Avatar,
	}, nil
}
