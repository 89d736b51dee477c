package ports

import "github.com/taskhub/task-api/internal/core/domain"

// TokenService issues and verifies signed, self-contained bearer tokens.
// Tokens are stateless: there is no revocation list, logout is a client-side
// discard, and a token stays valid until its expiry.
type TokenService interface {
	Issue(userID int64, role string) (string, error)
	// Verify validates signature and expiry. It returns domain.ErrTokenExpired
	// for an expired token and domain.ErrTokenInvalid for anything else wrong
	// with it; callers treat both as an authentication failure.
	Verify(token string) (*domain.Claims, error)
}
