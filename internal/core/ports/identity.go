package ports

import (
	"time"

	"parceltrack/internal/core/domain/model/user"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns errs.ErrInvalidCredentials when password does not match hash.
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresAt time.Time, err error)
}
