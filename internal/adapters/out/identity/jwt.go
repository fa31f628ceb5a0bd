package identity

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "parceltrack"

// Claims carries the principal in a bearer token. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWT issues and verifies HS256 tokens. It implements ports.TokenIssuer.
type JWT struct {
	secret []byte
	ttl    time.Duration
	clock  kernel.Clock
}

func NewJWT(secret string, ttl time.Duration, clock kernel.Clock) (*JWT, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("jwt ttl", ttl, time.Second, "unbounded")
	}
	return &JWT{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

// Issue signs a token for principal valid for the configured TTL.
func (j *JWT) Issue(principal user.Principal) (string, time.Time, error) {
	if err := principal.Validate(); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := j.clock.Now()
	expiresAt := issuedAt.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: principal.Role.String(),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the token and returns the user ID and role it was issued
// for. Any verification failure is reported as errs.ErrInvalidCredentials.
func (j *JWT) Parse(token string) (kernel.UUID, user.Role, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock.Now),
	)
	if err != nil {
		return kernel.UUID{}, user.RoleUnknown, errors.Join(errs.ErrInvalidCredentials, err)
	}
	if !parsed.Valid {
		return kernel.UUID{}, user.RoleUnknown, errs.ErrInvalidCredentials
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, user.RoleUnknown, errors.Join(errs.ErrInvalidCredentials, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return kernel.UUID{}, user.RoleUnknown, errors.Join(errs.ErrInvalidCredentials, err)
	}

	return id, role, nil
}
