package queries

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// LoginResult is an issued token and the user it was issued for.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserView
}

type LoginQueryHandler struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLoginQueryHandler(db *gorm.DB, hasher ports.PasswordHasher, issuer ports.TokenIssuer) LoginQueryHandler {
	return LoginQueryHandler{db: db, hasher: hasher, issuer: issuer}
}

// Handle returns errs.ErrInvalidCredentials for an unknown e-mail or a wrong
// password, and errs.ErrForbidden for a blocked account.
func (h LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (LoginResult, error) {
	if err := query.Validate(); err != nil {
		return LoginResult{}, err
	}

	var row userRow
	err := users(ctx, h.db).Where("email = ?", query.Email().String()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResult{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err = h.hasher.Compare(row.PasswordHash, query.Password()); err != nil {
		return LoginResult{}, err
	}
	if !row.IsActive {
		return LoginResult{}, errs.NewForbiddenError("login", "account is blocked")
	}

	view, err := row.view()
	if err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := h.issuer.Issue(view.Principal())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt, User: view}, nil
}
