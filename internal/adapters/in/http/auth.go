package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"parceltrack/internal/adapters/out/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (kernel.UUID, user.Role, error)
}

// AccountProvider resolves the current state of an account.
type AccountProvider interface {
	Get(ctx context.Context, id kernel.UUID) (identity.Account, error)
}

// publicPrefixes are served without a token.
var publicPrefixes = []string{
	"/health",
	"/metrics",
	"/swagger/",
	"/api/auth/",
}

// Authenticate resolves the bearer token to a principal and stores it in the
// echo context. Requests of blocked accounts are refused with 403.
func Authenticate(tokens TokenParser, accounts AccountProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if isPublic(ctx.Request().URL.Path) {
				return next(ctx)
			}

			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			id, _, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			account, err := accounts.Get(ctx.Request().Context(), id)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if err != nil {
				return err
			}
			if !account.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "account is blocked")
			}

			ctx.Set(principalKey, account.Principal)
			return next(ctx)
		}
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(ctx echo.Context) (user.Principal, error) {
	principal, ok := ctx.Get(principalKey).(user.Principal)
	if !ok {
		return user.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return principal, nil
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
