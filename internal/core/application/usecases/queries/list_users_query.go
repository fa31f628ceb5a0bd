package queries

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery is the admin user list. Empty role and isActive strings do
// not filter; isActive accepts "true" and "false".
type ListUsersQuery struct {
	principal user.Principal
	role      *user.Role
	isActive  *bool

	guard guard.ConstructorGuard
}

func NewListUsersQuery(principal user.Principal, role, isActive string) (ListUsersQuery, error) {
	q := ListUsersQuery{principal: principal}
	var errRole, errIsActive error

	if strings.TrimSpace(role) != "" {
		r, err := user.ParseRole(role)
		errRole = err
		q.role = &r
	}
	if strings.TrimSpace(isActive) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(isActive))
		if err != nil {
			errIsActive = errs.NewValueIsInvalidErrorWithCause("isActive", err)
		}
		q.isActive = &b
	}

	if err := errors.Join(principal.Validate(), errRole, errIsActive); err != nil {
		return ListUsersQuery{}, err
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

type ListUsersQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle lists users newest first. Requires the admin role.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanManageUsers(query.principal); err != nil {
		return nil, err
	}

	q := users(ctx, h.db)
	if query.role != nil {
		q = q.Where("role = ?", int(*query.role))
	}
	if query.isActive != nil {
		q = q.Where("is_active = ?", *query.isActive)
	}

	var rows []userRow
	if err := q.Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	return userViews(rows)
}
