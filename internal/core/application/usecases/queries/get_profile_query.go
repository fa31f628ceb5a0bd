package queries

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetProfileQueryIsNotConstructed = errors.New(
	"GetProfileQuery must be created via NewGetProfileQuery constructor",
)

// GetProfileQuery returns the caller's own account.
type GetProfileQuery struct {
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewGetProfileQuery(principal user.Principal) (GetProfileQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetProfileQuery{}, err
	}
	return GetProfileQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

func (q GetProfileQuery) Principal() user.Principal { return q.principal }

type GetProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetProfileQueryHandler(db *gorm.DB) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db}
}

func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	id := query.Principal().ID
	var row userRow
	err := users(ctx, h.db).Where("id = ?", id.Bytes()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserView{}, errs.NewObjectNotFoundError("user", id.String())
	}
	if err != nil {
		return UserView{}, err
	}

	return row.view()
}
