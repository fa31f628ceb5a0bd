package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserView is a user without the password hash.
type UserView struct {
	ID        kernel.UUID
	Name      string
	Email     string
	Role      user.Role
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
}

// Principal returns the identity carried in tokens issued for the user.
func (v UserView) Principal() user.Principal {
	return user.Principal{ID: v.ID, Role: v.Role, Address: v.Address}
}

type userRow struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         int
	Phone        string
	Address      string
	IsActive     bool
	CreatedAt    time.Time
}

func (r userRow) view() (UserView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		ID:        id,
		Name:      r.Name,
		Email:     r.Email,
		Role:      user.Role(r.Role),
		Phone:     r.Phone,
		Address:   r.Address,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

func users(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Table("users")
}

func userViews(rows []userRow) ([]UserView, error) {
	views := make([]UserView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
