// Package userrepo persists the user directory.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// EmailIndex is the unique index on the normalized e-mail address.
const EmailIndex = "idx_users_email"

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         int       `gorm:"type:smallint;not null;index"`
	Phone        string    `gorm:"type:varchar(64)"`
	Address      string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "user_dtos".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash(),
		Role:         int(u.Role()),
		Phone:        u.Phone(),
		Address:      u.Address(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		email,
		dto.PasswordHash,
		user.Role(dto.Role),
		user.Profile{Name: dto.Name, Phone: dto.Phone, Address: dto.Address},
		dto.IsActive,
		dto.CreatedAt,
	)
}
