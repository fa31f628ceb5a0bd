package userrepo

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add registers a user. A taken e-mail is reported as ports.ErrEmailAlreadyRegistered.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isEmailConflict(err) {
			return fmt.Errorf("%w: %s", ports.ErrEmailAlreadyRegistered, dto.Email)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable user columns.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":      dto.Name,
			"phone":     dto.Phone,
			"address":   dto.Address,
			"is_active": dto.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "user", id.String(), "id = ?", id.Bytes())
}

// FindByEmail retrieves a user by normalized e-mail.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.first(ctx, "email", email.String(), "email = ?", email.String())
}

// FindByEmailAndRole retrieves a user holding role under email.
func (r *GormUserRepository) FindByEmailAndRole(
	ctx context.Context,
	email user.Email,
	role user.Role,
) (*user.User, error) {
	return r.first(ctx, "email", email.String(), "email = ? AND role = ?", email.String(), int(role))
}

func (r *GormUserRepository) first(ctx context.Context, param, key string, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}

func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == EmailIndex
}
