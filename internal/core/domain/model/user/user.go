package user

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned by Validate for a User built as a literal.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is a registered account. Only the admin block/unblock toggle mutates a
// user after registration.
type User struct {
	id           kernel.UUID
	name         string
	email        Email
	passwordHash string
	role         Role
	phone        string
	address      string
	isActive     bool
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// Profile groups the free-text contact fields of a user.
type Profile struct {
	Name    string
	Phone   string
	Address string
}

// NewUser registers an active user. passwordHash must already be hashed.
func NewUser(
	id kernel.UUID,
	email Email,
	passwordHash string,
	role Role,
	profile Profile,
	createdAt time.Time,
) (*User, error) {
	u := &User{
		isActive:  true,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
		u.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(
	id kernel.UUID,
	email Email,
	passwordHash string,
	role Role,
	profile Profile,
	isActive bool,
	createdAt time.Time,
) (*User, error) {
	u, err := NewUser(id, email, passwordHash, role, profile, createdAt)
	if err != nil {
		return nil, err
	}
	u.isActive = isActive
	return u, nil
}

// Validate ensures the user was built through a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) Phone() string        { return u.phone }
func (u *User) Address() string      { return u.address }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) Profile() Profile     { return Profile{Name: u.name, Phone: u.phone, Address: u.address} }

// ToggleActive blocks an active user or unblocks a blocked one and returns the
// new state.
func (u *User) ToggleActive() bool {
	u.isActive = !u.isActive
	return u.isActive
}

// Principal returns the identity the lifecycle engine works with.
func (u *User) Principal() Principal {
	return Principal{ID: u.id, Role: u.role, Address: u.address}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email Email) error {
	if email.IsZero() {
		return errs.NewValueIsRequiredError("email")
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setProfile(p Profile) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	u.phone = strings.TrimSpace(p.Phone)
	u.address = strings.TrimSpace(p.Address)
	return nil
}
