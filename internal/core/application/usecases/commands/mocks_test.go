package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*parcel.Parcel); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, id parcel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*parcel.Parcel); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByEmailAndRole(ctx context.Context, email user.Email, role user.Role) (*user.User, error) {
	args := m.Called(ctx, email, role)
	return userOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v any) *user.User {
	if u, ok := v.(*user.User); ok {
		return u
	}
	return nil
}

// MockUoW satisfies UoW, ParcelUoW and UserUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockTrackingIDGenerator struct{ mock.Mock }

func (m *MockTrackingIDGenerator) Generate(createdAt time.Time) (parcel.TrackingID, error) {
	args := m.Called(createdAt)
	return args.Get(0).(parcel.TrackingID), args.Error(1)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newPrincipal(role user.Role) user.Principal {
	return user.Principal{ID: kernel.NewUUID(), Role: role, Address: "1 Main St"}
}

func mustTrackingID(t *testing.T, s string) parcel.TrackingID {
	t.Helper()
	id, err := parcel.TrackingIDFromString(s)
	require.NoError(t, err)
	return id
}

// newTestParcel builds a requested parcel, then forces it to status when it
// differs from requested.
func newTestParcel(t *testing.T, sender, receiver kernel.UUID, status parcel.Status) *parcel.Parcel {
	t.Helper()
	w, err := parcel.NewWeight(1)
	require.NoError(t, err)
	pt, err := parcel.NewType("fragile")
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), mustTrackingID(t, "TRK-20250310-ABCDEF"), sender, receiver,
		parcel.Shipment{
			SenderAddress:   "1 Main St",
			ReceiverAddress: "2 Side St",
			Type:            pt,
			Weight:          w,
			Description:     "glassware",
		}, now.Add(-time.Hour))
	require.NoError(t, err)

	if status != parcel.StatusRequested {
		require.NoError(t, p.ForceSetStatus(kernel.NewUUID(), status, now.Add(-time.Minute), "", ""))
	}
	return p
}
