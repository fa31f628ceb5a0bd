package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := identity.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	require.NoError(t, hasher.Compare(hash, "secret1"))
	require.ErrorIs(t, hasher.Compare(hash, "secret2"), errs.ErrInvalidCredentials)
	require.ErrorIs(t, hasher.Compare("not-a-hash", "secret1"), errs.ErrInvalidCredentials)
}

func TestJWT_RoundTrip(t *testing.T) {
	clock := &kernel.FixedClock{At: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	j, err := identity.NewJWT("s3cret", time.Hour, clock)
	require.NoError(t, err)
	principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleReceiver}

	token, expiresAt, err := j.Issue(principal)
	require.NoError(t, err)
	assert.Equal(t, clock.At.Add(time.Hour), expiresAt)

	id, role, err := j.Parse(token)
	require.NoError(t, err)
	assert.True(t, id.IsEqual(principal.ID))
	assert.Equal(t, user.RoleReceiver, role)
}

func TestJWT_Rejects(t *testing.T) {
	clock := &kernel.FixedClock{At: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	j, err := identity.NewJWT("s3cret", time.Hour, clock)
	require.NoError(t, err)
	other, err := identity.NewJWT("another", time.Hour, clock)
	require.NoError(t, err)

	token, _, err := j.Issue(user.Principal{ID: kernel.NewUUID(), Role: user.RoleSender})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := other.Parse(token)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := j.Parse("a.b.c")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unsigned", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: kernel.NewUUID().String()})
		s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, _, err = j.Parse(s)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("expired", func(t *testing.T) {
		later := &kernel.FixedClock{At: clock.At.Add(2 * time.Hour)}
		expiredCheck, err := identity.NewJWT("s3cret", time.Hour, later)
		require.NoError(t, err)

		_, _, err = expiredCheck.Parse(token)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestNewJWT_Validation(t *testing.T) {
	_, err := identity.NewJWT("", time.Hour, kernel.SystemClock{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = identity.NewJWT("x", 0, kernel.SystemClock{})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestPrincipalCache(t *testing.T) {
	id := kernel.NewUUID()
	calls := 0
	active := true
	loader := identity.AccountLoaderFunc(func(_ context.Context, got kernel.UUID) (identity.Account, error) {
		calls++
		if !got.IsEqual(id) {
			return identity.Account{}, errs.NewObjectNotFoundError("user", got.String())
		}
		return identity.Account{Principal: user.Principal{ID: got, Role: user.RoleAdmin}, IsActive: active}, nil
	})
	cache := identity.NewPrincipalCache(8, time.Minute, loader)
	ctx := context.Background()

	account, err := cache.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, account.IsActive)

	active = false
	account, err = cache.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, account.IsActive, "served from cache")
	assert.Equal(t, 1, calls)

	cache.Invalidate(id)
	account, err = cache.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, account.IsActive)
	assert.Equal(t, 2, calls)

	unknown := kernel.NewUUID()
	_, err = cache.Get(ctx, unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = cache.Get(ctx, unknown)
	require.True(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Equal(t, 4, calls, "errors are not cached")
}
