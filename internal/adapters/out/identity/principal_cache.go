package identity

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	principalCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parceltrack_principal_cache_hits_total",
		Help: "Principal lookups served from the cache.",
	})
	principalCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parceltrack_principal_cache_misses_total",
		Help: "Principal lookups that went to the user directory.",
	})
)

// Account is what authentication needs to know about a user.
type Account struct {
	Principal user.Principal
	IsActive  bool
}

// AccountLoader resolves an account from the user directory.
type AccountLoader interface {
	LoadAccount(ctx context.Context, id kernel.UUID) (Account, error)
}

// AccountLoaderFunc adapts a function to AccountLoader.
type AccountLoaderFunc func(ctx context.Context, id kernel.UUID) (Account, error)

func (f AccountLoaderFunc) LoadAccount(ctx context.Context, id kernel.UUID) (Account, error) {
	return f(ctx, id)
}

// PrincipalCache keeps recently resolved accounts for ttl so that every
// authenticated request does not hit the database. Entries are dropped on
// Invalidate, e.g. after a user is blocked.
type PrincipalCache struct {
	cache  *expirable.LRU[kernel.UUID, Account]
	loader AccountLoader
}

func NewPrincipalCache(size int, ttl time.Duration, loader AccountLoader) *PrincipalCache {
	return &PrincipalCache{
		cache:  expirable.NewLRU[kernel.UUID, Account](size, nil, ttl),
		loader: loader,
	}
}

// Get returns the cached account or loads and caches it. Load errors are not cached.
func (c *PrincipalCache) Get(ctx context.Context, id kernel.UUID) (Account, error) {
	if account, ok := c.cache.Get(id); ok {
		principalCacheHits.Inc()
		return account, nil
	}
	principalCacheMisses.Inc()

	account, err := c.loader.LoadAccount(ctx, id)
	if err != nil {
		return Account{}, err
	}
	c.cache.Add(id, account)
	return account, nil
}

// Invalidate forgets id.
func (c *PrincipalCache) Invalidate(id kernel.UUID) {
	c.cache.Remove(id)
}
