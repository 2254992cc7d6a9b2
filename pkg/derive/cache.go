package derive

import (
	"reflect"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tablekit/tablekit/pkg/errors"
)

// Cache defaults. Descriptor lists are tiny, so the TTL exists mainly to
// keep the cache from pinning types loaded by tests or plugins forever.
const (
	DefaultCacheTTL     = 5 * time.Minute
	defaultCacheCleanup = 10 * time.Minute
)

// Deriver derives column descriptors with a per-type cache.
// The zero value is not usable; create one with NewDeriver.
type Deriver struct {
	cache *gocache.Cache
}

// Option configures a Deriver.
type Option func(*Deriver) error

// WithCacheTTL configures how long derived descriptors are cached per type.
func WithCacheTTL(ttl time.Duration) Option {
	return func(d *Deriver) error {
		if ttl <= 0 {
			return errors.NewValidationError("ttl", ttl, "must be positive")
		}
		d.cache = gocache.New(ttl, defaultCacheCleanup)
		return nil
	}
}

// NewDeriver creates a new Deriver with options.
func NewDeriver(opts ...Option) (*Deriver, error) {
	d := &Deriver{
		cache: gocache.New(DefaultCacheTTL, defaultCacheCleanup),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// defaultDeriver backs the package-level convenience functions.
var defaultDeriver = &Deriver{
	cache: gocache.New(DefaultCacheTTL, defaultCacheCleanup),
}

// cacheKey identifies a struct type in the cache.
func cacheKey(rt reflect.Type) string {
	if rt.PkgPath() != "" && rt.Name() != "" {
		return rt.PkgPath() + "." + rt.Name()
	}
	return rt.String()
}

// lookup fetches cached fields for a type.
func (d *Deriver) lookup(rt reflect.Type) ([]field, bool) {
	if cached, ok := d.cache.Get(cacheKey(rt)); ok {
		if fields, ok := cached.([]field); ok {
			return fields, true
		}
	}
	return nil, false
}

// store caches derived fields for a type.
func (d *Deriver) store(rt reflect.Type, fields []field) {
	d.cache.Set(cacheKey(rt), fields, gocache.DefaultExpiration)
}

// CacheSize returns the number of cached type descriptors.
func (d *Deriver) CacheSize() int {
	return d.cache.ItemCount()
}

// FlushCache clears all cached type descriptors.
func (d *Deriver) FlushCache() {
	d.cache.Flush()
}
