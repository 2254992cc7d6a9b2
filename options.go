package tablekit

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tablekit/tablekit/pkg/derive"
	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/logging"
	"github.com/tablekit/tablekit/pkg/tabular"
)

// Option is a function that configures a Mapper instance
type Option func(*config) error

// config holds the Mapper configuration assembled from options.
type config struct {
	reconciler tabular.Reconciler
	deriver    *derive.Deriver
	logger     *zerolog.Logger
	cacheTTL   time.Duration
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() *config {
	return &config{
		logger:   logging.Default(),
		cacheTTL: derive.DefaultCacheTTL,
	}
}

// WithReconciler configures a custom column reconciler.
func WithReconciler(r tabular.Reconciler) Option {
	return func(c *config) error {
		if r == nil {
			return errors.NewNilArgumentError("reconciler")
		}
		c.reconciler = r
		return nil
	}
}

// WithDeriver configures a custom column deriver.
func WithDeriver(d *derive.Deriver) Option {
	return func(c *config) error {
		if d == nil {
			return errors.NewNilArgumentError("deriver")
		}
		c.deriver = d
		return nil
	}
}

// WithLogger configures the logger used by the pipeline.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewNilArgumentError("logger")
		}
		c.logger = logger
		return nil
	}
}

// WithCacheTTL configures how long derived column descriptors are cached
// per type. Ignored when WithDeriver supplies a deriver.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) error {
		if ttl <= 0 {
			return errors.NewValidationError("ttl", ttl, "must be positive")
		}
		c.cacheTTL = ttl
		return nil
	}
}
