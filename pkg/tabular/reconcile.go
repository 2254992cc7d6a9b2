package tabular

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/guard"
	"github.com/tablekit/tablekit/pkg/logging"
)

// Mapping records, for each candidate column, the actual column now present
// in the table that the candidate's values should be written to.
type Mapping map[*Column]*Column

// Reconciler merges candidate columns, freshly derived from some value's
// fields, into a live table without violating name or type integrity.
type Reconciler interface {
	// Reconcile processes candidates in order and mutates the table's column
	// set in place: a candidate with no colliding column is appended
	// verbatim, a candidate colliding with a column of a different type is
	// appended under a disambiguated name, and a candidate colliding with a
	// same-typed column is mapped onto that column. The returned mapping
	// drives subsequent row population.
	Reconcile(t *Table, candidates []*Column) (Mapping, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	logger *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*reconciler) error

// WithLogger configures the logger used for reconciliation tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *reconciler) error {
		if logger == nil {
			return errors.NewNilArgumentError("logger")
		}
		r.logger = logger
		return nil
	}
}

// NewReconciler creates a new Reconciler with options.
func NewReconciler(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		logger: logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Reconcile merges candidates into the table's column set.
//
// Collision detection is a prefix match, not an equality match: an existing
// column collides with a candidate when the existing column's name starts
// with the candidate's name. The comparison is asymmetric and order
// dependent ("Age" collides with an existing "AgeGroup", but "AgeGroup"
// does not collide with an existing "Age"). This is long-standing
// compatibility behavior; callers relying on it should not expect
// equality semantics.
//
// Columns appended for earlier candidates take part in collision detection
// for later candidates of the same pass. A candidate is never dropped: it
// is appended, appended under a new name, or mapped onto an existing
// same-typed column, where the first such column in table order wins.
func (r *reconciler) Reconcile(t *Table, candidates []*Column) (Mapping, error) {
	if err := guard.NonNil("table", t); err != nil {
		return nil, err
	}
	if err := guard.NonEmpty("candidates", candidates); err != nil {
		return nil, err
	}

	mapping := make(Mapping, len(candidates))

	for _, c := range candidates {
		if err := guard.NonNil("candidate", c); err != nil {
			return nil, err
		}

		var matching, mismatched Columns
		for _, existing := range t.Columns {
			if !strings.HasPrefix(existing.Name, c.Name) {
				continue
			}
			if existing.Type == c.Type {
				matching = append(matching, existing)
			} else {
				mismatched = append(mismatched, existing)
			}
		}

		switch {
		case len(matching) == 0 && len(mismatched) == 0:
			if err := t.AddColumn(c); err != nil {
				return nil, errors.NewReconcileError(t.Name, c.Name, "adding column", err)
			}
			mapping[c] = c

			r.logger.Debug().
				Str("table", t.Name).
				Str("column", c.Name).
				Str("type", c.Type.String()).
				Msg("added candidate column")

		case len(mismatched) > 0:
			// A type conflict wins even when a same-typed match also exists.
			renamed := &Column{
				Name:    c.Name + strconv.Itoa(len(mismatched)),
				Caption: c.Name,
				Type:    c.Type,
				Expr:    c.Expr,
			}
			if err := t.AddColumn(renamed); err != nil {
				return nil, errors.NewReconcileError(t.Name, renamed.Name, "adding renamed column", err)
			}
			mapping[c] = renamed

			r.logger.Debug().
				Str("table", t.Name).
				Str("candidate", c.Name).
				Str("column", renamed.Name).
				Int("mismatches", len(mismatched)).
				Msg("added renamed column for type conflict")

		default:
			// First same-typed match in table order wins.
			mapping[c] = matching[0]

			r.logger.Debug().
				Str("table", t.Name).
				Str("candidate", c.Name).
				Str("column", matching[0].Name).
				Msg("mapped candidate onto existing column")
		}
	}

	return mapping, nil
}
