package reconcile

import "github.com/siamvotes/votemerge/pkg/errors"

// DuplicatePolicy decides which registry entry survives when two share a
// join key. The sources occasionally re-list a registration after a
// correction, and the later entry is the corrected one, so last-wins is the
// default. The policy is explicit so the choice shows up in configuration
// and tests rather than falling out of map insertion order.
type DuplicatePolicy string

// Duplicate policies.
const (
	// DuplicateLastWins keeps the later entry.
	DuplicateLastWins DuplicatePolicy = "last_wins"
	// DuplicateFirstWins keeps the earlier entry.
	DuplicateFirstWins DuplicatePolicy = "first_wins"
)

// IsValid returns true for a defined policy.
func (p DuplicatePolicy) IsValid() bool {
	return p == DuplicateLastWins || p == DuplicateFirstWins
}

// options configures a reconciler.
type options struct {
	duplicatePolicy DuplicatePolicy
	nameFallback    bool
	sampleLimit     int
}

func defaultOptions() *options {
	return &options{
		duplicatePolicy: DuplicateLastWins,
		nameFallback:    false,
		sampleLimit:     10,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithDuplicatePolicy sets which registry entry wins a key collision.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(o *options) error {
		if !policy.IsValid() {
			return &errors.ValidationError{
				Field:   "duplicate_policy",
				Value:   string(policy),
				Message: "must be last_wins or first_wins",
			}
		}
		o.duplicatePolicy = policy
		return nil
	}
}

// WithNameFallback enables matching unmatched constituency rows by
// normalized candidate name when the ballot-number lookup finds nothing.
func WithNameFallback(enabled bool) Option {
	return func(o *options) error {
		o.nameFallback = enabled
		return nil
	}
}

// WithSampleLimit caps how many diagnostics the result summary samples.
// Zero disables sampling (summary carries no examples); the full list is
// always retained on the result.
func WithSampleLimit(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field:   "sample_limit",
				Value:   n,
				Message: "must be non-negative",
			}
		}
		o.sampleLimit = n
		return nil
	}
}
