package usage

import (
	"context"
	"time"

	"inkwell/internal/domain/identity"
)

// Repository is the storage contract for usage records.
type Repository interface {
	// GetCurrent returns the record for the scope and month, or nil when
	// none exists yet.
	GetCurrent(ctx context.Context, scope identity.Scope, year int, month time.Month) (*Record, error)

	// AddUsage applies the delta with a single atomic increment-or-create
	// keyed by (scope, year, month). When the stored day differs from day,
	// the implementation must reset the daily bucket to the delta's values
	// inside the same atomic operation instead of adding to stale data;
	// monthly buckets always accumulate. Concurrent calls for the same
	// scope must commute.
	AddUsage(ctx context.Context, scope identity.Scope, year int, month time.Month, day int, delta Delta) error
}
