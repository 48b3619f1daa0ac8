// Package migration defines the one-way transfer of device-scoped rows to
// an authenticated account. The transfer is modeled as an ordered list of
// idempotent per-table steps: there is no cross-table transaction, so a
// partial migration is a first-class state and retries must be safe.
package migration

import "context"

// Table names a resource table participating in migration.
type Table string

const (
	TableNotes          Table = "notes"
	TableNoteDetails    Table = "note_details"
	TableHistoryEntries Table = "history_entries"
)

// Tables returns the fixed migration order. The order is deterministic for
// observability; correctness does not depend on it because ownership
// columns are independent per table.
func Tables() []Table {
	return []Table{TableNotes, TableNoteDetails, TableHistoryEntries}
}

// GuestDataRepository is the storage contract for migration steps.
type GuestDataRepository interface {
	// HasGuestRows existence-checks (limit 1, not a count) rows where the
	// device owns them and no user does.
	HasGuestRows(ctx context.Context, table Table, deviceID string) (bool, error)

	// ClaimGuestRows transfers ownership of matching rows to the user and
	// returns how many were claimed. The predicate excludes already-claimed
	// rows, making every step idempotent.
	ClaimGuestRows(ctx context.Context, table Table, userID, deviceID string) (int64, error)
}

// Result reports a merge outcome. When Failed is set, tables before
// FailedTable in the fixed order were claimed and stay claimed; re-running
// the merge resumes from the failed table because earlier steps match zero
// rows.
type Result struct {
	ClaimedRows map[Table]int64
	FailedTable Table
	Failed      bool
}

// TotalClaimed sums claimed rows across tables.
func (r *Result) TotalClaimed() int64 {
	var total int64
	for _, n := range r.ClaimedRows {
		total += n
	}
	return total
}
