// Package migration coordinates the one-shot transfer of a guest device's
// journal data into an authenticated account.
package migration

import (
	"context"
	"fmt"

	"inkwell/internal/domain/migration"
	"inkwell/internal/shared/logger"
)

// Coordinator runs the guest-data migration saga. Steps are strictly
// sequential so a failure is attributable to exactly one table and never
// races with a partially-applied earlier step.
type Coordinator struct {
	repo   migration.GuestDataRepository
	logger logger.Interface
}

// NewCoordinator creates a migration coordinator.
func NewCoordinator(repo migration.GuestDataRepository, log logger.Interface) *Coordinator {
	return &Coordinator{
		repo:   repo,
		logger: log,
	}
}

// HasGuestData reports whether any monitored table still holds rows owned
// by the device. It short-circuits on the first table with a hit.
func (c *Coordinator) HasGuestData(ctx context.Context, userID, deviceID string) (bool, error) {
	if userID == "" || deviceID == "" {
		return false, fmt.Errorf("user id and device id are required")
	}

	for _, table := range migration.Tables() {
		found, err := c.repo.HasGuestRows(ctx, table, deviceID)
		if err != nil {
			return false, fmt.Errorf("failed to probe guest rows in %s: %w", table, err)
		}
		if found {
			return true, nil
		}
	}

	return false, nil
}

// Merge transfers ownership of the device's rows to the user, table by
// table in the fixed order. On a per-table failure it aborts immediately
// without undoing earlier tables; because every step's predicate excludes
// already-claimed rows, the caller may simply re-invoke Merge and the
// failed table will retry while completed tables match zero rows.
func (c *Coordinator) Merge(ctx context.Context, userID, deviceID string) (*migration.Result, error) {
	if userID == "" || deviceID == "" {
		return nil, fmt.Errorf("user id and device id are required")
	}

	result := &migration.Result{
		ClaimedRows: make(map[migration.Table]int64),
	}

	for _, table := range migration.Tables() {
		claimed, err := c.repo.ClaimGuestRows(ctx, table, userID, deviceID)
		if err != nil {
			result.Failed = true
			result.FailedTable = table
			c.logger.Errorw("guest data merge aborted",
				"table", table,
				"user_id", userID,
				"device_id", deviceID,
				"claimed_so_far", result.TotalClaimed(),
				"error", err)
			return result, fmt.Errorf("failed to claim guest rows in %s: %w", table, err)
		}
		result.ClaimedRows[table] = claimed
	}

	c.logger.Infow("guest data merged",
		"user_id", userID,
		"device_id", deviceID,
		"claimed_rows", result.TotalClaimed())

	return result, nil
}
