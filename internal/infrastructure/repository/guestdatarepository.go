package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/domain/migration"
)

type GuestDataRepositoryImpl struct {
	db *gorm.DB
}

func NewGuestDataRepository(db *gorm.DB) migration.GuestDataRepository {
	return &GuestDataRepositoryImpl{db: db}
}

// HasGuestRows probes for at least one unclaimed guest row. LIMIT 1 keeps
// the probe cheap on large guest datasets.
func (r *GuestDataRepositoryImpl) HasGuestRows(ctx context.Context, table migration.Table, deviceID string) (bool, error) {
	var one int

	err := r.db.WithContext(ctx).
		Table(string(table)).
		Select("1").
		Where("owner_device_id = ? AND owner_user_id IS NULL", deviceID).
		Limit(1).
		Scan(&one).Error
	if err != nil {
		return false, fmt.Errorf("failed to probe guest rows in %s: %w", table, err)
	}

	return one == 1, nil
}

// ClaimGuestRows flips ownership of the device's unclaimed rows to the
// user in one UPDATE. The predicate makes the claim idempotent: rows
// already claimed match nothing, so a retry after a partial failure only
// touches what the first pass missed.
func (r *GuestDataRepositoryImpl) ClaimGuestRows(ctx context.Context, table migration.Table, userID, deviceID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Table(string(table)).
		Where("owner_device_id = ? AND owner_user_id IS NULL", deviceID).
		Updates(map[string]interface{}{
			"owner_user_id":   userID,
			"owner_device_id": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to claim guest rows in %s: %w", table, result.Error)
	}

	return result.RowsAffected, nil
}
