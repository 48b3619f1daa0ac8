package repository

import (
	"gorm.io/gorm"

	"inkwell/internal/domain/journal"
)

// scopeOwner applies the owner predicate. Device-scoped queries exclude
// rows that already carry a user owner, so data claimed by a migration
// vanishes from the guest's view immediately.
func scopeOwner(query *gorm.DB, owner journal.Owner) *gorm.DB {
	if owner.IsUser() {
		return query.Where("owner_user_id = ?", owner.UserID())
	}
	return query.Where("owner_device_id = ? AND owner_user_id IS NULL", owner.DeviceID())
}
