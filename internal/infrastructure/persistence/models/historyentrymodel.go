package models

import (
	"time"

	"gorm.io/datatypes"

	"inkwell/internal/shared/constants"
)

type HistoryEntryModel struct {
	ID            uint    `gorm:"primaryKey"`
	SessionID     string  `gorm:"size:64;not null;index"`
	OwnerUserID   *string `gorm:"size:64;index:idx_history_owner_user"`
	OwnerDeviceID *string `gorm:"size:128;index:idx_history_owner_device"`
	Role          string  `gorm:"size:20;not null"`
	Content       string  `gorm:"type:mediumtext;not null"`
	Metadata      datatypes.JSON
	CreatedAt     time.Time `gorm:"index"`
}

func (HistoryEntryModel) TableName() string {
	return constants.TableHistoryEntries
}
