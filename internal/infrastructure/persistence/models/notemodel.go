package models

import (
	"time"

	"inkwell/internal/shared/constants"
)

// NoteModel carries the ownership pair; exactly one of OwnerUserID and
// OwnerDeviceID is non-null for a valid row.
type NoteModel struct {
	ID            uint    `gorm:"primaryKey"`
	SID           string  `gorm:"size:36;not null;uniqueIndex"`
	OwnerUserID   *string `gorm:"size:64;index:idx_notes_owner_user"`
	OwnerDeviceID *string `gorm:"size:128;index:idx_notes_owner_device"`
	Title         string  `gorm:"size:200;not null"`
	Content       string  `gorm:"type:mediumtext;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (NoteModel) TableName() string {
	return constants.TableNotes
}
