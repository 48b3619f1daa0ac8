package models

import (
	"time"

	"inkwell/internal/shared/constants"
)

// NoteDetailModel duplicates the ownership pair so detail rows migrate on
// their own, without joining through the parent note.
type NoteDetailModel struct {
	ID            uint    `gorm:"primaryKey"`
	SID           string  `gorm:"size:36;not null;uniqueIndex"`
	NoteSID       string  `gorm:"size:36;not null;index"`
	OwnerUserID   *string `gorm:"size:64;index:idx_note_details_owner_user"`
	OwnerDeviceID *string `gorm:"size:128;index:idx_note_details_owner_device"`
	Content       string  `gorm:"type:mediumtext;not null"`
	CreatedAt     time.Time
}

func (NoteDetailModel) TableName() string {
	return constants.TableNoteDetails
}
