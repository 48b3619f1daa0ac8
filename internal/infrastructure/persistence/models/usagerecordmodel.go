package models

import (
	"time"

	"inkwell/internal/shared/constants"
)

// UsageRecordModel is one ledger row per scope per calendar month. The
// daily bucket is reset lazily: Day records when DailyUsage was last
// written, and readers treat a stale Day as zero daily usage.
type UsageRecordModel struct {
	ID                uint   `gorm:"primaryKey"`
	ScopeKind         string `gorm:"size:10;not null;uniqueIndex:idx_usage_scope_period"`
	ScopeID           string `gorm:"size:128;not null;uniqueIndex:idx_usage_scope_period"`
	Year              int    `gorm:"not null;uniqueIndex:idx_usage_scope_period"`
	Month             int    `gorm:"not null;uniqueIndex:idx_usage_scope_period"`
	Day               int    `gorm:"not null"`
	DailyUsage        int64  `gorm:"not null;default:0"`
	MonthlyUsage      int64  `gorm:"not null;default:0"`
	RequestCount      int64  `gorm:"not null;default:0"`
	InputTokens       int64  `gorm:"not null;default:0"`
	OutputTokens      int64  `gorm:"not null;default:0"`
	SessionCount      int64  `gorm:"not null;default:0"`
	NoteProposalCount int64  `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UsageRecordModel) TableName() string {
	return constants.TableUsageRecords
}
