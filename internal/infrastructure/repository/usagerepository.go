package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
	"inkwell/internal/infrastructure/persistence/mappers"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/biztime"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UsageRecordMapper
}

func NewUsageRepository(db *gorm.DB) usage.Repository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mappers.NewUsageRecordMapper(),
	}
}

func (r *UsageRepositoryImpl) GetCurrent(ctx context.Context, scope identity.Scope, year int, month time.Month) (*usage.Record, error) {
	var model models.UsageRecordModel

	err := r.db.WithContext(ctx).
		Where("scope_kind = ? AND scope_id = ? AND year = ? AND month = ?",
			string(scope.Kind), scope.ID, year, int(month)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map usage record model to entity: %w", err)
	}

	return entity, nil
}

// AddUsage performs a single increment-or-create upsert keyed by
// (scope_kind, scope_id, year, month). The daily bucket carries its own
// rollover: when the stored day differs from the write day the CASE
// expression replaces the stale value instead of adding to it, in the
// same statement that bumps the monthly counters.
func (r *UsageRepositoryImpl) AddUsage(ctx context.Context, scope identity.Scope, year int, month time.Month, day int, delta usage.Delta) error {
	now := biztime.NowUTC()

	model := &models.UsageRecordModel{
		ScopeKind:         string(scope.Kind),
		ScopeID:           scope.ID,
		Year:              year,
		Month:             int(month),
		Day:               day,
		DailyUsage:        delta.TotalTokens,
		MonthlyUsage:      delta.TotalTokens,
		RequestCount:      delta.RequestCount,
		InputTokens:       delta.InputTokens,
		OutputTokens:      delta.OutputTokens,
		SessionCount:      delta.SessionCount,
		NoteProposalCount: delta.NoteProposalCount,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "scope_kind"}, {Name: "scope_id"}, {Name: "year"}, {Name: "month"},
		},
		DoUpdates: rolloverAssignments(day, delta, now),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert usage record: %w", err)
	}

	return nil
}

// rolloverAssignments builds the ON DUPLICATE KEY UPDATE list in a fixed
// order. MySQL evaluates SET clauses left to right, so the daily_usage
// CASE must read the stored day before the day assignment overwrites it;
// otherwise a cross-day write would accumulate instead of resetting.
func rolloverAssignments(day int, delta usage.Delta, now time.Time) clause.Set {
	return clause.Set{
		{Column: clause.Column{Name: "daily_usage"}, Value: gorm.Expr(
			"CASE WHEN day = ? THEN daily_usage + ? ELSE ? END",
			day, delta.TotalTokens, delta.TotalTokens,
		)},
		{Column: clause.Column{Name: "day"}, Value: day},
		{Column: clause.Column{Name: "monthly_usage"}, Value: gorm.Expr("monthly_usage + ?", delta.TotalTokens)},
		{Column: clause.Column{Name: "request_count"}, Value: gorm.Expr("request_count + ?", delta.RequestCount)},
		{Column: clause.Column{Name: "input_tokens"}, Value: gorm.Expr("input_tokens + ?", delta.InputTokens)},
		{Column: clause.Column{Name: "output_tokens"}, Value: gorm.Expr("output_tokens + ?", delta.OutputTokens)},
		{Column: clause.Column{Name: "session_count"}, Value: gorm.Expr("session_count + ?", delta.SessionCount)},
		{Column: clause.Column{Name: "note_proposal_count"}, Value: gorm.Expr("note_proposal_count + ?", delta.NoteProposalCount)},
		{Column: clause.Column{Name: "updated_at"}, Value: now},
	}
}
