package mappers

import (
	"fmt"
	"time"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
	"inkwell/internal/infrastructure/persistence/models"
)

type UsageRecordMapper interface {
	ToEntity(model *models.UsageRecordModel) (*usage.Record, error)
}

type UsageRecordMapperImpl struct{}

func NewUsageRecordMapper() UsageRecordMapper {
	return &UsageRecordMapperImpl{}
}

func (m *UsageRecordMapperImpl) ToEntity(model *models.UsageRecordModel) (*usage.Record, error) {
	if model == nil {
		return nil, nil
	}

	scope := identity.Scope{
		Kind: identity.ScopeKind(model.ScopeKind),
		ID:   model.ScopeID,
	}

	entity, err := usage.ReconstructRecord(
		scope,
		model.Year,
		time.Month(model.Month),
		model.Day,
		model.DailyUsage,
		model.MonthlyUsage,
		model.RequestCount,
		model.InputTokens,
		model.OutputTokens,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct usage record entity: %w", err)
	}

	return entity, nil
}
