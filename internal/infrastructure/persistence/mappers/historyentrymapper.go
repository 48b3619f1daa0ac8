package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/mapper"
)

type HistoryEntryMapper interface {
	ToEntity(model *models.HistoryEntryModel) (*journal.HistoryEntry, error)
	ToModel(entity *journal.HistoryEntry) (*models.HistoryEntryModel, error)
	ToEntities(models []*models.HistoryEntryModel) ([]*journal.HistoryEntry, error)
}

type HistoryEntryMapperImpl struct{}

func NewHistoryEntryMapper() HistoryEntryMapper {
	return &HistoryEntryMapperImpl{}
}

func (m *HistoryEntryMapperImpl) ToEntity(model *models.HistoryEntryModel) (*journal.HistoryEntry, error) {
	if model == nil {
		return nil, nil
	}

	owner, err := journal.ReconstructOwner(model.OwnerUserID, model.OwnerDeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct history entry owner: %w", err)
	}

	var metadata map[string]any
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry metadata: %w", err)
		}
	}

	entity, err := journal.ReconstructHistoryEntry(
		model.ID,
		model.SessionID,
		owner,
		journal.HistoryRole(model.Role),
		model.Content,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct history entry entity: %w", err)
	}

	return entity, nil
}

func (m *HistoryEntryMapperImpl) ToModel(entity *journal.HistoryEntry) (*models.HistoryEntryModel, error) {
	if entity == nil {
		return nil, nil
	}

	userID, deviceID := entity.Owner().Columns()

	metadata, err := json.Marshal(entity.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history entry metadata: %w", err)
	}

	return &models.HistoryEntryModel{
		ID:            entity.ID(),
		SessionID:     entity.SessionID(),
		OwnerUserID:   userID,
		OwnerDeviceID: deviceID,
		Role:          string(entity.Role()),
		Content:       entity.Content(),
		Metadata:      datatypes.JSON(metadata),
		CreatedAt:     entity.CreatedAt(),
	}, nil
}

func (m *HistoryEntryMapperImpl) ToEntities(modelList []*models.HistoryEntryModel) ([]*journal.HistoryEntry, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.HistoryEntryModel) uint { return model.ID })
}
