package mappers

import (
	"fmt"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/mapper"
)

type NoteDetailMapper interface {
	ToEntity(model *models.NoteDetailModel) (*journal.NoteDetail, error)
	ToModel(entity *journal.NoteDetail) (*models.NoteDetailModel, error)
	ToEntities(models []*models.NoteDetailModel) ([]*journal.NoteDetail, error)
}

type NoteDetailMapperImpl struct{}

func NewNoteDetailMapper() NoteDetailMapper {
	return &NoteDetailMapperImpl{}
}

func (m *NoteDetailMapperImpl) ToEntity(model *models.NoteDetailModel) (*journal.NoteDetail, error) {
	if model == nil {
		return nil, nil
	}

	owner, err := journal.ReconstructOwner(model.OwnerUserID, model.OwnerDeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct note detail owner: %w", err)
	}

	entity, err := journal.ReconstructNoteDetail(
		model.ID,
		model.SID,
		model.NoteSID,
		owner,
		model.Content,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct note detail entity: %w", err)
	}

	return entity, nil
}

func (m *NoteDetailMapperImpl) ToModel(entity *journal.NoteDetail) (*models.NoteDetailModel, error) {
	if entity == nil {
		return nil, nil
	}

	userID, deviceID := entity.Owner().Columns()

	return &models.NoteDetailModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		NoteSID:       entity.NoteSID(),
		OwnerUserID:   userID,
		OwnerDeviceID: deviceID,
		Content:       entity.Content(),
		CreatedAt:     entity.CreatedAt(),
	}, nil
}

func (m *NoteDetailMapperImpl) ToEntities(modelList []*models.NoteDetailModel) ([]*journal.NoteDetail, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.NoteDetailModel) uint { return model.ID })
}
