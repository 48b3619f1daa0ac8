package mappers

import (
	"fmt"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/mapper"
)

type NoteMapper interface {
	ToEntity(model *models.NoteModel) (*journal.Note, error)
	ToModel(entity *journal.Note) (*models.NoteModel, error)
	ToEntities(models []*models.NoteModel) ([]*journal.Note, error)
}

type NoteMapperImpl struct{}

func NewNoteMapper() NoteMapper {
	return &NoteMapperImpl{}
}

func (m *NoteMapperImpl) ToEntity(model *models.NoteModel) (*journal.Note, error) {
	if model == nil {
		return nil, nil
	}

	owner, err := journal.ReconstructOwner(model.OwnerUserID, model.OwnerDeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct note owner: %w", err)
	}

	entity, err := journal.ReconstructNote(
		model.ID,
		model.SID,
		owner,
		model.Title,
		model.Content,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct note entity: %w", err)
	}

	return entity, nil
}

func (m *NoteMapperImpl) ToModel(entity *journal.Note) (*models.NoteModel, error) {
	if entity == nil {
		return nil, nil
	}

	userID, deviceID := entity.Owner().Columns()

	return &models.NoteModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		OwnerUserID:   userID,
		OwnerDeviceID: deviceID,
		Title:         entity.Title(),
		Content:       entity.Content(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *NoteMapperImpl) ToEntities(modelList []*models.NoteModel) ([]*journal.Note, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.NoteModel) uint { return model.ID })
}
