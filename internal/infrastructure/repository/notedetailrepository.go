package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/mappers"
	"inkwell/internal/infrastructure/persistence/models"
)

type NoteDetailRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NoteDetailMapper
}

func NewNoteDetailRepository(db *gorm.DB) journal.NoteDetailRepository {
	return &NoteDetailRepositoryImpl{
		db:     db,
		mapper: mappers.NewNoteDetailMapper(),
	}
}

func (r *NoteDetailRepositoryImpl) Create(ctx context.Context, detail *journal.NoteDetail) error {
	model, err := r.mapper.ToModel(detail)
	if err != nil {
		return fmt.Errorf("failed to map note detail entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create note detail: %w", err)
	}

	if err := detail.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set note detail ID: %w", err)
	}

	return nil
}

func (r *NoteDetailRepositoryImpl) ListByNote(ctx context.Context, owner journal.Owner, noteSID string) ([]*journal.NoteDetail, error) {
	var modelList []*models.NoteDetailModel

	query := scopeOwner(r.db.WithContext(ctx), owner).
		Where("note_sid = ?", noteSID).
		Order("created_at ASC")
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list note details: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map note detail models to entities: %w", err)
	}

	return entities, nil
}
