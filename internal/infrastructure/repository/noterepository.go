package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/mappers"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/errors"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NoteMapper
}

func NewNoteRepository(db *gorm.DB) journal.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mappers.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *journal.Note) error {
	model, err := r.mapper.ToModel(note)
	if err != nil {
		return fmt.Errorf("failed to map note entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	if err := note.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set note ID: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) GetBySID(ctx context.Context, owner journal.Owner, sid string) (*journal.Note, error) {
	var model models.NoteModel

	query := scopeOwner(r.db.WithContext(ctx), owner).Where("sid = ?", sid)
	if err := query.First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("note not found")
		}
		return nil, fmt.Errorf("failed to get note by sid: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map note model to entity: %w", err)
	}

	return entity, nil
}

func (r *NoteRepositoryImpl) ListByOwner(ctx context.Context, owner journal.Owner) ([]*journal.Note, error) {
	var modelList []*models.NoteModel

	query := scopeOwner(r.db.WithContext(ctx), owner).Order("created_at DESC")
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes by owner: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map note models to entities: %w", err)
	}

	return entities, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *journal.Note) error {
	model, err := r.mapper.ToModel(note)
	if err != nil {
		return fmt.Errorf("failed to map note entity to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.NoteModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":      model.Title,
			"content":    model.Content,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update note: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("note not found")
	}

	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, owner journal.Owner, sid string) error {
	query := scopeOwner(r.db.WithContext(ctx), owner).Where("sid = ?", sid)

	result := query.Delete(&models.NoteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("note not found")
	}

	return nil
}
