package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/domain/journal"
	"inkwell/internal/infrastructure/persistence/mappers"
	"inkwell/internal/infrastructure/persistence/models"
)

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.HistoryEntryMapper
}

func NewHistoryRepository(db *gorm.DB) journal.HistoryRepository {
	return &HistoryRepositoryImpl{
		db:     db,
		mapper: mappers.NewHistoryEntryMapper(),
	}
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, entry *journal.HistoryEntry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to map history entry entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set history entry ID: %w", err)
	}

	return nil
}

func (r *HistoryRepositoryImpl) ListByOwner(ctx context.Context, owner journal.Owner, limit int) ([]*journal.HistoryEntry, error) {
	var modelList []*models.HistoryEntryModel

	query := scopeOwner(r.db.WithContext(ctx), owner).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map history entry models to entities: %w", err)
	}

	return entities, nil
}
