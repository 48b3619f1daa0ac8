package journal

import (
	"context"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/journal"
	"inkwell/internal/shared/errors"
	"inkwell/internal/shared/logger"
)

const defaultHistoryLimit = 100

// HistoryService handles journaling-session history scoped by identity.
type HistoryService struct {
	history journal.HistoryRepository
	logger  logger.Interface
}

// NewHistoryService creates a history service.
func NewHistoryService(history journal.HistoryRepository, log logger.Interface) *HistoryService {
	return &HistoryService{
		history: history,
		logger:  log,
	}
}

// List returns the identity's recent session history.
func (s *HistoryService) List(ctx context.Context, id identity.Identity, limit int) ([]*journal.HistoryEntry, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}

	entries, err := s.history.ListByOwner(ctx, owner, limit)
	if err != nil {
		s.logger.Errorw("failed to list history", "error", err)
		return nil, errors.NewInternalError("failed to load history")
	}
	return entries, nil
}

// Append stores one session turn stamped with the identity's scope.
func (s *HistoryService) Append(ctx context.Context, id identity.Identity, sessionID string, role journal.HistoryRole, content string, metadata map[string]any) (*journal.HistoryEntry, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}

	entry, err := journal.NewHistoryEntry(sessionID, owner, role, content, metadata)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Errorw("failed to append history entry", "session_id", sessionID, "error", err)
		return nil, errors.NewInternalError("failed to store history entry")
	}
	return entry, nil
}
