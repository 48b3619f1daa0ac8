// Package journal implements the identity-scoped gateway in front of the
// journal resources. Every operation resolves its storage predicate from
// the request's identity; a blocked identity is rejected before any
// storage access.
package journal

import (
	"context"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/journal"
	"inkwell/internal/shared/errors"
	shortid "inkwell/internal/shared/id"
	"inkwell/internal/shared/logger"
)

// NoteService handles note CRUD scoped by the resolved identity.
type NoteService struct {
	notes    journal.NoteRepository
	details  journal.NoteDetailRepository
	renderer *Renderer
	logger   logger.Interface
}

// NewNoteService creates a note service.
func NewNoteService(
	notes journal.NoteRepository,
	details journal.NoteDetailRepository,
	renderer *Renderer,
	log logger.Interface,
) *NoteService {
	return &NoteService{
		notes:    notes,
		details:  details,
		renderer: renderer,
		logger:   log,
	}
}

// ownerFor maps the identity onto an ownership stamp, rejecting Blocked
// before any storage call is possible.
func ownerFor(id identity.Identity) (journal.Owner, error) {
	if id.IsBlocked() {
		return journal.Owner{}, errors.NewUnauthorizedError("no identity")
	}
	owner, err := journal.OwnerFromIdentity(id)
	if err != nil {
		return journal.Owner{}, errors.NewUnauthorizedError("no identity", err.Error())
	}
	return owner, nil
}

// List returns the identity's notes, newest first.
func (s *NoteService) List(ctx context.Context, id identity.Identity) ([]*journal.Note, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Errorw("failed to list notes", "error", err)
		return nil, errors.NewInternalError("failed to load notes")
	}
	return notes, nil
}

// Get returns one of the identity's notes by sid.
func (s *NoteService) Get(ctx context.Context, id identity.Identity, sid string) (*journal.Note, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}
	if sid == "" {
		return nil, errors.NewValidationError("note sid is required")
	}

	note, err := s.notes.GetBySID(ctx, owner, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to get note", "sid", sid, "error", err)
		return nil, errors.NewInternalError("failed to load note")
	}
	return note, nil
}

// Create stores a new note stamped with the identity's ownership scope.
func (s *NoteService) Create(ctx context.Context, id identity.Identity, title, content string) (*journal.Note, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}

	sid, err := shortid.NewNoteSID()
	if err != nil {
		s.logger.Errorw("failed to generate note sid", "error", err)
		return nil, errors.NewInternalError("failed to create note")
	}

	note, err := journal.NewNote(sid, owner, title, content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.notes.Create(ctx, note); err != nil {
		s.logger.Errorw("failed to create note", "error", err)
		return nil, errors.NewInternalError("failed to create note")
	}
	return note, nil
}

// Update rewrites one of the identity's notes.
func (s *NoteService) Update(ctx context.Context, id identity.Identity, sid, title, content string) (*journal.Note, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}

	note, err := s.notes.GetBySID(ctx, owner, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to load note for update", "sid", sid, "error", err)
		return nil, errors.NewInternalError("failed to load note")
	}

	if err := note.Update(title, content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.notes.Update(ctx, note); err != nil {
		s.logger.Errorw("failed to update note", "sid", sid, "error", err)
		return nil, errors.NewInternalError("failed to update note")
	}
	return note, nil
}

// Delete removes one of the identity's notes.
func (s *NoteService) Delete(ctx context.Context, id identity.Identity, sid string) error {
	owner, err := ownerFor(id)
	if err != nil {
		return err
	}
	if sid == "" {
		return errors.NewValidationError("note sid is required")
	}

	if err := s.notes.Delete(ctx, owner, sid); err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		s.logger.Errorw("failed to delete note", "sid", sid, "error", err)
		return errors.NewInternalError("failed to delete note")
	}
	return nil
}

// Render returns the sanitized HTML preview of a note.
func (s *NoteService) Render(ctx context.Context, id identity.Identity, sid string) (string, error) {
	note, err := s.Get(ctx, id, sid)
	if err != nil {
		return "", err
	}

	html, err := s.renderer.Render(note.Content())
	if err != nil {
		s.logger.Errorw("failed to render note", "sid", sid, "error", err)
		return "", errors.NewInternalError("failed to render note")
	}
	return html, nil
}

// AddDetail attaches an AI-proposed expansion to one of the identity's
// notes. The parent lookup runs under the same owner scope, so a guest
// cannot attach details to another scope's note.
func (s *NoteService) AddDetail(ctx context.Context, id identity.Identity, noteSID, content string) (*journal.NoteDetail, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.notes.GetBySID(ctx, owner, noteSID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to load note for detail", "note_sid", noteSID, "error", err)
		return nil, errors.NewInternalError("failed to load note")
	}

	detailSID, err := shortid.NewNoteDetailSID()
	if err != nil {
		s.logger.Errorw("failed to generate detail sid", "error", err)
		return nil, errors.NewInternalError("failed to create note detail")
	}

	detail, err := journal.NewNoteDetail(detailSID, noteSID, owner, content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.details.Create(ctx, detail); err != nil {
		s.logger.Errorw("failed to create note detail", "note_sid", noteSID, "error", err)
		return nil, errors.NewInternalError("failed to create note detail")
	}
	return detail, nil
}

// ListDetails returns the details attached to one of the identity's notes.
func (s *NoteService) ListDetails(ctx context.Context, id identity.Identity, noteSID string) ([]*journal.NoteDetail, error) {
	owner, err := ownerFor(id)
	if err != nil {
		return nil, err
	}
	if noteSID == "" {
		return nil, errors.NewValidationError("note sid is required")
	}

	details, err := s.details.ListByNote(ctx, owner, noteSID)
	if err != nil {
		s.logger.Errorw("failed to list note details", "note_sid", noteSID, "error", err)
		return nil, errors.NewInternalError("failed to load note details")
	}
	return details, nil
}
