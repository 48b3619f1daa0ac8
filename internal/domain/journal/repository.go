package journal

import "context"

// NoteRepository is the owner-scoped storage contract for notes. Every
// query carries the owner so a guest can never read or write another
// scope's rows; implementations translate the owner into the appropriate
// column predicate.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	GetBySID(ctx context.Context, owner Owner, sid string) (*Note, error)
	ListByOwner(ctx context.Context, owner Owner) ([]*Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, owner Owner, sid string) error
}

// NoteDetailRepository is the owner-scoped storage contract for details.
type NoteDetailRepository interface {
	Create(ctx context.Context, detail *NoteDetail) error
	ListByNote(ctx context.Context, owner Owner, noteSID string) ([]*NoteDetail, error)
}

// HistoryRepository is the owner-scoped storage contract for session
// history.
type HistoryRepository interface {
	Create(ctx context.Context, entry *HistoryEntry) error
	ListByOwner(ctx context.Context, owner Owner, limit int) ([]*HistoryEntry, error)
}
