package journal

import (
	"fmt"
	"time"
)

// HistoryRole identifies who produced a session turn.
type HistoryRole string

const (
	HistoryRoleUser      HistoryRole = "user"
	HistoryRoleAssistant HistoryRole = "assistant"
)

func (r HistoryRole) IsValid() bool {
	return r == HistoryRoleUser || r == HistoryRoleAssistant
}

// HistoryEntry is one turn of a journaling session. Metadata carries
// model/latency details the client attaches; the server stores it opaquely.
type HistoryEntry struct {
	id        uint
	sessionID string
	owner     Owner
	role      HistoryRole
	content   string
	metadata  map[string]any
	createdAt time.Time
}

// NewHistoryEntry creates a session history entry.
func NewHistoryEntry(sessionID string, owner Owner, role HistoryRole, content string, metadata map[string]any) (*HistoryEntry, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("history entry session id is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid history role: %s", role)
	}
	if content == "" {
		return nil, fmt.Errorf("history entry content is required")
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &HistoryEntry{
		sessionID: sessionID,
		owner:     owner,
		role:      role,
		content:   content,
		metadata:  metadata,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructHistoryEntry rebuilds an entry from persistence.
func ReconstructHistoryEntry(id uint, sessionID string, owner Owner, role HistoryRole, content string, metadata map[string]any, createdAt time.Time) (*HistoryEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("history entry id cannot be zero")
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &HistoryEntry{
		id:        id,
		sessionID: sessionID,
		owner:     owner,
		role:      role,
		content:   content,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (h *HistoryEntry) ID() uint                 { return h.id }
func (h *HistoryEntry) SessionID() string        { return h.sessionID }
func (h *HistoryEntry) Owner() Owner             { return h.owner }
func (h *HistoryEntry) Role() HistoryRole        { return h.role }
func (h *HistoryEntry) Content() string          { return h.content }
func (h *HistoryEntry) Metadata() map[string]any { return h.metadata }
func (h *HistoryEntry) CreatedAt() time.Time     { return h.createdAt }

// SetID sets the entry ID (only for persistence layer use)
func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	h.id = id
	return nil
}
