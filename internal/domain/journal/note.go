package journal

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxNoteTitleLength   = 200
	maxNoteContentLength = 50000
)

// Note is a journal entry. Content is markdown, sanitized at the
// application boundary before it reaches the entity.
type Note struct {
	id        uint
	sid       string
	owner     Owner
	title     string
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// NewNote creates a note owned by the creating identity's scope.
func NewNote(sid string, owner Owner, title, content string) (*Note, error) {
	if sid == "" {
		return nil, fmt.Errorf("note sid is required")
	}
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Note{
		sid:       sid,
		owner:     owner,
		title:     strings.TrimSpace(title),
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructNote rebuilds a note from persistence.
func ReconstructNote(id uint, sid string, owner Owner, title, content string, createdAt, updatedAt time.Time) (*Note, error) {
	if id == 0 {
		return nil, fmt.Errorf("note id cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("note sid is required")
	}
	return &Note{
		id:        id,
		sid:       sid,
		owner:     owner,
		title:     title,
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (n *Note) ID() uint             { return n.id }
func (n *Note) SID() string          { return n.sid }
func (n *Note) Owner() Owner         { return n.owner }
func (n *Note) Title() string        { return n.title }
func (n *Note) Content() string      { return n.content }
func (n *Note) CreatedAt() time.Time { return n.createdAt }
func (n *Note) UpdatedAt() time.Time { return n.updatedAt }

// SetID sets the note ID (only for persistence layer use)
func (n *Note) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("note ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("note ID cannot be zero")
	}
	n.id = id
	return nil
}

// Update replaces the title and content.
func (n *Note) Update(title, content string) error {
	if err := validateNoteFields(title, content); err != nil {
		return err
	}
	n.title = strings.TrimSpace(title)
	n.content = content
	n.updatedAt = time.Now().UTC()
	return nil
}

func validateNoteFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("note title is required")
	}
	if len(title) > maxNoteTitleLength {
		return fmt.Errorf("note title exceeds %d characters", maxNoteTitleLength)
	}
	if len(content) > maxNoteContentLength {
		return fmt.Errorf("note content exceeds %d characters", maxNoteContentLength)
	}
	return nil
}
