package journal

import (
	"fmt"
	"time"
)

// NoteDetail is an AI-proposed expansion attached to a note. Details carry
// their own ownership stamp so guest details migrate with the rest of the
// guest's data even if the parent note reference is dangling.
type NoteDetail struct {
	id        uint
	sid       string
	noteSID   string
	owner     Owner
	content   string
	createdAt time.Time
}

// NewNoteDetail creates a detail for a note.
func NewNoteDetail(sid, noteSID string, owner Owner, content string) (*NoteDetail, error) {
	if sid == "" {
		return nil, fmt.Errorf("note detail sid is required")
	}
	if noteSID == "" {
		return nil, fmt.Errorf("note detail requires a parent note sid")
	}
	if content == "" {
		return nil, fmt.Errorf("note detail content is required")
	}

	return &NoteDetail{
		sid:       sid,
		noteSID:   noteSID,
		owner:     owner,
		content:   content,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructNoteDetail rebuilds a detail from persistence.
func ReconstructNoteDetail(id uint, sid, noteSID string, owner Owner, content string, createdAt time.Time) (*NoteDetail, error) {
	if id == 0 {
		return nil, fmt.Errorf("note detail id cannot be zero")
	}
	return &NoteDetail{
		id:        id,
		sid:       sid,
		noteSID:   noteSID,
		owner:     owner,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (d *NoteDetail) ID() uint             { return d.id }
func (d *NoteDetail) SID() string          { return d.sid }
func (d *NoteDetail) NoteSID() string      { return d.noteSID }
func (d *NoteDetail) Owner() Owner         { return d.owner }
func (d *NoteDetail) Content() string      { return d.content }
func (d *NoteDetail) CreatedAt() time.Time { return d.createdAt }

// SetID sets the detail ID (only for persistence layer use)
func (d *NoteDetail) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("note detail ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("note detail ID cannot be zero")
	}
	d.id = id
	return nil
}
