package entity

import (
	"time"

	"github.com/google/uuid"

	"one-editor-be/pkg/collection"
)

// ContactMessage is the last message the user sent through the contact
// form, kept on their workspace record alongside the notes.
type ContactMessage struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Workspace is the single per-user persistence record. Notes are stored
// as a name-to-markup map and tombstones of closed notes accumulate in
// DeletedNotes so a stale client can never resurrect a closed note.
type Workspace struct {
	UserId       uuid.UUID
	Notes        map[string]string
	DeletedNotes map[string]collection.Tombstone
	Contact      *ContactMessage
	DeletedAt    *time.Time
	UpdatedAt    time.Time
}
