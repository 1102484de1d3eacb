package contract

import (
	"context"

	"github.com/google/uuid"

	"one-editor-be/internal/entity"
	"one-editor-be/pkg/collection"
)

type WorkspaceRepository interface {
	// Find returns the workspace record for a user, or nil when none exists.
	Find(ctx context.Context, userId uuid.UUID) (*entity.Workspace, error)

	// MergeNotes upserts the given notes and tombstones into the record
	// without touching keys that are absent from the argument maps. A
	// missing record is created.
	MergeNotes(ctx context.Context, userId uuid.UUID, notes map[string]string, tombstones map[string]collection.Tombstone) error

	// RemoveNote deletes one note key and merges its tombstone in a
	// single statement.
	RemoveNote(ctx context.Context, userId uuid.UUID, name string, tombstone collection.Tombstone) error

	// SaveContact stores the user's latest contact-form message.
	SaveContact(ctx context.Context, userId uuid.UUID, contact *entity.ContactMessage) error

	// Blank empties the record and stamps deleted_at, for account deletion.
	Blank(ctx context.Context, userId uuid.UUID) error
}
