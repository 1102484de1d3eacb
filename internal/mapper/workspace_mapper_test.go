package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"one-editor-be/internal/entity"
	"one-editor-be/pkg/collection"
)

func TestWorkspaceRoundTrip(t *testing.T) {
	m := NewWorkspaceMapper()
	deletedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	ws := &entity.Workspace{
		UserId: uuid.New(),
		Notes: map[string]string{
			"todo":  "<p>buy milk</p>",
			"draft": "",
		},
		DeletedNotes: map[string]collection.Tombstone{
			"old": {Deleted: true, DeletedAt: deletedAt},
		},
		Contact: &entity.ContactMessage{
			Name:      "Alex",
			Email:     "alex@example.com",
			Message:   "hello",
			Timestamp: deletedAt,
		},
		UpdatedAt: deletedAt,
	}

	got := m.ToEntity(m.ToModel(ws))

	assert.Equal(t, ws.UserId, got.UserId)
	assert.Equal(t, ws.Notes, got.Notes)
	assert.Equal(t, ws.DeletedNotes, got.DeletedNotes)
	assert.Equal(t, ws.Contact, got.Contact)
}

func TestTombstoneDefaultsToDeleted(t *testing.T) {
	// Records written by older clients may omit the deleted flag.
	raw := datatypes.JSONMap{
		"old": map[string]interface{}{
			"deletedAt": "2025-03-14T15:09:26Z",
		},
	}

	got := tombstonesFromJSON(raw)

	assert.True(t, got["old"].Deleted)
	assert.Equal(t, time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC), got["old"].DeletedAt)
}

func TestNotesFromJSONSkipsNonStringValues(t *testing.T) {
	raw := datatypes.JSONMap{
		"good": "<p>ok</p>",
		"bad":  float64(42),
	}

	got := notesFromJSON(raw)

	assert.Equal(t, map[string]string{"good": "<p>ok</p>"}, got)
}

func TestContactNilRoundTrip(t *testing.T) {
	assert.Nil(t, contactToJSON(nil))
	assert.Nil(t, contactFromJSON(nil))
	assert.Nil(t, contactFromJSON(datatypes.JSONMap{}))
}

func TestNilWorkspace(t *testing.T) {
	m := NewWorkspaceMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
