package mapper

import (
	"time"

	"gorm.io/datatypes"

	"one-editor-be/internal/entity"
	"one-editor-be/internal/model"
	"one-editor-be/pkg/collection"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}
	return &entity.Workspace{
		UserId:       w.UserId,
		Notes:        notesFromJSON(w.Notes),
		DeletedNotes: tombstonesFromJSON(w.DeletedNotes),
		Contact:      contactFromJSON(w.Contact),
		DeletedAt:    w.DeletedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}
	return &model.Workspace{
		UserId:       w.UserId,
		Notes:        notesToJSON(w.Notes),
		DeletedNotes: tombstonesToJSON(w.DeletedNotes),
		Contact:      contactToJSON(w.Contact),
		DeletedAt:    w.DeletedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func notesToJSON(notes map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for name, markup := range notes {
		out[name] = markup
	}
	return out
}

func notesFromJSON(raw datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		if markup, ok := v.(string); ok {
			out[name] = markup
		}
	}
	return out
}

func tombstonesToJSON(tombstones map[string]collection.Tombstone) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for name, t := range tombstones {
		out[name] = map[string]interface{}{
			"deleted":   t.Deleted,
			"deletedAt": t.DeletedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}

func tombstonesFromJSON(raw datatypes.JSONMap) map[string]collection.Tombstone {
	out := make(map[string]collection.Tombstone, len(raw))
	for name, v := range raw {
		fields, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		t := collection.Tombstone{Deleted: true}
		if deleted, ok := fields["deleted"].(bool); ok {
			t.Deleted = deleted
		}
		if s, ok := fields["deletedAt"].(string); ok {
			if at, err := time.Parse(time.RFC3339, s); err == nil {
				t.DeletedAt = at
			}
		}
		out[name] = t
	}
	return out
}

func contactToJSON(c *entity.ContactMessage) datatypes.JSONMap {
	if c == nil {
		return nil
	}
	return datatypes.JSONMap{
		"name":      c.Name,
		"email":     c.Email,
		"message":   c.Message,
		"timestamp": c.Timestamp.UTC().Format(time.RFC3339),
	}
}

func contactFromJSON(raw datatypes.JSONMap) *entity.ContactMessage {
	if len(raw) == 0 {
		return nil
	}
	c := &entity.ContactMessage{}
	if s, ok := raw["name"].(string); ok {
		c.Name = s
	}
	if s, ok := raw["email"].(string); ok {
		c.Email = s
	}
	if s, ok := raw["message"].(string); ok {
		c.Message = s
	}
	if s, ok := raw["timestamp"].(string); ok {
		if at, err := time.Parse(time.RFC3339, s); err == nil {
			c.Timestamp = at
		}
	}
	return c
}
