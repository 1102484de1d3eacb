package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"one-editor-be/internal/dto"
	"one-editor-be/pkg/commands"
	"one-editor-be/pkg/localstore"
)

func TestDispatchBuiltinChord(t *testing.T) {
	settings := NewSettingsService(localstore.NewMemoryStore())
	svc := NewCommandService(settings)

	resp, err := svc.Dispatch(context.Background(), "device-a", &dto.ChordRequest{Key: "b", Ctrl: true})
	assert.NoError(t, err)
	assert.True(t, resp.Handled)
	assert.Equal(t, string(commands.ActionBold), resp.Action)
	assert.Equal(t, "", resp.Text)
}

func TestDispatchUnboundChord(t *testing.T) {
	settings := NewSettingsService(localstore.NewMemoryStore())
	svc := NewCommandService(settings)

	resp, err := svc.Dispatch(context.Background(), "device-a", &dto.ChordRequest{Key: "q", Ctrl: true})
	assert.NoError(t, err)
	assert.False(t, resp.Handled)
	assert.Equal(t, "", resp.Action)
}

func TestDispatchCustomShortcut(t *testing.T) {
	settings := NewSettingsService(localstore.NewMemoryStore())
	svc := NewCommandService(settings)
	ctx := context.Background()

	err := settings.SaveShortcut(ctx, "device-a", &dto.SaveShortcutRequest{
		Key:      "g",
		Template: "Best regards,\nAlex",
	})
	assert.NoError(t, err)

	resp, err := svc.Dispatch(ctx, "device-a", &dto.ChordRequest{Key: "g", Ctrl: true, Alt: true})
	assert.NoError(t, err)
	assert.True(t, resp.Handled)
	assert.Equal(t, string(commands.ActionInsertText), resp.Action)
	assert.Equal(t, "Best regards,\nAlex", resp.Text)

	// Shortcuts are per device.
	resp, err = svc.Dispatch(ctx, "device-b", &dto.ChordRequest{Key: "g", Ctrl: true, Alt: true})
	assert.NoError(t, err)
	assert.False(t, resp.Handled)
}

func TestDispatchShortcutSavedWithUppercaseKey(t *testing.T) {
	settings := NewSettingsService(localstore.NewMemoryStore())
	svc := NewCommandService(settings)
	ctx := context.Background()

	// Chord lookup lowercases the key, so a shortcut saved as "D" must
	// still fire for both casings of the chord.
	err := settings.SaveShortcut(ctx, "device-a", &dto.SaveShortcutRequest{
		Key:      "D",
		Template: "{date}",
	})
	assert.NoError(t, err)

	resp, err := svc.Dispatch(ctx, "device-a", &dto.ChordRequest{Key: "d", Ctrl: true, Alt: true})
	assert.NoError(t, err)
	assert.True(t, resp.Handled)

	resp, err = svc.Dispatch(ctx, "device-a", &dto.ChordRequest{Key: "D", Ctrl: true, Alt: true})
	assert.NoError(t, err)
	assert.True(t, resp.Handled)
	assert.Equal(t, string(commands.ActionInsertText), resp.Action)
}
