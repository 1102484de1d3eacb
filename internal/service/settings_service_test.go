package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"one-editor-be/internal/dto"
	"one-editor-be/pkg/localstore"
	"one-editor-be/pkg/richtext"
)

func TestPreferencesDefaults(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())

	prefs, err := svc.Preferences(context.Background(), "device-a")
	assert.NoError(t, err)
	assert.False(t, prefs.DarkMode)
	assert.Equal(t, richtext.DefaultFontPx, prefs.FontSizePx)
	assert.Equal(t, "", prefs.FontColor)
}

func TestPreferencesRoundTrip(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	assert.NoError(t, svc.SetDarkMode(ctx, "device-a", true))
	assert.NoError(t, svc.SetFontColor(ctx, "device-a", "#ff8800"))

	prefs, err := svc.Preferences(ctx, "device-a")
	assert.NoError(t, err)
	assert.True(t, prefs.DarkMode)
	assert.Equal(t, "#ff8800", prefs.FontColor)

	// Other devices keep their own preferences.
	other, err := svc.Preferences(ctx, "device-b")
	assert.NoError(t, err)
	assert.False(t, other.DarkMode)
}

func TestStepFontSize(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	size, err := svc.StepFontSize(ctx, "device-a", true)
	assert.NoError(t, err)
	assert.Equal(t, 18, size.FontSizePx)

	size, err = svc.StepFontSize(ctx, "device-a", false)
	assert.NoError(t, err)
	assert.Equal(t, 16, size.FontSizePx)
}

func TestStepFontSizeStopsAtBounds(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if _, err := svc.StepFontSize(ctx, "device-a", true); err != nil {
			t.Fatalf("StepFontSize returned error: %v", err)
		}
	}
	size, err := svc.FontSize(ctx, "device-a")
	assert.NoError(t, err)
	assert.Equal(t, richtext.MaxFontPx, size.FontSizePx)

	for i := 0; i < 30; i++ {
		if _, err := svc.StepFontSize(ctx, "device-a", false); err != nil {
			t.Fatalf("StepFontSize returned error: %v", err)
		}
	}
	size, err = svc.FontSize(ctx, "device-a")
	assert.NoError(t, err)
	assert.Equal(t, richtext.MinFontPx, size.FontSizePx)
}

func TestFontSizeClampsStoredValue(t *testing.T) {
	store := localstore.NewMemoryStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "device-a", localstore.KeyFontSize, "500"))

	size, err := svc.FontSize(ctx, "device-a")
	assert.NoError(t, err)
	assert.Equal(t, richtext.MaxFontPx, size.FontSizePx)
}

func TestShortcutLifecycle(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	err := svc.SaveShortcut(ctx, "device-a", &dto.SaveShortcutRequest{
		Key:        "d",
		Template:   "{date}",
		DateFormat: "YYYY-MM-DD",
	})
	assert.NoError(t, err)
	err = svc.SaveShortcut(ctx, "device-a", &dto.SaveShortcutRequest{
		Key:      "a",
		Template: "Best regards",
	})
	assert.NoError(t, err)

	list, err := svc.Shortcuts(ctx, "device-a")
	assert.NoError(t, err)
	assert.Len(t, list.Shortcuts, 2)
	assert.Equal(t, "a", list.Shortcuts[0].Key)
	assert.Equal(t, "d", list.Shortcuts[1].Key)
	assert.Equal(t, "YYYY-MM-DD", list.Shortcuts[1].DateFormat)

	assert.NoError(t, svc.DeleteShortcut(ctx, "device-a", "a"))

	shortcuts, err := svc.LoadShortcutMap(ctx, "device-a")
	assert.NoError(t, err)
	assert.Len(t, shortcuts, 1)
	assert.Equal(t, "{date}", shortcuts["d"].Template)
}

func TestShortcutKeysAreStoredLowercased(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	err := svc.SaveShortcut(ctx, "device-a", &dto.SaveShortcutRequest{
		Key:      "D",
		Template: "{date}",
	})
	assert.NoError(t, err)

	shortcuts, err := svc.LoadShortcutMap(ctx, "device-a")
	assert.NoError(t, err)
	assert.Contains(t, shortcuts, "d")
	assert.NotContains(t, shortcuts, "D")

	// "d" and "D" name the same shortcut on delete too.
	assert.NoError(t, svc.DeleteShortcut(ctx, "device-a", "D"))
	shortcuts, err = svc.LoadShortcutMap(ctx, "device-a")
	assert.NoError(t, err)
	assert.Empty(t, shortcuts)
}

func TestAppSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(localstore.NewMemoryStore())
	ctx := context.Background()

	settings, err := svc.AppSettings(ctx, "device-a")
	assert.NoError(t, err)
	assert.Empty(t, settings.Settings)

	err = svc.SaveAppSettings(ctx, "device-a", map[string]interface{}{
		"spellcheck": true,
		"locale":     "en-US",
	})
	assert.NoError(t, err)

	settings, err = svc.AppSettings(ctx, "device-a")
	assert.NoError(t, err)
	assert.Equal(t, true, settings.Settings["spellcheck"])
	assert.Equal(t, "en-US", settings.Settings["locale"])
}
