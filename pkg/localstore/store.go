package localstore

import "context"

// Well-known keys of the device-local namespace. The note collection blob
// and each preference live side by side in one flat keyspace, exactly as the
// client keeps them.
const (
	KeyNotes           = "notes"
	KeyDarkMode        = "darkMode"
	KeyFontSize        = "editorFontSizePx"
	KeyFontColor       = "editorFontColor"
	KeyCustomShortcuts = "customShortcuts"
	KeyAppSettings     = "appSettings"
	KeyHighScore       = "snakeHighScore"
)

// Store is device-scoped key/value persistence: it survives reloads and has
// no cross-device visibility. Implementations must treat a missing key as
// (value "", ok false) rather than an error.
type Store interface {
	Get(ctx context.Context, deviceID, key string) (string, bool, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID, key string) error
}
