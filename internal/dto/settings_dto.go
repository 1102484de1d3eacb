package dto

type PreferencesResponse struct {
	DarkMode   bool   `json:"dark_mode"`
	FontSizePx int    `json:"font_size_px"`
	FontColor  string `json:"font_color,omitempty"`
}

type SetDarkModeRequest struct {
	Enabled bool `json:"enabled"`
}

type SetFontColorRequest struct {
	Color string `json:"color" validate:"required"`
}

type FontSizeResponse struct {
	FontSizePx int `json:"font_size_px"`
}

// AppSettingsRequest is an opaque settings blob the client round-trips,
// stored as-is under its own key.
type AppSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" validate:"required"`
}

type AppSettingsResponse struct {
	Settings map[string]interface{} `json:"settings"`
}

type ShortcutView struct {
	Key        string `json:"key"`
	Template   string `json:"template"`
	DateFormat string `json:"date_format,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

type SaveShortcutRequest struct {
	Key        string `json:"key" validate:"required,len=1"`
	Template   string `json:"template" validate:"required"`
	DateFormat string `json:"date_format"`
	TimeFormat string `json:"time_format"`
}

type ShortcutListResponse struct {
	Shortcuts []ShortcutView `json:"shortcuts"`
}
