package dto

type ExportedUser struct {
	Uid   string `json:"uid"`
	Email string `json:"email"`
}

type AccountExport struct {
	ExportedAt string                 `json:"exported_at"`
	User       ExportedUser           `json:"user"`
	Notes      map[string]string      `json:"notes"`
	Deleted    []TombstoneView        `json:"deleted"`
	Settings   map[string]interface{} `json:"settings,omitempty"`
	Shortcuts  []ShortcutView         `json:"shortcuts,omitempty"`
	Extras     map[string]interface{} `json:"extras,omitempty"`
}
