package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"one-editor-be/internal/dto"
	"one-editor-be/pkg/commands"
	"one-editor-be/pkg/localstore"
	"one-editor-be/pkg/richtext"
)

// ISettingsService manages the device-scoped editor preferences: theme,
// font sizing, the opaque app settings blob and custom shortcuts.
type ISettingsService interface {
	Preferences(ctx context.Context, deviceId string) (*dto.PreferencesResponse, error)
	SetDarkMode(ctx context.Context, deviceId string, enabled bool) error
	SetFontColor(ctx context.Context, deviceId string, color string) error
	FontSize(ctx context.Context, deviceId string) (*dto.FontSizeResponse, error)
	StepFontSize(ctx context.Context, deviceId string, up bool) (*dto.FontSizeResponse, error)
	AppSettings(ctx context.Context, deviceId string) (*dto.AppSettingsResponse, error)
	SaveAppSettings(ctx context.Context, deviceId string, settings map[string]interface{}) error
	Shortcuts(ctx context.Context, deviceId string) (*dto.ShortcutListResponse, error)
	SaveShortcut(ctx context.Context, deviceId string, req *dto.SaveShortcutRequest) error
	DeleteShortcut(ctx context.Context, deviceId string, key string) error
	LoadShortcutMap(ctx context.Context, deviceId string) (map[string]commands.Shortcut, error)
}

type settingsService struct {
	localStore localstore.Store
}

func NewSettingsService(localStore localstore.Store) ISettingsService {
	return &settingsService{localStore: localStore}
}

func (s *settingsService) Preferences(ctx context.Context, deviceId string) (*dto.PreferencesResponse, error) {
	resp := &dto.PreferencesResponse{FontSizePx: richtext.DefaultFontPx}

	if raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyDarkMode); err != nil {
		return nil, err
	} else if ok {
		resp.DarkMode = raw == "true"
	}

	if raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyFontSize); err != nil {
		return nil, err
	} else if ok {
		if px, perr := strconv.Atoi(raw); perr == nil {
			resp.FontSizePx = richtext.ClampFontSize(px)
		}
	}

	if raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyFontColor); err != nil {
		return nil, err
	} else if ok {
		resp.FontColor = raw
	}

	return resp, nil
}

func (s *settingsService) SetDarkMode(ctx context.Context, deviceId string, enabled bool) error {
	return s.localStore.Set(ctx, deviceId, localstore.KeyDarkMode, strconv.FormatBool(enabled))
}

func (s *settingsService) SetFontColor(ctx context.Context, deviceId string, color string) error {
	return s.localStore.Set(ctx, deviceId, localstore.KeyFontColor, color)
}

func (s *settingsService) FontSize(ctx context.Context, deviceId string) (*dto.FontSizeResponse, error) {
	px := richtext.DefaultFontPx
	if raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyFontSize); err != nil {
		return nil, err
	} else if ok {
		if stored, perr := strconv.Atoi(raw); perr == nil {
			px = richtext.ClampFontSize(stored)
		}
	}
	return &dto.FontSizeResponse{FontSizePx: px}, nil
}

func (s *settingsService) StepFontSize(ctx context.Context, deviceId string, up bool) (*dto.FontSizeResponse, error) {
	current, err := s.FontSize(ctx, deviceId)
	if err != nil {
		return nil, err
	}
	next := richtext.StepFontSize(current.FontSizePx, up)
	if err := s.localStore.Set(ctx, deviceId, localstore.KeyFontSize, strconv.Itoa(next)); err != nil {
		return nil, err
	}
	return &dto.FontSizeResponse{FontSizePx: next}, nil
}

func (s *settingsService) AppSettings(ctx context.Context, deviceId string) (*dto.AppSettingsResponse, error) {
	resp := &dto.AppSettingsResponse{Settings: map[string]interface{}{}}
	raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyAppSettings)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &resp.Settings); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *settingsService) SaveAppSettings(ctx context.Context, deviceId string, settings map[string]interface{}) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.localStore.Set(ctx, deviceId, localstore.KeyAppSettings, string(blob))
}

func (s *settingsService) LoadShortcutMap(ctx context.Context, deviceId string) (map[string]commands.Shortcut, error) {
	shortcuts := map[string]commands.Shortcut{}
	raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyCustomShortcuts)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &shortcuts); err != nil {
			return nil, err
		}
	}
	return shortcuts, nil
}

func (s *settingsService) saveShortcutMap(ctx context.Context, deviceId string, shortcuts map[string]commands.Shortcut) error {
	blob, err := json.Marshal(shortcuts)
	if err != nil {
		return err
	}
	return s.localStore.Set(ctx, deviceId, localstore.KeyCustomShortcuts, string(blob))
}

func (s *settingsService) Shortcuts(ctx context.Context, deviceId string) (*dto.ShortcutListResponse, error) {
	shortcuts, err := s.LoadShortcutMap(ctx, deviceId)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(shortcuts))
	for key := range shortcuts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	views := make([]dto.ShortcutView, len(keys))
	for i, key := range keys {
		sc := shortcuts[key]
		views[i] = dto.ShortcutView{
			Key:        key,
			Template:   sc.Template,
			DateFormat: sc.DateFormat,
			TimeFormat: sc.TimeFormat,
		}
	}
	return &dto.ShortcutListResponse{Shortcuts: views}, nil
}

func (s *settingsService) SaveShortcut(ctx context.Context, deviceId string, req *dto.SaveShortcutRequest) error {
	shortcuts, err := s.LoadShortcutMap(ctx, deviceId)
	if err != nil {
		return err
	}
	// Chord lookup is case-insensitive, so the trigger key is stored
	// lowercased; "D" and "d" name the same shortcut.
	shortcuts[strings.ToLower(req.Key)] = commands.Shortcut{
		Template:   req.Template,
		DateFormat: req.DateFormat,
		TimeFormat: req.TimeFormat,
	}
	return s.saveShortcutMap(ctx, deviceId, shortcuts)
}

func (s *settingsService) DeleteShortcut(ctx context.Context, deviceId string, key string) error {
	shortcuts, err := s.LoadShortcutMap(ctx, deviceId)
	if err != nil {
		return err
	}
	delete(shortcuts, strings.ToLower(key))
	return s.saveShortcutMap(ctx, deviceId, shortcuts)
}
