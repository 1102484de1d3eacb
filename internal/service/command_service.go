package service

import (
	"context"

	"one-editor-be/internal/dto"
	"one-editor-be/pkg/commands"
)

// ICommandService resolves keyboard chords into editor actions. Builtin
// formatting chords win over the device's custom template shortcuts, and
// at most one action fires per chord.
type ICommandService interface {
	Dispatch(ctx context.Context, deviceId string, req *dto.ChordRequest) (*dto.DispatchResponse, error)
}

type commandService struct {
	settingsService ISettingsService
}

func NewCommandService(settingsService ISettingsService) ICommandService {
	return &commandService{settingsService: settingsService}
}

func (s *commandService) Dispatch(ctx context.Context, deviceId string, req *dto.ChordRequest) (*dto.DispatchResponse, error) {
	custom, err := s.settingsService.LoadShortcutMap(ctx, deviceId)
	if err != nil {
		return nil, err
	}

	dispatcher := commands.NewDispatcher(custom)
	result, handled := dispatcher.Dispatch(commands.Chord{
		Key:   req.Key,
		Ctrl:  req.Ctrl,
		Shift: req.Shift,
		Alt:   req.Alt,
	})
	if !handled {
		return &dto.DispatchResponse{Handled: false}, nil
	}

	return &dto.DispatchResponse{
		Handled: true,
		Action:  string(result.Action),
		Text:    result.Text,
	}, nil
}
