package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/repository/specification"
	"one-editor-be/internal/repository/unitofwork"
	"one-editor-be/pkg/collection"
	"one-editor-be/pkg/commands"
	"one-editor-be/pkg/localstore"
)

// IExportService produces the downloadable artifacts: a single note as a
// standalone HTML document and the full account as a JSON file.
type IExportService interface {
	DownloadNote(ctx context.Context, userId uuid.UUID, name string) (filename string, body []byte, err error)
	ExportAccount(ctx context.Context, userId uuid.UUID, deviceId string) (filename string, export *dto.AccountExport, err error)
}

type exportService struct {
	uowFactory unitofwork.RepositoryFactory
	localStore localstore.Store
}

func NewExportService(uowFactory unitofwork.RepositoryFactory, localStore localstore.Store) IExportService {
	return &exportService{
		uowFactory: uowFactory,
		localStore: localStore,
	}
}

func (s *exportService) DownloadNote(ctx context.Context, userId uuid.UUID, name string) (string, []byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ws, err := uow.WorkspaceRepository().Find(ctx, userId)
	if err != nil {
		return "", nil, err
	}
	if ws == nil {
		return "", nil, collection.ErrNotFound
	}
	markup, ok := ws.Notes[name]
	if !ok {
		return "", nil, collection.ErrNotFound
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`, name, markup)

	return name + ".html", []byte(body), nil
}

func (s *exportService) ExportAccount(ctx context.Context, userId uuid.UUID, deviceId string) (string, *dto.AccountExport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, errors.New("user not found")
	}

	ws, err := uow.WorkspaceRepository().Find(ctx, userId)
	if err != nil {
		return "", nil, err
	}

	export := &dto.AccountExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       dto.ExportedUser{Uid: user.Id.String(), Email: user.Email},
		Notes:      map[string]string{},
		Deleted:    []dto.TombstoneView{},
		Extras:     map[string]interface{}{},
	}

	if ws != nil {
		export.Notes = ws.Notes
		names := make([]string, 0, len(ws.DeletedNotes))
		for name := range ws.DeletedNotes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			export.Deleted = append(export.Deleted, dto.TombstoneView{
				Name:      name,
				DeletedAt: ws.DeletedNotes[name].DeletedAt,
			})
		}
	}

	if deviceId != "" {
		if raw, ok, gerr := s.localStore.Get(ctx, deviceId, localstore.KeyAppSettings); gerr == nil && ok {
			settings := map[string]interface{}{}
			if json.Unmarshal([]byte(raw), &settings) == nil {
				export.Settings = settings
			}
		}
		if raw, ok, gerr := s.localStore.Get(ctx, deviceId, localstore.KeyCustomShortcuts); gerr == nil && ok {
			shortcuts := map[string]commands.Shortcut{}
			if json.Unmarshal([]byte(raw), &shortcuts) == nil {
				keys := make([]string, 0, len(shortcuts))
				for key := range shortcuts {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					sc := shortcuts[key]
					export.Shortcuts = append(export.Shortcuts, dto.ShortcutView{
						Key:        key,
						Template:   sc.Template,
						DateFormat: sc.DateFormat,
						TimeFormat: sc.TimeFormat,
					})
				}
			}
		}
		if raw, ok, gerr := s.localStore.Get(ctx, deviceId, localstore.KeyHighScore); gerr == nil && ok {
			if score, perr := strconv.Atoi(raw); perr == nil {
				export.Extras["snake_high_score"] = score
			}
		}
	}

	filename := fmt.Sprintf("one-editor-export-%s.json", time.Now().Format("2006-01-02"))
	return filename, export, nil
}
