package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/repository/unitofwork"
	"one-editor-be/internal/websocket"
	"one-editor-be/pkg/collection"
	"one-editor-be/pkg/confirm"
	"one-editor-be/pkg/events"
	"one-editor-be/pkg/localstore"
	pktNats "one-editor-be/pkg/nats"
	"one-editor-be/pkg/richtext"
)

type IWorkspaceService interface {
	Tabs(ctx context.Context, userId uuid.UUID) (*dto.TabStripResponse, error)
	Status(ctx context.Context, userId uuid.UUID) (*dto.StatusResponse, error)
	Create(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.CreateNoteRequest) (*dto.StatusResponse, error)
	Switch(ctx context.Context, userId uuid.UUID, req *dto.SwitchNoteRequest) (*dto.StatusResponse, error)
	UpdateContent(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.UpdateContentRequest) (*dto.StatusResponse, error)
	Close(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.CloseNoteRequest) (*dto.CloseNoteResponse, error)
	ResolveConfirmation(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.ResolveConfirmationRequest) (*dto.StatusResponse, error)
	Tombstones(ctx context.Context, userId uuid.UUID) ([]dto.TombstoneView, error)
	LoadRemote(ctx context.Context, userId uuid.UUID) error
	ResetToDefault(userId uuid.UUID)
}

// workspaceSession is the live editing state of one signed-in user: the
// note collection plus the rich-text surface showing the active note.
// All access goes through the service, which serializes on the session.
type workspaceSession struct {
	col     *collection.Collection
	surface *richtext.Surface
}

type closePayload struct {
	Name string `json:"name"`
}

type workspaceService struct {
	uowFactory     unitofwork.RepositoryFactory
	localStore     localstore.Store
	hub            *websocket.Hub
	eventPublisher *pktNats.Publisher
	confirmations  *confirm.Queue
	policy         collection.ActivePolicy

	sessions *sessionRegistry
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	localStore localstore.Store,
	hub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
	confirmations *confirm.Queue,
	policy collection.ActivePolicy,
) IWorkspaceService {
	return &workspaceService{
		uowFactory:     uowFactory,
		localStore:     localStore,
		hub:            hub,
		eventPublisher: eventPublisher,
		confirmations:  confirmations,
		policy:         policy,
		sessions:       newSessionRegistry(),
	}
}

func (s *workspaceService) session(userId uuid.UUID) *workspaceSession {
	return s.sessions.acquire(userId, func() *workspaceSession {
		sess := &workspaceSession{
			col:     collection.New(),
			surface: richtext.NewSurface(),
		}
		// Every surface mutation pushes fresh counters to all open tabs,
		// including programmatic writes like template insertion.
		sess.surface.OnChange(func(st richtext.Stats) {
			if s.hub != nil {
				s.hub.Send(userId, "editor_counters", map[string]interface{}{
					"words": st.Words,
					"chars": st.Chars,
				})
			}
		})
		return sess
	})
}

func (s *workspaceService) status(sess *workspaceSession) *dto.StatusResponse {
	names := sess.col.Names()
	active := sess.col.Active()
	tabs := make([]dto.Tab, len(names))
	for i, name := range names {
		tabs[i] = dto.Tab{Name: name, Active: name == active}
	}
	st := sess.surface.Stats()
	return &dto.StatusResponse{
		Tabs:   tabs,
		Active: active,
		Markup: sess.surface.Markup(),
		Words:  st.Words,
		Chars:  st.Chars,
	}
}

func (s *workspaceService) pushStatus(userId uuid.UUID, status *dto.StatusResponse) {
	if s.hub != nil {
		s.hub.Send(userId, "workspace_status", status)
	}
}

// mergeRemote upserts notes into the user's record. Remote persistence is
// best effort and unawaited: the write runs in its own goroutine on a
// detached context so a slow database never stalls the editing session,
// failures are logged and the in-memory state stands.
func (s *workspaceService) mergeRemote(userId uuid.UUID, notes map[string]string) {
	go func() {
		ctx := context.Background()
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.WorkspaceRepository().MergeNotes(ctx, userId, notes, nil); err != nil {
			fmt.Printf("[WARN] Failed to persist notes remotely: %v\n", err)
		}
	}()
}

// removeRemote deletes one note key and merges its tombstone, best effort
// and unawaited like mergeRemote.
func (s *workspaceService) removeRemote(userId uuid.UUID, name string, tombstone collection.Tombstone) {
	go func() {
		ctx := context.Background()
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.WorkspaceRepository().RemoveNote(ctx, userId, name, tombstone); err != nil {
			fmt.Printf("[WARN] Failed to remove note remotely: %v\n", err)
		}
	}()
}

// mirrorLocal keeps the device-scoped copy of the notes in step with the
// in-memory collection, matching what an offline-capable client caches.
func (s *workspaceService) mirrorLocal(ctx context.Context, deviceId string, sess *workspaceSession) {
	if s.localStore == nil || deviceId == "" {
		return
	}
	blob, err := json.Marshal(sess.col.Snapshot())
	if err != nil {
		return
	}
	if err := s.localStore.Set(ctx, deviceId, localstore.KeyNotes, string(blob)); err != nil {
		fmt.Printf("[WARN] Failed to mirror notes locally: %v\n", err)
	}
}

func (s *workspaceService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func (s *workspaceService) Tabs(ctx context.Context, userId uuid.UUID) (*dto.TabStripResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	names := sess.col.Names()
	active := sess.col.Active()
	tabs := make([]dto.Tab, len(names))
	for i, name := range names {
		tabs[i] = dto.Tab{Name: name, Active: name == active}
	}
	return &dto.TabStripResponse{Tabs: tabs, Active: active}, nil
}

func (s *workspaceService) Status(ctx context.Context, userId uuid.UUID) (*dto.StatusResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	return s.status(sess), nil
}

func (s *workspaceService) Create(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.CreateNoteRequest) (*dto.StatusResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	name, err := sess.col.Create(req.Name, time.Now())
	if err != nil {
		return nil, err
	}
	sess.surface.SetMarkup("")

	s.mergeRemote(userId, map[string]string{name: ""})
	s.mirrorLocal(ctx, deviceId, sess)

	s.publishEvent(ctx, events.TypeNoteCreated, map[string]interface{}{
		"user_id": userId,
		"name":    name,
	})

	status := s.status(sess)
	s.pushStatus(userId, status)
	return status, nil
}

func (s *workspaceService) Switch(ctx context.Context, userId uuid.UUID, req *dto.SwitchNoteRequest) (*dto.StatusResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	sess.col.SetActiveContent(sess.surface.Markup())
	if err := sess.col.SwitchTo(req.Name); err != nil {
		return nil, err
	}
	markup, _ := sess.col.Content(req.Name)
	sess.surface.SetMarkup(markup)

	status := s.status(sess)
	s.pushStatus(userId, status)
	return status, nil
}

// UpdateContent is called on every edit. The markup flows through the
// surface, the collection, the device mirror and the remote record; the
// remote write merges only the active key so concurrent tabs never
// clobber each other's notes.
func (s *workspaceService) UpdateContent(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.UpdateContentRequest) (*dto.StatusResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	sess.col.SetActiveContent(req.Markup)
	sess.surface.SetMarkup(req.Markup)

	s.mergeRemote(userId, map[string]string{sess.col.Active(): req.Markup})
	s.mirrorLocal(ctx, deviceId, sess)

	return s.status(sess), nil
}

func (s *workspaceService) Close(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.CloseNoteRequest) (*dto.CloseNoteResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	markup, ok := sess.col.Content(req.Name)
	if !ok {
		return nil, collection.ErrNotFound
	}
	if sess.col.Len() == 1 {
		return nil, collection.ErrLastNote
	}

	// An empty note closes silently. Anything with visible text needs
	// the user to confirm losing it.
	if richtext.PlainText(markup) != "" {
		payload, err := json.Marshal(closePayload{Name: req.Name})
		if err != nil {
			return nil, err
		}
		request := s.confirmations.Push(
			userId,
			"Close note?",
			fmt.Sprintf("%q still has content. Close it anyway?", req.Name),
			string(payload),
		)
		return &dto.CloseNoteResponse{
			Closed:         false,
			ConfirmationId: &request.ID,
			Title:          request.Title,
			Message:        request.Message,
		}, nil
	}

	if err := s.performClose(ctx, userId, deviceId, sess, req.Name); err != nil {
		return nil, err
	}
	return &dto.CloseNoteResponse{Closed: true}, nil
}

func (s *workspaceService) performClose(ctx context.Context, userId uuid.UUID, deviceId string, sess *workspaceSession, name string) error {
	if err := sess.col.Close(name, time.Now()); err != nil {
		return err
	}
	s.removeRemote(userId, name, sess.col.Tombstones()[name])

	markup, _ := sess.col.Content(sess.col.Active())
	sess.surface.SetMarkup(markup)
	s.mirrorLocal(ctx, deviceId, sess)

	s.publishEvent(ctx, events.TypeNoteClosed, map[string]interface{}{
		"user_id": userId,
		"name":    name,
	})

	s.pushStatus(userId, s.status(sess))
	return nil
}

func (s *workspaceService) ResolveConfirmation(ctx context.Context, userId uuid.UUID, deviceId string, req *dto.ResolveConfirmationRequest) (*dto.StatusResponse, error) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	request, err := s.confirmations.Resolve(userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Accepted {
		var payload closePayload
		if err := json.Unmarshal([]byte(request.Payload), &payload); err != nil {
			return nil, err
		}
		if err := s.performClose(ctx, userId, deviceId, sess, payload.Name); err != nil {
			return nil, err
		}
	}

	return s.status(sess), nil
}

func (s *workspaceService) Tombstones(ctx context.Context, userId uuid.UUID) ([]dto.TombstoneView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ws, err := uow.WorkspaceRepository().Find(ctx, userId)
	if err != nil {
		return nil, err
	}

	views := []dto.TombstoneView{}
	if ws != nil {
		for name, t := range ws.DeletedNotes {
			views = append(views, dto.TombstoneView{Name: name, DeletedAt: t.DeletedAt})
		}
	}
	return views, nil
}

// LoadRemote replaces the session's collection with the user's stored
// notes. A record without notes, or no record at all, seeds the default
// note and writes it back so the next load finds it.
func (s *workspaceService) LoadRemote(ctx context.Context, userId uuid.UUID) error {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ws, err := uow.WorkspaceRepository().Find(ctx, userId)
	if err != nil {
		return err
	}

	if ws != nil && len(ws.Notes) > 0 {
		sess.col.Adopt(ws.Notes, ws.DeletedNotes, s.policy)
	} else {
		sess.col.Reset()
		if err := uow.WorkspaceRepository().MergeNotes(ctx, userId, sess.col.Snapshot(), nil); err != nil {
			return err
		}
	}

	markup, _ := sess.col.Content(sess.col.Active())
	sess.surface.SetMarkup(markup)

	s.pushStatus(userId, s.status(sess))
	return nil
}

func (s *workspaceService) ResetToDefault(userId uuid.UUID) {
	sess := s.session(userId)
	defer s.sessions.release(userId)

	sess.col.Reset()
	sess.surface.SetMarkup("")
	s.pushStatus(userId, s.status(sess))
}
