package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/entity"
	"one-editor-be/internal/repository/contract"
	"one-editor-be/internal/repository/unitofwork"
	"one-editor-be/pkg/collection"
	"one-editor-be/pkg/confirm"
	"one-editor-be/pkg/localstore"
)

type mergeCall struct {
	notes      map[string]string
	tombstones map[string]collection.Tombstone
}

type removeCall struct {
	name      string
	tombstone collection.Tombstone
}

// fakeWorkspaceRepo records writes; remote persistence runs in goroutines,
// so access is guarded and tests poll via the accessors.
type fakeWorkspaceRepo struct {
	mu      sync.Mutex
	record  *entity.Workspace
	merges  []mergeCall
	removes []removeCall

	// When set, MergeNotes parks until the channel is closed, standing in
	// for a slow database.
	mergeGate chan struct{}
}

func (f *fakeWorkspaceRepo) Find(ctx context.Context, userId uuid.UUID) (*entity.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record, nil
}

func (f *fakeWorkspaceRepo) MergeNotes(ctx context.Context, userId uuid.UUID, notes map[string]string, tombstones map[string]collection.Tombstone) error {
	if f.mergeGate != nil {
		<-f.mergeGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.merges = append(f.merges, mergeCall{notes: notes, tombstones: tombstones})
	return nil
}

func (f *fakeWorkspaceRepo) RemoveNote(ctx context.Context, userId uuid.UUID, name string, tombstone collection.Tombstone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, removeCall{name: name, tombstone: tombstone})
	return nil
}

func (f *fakeWorkspaceRepo) SaveContact(ctx context.Context, userId uuid.UUID, contact *entity.ContactMessage) error {
	return nil
}

func (f *fakeWorkspaceRepo) Blank(ctx context.Context, userId uuid.UUID) error {
	return nil
}

func (f *fakeWorkspaceRepo) mergeCalls() []mergeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mergeCall, len(f.merges))
	copy(out, f.merges)
	return out
}

func (f *fakeWorkspaceRepo) removeCalls() []removeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]removeCall, len(f.removes))
	copy(out, f.removes)
	return out
}

type fakeUnitOfWork struct {
	users      contract.UserRepository
	workspaces contract.WorkspaceRepository
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }

func (f *fakeUnitOfWork) Commit() error { return nil }

func (f *fakeUnitOfWork) Rollback() error { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository { return f.users }

func (f *fakeUnitOfWork) WorkspaceRepository() contract.WorkspaceRepository {
	return f.workspaces
}

type fakeRepositoryFactory struct {
	users      contract.UserRepository
	workspaces *fakeWorkspaceRepo
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{users: f.users, workspaces: f.workspaces}
}

func newTestWorkspaceService(repo *fakeWorkspaceRepo) IWorkspaceService {
	return NewWorkspaceService(
		&fakeRepositoryFactory{workspaces: repo},
		localstore.NewMemoryStore(),
		nil,
		nil,
		confirm.NewQueue(time.Minute),
		collection.PolicyInsertionFirst,
	)
}

func waitForMerges(t *testing.T, repo *fakeWorkspaceRepo, n int) []mergeCall {
	t.Helper()
	assert.Eventually(t, func() bool {
		return len(repo.mergeCalls()) == n
	}, time.Second, 5*time.Millisecond)
	return repo.mergeCalls()
}

func waitForRemoves(t *testing.T, repo *fakeWorkspaceRepo, n int) []removeCall {
	t.Helper()
	assert.Eventually(t, func() bool {
		return len(repo.removeCalls()) == n
	}, time.Second, 5*time.Millisecond)
	return repo.removeCalls()
}

func TestWorkspaceStartsWithDefaultNote(t *testing.T) {
	svc := newTestWorkspaceService(&fakeWorkspaceRepo{})

	tabs, err := svc.Tabs(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, collection.DefaultNoteName, tabs.Active)
	assert.Len(t, tabs.Tabs, 1)
	assert.True(t, tabs.Tabs[0].Active)
}

func TestCreateNoteMergesOnlyTheNewKey(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()

	status, err := svc.Create(context.Background(), userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.Equal(t, "todo", status.Active)
	assert.Len(t, status.Tabs, 2)

	merges := waitForMerges(t, repo, 1)
	assert.Equal(t, map[string]string{"todo": ""}, merges[0].notes)
}

func TestCreateDuplicateNote(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()

	_, err := svc.Create(context.Background(), userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.ErrorIs(t, err, collection.ErrDuplicate)
	waitForMerges(t, repo, 1)
}

func TestUpdateContentMergesOnlyTheActiveKey(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()

	status, err := svc.UpdateContent(context.Background(), userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>hello world</p>"})
	assert.NoError(t, err)
	assert.Equal(t, "<p>hello world</p>", status.Markup)
	assert.Equal(t, 2, status.Words)
	assert.Equal(t, 11, status.Chars)

	merges := waitForMerges(t, repo, 1)
	assert.Equal(t, map[string]string{collection.DefaultNoteName: "<p>hello world</p>"}, merges[0].notes)
}

func TestUpdateContentDoesNotBlockOnRemoteWrite(t *testing.T) {
	gate := make(chan struct{})
	repo := &fakeWorkspaceRepo{mergeGate: gate}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()

	done := make(chan error, 1)
	go func() {
		_, err := svc.UpdateContent(context.Background(), userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
		done <- err
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("content update blocked on the remote write")
	}

	// The session stays usable while the write is parked.
	status, err := svc.Status(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, "<p>milk</p>", status.Markup)
	assert.Empty(t, repo.mergeCalls())

	close(gate)
	waitForMerges(t, repo, 1)
}

func TestSwitchNote(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.UpdateContent(ctx, userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
	assert.NoError(t, err)

	status, err := svc.Switch(ctx, userId, &dto.SwitchNoteRequest{Name: collection.DefaultNoteName})
	assert.NoError(t, err)
	assert.Equal(t, collection.DefaultNoteName, status.Active)
	assert.Equal(t, "", status.Markup)

	status, err = svc.Switch(ctx, userId, &dto.SwitchNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.Equal(t, "<p>milk</p>", status.Markup)

	_, err = svc.Switch(ctx, userId, &dto.SwitchNoteRequest{Name: "missing"})
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestCloseEmptyNoteNeedsNoConfirmation(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)

	resp, err := svc.Close(ctx, userId, "device-a", &dto.CloseNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.Nil(t, resp.ConfirmationId)

	removes := waitForRemoves(t, repo, 1)
	assert.Equal(t, "todo", removes[0].name)
	assert.True(t, removes[0].tombstone.Deleted)
}

func TestCloseNoteWithContentRequiresConfirmation(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.UpdateContent(ctx, userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
	assert.NoError(t, err)

	resp, err := svc.Close(ctx, userId, "device-a", &dto.CloseNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.False(t, resp.Closed)
	assert.NotNil(t, resp.ConfirmationId)
	assert.Empty(t, repo.removeCalls())

	status, err := svc.ResolveConfirmation(ctx, userId, "device-a", &dto.ResolveConfirmationRequest{Id: *resp.ConfirmationId, Accepted: true})
	assert.NoError(t, err)
	assert.Equal(t, collection.DefaultNoteName, status.Active)
	assert.Len(t, status.Tabs, 1)
	waitForRemoves(t, repo, 1)
}

func TestDeclinedConfirmationKeepsTheNote(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.UpdateContent(ctx, userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
	assert.NoError(t, err)

	resp, err := svc.Close(ctx, userId, "device-a", &dto.CloseNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.False(t, resp.Closed)

	status, err := svc.ResolveConfirmation(ctx, userId, "device-a", &dto.ResolveConfirmationRequest{Id: *resp.ConfirmationId, Accepted: false})
	assert.NoError(t, err)
	assert.Len(t, status.Tabs, 2)
	assert.Empty(t, repo.removeCalls())

	// The request is consumed either way.
	_, err = svc.ResolveConfirmation(ctx, userId, "device-a", &dto.ResolveConfirmationRequest{Id: *resp.ConfirmationId, Accepted: true})
	assert.ErrorIs(t, err, confirm.ErrUnknownRequest)
}

func TestConfirmationCannotBeResolvedByAnotherUser(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	owner := uuid.New()
	intruder := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.UpdateContent(ctx, owner, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
	assert.NoError(t, err)

	resp, err := svc.Close(ctx, owner, "device-a", &dto.CloseNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	assert.False(t, resp.Closed)

	_, err = svc.ResolveConfirmation(ctx, intruder, "device-b", &dto.ResolveConfirmationRequest{Id: *resp.ConfirmationId, Accepted: true})
	assert.ErrorIs(t, err, confirm.ErrUnknownRequest)
	assert.Empty(t, repo.removeCalls())

	// The owner's prompt is still answerable.
	status, err := svc.ResolveConfirmation(ctx, owner, "device-a", &dto.ResolveConfirmationRequest{Id: *resp.ConfirmationId, Accepted: true})
	assert.NoError(t, err)
	assert.Len(t, status.Tabs, 1)
	waitForRemoves(t, repo, 1)
}

func TestCloseLastNoteRejected(t *testing.T) {
	svc := newTestWorkspaceService(&fakeWorkspaceRepo{})

	_, err := svc.Close(context.Background(), uuid.New(), "device-a", &dto.CloseNoteRequest{Name: collection.DefaultNoteName})
	assert.ErrorIs(t, err, collection.ErrLastNote)
}

func TestCloseUnknownNote(t *testing.T) {
	svc := newTestWorkspaceService(&fakeWorkspaceRepo{})

	_, err := svc.Close(context.Background(), uuid.New(), "device-a", &dto.CloseNoteRequest{Name: "missing"})
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestLoadRemoteAdoptsStoredNotes(t *testing.T) {
	userId := uuid.New()
	repo := &fakeWorkspaceRepo{
		record: &entity.Workspace{
			UserId: userId,
			Notes: map[string]string{
				"zebra": "<p>z</p>",
				"apple": "<p>a</p>",
			},
		},
	}
	svc := newTestWorkspaceService(repo)

	err := svc.LoadRemote(context.Background(), userId)
	assert.NoError(t, err)

	status, err := svc.Status(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, []dto.Tab{
		{Name: "apple", Active: true},
		{Name: "zebra", Active: false},
	}, status.Tabs)
	assert.Equal(t, "<p>a</p>", status.Markup)
	assert.Empty(t, repo.mergeCalls())
}

func TestLoadRemoteWithoutRecordSeedsAndPersistsDefault(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()

	err := svc.LoadRemote(context.Background(), userId)
	assert.NoError(t, err)

	status, err := svc.Status(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, collection.DefaultNoteName, status.Active)

	merges := repo.mergeCalls()
	assert.Len(t, merges, 1)
	assert.Equal(t, map[string]string{collection.DefaultNoteName: ""}, merges[0].notes)
}

func TestResetToDefaultDropsSessionState(t *testing.T) {
	repo := &fakeWorkspaceRepo{}
	svc := newTestWorkspaceService(repo)
	userId := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, "device-a", &dto.CreateNoteRequest{Name: "todo"})
	assert.NoError(t, err)
	_, err = svc.UpdateContent(ctx, userId, "device-a", &dto.UpdateContentRequest{Markup: "<p>milk</p>"})
	assert.NoError(t, err)

	svc.ResetToDefault(userId)

	status, err := svc.Status(ctx, userId)
	assert.NoError(t, err)
	assert.Len(t, status.Tabs, 1)
	assert.Equal(t, collection.DefaultNoteName, status.Active)
	assert.Equal(t, "", status.Markup)
	assert.Equal(t, 0, status.Words)
}

func TestTombstonesListsDeletedNotes(t *testing.T) {
	userId := uuid.New()
	deletedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	repo := &fakeWorkspaceRepo{
		record: &entity.Workspace{
			UserId: userId,
			Notes:  map[string]string{"todo": ""},
			DeletedNotes: map[string]collection.Tombstone{
				"old": {Deleted: true, DeletedAt: deletedAt},
			},
		},
	}
	svc := newTestWorkspaceService(repo)

	views, err := svc.Tombstones(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, []dto.TombstoneView{{Name: "old", DeletedAt: deletedAt}}, views)
}
