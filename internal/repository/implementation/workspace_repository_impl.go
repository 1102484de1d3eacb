package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"one-editor-be/internal/entity"
	"one-editor-be/internal/mapper"
	"one-editor-be/internal/model"
	"one-editor-be/internal/repository/contract"
	"one-editor-be/pkg/collection"
)

type WorkspaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkspaceMapper
}

func NewWorkspaceRepository(db *gorm.DB) contract.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkspaceMapper(),
	}
}

func (r *WorkspaceRepositoryImpl) Find(ctx context.Context, userId uuid.UUID) (*entity.Workspace, error) {
	var record model.Workspace
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&record), nil
}

// MergeNotes writes with "merge: true" semantics: the incoming maps are
// JSONB-concatenated onto the stored columns, so keys the caller did not
// send survive untouched. Saving a single note therefore never clobbers
// the rest of the collection.
func (r *WorkspaceRepositoryImpl) MergeNotes(ctx context.Context, userId uuid.UUID, notes map[string]string, tombstones map[string]collection.Tombstone) error {
	ws := &entity.Workspace{UserId: userId, Notes: notes, DeletedNotes: tombstones}
	record := r.mapper.ToModel(ws)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"notes":         gorm.Expr("workspaces.notes || excluded.notes"),
			"deleted_notes": gorm.Expr("workspaces.deleted_notes || excluded.deleted_notes"),
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Create(record).Error
}

// RemoveNote drops the note key and appends the tombstone in one
// statement so a crash between the two cannot leave a closed note
// without its tombstone.
func (r *WorkspaceRepositoryImpl) RemoveNote(ctx context.Context, userId uuid.UUID, name string, tombstone collection.Tombstone) error {
	patch, err := json.Marshal(map[string]collection.Tombstone{name: tombstone})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"notes":         gorm.Expr("notes - ?", name),
			"deleted_notes": gorm.Expr("deleted_notes || ?::jsonb", string(patch)),
		}).Error
}

func (r *WorkspaceRepositoryImpl) SaveContact(ctx context.Context, userId uuid.UUID, contact *entity.ContactMessage) error {
	ws := &entity.Workspace{UserId: userId, Contact: contact}
	record := r.mapper.ToModel(ws)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"contact":    gorm.Expr("excluded.contact"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(record).Error
}

func (r *WorkspaceRepositoryImpl) Blank(ctx context.Context, userId uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"notes":         gorm.Expr("'{}'::jsonb"),
			"deleted_notes": gorm.Expr("'{}'::jsonb"),
			"contact":       nil,
			"deleted_at":    now,
		}).Error
}
