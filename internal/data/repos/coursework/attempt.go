package coursework

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type AttemptRepo interface {
	Create(dbc dbctx.Context, a *types.Attempt) error
	ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.Attempt, error)
	ListByUserAndClass(dbc dbctx.Context, userID, classID uuid.UUID) ([]*types.Attempt, error)
	FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error
	FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	return &attemptRepo{db: db, log: baseLog.With("repo", "AttemptRepo")}
}

func (r *attemptRepo) Create(dbc dbctx.Context, a *types.Attempt) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if a == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(a).Error
}

// ListByClass returns newest first.
func (r *attemptRepo) ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.Attempt, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Attempt{}
	if err := t.WithContext(dbc.Ctx).
		Where("class_id = ?", classID).
		Order("submitted_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attemptRepo) ListByUserAndClass(dbc dbctx.Context, userID, classID uuid.UUID) ([]*types.Attempt, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Attempt{}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Order("submitted_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attemptRepo) FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("class_id = ?", classID).Delete(&types.Attempt{}).Error
}

func (r *attemptRepo) FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Delete(&types.Attempt{}).Error
}
