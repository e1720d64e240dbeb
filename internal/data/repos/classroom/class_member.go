package classroom

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type ClassMemberRepo interface {
	Create(dbc dbctx.Context, m *types.ClassMember) error
	// Join inserts the membership or, when it already exists, only touches
	// updated_at. An existing role is never changed.
	Join(dbc dbctx.Context, classID, userID uuid.UUID, role string) error
	Get(dbc dbctx.Context, classID, userID uuid.UUID) (*types.ClassMember, error)
	ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.ClassMember, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ClassMember, error)
	Delete(dbc dbctx.Context, classID, userID uuid.UUID) (bool, error)
	FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error
	FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error
}

type classMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassMemberRepo(db *gorm.DB, baseLog *logger.Logger) ClassMemberRepo {
	return &classMemberRepo{db: db, log: baseLog.With("repo", "ClassMemberRepo")}
}

func (r *classMemberRepo) Create(dbc dbctx.Context, m *types.ClassMember) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if m == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(m).Error
}

func (r *classMemberRepo) Join(dbc dbctx.Context, classID, userID uuid.UUID, role string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row := &types.ClassMember{
		ClassID:   classID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(row).Error
}

func (r *classMemberRepo) Get(dbc dbctx.Context, classID, userID uuid.UUID) (*types.ClassMember, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var m types.ClassMember
	if err := t.WithContext(dbc.Ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *classMemberRepo) ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.ClassMember, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.ClassMember{}
	if err := t.WithContext(dbc.Ctx).
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *classMemberRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ClassMember, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.ClassMember{}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *classMemberRepo) Delete(dbc dbctx.Context, classID, userID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&types.ClassMember{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *classMemberRepo) FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("class_id = ?", classID).Delete(&types.ClassMember{}).Error
}

func (r *classMemberRepo) FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Delete(&types.ClassMember{}).Error
}
