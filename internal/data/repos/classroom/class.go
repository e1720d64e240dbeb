package classroom

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type ClassRepo interface {
	Create(dbc dbctx.Context, c *types.Class) error
	GetByID(dbc dbctx.Context, classID uuid.UUID) (*types.Class, error)
	GetByIDs(dbc dbctx.Context, classIDs []uuid.UUID) ([]*types.Class, error)
	GetByCode(dbc dbctx.Context, code string) (*types.Class, error)
	CodeExists(dbc dbctx.Context, code string) (bool, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Class, error)
	FullDeleteByID(dbc dbctx.Context, classID uuid.UUID) error
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return &classRepo{db: db, log: baseLog.With("repo", "ClassRepo")}
}

// Create fails with gorm.ErrDuplicatedKey when the code is taken.
func (r *classRepo) Create(dbc dbctx.Context, c *types.Class) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if c == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(c).Error
}

func (r *classRepo) GetByID(dbc dbctx.Context, classID uuid.UUID) (*types.Class, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var c types.Class
	if err := t.WithContext(dbc.Ctx).Where("id = ?", classID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classRepo) GetByIDs(dbc dbctx.Context, classIDs []uuid.UUID) ([]*types.Class, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Class{}
	if len(classIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", classIDs).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByCode matches the stored code exactly; callers normalize first.
func (r *classRepo) GetByCode(dbc dbctx.Context, code string) (*types.Class, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var c types.Class
	if err := t.WithContext(dbc.Ctx).Where("code = ?", code).Limit(1).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classRepo) CodeExists(dbc dbctx.Context, code string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Class{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*types.Class, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Class{}
	if err := t.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *classRepo) FullDeleteByID(dbc dbctx.Context, classID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("id = ?", classID).Delete(&types.Class{}).Error
}
