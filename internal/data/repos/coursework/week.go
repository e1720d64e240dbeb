package coursework

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type WeekRepo interface {
	Upsert(dbc dbctx.Context, w *types.Week) error
	GetByID(dbc dbctx.Context, weekID string) (*types.Week, error)
	ListOrdered(dbc dbctx.Context) ([]*types.Week, error)
}

type weekRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeekRepo(db *gorm.DB, baseLog *logger.Logger) WeekRepo {
	return &weekRepo{db: db, log: baseLog.With("repo", "WeekRepo")}
}

func (r *weekRepo) Upsert(dbc dbctx.Context, w *types.Week) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if w == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"week_index", "title", "colab_url", "quiz_id", "updated_at"}),
		}).
		Create(w).Error
}

func (r *weekRepo) GetByID(dbc dbctx.Context, weekID string) (*types.Week, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var w types.Week
	if err := t.WithContext(dbc.Ctx).Where("id = ?", weekID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *weekRepo) ListOrdered(dbc dbctx.Context) ([]*types.Week, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Week{}
	if err := t.WithContext(dbc.Ctx).
		Order("week_index ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
