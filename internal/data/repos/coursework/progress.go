package coursework

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

type ProgressKey struct {
	UserID  uuid.UUID
	WeekID  string
	ClassID uuid.UUID
}

type ProgressRepo interface {
	// Merge creates the record if missing and writes only the fields set in u,
	// plus last_updated. Other fields keep their stored values.
	Merge(dbc dbctx.Context, key ProgressKey, u types.ProgressUpdate) error
	Get(dbc dbctx.Context, key ProgressKey) (*types.Progress, error)
	ListByUserAndClass(dbc dbctx.Context, userID, classID uuid.UUID) ([]*types.Progress, error)
	ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.Progress, error)
	FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error
	FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) Merge(dbc dbctx.Context, key ProgressKey, u types.ProgressUpdate) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.Progress{
		UserID:      key.UserID,
		WeekID:      key.WeekID,
		ClassID:     key.ClassID,
		LastUpdated: time.Now().UTC(),
	}
	cols := []string{"last_updated"}
	if u.GuideComplete != nil {
		row.GuideComplete = *u.GuideComplete
		cols = append(cols, "guide_complete")
	}
	if u.ColabComplete != nil {
		row.ColabComplete = *u.ColabComplete
		cols = append(cols, "colab_complete")
	}
	if u.QuizComplete != nil {
		row.QuizComplete = *u.QuizComplete
		cols = append(cols, "quiz_complete")
	}
	if u.QuizPercent != nil {
		v := *u.QuizPercent
		row.QuizPercent = &v
		cols = append(cols, "quiz_percent")
	}
	if u.QuizScore != nil {
		v := *u.QuizScore
		row.QuizScore = &v
		cols = append(cols, "quiz_score")
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_id"}, {Name: "class_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(row).Error
}

func (r *progressRepo) Get(dbc dbctx.Context, key ProgressKey) (*types.Progress, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var p types.Progress
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND week_id = ? AND class_id = ?", key.UserID, key.WeekID, key.ClassID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *progressRepo) ListByUserAndClass(dbc dbctx.Context, userID, classID uuid.UUID) ([]*types.Progress, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Progress{}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Order("week_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) ListByClass(dbc dbctx.Context, classID uuid.UUID) ([]*types.Progress, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.Progress{}
	if err := t.WithContext(dbc.Ctx).
		Where("class_id = ?", classID).
		Order("user_id ASC").
		Order("week_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) FullDeleteByClassID(dbc dbctx.Context, classID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("class_id = ?", classID).Delete(&types.Progress{}).Error
}

func (r *progressRepo) FullDeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Delete(&types.Progress{})
	return res.RowsAffected, res.Error
}
