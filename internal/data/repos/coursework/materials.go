package coursework

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

var guideColumns = []string{"guide_html", "guide_html_path", "html_path", "guide_path", "path", "guide_url", "updated_at"}

// MaterialsRepo stores the student and teacher guide sources of a week.
type MaterialsRepo interface {
	UpsertStudent(dbc dbctx.Context, m *types.StudentMaterials) error
	UpsertTeacher(dbc dbctx.Context, m *types.TeacherMaterials) error
	GetStudent(dbc dbctx.Context, weekID string) (*types.StudentMaterials, error)
	GetTeacher(dbc dbctx.Context, weekID string) (*types.TeacherMaterials, error)
}

type materialsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialsRepo(db *gorm.DB, baseLog *logger.Logger) MaterialsRepo {
	return &materialsRepo{db: db, log: baseLog.With("repo", "MaterialsRepo")}
}

func (r *materialsRepo) UpsertStudent(dbc dbctx.Context, m *types.StudentMaterials) error {
	if m == nil {
		return nil
	}
	return r.upsert(dbc, m)
}

func (r *materialsRepo) UpsertTeacher(dbc dbctx.Context, m *types.TeacherMaterials) error {
	if m == nil {
		return nil
	}
	return r.upsert(dbc, m)
}

func (r *materialsRepo) upsert(dbc dbctx.Context, row interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_id"}},
			DoUpdates: clause.AssignmentColumns(guideColumns),
		}).
		Create(row).Error
}

func (r *materialsRepo) GetStudent(dbc dbctx.Context, weekID string) (*types.StudentMaterials, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var m types.StudentMaterials
	if err := t.WithContext(dbc.Ctx).Where("week_id = ?", weekID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *materialsRepo) GetTeacher(dbc dbctx.Context, weekID string) (*types.TeacherMaterials, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var m types.TeacherMaterials
	if err := t.WithContext(dbc.Ctx).Where("week_id = ?", weekID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
