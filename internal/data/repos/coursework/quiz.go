package coursework

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type QuizRepo interface {
	Upsert(dbc dbctx.Context, q *types.Quiz) error
	GetByID(dbc dbctx.Context, quizID string) (*types.Quiz, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) Upsert(dbc dbctx.Context, q *types.Quiz) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if q == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"week_id", "title", "questions", "updated_at"}),
		}).
		Create(q).Error
}

func (r *quizRepo) GetByID(dbc dbctx.Context, quizID string) (*types.Quiz, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var q types.Quiz
	if err := t.WithContext(dbc.Ctx).Where("id = ?", quizID).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// AnswerKeyRepo is only read by grading; quiz content reads never touch it.
type AnswerKeyRepo interface {
	Upsert(dbc dbctx.Context, k *types.AnswerKey) error
	GetByQuizID(dbc dbctx.Context, quizID string) (*types.AnswerKey, error)
}

type answerKeyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerKeyRepo(db *gorm.DB, baseLog *logger.Logger) AnswerKeyRepo {
	return &answerKeyRepo{db: db, log: baseLog.With("repo", "AnswerKeyRepo")}
}

func (r *answerKeyRepo) Upsert(dbc dbctx.Context, k *types.AnswerKey) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if k == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quiz_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"week_id", "answer_key", "updated_at"}),
		}).
		Create(k).Error
}

func (r *answerKeyRepo) GetByQuizID(dbc dbctx.Context, quizID string) (*types.AnswerKey, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var k types.AnswerKey
	if err := t.WithContext(dbc.Ctx).Where("quiz_id = ?", quizID).First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}
