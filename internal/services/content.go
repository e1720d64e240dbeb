package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	types "github.com/yungbote/classroom-backend/internal/domain"
	pkgerrors "github.com/yungbote/classroom-backend/internal/pkg/errors"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

// ErrMissingFields marks an import payload without its required fields.
var ErrMissingFields = fmt.Errorf("missing fields: %w", pkgerrors.ErrInvalidArgument)

// ImportQuiz is the payload of a quiz import. Questions and Key must be
// present; empty collections are allowed.
type ImportQuiz struct {
	QuizID    string            `json:"quizId" yaml:"quizId"`
	WeekID    string            `json:"weekId,omitempty" yaml:"weekId"`
	Title     string            `json:"title" yaml:"title"`
	Questions []types.Question  `json:"questions" yaml:"questions"`
	Key       map[string]string `json:"key" yaml:"key"`
}

type ImportWeek struct {
	ID       string             `json:"id" yaml:"id"`
	Index    int                `json:"index" yaml:"index"`
	Title    string             `json:"title" yaml:"title"`
	ColabURL string             `json:"colabUrl,omitempty" yaml:"colabUrl"`
	QuizID   string             `json:"quizId,omitempty" yaml:"quizId"`
	Student  *types.GuideSource `json:"student,omitempty" yaml:"student"`
	Teacher  *types.GuideSource `json:"teacher,omitempty" yaml:"teacher"`
}

type ContentService interface {
	ImportQuiz(ctx context.Context, in ImportQuiz) error
	ImportWeek(ctx context.Context, in ImportWeek) error
}

type contentService struct {
	log        *logger.Logger
	coursework aggregates.CourseworkAggregate
}

func NewContentService(log *logger.Logger, coursework aggregates.CourseworkAggregate) ContentService {
	return &contentService{
		log:        log.With("service", "ContentService"),
		coursework: coursework,
	}
}

func (s *contentService) ImportQuiz(ctx context.Context, in ImportQuiz) error {
	in.QuizID = strings.TrimSpace(in.QuizID)
	in.WeekID = strings.TrimSpace(in.WeekID)
	if in.QuizID == "" || in.Title == "" || in.Questions == nil || in.Key == nil {
		return ErrMissingFields
	}
	quiz := &types.Quiz{
		ID:        in.QuizID,
		WeekID:    in.WeekID,
		Title:     in.Title,
		Questions: datatypes.JSONSlice[types.Question](in.Questions),
	}
	key := &types.AnswerKey{
		QuizID: in.QuizID,
		WeekID: in.WeekID,
		Key:    datatypes.NewJSONType(in.Key),
	}
	if err := s.coursework.ImportQuiz(ctx, quiz, key); err != nil {
		return fmt.Errorf("import quiz %s: %w", in.QuizID, err)
	}
	s.log.Info("quiz imported", "quiz_id", in.QuizID, "week_id", in.WeekID, "questions", len(in.Questions))
	return nil
}

func (s *contentService) ImportWeek(ctx context.Context, in ImportWeek) error {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || strings.TrimSpace(in.Title) == "" {
		return ErrMissingFields
	}
	week := &types.Week{
		ID:       in.ID,
		Index:    in.Index,
		Title:    in.Title,
		ColabURL: strings.TrimSpace(in.ColabURL),
		QuizID:   strings.TrimSpace(in.QuizID),
	}
	var student *types.StudentMaterials
	if in.Student != nil {
		student = &types.StudentMaterials{WeekID: in.ID, GuideSource: *in.Student}
	}
	var teacher *types.TeacherMaterials
	if in.Teacher != nil {
		teacher = &types.TeacherMaterials{WeekID: in.ID, GuideSource: *in.Teacher}
	}
	if err := s.coursework.ImportWeek(ctx, week, student, teacher); err != nil {
		return fmt.Errorf("import week %s: %w", in.ID, err)
	}
	s.log.Info("week imported", "week_id", in.ID, "student", student != nil, "teacher", teacher != nil)
	return nil
}

// IsMissingFields reports whether err is a payload validation failure.
func IsMissingFields(err error) bool {
	return errors.Is(err, ErrMissingFields)
}
