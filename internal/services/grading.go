package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type GradeQuizInput struct {
	QuizID  string
	ClassID uuid.UUID
	Answers map[string]string
}

type GradeResult struct {
	AttemptID uuid.UUID             `json:"attemptId"`
	Score     int                   `json:"score"`
	Total     int                   `json:"total"`
	Percent   int                   `json:"percent"`
	Breakdown []types.BreakdownItem `json:"breakdown"`
}

// Grade scores answers against key. Questions fix the breakdown order; key
// ids the quiz does not list follow in lexical order. Unanswered questions
// are incorrect with a nil Selected.
func Grade(key map[string]string, questions []types.Question, answers map[string]string) (score, total, percent int, breakdown []types.BreakdownItem) {
	order := types.QuestionOrder(key, questions)
	breakdown = make([]types.BreakdownItem, 0, len(order))
	for _, id := range order {
		total++
		correct := key[id]
		item := types.BreakdownItem{ID: id, CorrectAnswer: correct}
		if sel, ok := answers[id]; ok {
			s := sel
			item.Selected = &s
			item.IsCorrect = sel == correct
		}
		if item.IsCorrect {
			score++
		}
		breakdown = append(breakdown, item)
	}
	return score, total, Percent(score, total), breakdown
}

// Percent is round(part*100/total), 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

type GradingService interface {
	GradeQuiz(ctx context.Context, in GradeQuizInput) (*GradeResult, error)
}

type gradingService struct {
	log        *logger.Logger
	quizzes    repos.QuizRepo
	answerKeys repos.AnswerKeyRepo
	coursework aggregates.CourseworkAggregate
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewGradingService(
	log *logger.Logger,
	quizzes repos.QuizRepo,
	answerKeys repos.AnswerKeyRepo,
	coursework aggregates.CourseworkAggregate,
	metrics *observability.Metrics,
) GradingService {
	return &gradingService{
		log:        log.With("service", "GradingService"),
		quizzes:    quizzes,
		answerKeys: answerKeys,
		coursework: coursework,
		metrics:    metrics,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (gs *gradingService) GradeQuiz(ctx context.Context, in GradeQuizInput) (*GradeResult, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	in.QuizID = strings.TrimSpace(in.QuizID)
	if in.QuizID == "" || in.ClassID == uuid.Nil || in.Answers == nil {
		return nil, apierr.InvalidArgument("quizId, classId and answers are required")
	}
	ctx, span := observability.StartSpan(ctx, "GradingService.GradeQuiz", attribute.String("quiz.id", in.QuizID))
	defer span.End()
	dbc := dbctx.Context{Ctx: ctx}

	key, err := gs.answerKeys.GetByQuizID(dbc, in.QuizID)
	if err != nil {
		return nil, apierr.Internal("answer_key_load_failed", err)
	}
	if key == nil {
		return nil, apierr.NotFound("answer key not found")
	}
	// The quiz document only fixes ordering; grading works without it.
	var questions []types.Question
	if quiz, err := gs.quizzes.GetByID(dbc, in.QuizID); err != nil {
		gs.log.Warn("quiz load failed; using key order", "quiz_id", in.QuizID, "error", err)
	} else if quiz != nil {
		questions = quiz.Questions
	}

	score, total, percent, breakdown := Grade(key.Key.Data(), questions, in.Answers)
	attempt := &types.Attempt{
		ID:          uuid.New(),
		QuizID:      in.QuizID,
		UserID:      rd.UserID,
		ClassID:     in.ClassID,
		Answers:     datatypes.NewJSONType(in.Answers),
		Score:       score,
		Total:       total,
		Percent:     percent,
		Breakdown:   datatypes.JSONSlice[types.BreakdownItem](breakdown),
		AutoGraded:  true,
		SubmittedAt: gs.now(),
	}

	var (
		progressKey *repos.ProgressKey
		update      types.ProgressUpdate
	)
	if weekID := strings.TrimSpace(key.WeekID); weekID != "" {
		progressKey = &repos.ProgressKey{UserID: rd.UserID, WeekID: weekID, ClassID: in.ClassID}
		done := true
		update = types.ProgressUpdate{QuizComplete: &done, QuizPercent: &percent, QuizScore: &score}
	}
	if err := gs.coursework.RecordAttempt(ctx, attempt, progressKey, update); err != nil {
		gs.log.Error("record attempt failed", "quiz_id", in.QuizID, "user_id", rd.UserID, "error", err)
		return nil, apierr.Internal("attempt_save_failed", err)
	}
	gs.metrics.ObserveQuizGrade(percent)

	return &GradeResult{
		AttemptID: attempt.ID,
		Score:     score,
		Total:     total,
		Percent:   percent,
		Breakdown: breakdown,
	}, nil
}
