package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

type CourseworkAggregateDeps struct {
	Base       BaseDeps
	Weeks      repos.WeekRepo
	Materials  repos.MaterialsRepo
	Quizzes    repos.QuizRepo
	AnswerKeys repos.AnswerKeyRepo
	Attempts   repos.AttemptRepo
	Progress   repos.ProgressRepo
}

type CourseworkAggregate interface {
	// ImportQuiz writes the quiz content and its answer key together.
	ImportQuiz(ctx context.Context, quiz *types.Quiz, key *types.AnswerKey) error
	// ImportWeek upserts a week and whichever material sets are given.
	ImportWeek(ctx context.Context, week *types.Week, student *types.StudentMaterials, teacher *types.TeacherMaterials) error
	// RecordAttempt stores a graded attempt and, when progress is non-nil,
	// merges the quiz result into the matching progress record.
	RecordAttempt(ctx context.Context, attempt *types.Attempt, progress *repos.ProgressKey, update types.ProgressUpdate) error
}

type courseworkAggregate struct {
	deps CourseworkAggregateDeps
}

func NewCourseworkAggregate(deps CourseworkAggregateDeps) CourseworkAggregate {
	deps.Base = deps.Base.withDefaults()
	return &courseworkAggregate{deps: deps}
}

func (a *courseworkAggregate) ImportQuiz(ctx context.Context, quiz *types.Quiz, key *types.AnswerKey) error {
	return executeWrite(ctx, a.deps.Base, "coursework.import_quiz", func(dbc dbctx.Context) error {
		if err := a.deps.Quizzes.Upsert(dbc, quiz); err != nil {
			return fmt.Errorf("upsert quiz: %w", err)
		}
		if err := a.deps.AnswerKeys.Upsert(dbc, key); err != nil {
			return fmt.Errorf("upsert answer key: %w", err)
		}
		return nil
	})
}

func (a *courseworkAggregate) ImportWeek(ctx context.Context, week *types.Week, student *types.StudentMaterials, teacher *types.TeacherMaterials) error {
	return executeWrite(ctx, a.deps.Base, "coursework.import_week", func(dbc dbctx.Context) error {
		if err := a.deps.Weeks.Upsert(dbc, week); err != nil {
			return fmt.Errorf("upsert week: %w", err)
		}
		if err := a.deps.Materials.UpsertStudent(dbc, student); err != nil {
			return fmt.Errorf("upsert student materials: %w", err)
		}
		if err := a.deps.Materials.UpsertTeacher(dbc, teacher); err != nil {
			return fmt.Errorf("upsert teacher materials: %w", err)
		}
		return nil
	})
}

func (a *courseworkAggregate) RecordAttempt(ctx context.Context, attempt *types.Attempt, progress *repos.ProgressKey, update types.ProgressUpdate) error {
	return executeWrite(ctx, a.deps.Base, "coursework.record_attempt", func(dbc dbctx.Context) error {
		if err := a.deps.Attempts.Create(dbc, attempt); err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		if progress == nil || update.Empty() {
			return nil
		}
		if err := a.deps.Progress.Merge(dbc, *progress, update); err != nil {
			return fmt.Errorf("merge progress: %w", err)
		}
		return nil
	})
}
