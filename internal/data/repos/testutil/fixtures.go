package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/classroom-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, code string) *types.Class {
	tb.Helper()
	c := &types.Class{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    "class " + code,
		Code:    code,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return c
}

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, classID, userID uuid.UUID, role string) *types.ClassMember {
	tb.Helper()
	m := &types.ClassMember{ClassID: classID, UserID: userID, Role: role}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedWeek(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, index int, quizID string) *types.Week {
	tb.Helper()
	w := &types.Week{ID: id, Index: index, Title: fmt.Sprintf("Chapter %d", index), QuizID: quizID}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed week: %v", err)
	}
	return w
}

// SeedQuiz writes a quiz whose questions follow order, plus its answer key.
func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, quizID, weekID string, order []string, key map[string]string) (*types.Quiz, *types.AnswerKey) {
	tb.Helper()
	questions := make([]types.Question, 0, len(order))
	for _, id := range order {
		questions = append(questions, types.Question{ID: id, Prompt: "Q " + id, Choices: []string{"A", "B", "C"}})
	}
	q := &types.Quiz{ID: quizID, WeekID: weekID, Title: "Quiz " + quizID, Questions: datatypes.JSONSlice[types.Question](questions)}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	k := &types.AnswerKey{QuizID: quizID, WeekID: weekID, Key: datatypes.NewJSONType(key)}
	if err := tx.WithContext(ctx).Create(k).Error; err != nil {
		tb.Fatalf("seed answer key: %v", err)
	}
	return q, k
}

func SeedAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, quizID string, userID, classID uuid.UUID, submittedAt time.Time) *types.Attempt {
	tb.Helper()
	a := &types.Attempt{
		ID:          uuid.New(),
		QuizID:      quizID,
		UserID:      userID,
		ClassID:     classID,
		Answers:     datatypes.NewJSONType(map[string]string{}),
		Breakdown:   datatypes.JSONSlice[types.BreakdownItem]{},
		AutoGraded:  true,
		SubmittedAt: submittedAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}
