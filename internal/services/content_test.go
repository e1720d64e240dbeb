package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

func TestImportQuiz_Validation(t *testing.T) {
	h := newHarness(t)
	svc := NewContentService(h.log, h.coursework)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ImportQuiz
	}{
		{"no id", ImportQuiz{Title: "t", Questions: []types.Question{}, Key: map[string]string{}}},
		{"blank id", ImportQuiz{QuizID: "  ", Title: "t", Questions: []types.Question{}, Key: map[string]string{}}},
		{"no title", ImportQuiz{QuizID: "q", Questions: []types.Question{}, Key: map[string]string{}}},
		{"no questions", ImportQuiz{QuizID: "q", Title: "t", Key: map[string]string{}}},
		{"no key", ImportQuiz{QuizID: "q", Title: "t", Questions: []types.Question{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ImportQuiz(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, IsMissingFields(err))
			assert.Equal(t, 400, apierr.From(err, "x").Status)
		})
	}
}

func TestImportQuiz_EmptyCollectionsAllowedAndUpserts(t *testing.T) {
	h := newHarness(t)
	svc := NewContentService(h.log, h.coursework)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	quizID := uniqueID("quiz")

	require.NoError(t, svc.ImportQuiz(ctx, ImportQuiz{QuizID: quizID, Title: "Draft", Questions: []types.Question{}, Key: map[string]string{}}))

	require.NoError(t, svc.ImportQuiz(ctx, ImportQuiz{
		QuizID:    quizID,
		WeekID:    "week-07",
		Title:     "Final",
		Questions: []types.Question{{ID: "q1"}},
		Key:       map[string]string{"q1": "B"},
	}))

	q, err := h.quizzes.GetByID(dbc, quizID)
	require.NoError(t, err)
	assert.Equal(t, "Final", q.Title)
	assert.Len(t, q.Questions, 1)

	k, err := h.keys.GetByQuizID(dbc, quizID)
	require.NoError(t, err)
	assert.Equal(t, "week-07", k.WeekID)
	assert.Equal(t, map[string]string{"q1": "B"}, k.Key.Data())
}

func TestImportWeek_Validation(t *testing.T) {
	h := newHarness(t)
	svc := NewContentService(h.log, h.coursework)

	err := svc.ImportWeek(context.Background(), ImportWeek{Title: "no id"})
	assert.True(t, IsMissingFields(err))
	err = svc.ImportWeek(context.Background(), ImportWeek{ID: "week-01"})
	assert.True(t, IsMissingFields(err))
}
