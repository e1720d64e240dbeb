package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	"github.com/yungbote/classroom-backend/internal/data/repos"
	"github.com/yungbote/classroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/ctxutil"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type harness struct {
	db  *gorm.DB
	log *logger.Logger

	users     repos.UserRepo
	classes   repos.ClassRepo
	members   repos.ClassMemberRepo
	weeks     repos.WeekRepo
	materials repos.MaterialsRepo
	quizzes   repos.QuizRepo
	keys      repos.AnswerKeyRepo
	attempts  repos.AttemptRepo
	progress  repos.ProgressRepo

	classroom  aggregates.ClassroomAggregate
	account    aggregates.AccountAggregate
	coursework aggregates.CourseworkAggregate
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		db:        gdb,
		log:       log,
		users:     repos.NewUserRepo(gdb, log),
		classes:   repos.NewClassRepo(gdb, log),
		members:   repos.NewClassMemberRepo(gdb, log),
		weeks:     repos.NewWeekRepo(gdb, log),
		materials: repos.NewMaterialsRepo(gdb, log),
		quizzes:   repos.NewQuizRepo(gdb, log),
		keys:      repos.NewAnswerKeyRepo(gdb, log),
		attempts:  repos.NewAttemptRepo(gdb, log),
		progress:  repos.NewProgressRepo(gdb, log),
	}
	base := aggregates.BaseDeps{DB: gdb, Log: log}
	h.classroom = aggregates.NewClassroomAggregate(aggregates.ClassroomAggregateDeps{
		Base: base, Classes: h.classes, Members: h.members, Attempts: h.attempts, Progress: h.progress,
	})
	h.account = aggregates.NewAccountAggregate(aggregates.AccountAggregateDeps{
		Base: base, Users: h.users, Members: h.members, Attempts: h.attempts, Progress: h.progress,
	})
	h.coursework = aggregates.NewCourseworkAggregate(aggregates.CourseworkAggregateDeps{
		Base: base, Weeks: h.weeks, Materials: h.materials, Quizzes: h.quizzes,
		AnswerKeys: h.keys, Attempts: h.attempts, Progress: h.progress,
	})
	return h
}

func (h *harness) classService(gen CodeGenerator) ClassService {
	return NewClassService(ClassServiceDeps{
		Log:       h.log,
		Users:     h.users,
		Classes:   h.classes,
		Members:   h.members,
		Attempts:  h.attempts,
		Progress:  h.progress,
		Weeks:     h.weeks,
		Classroom: h.classroom,
		NewCode:   gen,
	})
}

func (h *harness) seedUser(t *testing.T, role string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), h.db, uuid.NewString()[:8]+"@example.com", role)
}

// as returns a context authenticated as u.
func as(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID, Email: u.Email})
}

func asID(id uuid.UUID, email string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: id, Email: email})
}

// uniqueID keeps fixed-looking ids distinct when tests share a Postgres pool.
func uniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func requireAPICode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apierr.Error
	require.Error(t, err)
	require.True(t, errors.As(err, &ae), "expected *apierr.Error, got %T: %v", err, err)
	require.Equal(t, code, ae.Code, "unexpected error: %v", err)
}

// sequence yields codes in order, then repeats the last one.
func sequence(codes ...string) CodeGenerator {
	i := 0
	return func() (string, error) {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c, nil
	}
}

func randomCode() string {
	c, _ := RandomJoinCode()
	return c
}
