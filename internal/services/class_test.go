package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/classroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

func TestRandomJoinCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := RandomJoinCode()
		require.NoError(t, err)
		require.Len(t, code, joinCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(joinCodeAlphabet, r), "unexpected rune %q in %s", r, code)
		}
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeJoinCode("  ab12cd\n"))
	assert.Equal(t, "", NormalizeJoinCode("   "))
}

func TestCreateClass(t *testing.T) {
	h := newHarness(t)
	owner := h.seedUser(t, types.RoleEducator)
	code := randomCode()
	svc := h.classService(sequence(code))

	res, err := svc.CreateClass(as(owner), "  Intro to ML  ")
	require.NoError(t, err)
	assert.Equal(t, code, res.Code)

	dbc := dbctx.Context{Ctx: context.Background()}
	c, err := h.classes.GetByID(dbc, res.ClassID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Intro to ML", c.Name)
	assert.Equal(t, owner.ID, c.OwnerID)

	m, err := h.members.Get(dbc, res.ClassID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, types.RoleEducator, m.Role)
}

func TestCreateClass_Rejections(t *testing.T) {
	h := newHarness(t)
	svc := h.classService(nil)

	_, err := svc.CreateClass(context.Background(), "x")
	requireAPICode(t, err, "unauthenticated")

	student := h.seedUser(t, types.RoleStudent)
	_, err = svc.CreateClass(as(student), "x")
	requireAPICode(t, err, "permission_denied")

	// No profile row at all behaves like a non-educator.
	_, err = svc.CreateClass(asID(uuid.New(), "ghost@example.com"), "x")
	requireAPICode(t, err, "permission_denied")

	educator := h.seedUser(t, types.RoleEducator)
	_, err = svc.CreateClass(as(educator), "   ")
	requireAPICode(t, err, "invalid_argument")
}

func TestCreateClass_RetriesTakenCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.seedUser(t, types.RoleEducator)
	taken := testutil.SeedClass(t, ctx, h.db, owner.ID, randomCode())
	fresh := randomCode()

	res, err := h.classService(sequence(taken.Code, taken.Code, fresh)).CreateClass(as(owner), "Second")
	require.NoError(t, err)
	assert.Equal(t, fresh, res.Code)
}

func TestCreateClass_ExhaustsAttempts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.seedUser(t, types.RoleEducator)
	taken := testutil.SeedClass(t, ctx, h.db, owner.ID, randomCode())

	calls := 0
	gen := func() (string, error) {
		calls++
		return taken.Code, nil
	}
	_, err := h.classService(gen).CreateClass(as(owner), "Never")
	requireAPICode(t, err, "resource_exhausted")
	assert.Equal(t, maxCodeAttempts, calls)

	owned, err := h.classes.ListByOwner(dbctx.Context{Ctx: ctx}, owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestJoinClassByCode(t *testing.T) {
	h := newHarness(t)
	owner := h.seedUser(t, types.RoleEducator)
	student := h.seedUser(t, types.RoleStudent)
	code := randomCode()
	svc := h.classService(sequence(code))

	created, err := svc.CreateClass(as(owner), "Joinable")
	require.NoError(t, err)

	classID, err := svc.JoinClassByCode(as(student), " "+strings.ToLower(code)+" ")
	require.NoError(t, err)
	assert.Equal(t, created.ClassID, classID)

	// Joining twice is a no-op.
	_, err = svc.JoinClassByCode(as(student), code)
	require.NoError(t, err)
	members, err := h.members.ListByClass(dbctx.Context{Ctx: context.Background()}, classID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// The owner keeps the educator role when joining their own class.
	_, err = svc.JoinClassByCode(as(owner), code)
	require.NoError(t, err)
	m, err := h.members.Get(dbctx.Context{Ctx: context.Background()}, classID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RoleEducator, m.Role)
}

func TestJoinClassByCode_Errors(t *testing.T) {
	h := newHarness(t)
	svc := h.classService(nil)
	student := h.seedUser(t, types.RoleStudent)

	_, err := svc.JoinClassByCode(context.Background(), "ABCDEF")
	requireAPICode(t, err, "unauthenticated")

	_, err = svc.JoinClassByCode(as(student), "  ")
	requireAPICode(t, err, "invalid_argument")

	_, err = svc.JoinClassByCode(as(student), "ZZZZZZ-"+uuid.NewString()[:4])
	requireAPICode(t, err, "not_found")
}

func TestGetClass_Views(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.seedUser(t, types.RoleEducator)
	otherEducator := h.seedUser(t, types.RoleEducator)
	student := h.seedUser(t, types.RoleStudent)
	outsider := h.seedUser(t, types.RoleStudent)
	svc := h.classService(sequence(randomCode()))

	created, err := svc.CreateClass(as(owner), "Views")
	require.NoError(t, err)
	testutil.SeedMember(t, ctx, h.db, created.ClassID, student.ID, types.RoleStudent)

	now := time.Now().UTC()
	older := testutil.SeedAttempt(t, ctx, h.db, "quiz-a", student.ID, created.ClassID, now.Add(-time.Hour))
	newer := testutil.SeedAttempt(t, ctx, h.db, "quiz-b", student.ID, created.ClassID, now)

	view, err := svc.GetClass(as(owner), created.ClassID)
	require.NoError(t, err)
	require.NotNil(t, view.Detail)
	assert.Nil(t, view.Summary)
	assert.Len(t, view.Detail.Roster, 2)
	require.Len(t, view.Detail.Attempts, 2)
	assert.Equal(t, newer.ID, view.Detail.Attempts[0].ID)
	assert.Equal(t, older.ID, view.Detail.Attempts[1].ID)

	var studentEntry *RosterEntry
	for i := range view.Detail.Roster {
		if view.Detail.Roster[i].UserID == student.ID {
			studentEntry = &view.Detail.Roster[i]
		}
	}
	require.NotNil(t, studentEntry)
	assert.Equal(t, student.DisplayName(), studentEntry.DisplayName)
	assert.Equal(t, types.RoleStudent, studentEntry.Role)

	view, err = svc.GetClass(as(otherEducator), created.ClassID)
	require.NoError(t, err)
	assert.NotNil(t, view.Detail)

	view, err = svc.GetClass(as(student), created.ClassID)
	require.NoError(t, err)
	assert.Nil(t, view.Detail)
	require.NotNil(t, view.Summary)
	assert.Equal(t, "Views", view.Summary.Name)
	assert.Equal(t, types.RoleStudent, view.Summary.Role)

	_, err = svc.GetClass(as(outsider), created.ClassID)
	requireAPICode(t, err, "permission_denied")

	_, err = svc.GetClass(as(owner), uuid.New())
	requireAPICode(t, err, "not_found")
}

func TestDeleteClass(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.seedUser(t, types.RoleEducator)
	student := h.seedUser(t, types.RoleStudent)
	code := randomCode()
	svc := h.classService(sequence(code))

	created, err := svc.CreateClass(as(owner), "Doomed")
	require.NoError(t, err)
	_, err = svc.JoinClassByCode(as(student), code)
	require.NoError(t, err)

	err = svc.DeleteClass(as(student), created.ClassID)
	requireAPICode(t, err, "permission_denied")

	require.NoError(t, svc.DeleteClass(as(owner), created.ClassID))

	c, err := h.classes.GetByID(dbctx.Context{Ctx: ctx}, created.ClassID)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = svc.JoinClassByCode(as(student), code)
	requireAPICode(t, err, "not_found")

	err = svc.DeleteClass(as(owner), created.ClassID)
	requireAPICode(t, err, "not_found")
}

func TestLeaveClass(t *testing.T) {
	h := newHarness(t)
	owner := h.seedUser(t, types.RoleEducator)
	student := h.seedUser(t, types.RoleStudent)
	code := randomCode()
	svc := h.classService(sequence(code))

	created, err := svc.CreateClass(as(owner), "Leavable")
	require.NoError(t, err)
	_, err = svc.JoinClassByCode(as(student), code)
	require.NoError(t, err)

	err = svc.LeaveClass(as(owner), created.ClassID)
	requireAPICode(t, err, "invalid_argument")

	require.NoError(t, svc.LeaveClass(as(student), created.ClassID))

	err = svc.LeaveClass(as(student), created.ClassID)
	requireAPICode(t, err, "not_found")
}

func TestListOwned(t *testing.T) {
	h := newHarness(t)
	owner := h.seedUser(t, types.RoleEducator)
	svc := h.classService(nil)

	for _, name := range []string{"One", "Two"} {
		_, err := svc.CreateClass(as(owner), name)
		require.NoError(t, err)
	}
	owned, err := svc.ListOwned(as(owner))
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}
