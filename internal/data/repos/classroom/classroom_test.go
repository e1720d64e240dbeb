package classroom

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/db"
	"github.com/yungbote/classroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

func TestClassRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClassRepo(gdb, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com", types.RoleEducator)

	c := &types.Class{ID: uuid.New(), OwnerID: owner.ID, Name: "Intro", Code: "ABC123"}
	if err := repo.Create(dbc, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Code != "ABC123" {
		t.Fatalf("GetByID: unexpected %+v", got)
	}

	byCode, err := repo.GetByCode(dbc, "ABC123")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if byCode == nil || byCode.ID != c.ID {
		t.Fatalf("GetByCode: unexpected %+v", byCode)
	}
	missing, err := repo.GetByCode(dbc, "ZZZZZZ")
	if err != nil {
		t.Fatalf("GetByCode(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByCode(missing): expected nil")
	}

	exists, err := repo.CodeExists(dbc, "ABC123")
	if err != nil || !exists {
		t.Fatalf("CodeExists: exists=%v err=%v", exists, err)
	}

	owned, err := repo.ListByOwner(dbc, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("ListByOwner: expected 1, got %d", len(owned))
	}

	if err := repo.FullDeleteByID(dbc, c.ID); err != nil {
		t.Fatalf("FullDeleteByID: %v", err)
	}
	got, err = repo.GetByID(dbc, c.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected class to be gone")
	}
}

func TestClassRepo_DuplicateCode(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClassRepo(gdb, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "dup@example.com", types.RoleEducator)
	first := testutil.SeedClass(t, ctx, tx, owner.ID, "DUP001")

	// Run the conflicting insert in a savepoint so Postgres keeps the outer tx usable.
	err := tx.Transaction(func(inner *gorm.DB) error {
		return repo.Create(dbctx.Context{Ctx: ctx, Tx: inner}, &types.Class{ID: uuid.New(), OwnerID: owner.ID, Name: "x", Code: "DUP001"})
	})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	got, err := repo.GetByCode(dbc, "DUP001")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("expected the first class to keep the code, got %+v", got)
	}
}

func TestClassMemberRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClassMemberRepo(gdb, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "t@example.com", types.RoleEducator)
	student := testutil.SeedUser(t, ctx, tx, "s@example.com", types.RoleStudent)
	c := testutil.SeedClass(t, ctx, tx, owner.ID, "MEM001")

	if err := repo.Create(dbc, &types.ClassMember{ClassID: c.ID, UserID: owner.ID, Role: types.RoleEducator}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Join(dbc, c.ID, student.ID, types.RoleStudent); err != nil {
		t.Fatalf("Join: %v", err)
	}
	// Joining own class as a student must not downgrade the educator membership.
	if err := repo.Join(dbc, c.ID, owner.ID, types.RoleStudent); err != nil {
		t.Fatalf("Join(owner): %v", err)
	}

	m, err := repo.Get(dbc, c.ID, owner.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m == nil || m.Role != types.RoleEducator {
		t.Fatalf("expected owner to stay educator, got %+v", m)
	}

	members, err := repo.ListByClass(dbc, c.ID)
	if err != nil {
		t.Fatalf("ListByClass: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListByClass: expected 2, got %d", len(members))
	}

	mine, err := repo.ListByUser(dbc, student.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 1 || mine[0].ClassID != c.ID {
		t.Fatalf("ListByUser: unexpected %+v", mine)
	}

	removed, err := repo.Delete(dbc, c.ID, student.ID)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(dbc, c.ID, student.ID)
	if err != nil || removed {
		t.Fatalf("Delete(again): removed=%v err=%v", removed, err)
	}

	if err := repo.FullDeleteByClassID(dbc, c.ID); err != nil {
		t.Fatalf("FullDeleteByClassID: %v", err)
	}
	m, err = repo.Get(dbc, c.ID, owner.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m != nil {
		t.Fatalf("expected memberships to be gone")
	}
}
