package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

type ClassroomAggregateDeps struct {
	Base     BaseDeps
	Classes  repos.ClassRepo
	Members  repos.ClassMemberRepo
	Attempts repos.AttemptRepo
	Progress repos.ProgressRepo
}

// ClassroomAggregate owns writes that span a class and its dependent rows.
type ClassroomAggregate interface {
	// CreateClass writes the class and the owner's educator membership. A taken
	// code surfaces as a unique violation and nothing is written.
	CreateClass(ctx context.Context, class *types.Class) error
	// DeleteClass removes memberships, progress and attempts of the class,
	// then the class itself.
	DeleteClass(ctx context.Context, classID uuid.UUID) error
}

type classroomAggregate struct {
	deps ClassroomAggregateDeps
}

func NewClassroomAggregate(deps ClassroomAggregateDeps) ClassroomAggregate {
	deps.Base = deps.Base.withDefaults()
	return &classroomAggregate{deps: deps}
}

func (a *classroomAggregate) CreateClass(ctx context.Context, class *types.Class) error {
	return executeWrite(ctx, a.deps.Base, "classroom.create_class", func(dbc dbctx.Context) error {
		if err := a.deps.Classes.Create(dbc, class); err != nil {
			return fmt.Errorf("insert class: %w", err)
		}
		owner := &types.ClassMember{
			ClassID: class.ID,
			UserID:  class.OwnerID,
			Role:    types.RoleEducator,
		}
		if err := a.deps.Members.Create(dbc, owner); err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}
		return nil
	})
}

func (a *classroomAggregate) DeleteClass(ctx context.Context, classID uuid.UUID) error {
	return executeWrite(ctx, a.deps.Base, "classroom.delete_class", func(dbc dbctx.Context) error {
		if err := a.deps.Members.FullDeleteByClassID(dbc, classID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := a.deps.Progress.FullDeleteByClassID(dbc, classID); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := a.deps.Attempts.FullDeleteByClassID(dbc, classID); err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		if err := a.deps.Classes.FullDeleteByID(dbc, classID); err != nil {
			return fmt.Errorf("delete class: %w", err)
		}
		return nil
	})
}
