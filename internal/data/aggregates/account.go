package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
)

type AccountAggregateDeps struct {
	Base     BaseDeps
	Users    repos.UserRepo
	Members  repos.ClassMemberRepo
	Attempts repos.AttemptRepo
	Progress repos.ProgressRepo
}

type AccountAggregate interface {
	// ResetProgress deletes every progress row of the user and reports how many.
	ResetProgress(ctx context.Context, userID uuid.UUID) (int64, error)
	// DeleteAccount removes progress, attempts, memberships and the profile.
	// Classes the user owns are left in place.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type accountAggregate struct {
	deps AccountAggregateDeps
}

func NewAccountAggregate(deps AccountAggregateDeps) AccountAggregate {
	deps.Base = deps.Base.withDefaults()
	return &accountAggregate{deps: deps}
}

func (a *accountAggregate) ResetProgress(ctx context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	err := executeWrite(ctx, a.deps.Base, "account.reset_progress", func(dbc dbctx.Context) error {
		n, err := a.deps.Progress.FullDeleteByUserID(dbc, userID)
		if err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (a *accountAggregate) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return executeWrite(ctx, a.deps.Base, "account.delete", func(dbc dbctx.Context) error {
		if _, err := a.deps.Progress.FullDeleteByUserID(dbc, userID); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := a.deps.Attempts.FullDeleteByUserID(dbc, userID); err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		if err := a.deps.Members.FullDeleteByUserID(dbc, userID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := a.deps.Users.FullDeleteByID(dbc, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
}
