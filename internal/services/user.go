package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

// MyClass is one entry of the caller's class picker.
type MyClass struct {
	ClassID uuid.UUID `json:"classId"`
	Name    string    `json:"name"`
	Code    string    `json:"code,omitempty"`
	Role    string    `json:"role"`
}

type UserService interface {
	EnsureProfile(ctx context.Context) (*types.User, error)
	SetRole(ctx context.Context, role string) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
	ListMyClasses(ctx context.Context) ([]MyClass, error)
	ResetProgress(ctx context.Context) (int64, error)
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	classes  repos.ClassRepo
	members  repos.ClassMemberRepo
	account  aggregates.AccountAggregate
}

func NewUserService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	classes repos.ClassRepo,
	members repos.ClassMemberRepo,
	account aggregates.AccountAggregate,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		log:      serviceLog,
		userRepo: userRepo,
		classes:  classes,
		members:  members,
		account:  account,
	}
}

// EnsureProfile returns the caller's profile, creating it from the token
// claims on first use.
func (us *userService) EnsureProfile(ctx context.Context) (*types.User, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := us.userRepo.CreateIgnoreDuplicate(dbc, &types.User{ID: rd.UserID, Email: rd.Email}); err != nil {
		us.log.Error("create profile failed", "user_id", rd.UserID, "error", err)
		return nil, apierr.Internal("profile_create_failed", err)
	}
	if err := us.userRepo.BackfillEmail(dbc, rd.UserID, rd.Email); err != nil {
		us.log.Warn("email backfill failed", "user_id", rd.UserID, "error", err)
	}
	return us.load(dbc, rd.UserID)
}

func (us *userService) SetRole(ctx context.Context, role string) (*types.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !types.ValidRole(role) {
		return nil, apierr.InvalidArgument("role must be student or educator")
	}
	return us.update(ctx, "profile_role_failed", func(dbc dbctx.Context, id uuid.UUID) error {
		return us.userRepo.UpdateRole(dbc, id, role)
	})
}

func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	return us.update(ctx, "profile_name_failed", func(dbc dbctx.Context, id uuid.UUID) error {
		return us.userRepo.UpdateName(dbc, id, firstName, lastName)
	})
}

func (us *userService) update(ctx context.Context, code string, fn func(dbc dbctx.Context, id uuid.UUID) error) (*types.User, error) {
	if _, err := us.EnsureProfile(ctx); err != nil {
		return nil, err
	}
	rd, _ := requireCaller(ctx)
	dbc := dbctx.Context{Ctx: ctx}
	if err := fn(dbc, rd.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("profile not found")
		}
		us.log.Error("profile update failed", "user_id", rd.UserID, "code", code, "error", err)
		return nil, apierr.Internal(code, err)
	}
	return us.load(dbc, rd.UserID)
}

func (us *userService) load(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Internal("profile_load_failed", err)
	}
	if u == nil {
		return nil, apierr.NotFound("profile not found")
	}
	return u, nil
}

func (us *userService) ListMyClasses(ctx context.Context) ([]MyClass, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	memberships, err := us.members.ListByUser(dbc, rd.UserID)
	if err != nil {
		return nil, apierr.Internal("class_list_failed", err)
	}
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ClassID)
	}
	classes, err := us.classes.GetByIDs(dbc, ids)
	if err != nil {
		return nil, apierr.Internal("class_list_failed", err)
	}
	byID := make(map[uuid.UUID]*types.Class, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}

	out := make([]MyClass, 0, len(memberships))
	for _, m := range memberships {
		c, ok := byID[m.ClassID]
		if !ok {
			continue
		}
		item := MyClass{ClassID: c.ID, Name: c.Name, Role: m.Role}
		if c.OwnerID == rd.UserID {
			item.Code = c.Code
		}
		out = append(out, item)
	}
	return out, nil
}

func (us *userService) ResetProgress(ctx context.Context) (int64, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return 0, err
	}
	n, err := us.account.ResetProgress(ctx, rd.UserID)
	if err != nil {
		us.log.Error("reset progress failed", "user_id", rd.UserID, "error", err)
		return 0, apierr.Internal("progress_reset_failed", err)
	}
	us.log.Info("progress reset", "user_id", rd.UserID, "rows", n)
	return n, nil
}

func (us *userService) DeleteAccount(ctx context.Context) error {
	rd, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if err := us.account.DeleteAccount(ctx, rd.UserID); err != nil {
		us.log.Error("delete account failed", "user_id", rd.UserID, "error", err)
		return apierr.New(http.StatusInternalServerError, "account_delete_failed", fmt.Errorf("delete account: %w", err))
	}
	us.log.Info("account deleted", "user_id", rd.UserID)
	return nil
}
