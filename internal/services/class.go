package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	rediscache "github.com/yungbote/classroom-backend/internal/clients/redis"
	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	"github.com/yungbote/classroom-backend/internal/data/db"
	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

const (
	joinCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	joinCodeLength   = 6
	maxCodeAttempts  = 20
)

// CodeGenerator returns one join-code candidate.
type CodeGenerator func() (string, error)

// RandomJoinCode draws joinCodeLength characters uniformly from 0-9A-Z.
func RandomJoinCode() (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(joinCodeLength)
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeJoinCode trims and uppercases user input.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateClassResult struct {
	ClassID uuid.UUID `json:"classId"`
	Code    string    `json:"code"`
}

type RosterEntry struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ClassDetail is the owner/educator view. Students get ClassSummary instead.
type ClassDetail struct {
	Class    *types.Class      `json:"class"`
	Roster   []RosterEntry     `json:"roster"`
	Attempts []*types.Attempt  `json:"attempts"`
	Progress []*types.Progress `json:"progress"`
	Weeks    []*types.Week     `json:"weeks"`
}

type ClassSummary struct {
	ClassID uuid.UUID `json:"classId"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
}

// ClassView holds exactly one of Detail or Summary.
type ClassView struct {
	Detail  *ClassDetail
	Summary *ClassSummary
}

type ClassService interface {
	CreateClass(ctx context.Context, name string) (*CreateClassResult, error)
	JoinClassByCode(ctx context.Context, code string) (uuid.UUID, error)
	ListOwned(ctx context.Context) ([]*types.Class, error)
	GetClass(ctx context.Context, classID uuid.UUID) (*ClassView, error)
	DeleteClass(ctx context.Context, classID uuid.UUID) error
	LeaveClass(ctx context.Context, classID uuid.UUID) error
}

type ClassServiceDeps struct {
	Log       *logger.Logger
	Users     repos.UserRepo
	Classes   repos.ClassRepo
	Members   repos.ClassMemberRepo
	Attempts  repos.AttemptRepo
	Progress  repos.ProgressRepo
	Weeks     repos.WeekRepo
	Classroom aggregates.ClassroomAggregate
	CodeCache rediscache.ClassCodeCache
	Metrics   *observability.Metrics
	NewCode   CodeGenerator
}

type classService struct {
	log       *logger.Logger
	users     repos.UserRepo
	classes   repos.ClassRepo
	members   repos.ClassMemberRepo
	attempts  repos.AttemptRepo
	progress  repos.ProgressRepo
	weeks     repos.WeekRepo
	classroom aggregates.ClassroomAggregate
	codeCache rediscache.ClassCodeCache
	metrics   *observability.Metrics
	newCode   CodeGenerator
}

func NewClassService(deps ClassServiceDeps) ClassService {
	if deps.CodeCache == nil {
		deps.CodeCache = rediscache.NoopClassCodeCache()
	}
	if deps.NewCode == nil {
		deps.NewCode = RandomJoinCode
	}
	return &classService{
		log:       deps.Log.With("service", "ClassService"),
		users:     deps.Users,
		classes:   deps.Classes,
		members:   deps.Members,
		attempts:  deps.Attempts,
		progress:  deps.Progress,
		weeks:     deps.Weeks,
		classroom: deps.Classroom,
		codeCache: deps.CodeCache,
		metrics:   deps.Metrics,
		newCode:   deps.NewCode,
	}
}

func (cs *classService) CreateClass(ctx context.Context, name string) (*CreateClassResult, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "ClassService.CreateClass")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	u, err := cs.users.GetByID(dbc, rd.UserID)
	if err != nil {
		return nil, apierr.Internal("profile_load_failed", err)
	}
	if !u.IsEducator() {
		return nil, apierr.PermissionDenied("only educators can create classes")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.InvalidArgument("class name is required")
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := cs.newCode()
		if err != nil {
			return nil, apierr.Internal("code_generation_failed", err)
		}
		taken, err := cs.classes.CodeExists(dbc, code)
		if err != nil {
			return nil, apierr.Internal("class_create_failed", err)
		}
		if taken {
			continue
		}
		class := &types.Class{
			ID:      uuid.New(),
			OwnerID: rd.UserID,
			Name:    name,
			Code:    code,
		}
		if err := cs.classroom.CreateClass(ctx, class); err != nil {
			if db.IsUniqueViolation(err) {
				// Lost a race for the code after the existence check.
				continue
			}
			cs.log.Error("create class failed", "owner_id", rd.UserID, "error", err)
			return nil, apierr.Internal("class_create_failed", err)
		}
		cs.metrics.ObserveClassCodeAttempts(attempt)
		if err := cs.codeCache.Set(ctx, code, class.ID); err != nil {
			cs.log.Warn("class code cache set failed", "error", err)
		}
		cs.log.Info("class created", "class_id", class.ID, "owner_id", rd.UserID, "code_attempts", attempt)
		return &CreateClassResult{ClassID: class.ID, Code: code}, nil
	}
	cs.metrics.ObserveClassCodeAttempts(maxCodeAttempts)
	return nil, apierr.ResourceExhausted("could not generate a unique class code")
}

func (cs *classService) JoinClassByCode(ctx context.Context, code string) (uuid.UUID, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	code = NormalizeJoinCode(code)
	if code == "" {
		return uuid.Nil, apierr.InvalidArgument("class code is required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	classID, err := cs.lookupCode(dbc, code)
	if err != nil {
		return uuid.Nil, err
	}
	if err := cs.members.Join(dbc, classID, rd.UserID, types.RoleStudent); err != nil {
		cs.log.Error("join class failed", "class_id", classID, "user_id", rd.UserID, "error", err)
		return uuid.Nil, apierr.Internal("class_join_failed", err)
	}
	return classID, nil
}

// lookupCode resolves a normalized code through the cache, verifying cached
// ids still exist before trusting them.
func (cs *classService) lookupCode(dbc dbctx.Context, code string) (uuid.UUID, error) {
	if id, ok, err := cs.codeCache.Get(dbc.Ctx, code); err != nil {
		cs.log.Warn("class code cache get failed", "error", err)
	} else if ok {
		c, err := cs.classes.GetByID(dbc, id)
		if err != nil {
			return uuid.Nil, apierr.Internal("class_lookup_failed", err)
		}
		if c != nil && c.Code == code {
			cs.metrics.IncClassCodeCache("hit")
			return c.ID, nil
		}
		_ = cs.codeCache.Delete(dbc.Ctx, code)
		cs.metrics.IncClassCodeCache("stale")
	} else {
		cs.metrics.IncClassCodeCache("miss")
	}

	c, err := cs.classes.GetByCode(dbc, code)
	if err != nil {
		return uuid.Nil, apierr.Internal("class_lookup_failed", err)
	}
	if c == nil {
		return uuid.Nil, apierr.NotFound("no class with that code")
	}
	if err := cs.codeCache.Set(dbc.Ctx, code, c.ID); err != nil {
		cs.log.Warn("class code cache set failed", "error", err)
	}
	return c.ID, nil
}

func (cs *classService) ListOwned(ctx context.Context) ([]*types.Class, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := cs.classes.ListByOwner(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		return nil, apierr.Internal("class_list_failed", err)
	}
	return out, nil
}

func (cs *classService) GetClass(ctx context.Context, classID uuid.UUID) (*ClassView, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "ClassService.GetClass")
	defer span.End()
	dbc := dbctx.Context{Ctx: ctx}

	class, err := cs.classes.GetByID(dbc, classID)
	if err != nil {
		return nil, apierr.Internal("class_load_failed", err)
	}
	if class == nil {
		return nil, apierr.NotFound("class not found")
	}

	if class.OwnerID != rd.UserID {
		u, err := cs.users.GetByID(dbc, rd.UserID)
		if err != nil {
			return nil, apierr.Internal("profile_load_failed", err)
		}
		if !u.IsEducator() {
			m, err := cs.members.Get(dbc, classID, rd.UserID)
			if err != nil {
				return nil, apierr.Internal("class_load_failed", err)
			}
			if m == nil {
				return nil, apierr.PermissionDenied("not a member of this class")
			}
			return &ClassView{Summary: &ClassSummary{ClassID: class.ID, Name: class.Name, Role: m.Role}}, nil
		}
	}

	detail, err := cs.loadDetail(ctx, class)
	if err != nil {
		cs.log.Error("class detail failed", "class_id", classID, "error", err)
		return nil, apierr.Internal("class_load_failed", err)
	}
	return &ClassView{Detail: detail}, nil
}

func (cs *classService) loadDetail(ctx context.Context, class *types.Class) (*ClassDetail, error) {
	var (
		members  []*types.ClassMember
		attempts []*types.Attempt
		progress []*types.Progress
		weeks    []*types.Week
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() (err error) {
		members, err = cs.members.ListByClass(dbc, class.ID)
		return err
	})
	g.Go(func() (err error) {
		attempts, err = cs.attempts.ListByClass(dbc, class.ID)
		return err
	})
	g.Go(func() (err error) {
		progress, err = cs.progress.ListByClass(dbc, class.ID)
		return err
	})
	g.Go(func() (err error) {
		weeks, err = cs.weeks.ListOrdered(dbc)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := cs.users.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return nil, fmt.Errorf("load roster profiles: %w", err)
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	roster := make([]RosterEntry, 0, len(members))
	for _, m := range members {
		entry := RosterEntry{UserID: m.UserID, Role: m.Role, JoinedAt: m.CreatedAt, DisplayName: m.UserID.String()}
		if u, ok := byID[m.UserID]; ok {
			entry.DisplayName = u.DisplayName()
			entry.Email = u.Email
		}
		roster = append(roster, entry)
	}

	return &ClassDetail{
		Class:    class,
		Roster:   roster,
		Attempts: attempts,
		Progress: progress,
		Weeks:    weeks,
	}, nil
}

func (cs *classService) DeleteClass(ctx context.Context, classID uuid.UUID) error {
	rd, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	class, err := cs.classes.GetByID(dbc, classID)
	if err != nil {
		return apierr.Internal("class_load_failed", err)
	}
	if class == nil {
		return apierr.NotFound("class not found")
	}
	if class.OwnerID != rd.UserID {
		return apierr.PermissionDenied("only the owner can delete a class")
	}
	if err := cs.classroom.DeleteClass(ctx, classID); err != nil {
		cs.log.Error("delete class failed", "class_id", classID, "error", err)
		return apierr.Internal("class_delete_failed", err)
	}
	if err := cs.codeCache.Delete(ctx, class.Code); err != nil {
		cs.log.Warn("class code cache delete failed", "error", err)
	}
	cs.log.Info("class deleted", "class_id", classID, "owner_id", rd.UserID)
	return nil
}

func (cs *classService) LeaveClass(ctx context.Context, classID uuid.UUID) error {
	rd, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	class, err := cs.classes.GetByID(dbc, classID)
	if err != nil {
		return apierr.Internal("class_load_failed", err)
	}
	if class == nil {
		return apierr.NotFound("class not found")
	}
	if class.OwnerID == rd.UserID {
		return apierr.InvalidArgument("the owner cannot leave their class; delete it instead")
	}
	removed, err := cs.members.Delete(dbc, classID, rd.UserID)
	if err != nil {
		return apierr.Internal("class_leave_failed", err)
	}
	if !removed {
		return apierr.NotFound("not a member of this class")
	}
	return nil
}
