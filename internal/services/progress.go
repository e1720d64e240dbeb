package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type WeekProgress struct {
	Week     *types.Week     `json:"week"`
	Progress *types.Progress `json:"progress,omitempty"`
	Done     int             `json:"done"`
	Total    int             `json:"total"`
}

type Dashboard struct {
	ClassID uuid.UUID      `json:"classId"`
	Weeks   []WeekProgress `json:"weeks"`
	Done    int            `json:"done"`
	Total   int            `json:"total"`
	Percent int            `json:"percent"`
}

// WeekTotals counts the trackable items of one week (guide and notebook, plus
// the quiz when the week links one) and how many p marks done.
func WeekTotals(w *types.Week, p *types.Progress) (done, total int) {
	total = 2
	if w.HasQuiz() {
		total++
	}
	if p == nil {
		return 0, total
	}
	if p.GuideComplete {
		done++
	}
	if p.ColabComplete {
		done++
	}
	if w.HasQuiz() && p.QuizComplete {
		done++
	}
	return done, total
}

type ProgressService interface {
	SetProgressFlag(ctx context.Context, classID uuid.UUID, weekID, field string, value bool) (*types.Progress, error)
	UpdateProgress(ctx context.Context, classID uuid.UUID, weekID string, u types.ProgressUpdate) (*types.Progress, error)
	Dashboard(ctx context.Context, classID uuid.UUID) (*Dashboard, error)
}

type progressService struct {
	log      *logger.Logger
	progress repos.ProgressRepo
	weeks    repos.WeekRepo
}

func NewProgressService(log *logger.Logger, progress repos.ProgressRepo, weeks repos.WeekRepo) ProgressService {
	return &progressService{
		log:      log.With("service", "ProgressService"),
		progress: progress,
		weeks:    weeks,
	}
}

func (ps *progressService) SetProgressFlag(ctx context.Context, classID uuid.UUID, weekID, field string, value bool) (*types.Progress, error) {
	u, ok := types.FlagUpdate(strings.TrimSpace(field), value)
	if !ok {
		return nil, apierr.InvalidArgument("field must be guideComplete, colabComplete or quizComplete")
	}
	return ps.UpdateProgress(ctx, classID, weekID, u)
}

// UpdateProgress merges u into the caller's record for (week, class).
func (ps *progressService) UpdateProgress(ctx context.Context, classID uuid.UUID, weekID string, u types.ProgressUpdate) (*types.Progress, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	weekID = strings.TrimSpace(weekID)
	if classID == uuid.Nil || weekID == "" {
		return nil, apierr.InvalidArgument("classId and weekId are required")
	}
	if u.Empty() {
		return nil, apierr.InvalidArgument("no progress fields given")
	}
	dbc := dbctx.Context{Ctx: ctx}
	key := repos.ProgressKey{UserID: rd.UserID, WeekID: weekID, ClassID: classID}
	if err := ps.progress.Merge(dbc, key, u); err != nil {
		ps.log.Error("progress merge failed", "user_id", rd.UserID, "week_id", weekID, "error", err)
		return nil, apierr.Internal("progress_update_failed", err)
	}
	p, err := ps.progress.Get(dbc, key)
	if err != nil {
		return nil, apierr.Internal("progress_load_failed", err)
	}
	return p, nil
}

func (ps *progressService) Dashboard(ctx context.Context, classID uuid.UUID) (*Dashboard, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if classID == uuid.Nil {
		return nil, apierr.InvalidArgument("classId is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	weeks, err := ps.weeks.ListOrdered(dbc)
	if err != nil {
		return nil, apierr.Internal("weeks_load_failed", err)
	}
	rows, err := ps.progress.ListByUserAndClass(dbc, rd.UserID, classID)
	if err != nil {
		return nil, apierr.Internal("progress_load_failed", err)
	}
	byWeek := make(map[string]*types.Progress, len(rows))
	for _, r := range rows {
		byWeek[r.WeekID] = r
	}

	out := &Dashboard{ClassID: classID, Weeks: make([]WeekProgress, 0, len(weeks))}
	for _, w := range weeks {
		p := byWeek[w.ID]
		done, total := WeekTotals(w, p)
		out.Weeks = append(out.Weeks, WeekProgress{Week: w, Progress: p, Done: done, Total: total})
		out.Done += done
		out.Total += total
	}
	out.Percent = Percent(out.Done, out.Total)
	return out, nil
}
