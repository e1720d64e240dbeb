package services

import (
	"context"
	"strings"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/apierr"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type WeekView struct {
	Week      *types.Week `json:"week"`
	GuideHTML string      `json:"guideHtml"`
	GuideURL  string      `json:"guideUrl,omitempty"`
}

// TeacherView reports Available=false when a week has no teacher materials.
type TeacherView struct {
	WeekID    string `json:"weekId"`
	Available bool   `json:"available"`
	GuideHTML string `json:"guideHtml,omitempty"`
	GuideURL  string `json:"guideUrl,omitempty"`
}

type CourseworkService interface {
	ListWeeks(ctx context.Context) ([]*types.Week, error)
	GetWeek(ctx context.Context, weekID string) (*WeekView, error)
	GetTeacherMaterials(ctx context.Context, weekID string) (*TeacherView, error)
	GetQuiz(ctx context.Context, quizID string) (*types.Quiz, error)
}

type courseworkService struct {
	log       *logger.Logger
	weeks     repos.WeekRepo
	materials repos.MaterialsRepo
	quizzes   repos.QuizRepo
	users     repos.UserRepo
	guides    GuideResolver
}

func NewCourseworkService(
	log *logger.Logger,
	weeks repos.WeekRepo,
	materials repos.MaterialsRepo,
	quizzes repos.QuizRepo,
	users repos.UserRepo,
	guides GuideResolver,
) CourseworkService {
	return &courseworkService{
		log:       log.With("service", "CourseworkService"),
		weeks:     weeks,
		materials: materials,
		quizzes:   quizzes,
		users:     users,
		guides:    guides,
	}
}

func (s *courseworkService) ListWeeks(ctx context.Context) ([]*types.Week, error) {
	out, err := s.weeks.ListOrdered(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal("weeks_load_failed", err)
	}
	return out, nil
}

func (s *courseworkService) GetWeek(ctx context.Context, weekID string) (*WeekView, error) {
	weekID = strings.TrimSpace(weekID)
	if weekID == "" {
		return nil, apierr.InvalidArgument("weekId is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	w, err := s.weeks.GetByID(dbc, weekID)
	if err != nil {
		return nil, apierr.Internal("week_load_failed", err)
	}
	if w == nil {
		return nil, apierr.NotFound("week not found")
	}
	view := &WeekView{Week: w}
	m, err := s.materials.GetStudent(dbc, weekID)
	if err != nil {
		return nil, apierr.Internal("materials_load_failed", err)
	}
	if m != nil {
		view.GuideHTML, _ = s.guides.Resolve(ctx, "student", m.GuideSource)
		view.GuideURL = m.GuideURL
	}
	return view, nil
}

func (s *courseworkService) GetTeacherMaterials(ctx context.Context, weekID string) (*TeacherView, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	weekID = strings.TrimSpace(weekID)
	if weekID == "" {
		return nil, apierr.InvalidArgument("weekId is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	u, err := s.users.GetByID(dbc, rd.UserID)
	if err != nil {
		return nil, apierr.Internal("profile_load_failed", err)
	}
	if !u.IsEducator() {
		return nil, apierr.PermissionDenied("teacher materials are for educators")
	}
	m, err := s.materials.GetTeacher(dbc, weekID)
	if err != nil {
		return nil, apierr.Internal("materials_load_failed", err)
	}
	if m == nil {
		return &TeacherView{WeekID: weekID, Available: false}, nil
	}
	html, _ := s.guides.Resolve(ctx, "teacher", m.GuideSource)
	return &TeacherView{WeekID: weekID, Available: true, GuideHTML: html, GuideURL: m.GuideURL}, nil
}

func (s *courseworkService) GetQuiz(ctx context.Context, quizID string) (*types.Quiz, error) {
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return nil, apierr.InvalidArgument("quizId is required")
	}
	q, err := s.quizzes.GetByID(dbctx.Context{Ctx: ctx}, quizID)
	if err != nil {
		return nil, apierr.Internal("quiz_load_failed", err)
	}
	if q == nil {
		return nil, apierr.NotFound("quiz not found")
	}
	return q, nil
}
