package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/aggregates"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
	"github.com/yungbote/classroom-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Class      services.ClassService
	Grading    services.GradingService
	Progress   services.ProgressService
	Coursework services.CourseworkService
	Content    services.ContentService
	Guides     services.GuideResolver
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	classroom := aggregates.NewClassroomAggregate(aggregates.ClassroomAggregateDeps{
		Base:     base,
		Classes:  repos.Classes,
		Members:  repos.ClassMember,
		Attempts: repos.Attempts,
		Progress: repos.Progress,
	})
	account := aggregates.NewAccountAggregate(aggregates.AccountAggregateDeps{
		Base:     base,
		Users:    repos.Users,
		Members:  repos.ClassMember,
		Attempts: repos.Attempts,
		Progress: repos.Progress,
	})
	coursework := aggregates.NewCourseworkAggregate(aggregates.CourseworkAggregateDeps{
		Base:       base,
		Weeks:      repos.Weeks,
		Materials:  repos.Materials,
		Quizzes:    repos.Quizzes,
		AnswerKeys: repos.AnswerKeys,
		Attempts:   repos.Attempts,
		Progress:   repos.Progress,
	})

	guides := services.NewGuideResolver(log, clients.Content, cfg.GuideFetchTimeout, metrics)

	return Services{
		Auth: services.NewAuthService(log, cfg.JWTSecretKey, cfg.JWTIssuer),
		User: services.NewUserService(log, repos.Users, repos.Classes, repos.ClassMember, account),
		Class: services.NewClassService(services.ClassServiceDeps{
			Log:       log,
			Users:     repos.Users,
			Classes:   repos.Classes,
			Members:   repos.ClassMember,
			Attempts:  repos.Attempts,
			Progress:  repos.Progress,
			Weeks:     repos.Weeks,
			Classroom: classroom,
			CodeCache: clients.CodeCache,
			Metrics:   metrics,
		}),
		Grading:    services.NewGradingService(log, repos.Quizzes, repos.AnswerKeys, coursework, metrics),
		Progress:   services.NewProgressService(log, repos.Progress, repos.Weeks),
		Coursework: services.NewCourseworkService(log, repos.Weeks, repos.Materials, repos.Quizzes, repos.Users, guides),
		Content:    services.NewContentService(log, coursework),
		Guides:     guides,
	}
}
