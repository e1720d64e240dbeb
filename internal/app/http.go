package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/http"
	httpH "github.com/yungbote/classroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/classroom-backend/internal/http/middleware"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	User       *httpH.UserHandler
	Class      *httpH.ClassHandler
	Coursework *httpH.CourseworkHandler
	Import     *httpH.ImportHandler
}

func wireHandlers(log *logger.Logger, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		User:       httpH.NewUserHandler(services.User),
		Class:      httpH.NewClassHandler(services.Class),
		Coursework: httpH.NewCourseworkHandler(services.Coursework, services.Grading, services.Progress),
		Import:     httpH.NewImportHandler(log, services.Content, metrics),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.ServiceName,
		AllowedOrigins:    cfg.AllowedOrigins,
		ImportSecret:      cfg.ImporterSecret,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		ClassHandler:      handlers.Class,
		CourseworkHandler: handlers.Coursework,
		ImportHandler:     handlers.Import,
		HealthHandler:     handlers.Health,
	})
}
