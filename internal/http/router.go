package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/classroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/classroom-backend/internal/http/middleware"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string
	ImportSecret   string

	AuthMiddleware *httpMW.AuthMiddleware

	UserHandler       *httpH.UserHandler
	ClassHandler      *httpH.ClassHandler
	CourseworkHandler *httpH.CourseworkHandler
	ImportHandler     *httpH.ImportHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Coursework (public)
		if cfg.CourseworkHandler != nil {
			api.GET("/weeks", cfg.CourseworkHandler.ListWeeks)
			api.GET("/weeks/:id", cfg.CourseworkHandler.GetWeek)
			api.GET("/quizzes/:id", cfg.CourseworkHandler.GetQuiz)
		}

		// Import (shared secret, any method so the handler can answer 405)
		if cfg.ImportHandler != nil {
			secret := httpMW.RequireImportSecret(cfg.ImportSecret)
			api.Any("/import/quiz", secret, cfg.ImportHandler.ImportQuiz)
			api.Any("/import/week", secret, cfg.ImportHandler.ImportWeek)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me/role", cfg.UserHandler.SetRole)
			protected.PATCH("/me/name", cfg.UserHandler.ChangeName)
			protected.GET("/me/classes", cfg.UserHandler.ListMyClasses)
			protected.DELETE("/me/progress", cfg.UserHandler.ResetProgress)
			protected.DELETE("/me", cfg.UserHandler.DeleteAccount)
		}

		// Classes
		if cfg.ClassHandler != nil {
			protected.POST("/classes", cfg.ClassHandler.CreateClass)
			protected.POST("/classes/join", cfg.ClassHandler.JoinClass)
			protected.GET("/classes", cfg.ClassHandler.ListOwned)
			protected.GET("/classes/:id", cfg.ClassHandler.GetClass)
			protected.DELETE("/classes/:id", cfg.ClassHandler.DeleteClass)
			protected.DELETE("/classes/:id/membership", cfg.ClassHandler.LeaveClass)
		}

		// Coursework (protected)
		if cfg.CourseworkHandler != nil {
			protected.GET("/weeks/:id/teacher", cfg.CourseworkHandler.GetTeacherMaterials)
			protected.POST("/quizzes/:id/grade", cfg.CourseworkHandler.GradeQuiz)
			protected.GET("/classes/:id/progress", cfg.CourseworkHandler.Dashboard)
			protected.PUT("/classes/:id/weeks/:weekId/progress", cfg.CourseworkHandler.SetProgressFlag)
		}
	}

	return r
}
