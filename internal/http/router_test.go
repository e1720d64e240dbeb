package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/classroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/classroom-backend/internal/http/middleware"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
	"github.com/yungbote/classroom-backend/internal/services"
)

func TestRouter_PublicAndProtected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	r := NewRouter(RouterConfig{
		Log:            log,
		ImportSecret:   "s3cret",
		AuthMiddleware: httpMW.NewAuthMiddleware(log, services.NewAuthService(log, "jwt-secret", "")),
		UserHandler:    httpH.NewUserHandler(nil),
		ClassHandler:   httpH.NewClassHandler(nil),
		ImportHandler:  httpH.NewImportHandler(log, nil, nil),
		HealthHandler:  httpH.NewHealthHandler(),
	})

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthcheck", http.StatusOK},
		{http.MethodGet, "/api/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/classes", http.StatusUnauthorized},
		{http.MethodPost, "/api/classes/join", http.StatusUnauthorized},
		{http.MethodPut, "/api/import/quiz", http.StatusUnauthorized},
		{http.MethodGet, "/api/nowhere", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: got=%d want=%d", tc.method, tc.path, rec.Code, tc.want)
		}
		if rec.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s %s: missing request id header", tc.method, tc.path)
		}
	}
}
