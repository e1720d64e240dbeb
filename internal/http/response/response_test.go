package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/platform/apierr"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, err, "fallback")
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, env
}

func TestRespondAPIError_Kinds(t *testing.T) {
	rec, env := respond(t, apierr.NotFound("class not found"))
	if rec.Code != http.StatusNotFound || env.Error.Code != "not_found" {
		t.Fatalf("unexpected response: %d %+v", rec.Code, env)
	}
	if env.Error.Message != "class not found: not found" {
		t.Fatalf("unexpected message: %q", env.Error.Message)
	}
}

func TestRespondAPIError_HidesInternalDetail(t *testing.T) {
	rec, env := respond(t, errors.New("pq: connection refused to 10.0.0.3"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if env.Error.Code != "fallback" || env.Error.Message != "internal error" {
		t.Fatalf("unexpected body: %+v", env)
	}
}
