package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/classroom-backend/internal/http/response"
)

// uuidParam parses a path parameter, writing a 400 and returning false on
// failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseUUID(c, name, c.Param(name))
}

func parseUUID(c *gin.Context, name, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

var errMissingValue = errors.New("value is required")

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
