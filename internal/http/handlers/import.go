package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
	"github.com/yungbote/classroom-backend/internal/services"
)

// ImportHandler serves the content import endpoints. Replies are plain text
// except for success, which import scripts match on literally.
type ImportHandler struct {
	log     *logger.Logger
	content services.ContentService
	metrics *observability.Metrics
}

func NewImportHandler(log *logger.Logger, content services.ContentService, metrics *observability.Metrics) *ImportHandler {
	return &ImportHandler{
		log:     log.With("handler", "ImportHandler"),
		content: content,
		metrics: metrics,
	}
}

// ANY /api/import/quiz
// body: { "quizId", "weekId"?, "title", "questions": [...], "key": {...} }
func (h *ImportHandler) ImportQuiz(c *gin.Context) {
	var req services.ImportQuiz
	status := h.run(c, &req, func() error {
		return h.content.ImportQuiz(c.Request.Context(), req)
	})
	h.metrics.IncImport("quiz", status)
}

// ANY /api/import/week
// body: { "id", "index", "title", "colabUrl"?, "quizId"?, "student"?, "teacher"? }
func (h *ImportHandler) ImportWeek(c *gin.Context) {
	var req services.ImportWeek
	status := h.run(c, &req, func() error {
		return h.content.ImportWeek(c.Request.Context(), req)
	})
	h.metrics.IncImport("week", status)
}

func (h *ImportHandler) run(c *gin.Context, dst any, write func() error) int {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusMethodNotAllowed, "Use POST")
		return http.StatusMethodNotAllowed
	}
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		c.String(http.StatusBadRequest, "Missing fields")
		return http.StatusBadRequest
	}
	if err := write(); err != nil {
		if services.IsMissingFields(err) {
			c.String(http.StatusBadRequest, "Missing fields")
			return http.StatusBadRequest
		}
		h.log.Error("import failed", "path", c.FullPath(), "error", err)
		c.String(http.StatusInternalServerError, "Server error")
		return http.StatusInternalServerError
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
	return http.StatusOK
}
