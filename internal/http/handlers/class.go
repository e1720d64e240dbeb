package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/http/response"
	"github.com/yungbote/classroom-backend/internal/services"
)

type ClassHandler struct {
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// POST /api/classes
// body: { "name": "..." }
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.classService.CreateClass(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondAPIError(c, err, "create_class_failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/classes/join
// body: { "code": "AB12CD" }
func (h *ClassHandler) JoinClass(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if !bindJSON(c, &req) {
		return
	}
	classID, err := h.classService.JoinClassByCode(c.Request.Context(), req.Code)
	if err != nil {
		response.RespondAPIError(c, err, "join_class_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"classId": classID})
}

// GET /api/classes
func (h *ClassHandler) ListOwned(c *gin.Context) {
	classes, err := h.classService.ListOwned(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_classes_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// GET /api/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	classID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.classService.GetClass(c.Request.Context(), classID)
	if err != nil {
		response.RespondAPIError(c, err, "load_class_failed")
		return
	}
	if view.Detail != nil {
		c.JSON(http.StatusOK, gin.H{"view": "detail", "detail": view.Detail})
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": "summary", "summary": view.Summary})
}

// DELETE /api/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	classID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.classService.DeleteClass(c.Request.Context(), classID); err != nil {
		response.RespondAPIError(c, err, "delete_class_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/classes/:id/membership
func (h *ClassHandler) LeaveClass(c *gin.Context) {
	classID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.classService.LeaveClass(c.Request.Context(), classID); err != nil {
		response.RespondAPIError(c, err, "leave_class_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
