package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/http/response"
	"github.com/yungbote/classroom-backend/internal/services"
)

type CourseworkHandler struct {
	coursework services.CourseworkService
	grading    services.GradingService
	progress   services.ProgressService
}

func NewCourseworkHandler(coursework services.CourseworkService, grading services.GradingService, progress services.ProgressService) *CourseworkHandler {
	return &CourseworkHandler{coursework: coursework, grading: grading, progress: progress}
}

// GET /api/weeks
func (h *CourseworkHandler) ListWeeks(c *gin.Context) {
	weeks, err := h.coursework.ListWeeks(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "load_weeks_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}

// GET /api/weeks/:id
func (h *CourseworkHandler) GetWeek(c *gin.Context) {
	view, err := h.coursework.GetWeek(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err, "load_week_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/weeks/:id/teacher
func (h *CourseworkHandler) GetTeacherMaterials(c *gin.Context) {
	view, err := h.coursework.GetTeacherMaterials(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err, "load_teacher_materials_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/quizzes/:id
func (h *CourseworkHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.coursework.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err, "load_quiz_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}

// POST /api/quizzes/:id/grade
// body: { "classId": "...", "answers": { "q1": "A" } }
func (h *CourseworkHandler) GradeQuiz(c *gin.Context) {
	var req struct {
		ClassID string            `json:"classId"`
		Answers map[string]string `json:"answers"`
	}
	if !bindJSON(c, &req) {
		return
	}
	in := services.GradeQuizInput{QuizID: c.Param("id"), Answers: req.Answers}
	if req.ClassID != "" {
		id, ok := parseUUID(c, "classId", req.ClassID)
		if !ok {
			return
		}
		in.ClassID = id
	}
	res, err := h.grading.GradeQuiz(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err, "grade_quiz_failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/classes/:id/progress
func (h *CourseworkHandler) Dashboard(c *gin.Context) {
	classID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.progress.Dashboard(c.Request.Context(), classID)
	if err != nil {
		response.RespondAPIError(c, err, "load_progress_failed")
		return
	}
	c.JSON(http.StatusOK, d)
}

// PUT /api/classes/:id/weeks/:weekId/progress
// body: { "field": "guideComplete", "value": true }
func (h *CourseworkHandler) SetProgressFlag(c *gin.Context) {
	classID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value *bool  `json:"value"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Value == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", errMissingValue)
		return
	}
	p, err := h.progress.SetProgressFlag(c.Request.Context(), classID, c.Param("weekId"), req.Field, *req.Value)
	if err != nil {
		response.RespondAPIError(c, err, "update_progress_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}
