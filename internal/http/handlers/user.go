package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/classroom-backend/internal/http/response"
	"github.com/yungbote/classroom-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.EnsureProfile(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "load_me_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me, "displayName": me.DisplayName()})
}

// PUT /api/me/role
// body: { "role": "student" | "educator" }
func (uh *UserHandler) SetRole(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if !bindJSON(c, &req) {
		return
	}
	me, err := uh.userService.SetRole(c.Request.Context(), req.Role)
	if err != nil {
		response.RespondAPIError(c, err, "set_role_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

// PATCH /api/me/name
// body: { "firstName": "...", "lastName": "..." }
func (uh *UserHandler) ChangeName(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if !bindJSON(c, &req) {
		return
	}
	me, err := uh.userService.UpdateName(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		response.RespondAPIError(c, err, "change_name_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

// GET /api/me/classes
func (uh *UserHandler) ListMyClasses(c *gin.Context) {
	classes, err := uh.userService.ListMyClasses(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_classes_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// DELETE /api/me/progress
func (uh *UserHandler) ResetProgress(c *gin.Context) {
	n, err := uh.userService.ResetProgress(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "reset_progress_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": n})
}

// DELETE /api/me
func (uh *UserHandler) DeleteAccount(c *gin.Context) {
	if err := uh.userService.DeleteAccount(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err, "delete_account_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
