package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/borrowspace/service-sharing/internal/application"
)

// UserHandler exposes the user directory over HTTP.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register mounts the user routes.
func (h *UserHandler) Register(r *gin.Engine) {
	g := r.Group("/users")
	g.POST("", h.Create)
	g.PATCH("/:userId", h.Update)
	g.GET("/:userId", h.Get)
	g.DELETE("/:userId", h.Delete)
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, dto)
}

// Update handles PATCH /users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req application.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.UpdateUser(c.Request.Context(), req, userID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// Get handles GET /users/:userId.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	dto, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}
