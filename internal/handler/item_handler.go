package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/borrowspace/service-sharing/internal/application"
)

// ItemHandler exposes the item catalog over HTTP.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Register mounts the item routes.
func (h *ItemHandler) Register(r *gin.Engine) {
	g := r.Group("/items")
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.PATCH("/:itemId", h.Update)
	g.GET("/:itemId", h.Get)
	g.DELETE("/:itemId", h.Delete)
	g.GET("", h.ListOwn)
	g.POST("/:itemId/comment", h.CreateComment)
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.CreateItem(c.Request.Context(), req, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, dto)
}

// Update handles PATCH /items/:itemId.
func (h *ItemHandler) Update(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.UpdateItem(c.Request.Context(), req, itemID, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// Get handles GET /items/:itemId. The owner additionally sees the dates of
// the surrounding bookings.
func (h *ItemHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	dto, err := h.service.GetItem(c.Request.Context(), itemID, caller, application.NowLocalDateTime().Time)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// ListOwn handles GET /items.
func (h *ItemHandler) ListOwn(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	dtos, err := h.service.GetUserItems(c.Request.Context(), caller, application.NowLocalDateTime().Time)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// Search handles GET /items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	dtos, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// Delete handles DELETE /items/:itemId.
func (h *ItemHandler) Delete(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), itemID, caller); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}

// CreateComment handles POST /items/:itemId/comment.
func (h *ItemHandler) CreateComment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.CreateComment(c.Request.Context(), req, itemID, caller, application.NowLocalDateTime().Time)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}
