package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/borrowspace/service-sharing/internal/application"
)

// RequestHandler exposes item requests over HTTP.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Register mounts the request routes.
func (h *RequestHandler) Register(r *gin.Engine) {
	g := r.Group("/requests")
	g.POST("", h.Create)
	g.GET("/all", h.ListOthers)
	g.GET("/:requestId", h.Get)
	g.GET("", h.ListOwn)
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.CreateRequest(c.Request.Context(), req, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, dto)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	dtos, err := h.service.GetOwnRequests(c.Request.Context(), caller)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// ListOthers handles GET /requests/all.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	dtos, err := h.service.GetAllRequests(c.Request.Context(), caller)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// Get handles GET /requests/:requestId.
func (h *RequestHandler) Get(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	dto, err := h.service.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}
