package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowspace/service-sharing/internal/application"
	"github.com/borrowspace/service-sharing/internal/domain/booking"
	"github.com/borrowspace/service-sharing/internal/handler"
)

// Handler validates incoming requests before forwarding them to the sharing
// server. Validation failures never reach the server; everything else is
// relayed verbatim, status and body included.
type Handler struct {
	client *Client
	logger *zap.Logger
}

// NewHandler creates a new gateway Handler.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// Register mounts all gateway routes.
func (h *Handler) Register(r *gin.Engine) {
	users := r.Group("/users")
	users.POST("", h.createUser)
	users.PATCH("/:userId", h.updateUser)
	users.GET("/:userId", h.passThrough)
	users.DELETE("/:userId", h.passThrough)

	items := r.Group("/items")
	items.POST("", h.createItem)
	items.GET("/search", h.passThrough)
	items.PATCH("/:itemId", h.withCaller(h.forwardBody))
	items.GET("/:itemId", h.withCaller(h.forward))
	items.DELETE("/:itemId", h.withCaller(h.forward))
	items.GET("", h.withCaller(h.forward))
	items.POST("/:itemId/comment", h.createComment)

	bookings := r.Group("/bookings")
	bookings.POST("", h.createBooking)
	bookings.PATCH("/:bookingId", h.withCaller(h.forward))
	bookings.GET("/owner", h.listBookings)
	bookings.GET("/:bookingId", h.withCaller(h.forward))
	bookings.GET("", h.listBookings)

	requests := r.Group("/requests")
	requests.POST("", h.createRequest)
	requests.GET("/all", h.withCaller(h.forward))
	requests.GET("/:requestId", h.withCaller(h.forward))
	requests.GET("", h.withCaller(h.forward))
}

// --- Validated routes ---

func (h *Handler) createUser(c *gin.Context) {
	var req application.CreateUserRequest
	if !h.bind(c, &req) {
		return
	}
	h.send(c, nil, req)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req application.UpdateUserRequest
	if !h.bind(c, &req) {
		return
	}
	h.send(c, nil, req)
}

func (h *Handler) createItem(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req application.CreateItemRequest
	if !h.bind(c, &req) {
		return
	}
	h.send(c, &caller, req)
}

func (h *Handler) createComment(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req application.CreateCommentRequest
	if !h.bind(c, &req) {
		return
	}
	h.send(c, &caller, req)
}

// createBooking additionally rejects windows that are malformed or entirely
// in the past, sparing the server the round trip.
func (h *Handler) createBooking(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req application.CreateBookingRequest
	if !h.bind(c, &req) {
		return
	}

	now := application.NowLocalDateTime().Time
	if req.Start.Time.Before(now) {
		h.reject(c, "booking start must not be in the past")
		return
	}
	if !req.End.Time.After(now) {
		h.reject(c, "booking end must be in the future")
		return
	}
	if !req.Start.Time.Before(req.End.Time) {
		h.reject(c, "booking start must be before its end")
		return
	}
	h.send(c, &caller, req)
}

func (h *Handler) createRequest(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req application.CreateRequestRequest
	if !h.bind(c, &req) {
		return
	}
	h.send(c, &caller, req)
}

// listBookings validates the state token before forwarding.
func (h *Handler) listBookings(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	if raw := c.Query("state"); raw != "" {
		if _, err := booking.ParseFilter(raw); err != nil {
			h.reject(c, err.Error())
			return
		}
	}
	h.relay(c, &caller, nil)
}

// --- Pass-through routes ---

func (h *Handler) passThrough(c *gin.Context) {
	h.relay(c, nil, nil)
}

func (h *Handler) withCaller(next func(c *gin.Context, caller uuid.UUID)) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := h.caller(c)
		if !ok {
			return
		}
		next(c, caller)
	}
}

func (h *Handler) forward(c *gin.Context, caller uuid.UUID) {
	h.relay(c, &caller, nil)
}

func (h *Handler) forwardBody(c *gin.Context, caller uuid.UUID) {
	body, err := c.GetRawData()
	if err != nil {
		h.reject(c, "failed to read request body")
		return
	}
	h.relay(c, &caller, body)
}

// --- Helpers ---

func (h *Handler) caller(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(handler.HeaderCallerID)
	if raw == "" {
		h.reject(c, "missing "+handler.HeaderCallerID+" header")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.reject(c, "invalid "+handler.HeaderCallerID+" header")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.reject(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) reject(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// send marshals the validated payload and relays it.
func (h *Handler) send(c *gin.Context, caller *uuid.UUID, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.relay(c, caller, body)
}

// relay forwards the request upstream and writes the upstream reply verbatim.
func (h *Handler) relay(c *gin.Context, caller *uuid.UUID, body []byte) {
	resp, err := h.client.Forward(
		c.Request.Context(),
		c.Request.Method,
		c.Request.URL.Path,
		c.Request.URL.Query(),
		caller,
		body,
	)
	if err != nil {
		h.logger.Error("upstream request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sharing server unavailable"})
		return
	}
	c.Data(resp.Status, "application/json", resp.Body)
}
