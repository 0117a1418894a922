package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/borrowspace/service-sharing/internal/application"
	"github.com/borrowspace/service-sharing/internal/domain/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the booking routes.
func (h *BookingHandler) Register(r *gin.Engine) {
	g := r.Group("/bookings")
	g.POST("", h.Create)
	g.PATCH("/:bookingId", h.Decide)
	g.GET("/owner", h.ListForOwner)
	g.GET("/:bookingId", h.Get)
	g.GET("", h.ListForBooker)
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto, err := h.service.CreateBooking(c.Request.Context(), req, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, dto)
}

// Decide handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) Decide(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		BadRequest(c, "approved must be true or false")
		return
	}

	dto, err := h.service.ApproveBooking(c.Request.Context(), bookingID, approved, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// Get handles GET /bookings/:bookingId.
func (h *BookingHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	dto, err := h.service.GetBookingByIDAndUser(c.Request.Context(), bookingID, caller)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dto)
}

// ListForBooker handles GET /bookings?state=&now=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	filter, now, ok := filterParams(c)
	if !ok {
		return
	}

	dtos, err := h.service.GetCurrentUserBookings(c.Request.Context(), filter, caller, now)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// ListForOwner handles GET /bookings/owner?state=&now=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	filter, now, ok := filterParams(c)
	if !ok {
		return
	}

	dtos, err := h.service.GetOwnerBookings(c.Request.Context(), filter, caller, now)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, dtos)
}

// filterParams reads the state and now query parameters. state defaults to
// ALL and is matched case-sensitively; now defaults to the request time.
func filterParams(c *gin.Context) (booking.Filter, time.Time, bool) {
	filter, err := booking.ParseFilter(c.DefaultQuery("state", string(booking.FilterAll)))
	if err != nil {
		Error(c, err)
		return "", time.Time{}, false
	}

	now := application.NowLocalDateTime().Time
	if raw := c.Query("now"); raw != "" {
		parsed, err := application.ParseLocalDateTime(raw)
		if err != nil {
			BadRequest(c, "now must use the format "+application.DateTimeLayout)
			return "", time.Time{}, false
		}
		now = parsed.Time
	}
	return filter, now, true
}
