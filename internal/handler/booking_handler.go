package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/internal/application"
	"github.com/Little-Sprouts/service-booking/pkg/auth"
	"github.com/Little-Sprouts/service-booking/pkg/middleware"
	"github.com/Little-Sprouts/service-booking/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequireRole(auth.RoleParent), h.CreateBooking)
		bookings.POST("/quote", h.Quote)
		bookings.GET("", h.ListBookings)
		bookings.GET("/availability", h.GetAvailability)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/submit", h.SubmitBooking)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/schedules", h.AddSchedules)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	guardianID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), guardianID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Quote handles POST /api/v1/bookings/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.QuotePrice(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	guardianID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.GetGuardianBookings(c.Request.Context(), guardianID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetAvailability handles GET /api/v1/bookings/availability?date=2006-01-02.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.BadRequest(c, "invalid or missing date, expected YYYY-MM-DD")
		return
	}

	slots, err := h.service.GetAvailableTimeSlots(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"date": c.Query("date"), "available_slots": slots})
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), guardianID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SubmitBooking handles POST /api/v1/bookings/:id/submit.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.service.SubmitBooking(c.Request.Context(), guardianID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ConfirmBooking handles POST /api/v1/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.service.ConfirmBooking(c.Request.Context(), guardianID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, refundDue, err := h.service.CancelBooking(c.Request.Context(), guardianID, bookingID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"booking": result, "refund_due": refundDue})
}

type addSchedulesRequest struct {
	Schedules []application.ScheduleInput `json:"schedules" binding:"required"`
}

// AddSchedules handles POST /api/v1/bookings/:id/schedules.
func (h *BookingHandler) AddSchedules(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	var req addSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddSchedules(c.Request.Context(), guardianID, bookingID, req.Schedules)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	guardianID, bookingID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), guardianID, bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// identify extracts the caller and the booking ID path parameter, writing the
// error response itself when either is missing.
func (h *BookingHandler) identify(c *gin.Context) (guardianID, bookingID uuid.UUID, ok bool) {
	guardianID, found := middleware.GetUserID(c)
	if !found {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return uuid.Nil, uuid.Nil, false
	}
	return guardianID, bookingID, true
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
