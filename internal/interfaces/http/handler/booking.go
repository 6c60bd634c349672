package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appparking "github.com/parkly/backend/internal/application/parking"
	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
)

// BookingHandler handles booking lifecycle HTTP requests
type BookingHandler struct {
	BaseHandler
	bookingService *appparking.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *appparking.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// =====================
// Request DTOs
// =====================

// ReserveRequest represents the request body for reserving a slot
type ReserveRequest struct {
	SlotID        string    `json:"slot_id" binding:"required,uuid"`
	VehicleType   string    `json:"vehicle_type" binding:"required,oneof=2-wheeler 4-wheeler"`
	VehicleNumber string    `json:"vehicle_number" binding:"required,vehiclenumber"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
}

// ListBookingsRequest represents query parameters for listing bookings
type ListBookingsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=reserved active completed expired cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =====================
// Response DTOs
// =====================

// BookingResponse represents a booking in responses
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ParkingSlotID   uuid.UUID `json:"parking_slot_id"`
	VehicleType     string    `json:"vehicle_type"`
	VehicleNumber   string    `json:"vehicle_number"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ReservationTime time.Time `json:"reservation_time"`
	ExpiryTime      time.Time `json:"expiry_time"`
	Amount          string    `json:"amount,omitempty"`
	Paid            bool      `json:"paid"`
	Status          string    `json:"status"`
}

// DashboardResponse represents the user's booking overview
type DashboardResponse struct {
	Reserved  int64 `json:"reserved"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Unpaid    int64 `json:"unpaid"`
}

// Reserve godoc
// @Summary      Reserve a parking slot
// @Description  Reserve a slot for a future time window
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body ReserveRequest true "Reservation details"
// @Success      201 {object} dto.Response{data=BookingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *BookingHandler) Reserve(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		h.BadRequest(c, "Invalid slot ID")
		return
	}

	view, err := h.bookingService.Reserve(c.Request.Context(), appparking.ReserveInput{
		UserID:        userID,
		SlotID:        slotID,
		VehicleType:   parking.VehicleType(req.VehicleType),
		VehicleNumber: req.VehicleNumber,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bookingResponse(*view))
}

// Start godoc
// @Summary      Start a parking session
// @Description  Activate a reserved booking when the vehicle arrives
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id}/start [post]
func (h *BookingHandler) Start(c *gin.Context) {
	userID, bookingID, ok := h.parseOwnedID(c)
	if !ok {
		return
	}

	view, err := h.bookingService.Start(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bookingResponse(*view))
}

// End godoc
// @Summary      End a parking session
// @Description  Complete an active booking and compute the fee
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id}/end [post]
func (h *BookingHandler) End(c *gin.Context) {
	userID, bookingID, ok := h.parseOwnedID(c)
	if !ok {
		return
	}

	view, err := h.bookingService.End(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bookingResponse(*view))
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancel a reservation before the session starts
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, bookingID, ok := h.parseOwnedID(c)
	if !ok {
		return
	}

	if err := h.bookingService.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetBooking godoc
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, bookingID, ok := h.parseOwnedID(c)
	if !ok {
		return
	}

	view, err := h.bookingService.GetBooking(c.Request.Context(), userID, bookingID, middleware.GetJWTIsStaff(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bookingResponse(*view))
}

// ListMine godoc
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Param        status query string false "Booking status"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]BookingResponse}
// @Security     BearerAuth
// @Router       /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.bindBookingFilter(c)
	if !ok {
		return
	}

	views, total, err := h.bookingService.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bookingResponses(views), total, filter.Page, filter.PageSize)
}

// Dashboard godoc
// @Summary      Booking dashboard
// @Description  Summary counts of the user's bookings by state
// @Tags         bookings
// @Produce      json
// @Success      200 {object} dto.Response{data=DashboardResponse}
// @Security     BearerAuth
// @Router       /bookings/dashboard [get]
func (h *BookingHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.bookingService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DashboardResponse{
		Reserved:  summary.Reserved,
		Active:    summary.Active,
		Completed: summary.Completed,
		Unpaid:    summary.Unpaid,
	})
}

// ListAll godoc
// @Summary      List all bookings
// @Description  Staff view of every booking in the system
// @Tags         staff
// @Produce      json
// @Param        status query string false "Booking status"
// @Success      200 {object} dto.Response{data=[]BookingResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	filter, ok := h.bindBookingFilter(c)
	if !ok {
		return
	}

	views, total, err := h.bookingService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bookingResponses(views), total, filter.Page, filter.PageSize)
}

// PurgeBookings godoc
// @Summary      Purge all bookings
// @Description  Staff operation that removes every booking record
// @Tags         staff
// @Produce      json
// @Success      204 "No Content"
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/bookings [delete]
func (h *BookingHandler) PurgeBookings(c *gin.Context) {
	if err := h.bookingService.PurgeBookings(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Reserve)
		bookings.GET("", h.ListMine)
		bookings.GET("/dashboard", h.Dashboard)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/start", h.Start)
		bookings.POST("/:id/end", h.End)
		bookings.DELETE("/:id", h.Cancel)
	}

	staff := rg.Group("/staff", middleware.StaffOnly())
	{
		staff.GET("/bookings", h.ListAll)
		staff.DELETE("/bookings", h.PurgeBookings)
	}
}

func (h *BookingHandler) parseOwnedID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, bookingID, true
}

func (h *BookingHandler) bindBookingFilter(c *gin.Context) (parking.BookingFilter, bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return parking.BookingFilter{}, false
	}

	filter := parking.NewBookingFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		status := parking.BookingStatus(req.Status)
		filter.Status = &status
	}

	return filter, true
}

func bookingResponse(v appparking.BookingView) BookingResponse {
	return BookingResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		ParkingSlotID:   v.ParkingSlotID,
		VehicleType:     string(v.VehicleType),
		VehicleNumber:   v.VehicleNumber,
		StartTime:       v.StartTime,
		EndTime:         v.EndTime,
		ReservationTime: v.ReservationTime,
		ExpiryTime:      v.ExpiryTime,
		Amount:          v.Amount,
		Paid:            v.Paid,
		Status:          string(v.Status),
	}
}

func bookingResponses(views []appparking.BookingView) []BookingResponse {
	out := make([]BookingResponse, len(views))
	for i, v := range views {
		out[i] = bookingResponse(v)
	}
	return out
}
