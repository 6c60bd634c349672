package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appparking "github.com/parkly/backend/internal/application/parking"
)

// PaymentHandler handles the payment page and confirmation callback
type PaymentHandler struct {
	BaseHandler
	bookingService *appparking.BookingService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(bookingService *appparking.BookingService) *PaymentHandler {
	return &PaymentHandler{
		bookingService: bookingService,
	}
}

// ConfirmPaymentRequest represents the payment confirmation callback body
type ConfirmPaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Token     string `json:"token" binding:"required"`
}

// PaymentPageResponse represents the payment page data
type PaymentPageResponse struct {
	Booking BookingResponse `json:"booking"`
	Amount  string          `json:"amount"`
	Token   string          `json:"token"`
}

// PaymentPage godoc
// @Summary      Payment page
// @Description  Returns the amount due and a signed one-time token for confirming payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} dto.Response{data=PaymentPageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id}/pay [get]
func (h *PaymentHandler) PaymentPage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	page, err := h.bookingService.PaymentPage(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PaymentPageResponse{
		Booking: bookingResponse(page.Booking),
		Amount:  page.Amount,
		Token:   page.Token,
	})
}

// ConfirmPayment godoc
// @Summary      Confirm payment
// @Description  Settle a booking using the signed token issued by the payment page
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body ConfirmPaymentRequest true "Confirmation details"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	view, err := h.bookingService.ConfirmPayment(c.Request.Context(), appparking.ConfirmPaymentInput{
		BookingID: bookingID,
		Token:     req.Token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bookingResponse(*view))
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/:id/pay", h.PaymentPage)
	rg.POST("/payments/confirm", h.ConfirmPayment)
}
