package parking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/payment"
)

// BookingService orchestrates the reservation lifecycle
type BookingService struct {
	bookingRepo parking.BookingRepository
	slotRepo    parking.ParkingSlotRepository
	tokens      *payment.TokenService
	config      parking.BookingConfig
	logger      *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo parking.BookingRepository,
	slotRepo parking.ParkingSlotRepository,
	tokens *payment.TokenService,
	config parking.BookingConfig,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		tokens:      tokens,
		config:      config,
		logger:      logger,
	}
}

// Reserve books a slot for the requested window. The overlap check and
// the insert run in one transaction inside the repository.
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (*BookingView, error) {
	if _, err := s.slotRepo.FindByID(ctx, input.SlotID); err != nil {
		return nil, err
	}

	booking, err := parking.NewBooking(
		input.UserID,
		input.SlotID,
		input.VehicleType,
		input.VehicleNumber,
		input.StartTime,
		input.EndTime,
		s.config,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Reserve(ctx, booking); err != nil {
		if errors.Is(err, shared.ErrBookingConflict) {
			s.logger.Info("Reservation conflict",
				zap.String("slot_id", input.SlotID.String()),
				zap.Time("start", input.StartTime),
				zap.Time("end", input.EndTime))
			return nil, shared.ErrBookingConflict
		}
		s.logger.Error("Failed to reserve slot", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Slot reserved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", input.SlotID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.Time("expiry", booking.ExpiryTime))

	view := newBookingView(booking)
	return &view, nil
}

// Start begins the parking session for a reserved booking
func (s *BookingService) Start(ctx context.Context, userID, bookingID uuid.UUID) (*BookingView, error) {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.Start(time.Now()); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("Failed to persist booking start", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Parking session started",
		zap.String("booking_id", booking.ID.String()))

	view := newBookingView(booking)
	return &view, nil
}

// End finishes the parking session and computes the fee
func (s *BookingService) End(ctx context.Context, userID, bookingID uuid.UUID) (*BookingView, error) {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.End(time.Now(), s.config); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("Failed to persist booking end", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Parking session ended",
		zap.String("booking_id", booking.ID.String()),
		zap.String("amount", booking.Amount.StringFixed(2)))

	view := newBookingView(booking)
	return &view, nil
}

// Cancel withdraws a non-terminal booking. The row is deleted and the
// slot is freed.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID) error {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	if !booking.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", "Booking can no longer be cancelled")
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		s.logger.Error("Failed to delete booking", zap.Error(err))
		return err
	}

	s.releaseSlot(ctx, booking.ParkingSlotID)

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("slot_id", booking.ParkingSlotID.String()))

	return nil
}

// PaymentPage returns the payment data for a completed booking along
// with a signed confirmation token bound to it
func (s *BookingService) PaymentPage(ctx context.Context, userID, bookingID uuid.UUID) (*PaymentPage, error) {
	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != parking.BookingStatusCompleted {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment is only available for a completed booking")
	}
	if booking.Paid {
		return nil, shared.NewDomainError("ALREADY_PAID", "Booking has already been paid")
	}
	if booking.Amount == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Booking has no amount to pay")
	}

	token := s.tokens.Issue(booking.ID, booking.UserID, *booking.Amount)

	return &PaymentPage{
		Booking: newBookingView(booking),
		Amount:  booking.Amount.StringFixed(2),
		Token:   token,
	}, nil
}

// ConfirmPayment settles a completed booking. The confirmation token
// must have been issued for this booking and payer; confirming an
// already paid booking is a no-op.
func (s *BookingService) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*BookingView, error) {
	booking, err := s.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	decoded, err := s.tokens.VerifyForBooking(input.Token, booking.ID, booking.UserID)
	if err != nil {
		s.logger.Warn("Payment token rejected",
			zap.String("booking_id", input.BookingID.String()),
			zap.Error(err))
		switch {
		case errors.Is(err, payment.ErrExpiredToken):
			return nil, shared.NewDomainError("PAYMENT_TOKEN_EXPIRED", "Payment confirmation token has expired")
		default:
			return nil, shared.NewDomainError("PAYMENT_TOKEN_INVALID", "Invalid payment confirmation token")
		}
	}

	if booking.Amount == nil || !decoded.Amount.Equal(*booking.Amount) {
		return nil, shared.NewDomainError("PAYMENT_TOKEN_INVALID", "Payment token amount does not match booking")
	}

	alreadyPaid := booking.Paid
	if err := booking.ConfirmPayment(); err != nil {
		return nil, err
	}

	if !alreadyPaid {
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			s.logger.Error("Failed to persist payment", zap.Error(err))
			return nil, err
		}
		s.releaseSlot(ctx, booking.ParkingSlotID)

		s.logger.Info("Payment confirmed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("amount", booking.Amount.StringFixed(2)))
	}

	view := newBookingView(booking)
	return &view, nil
}

// GetBooking returns one booking; non-staff callers only see their own
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID, isStaff bool) (*BookingView, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isStaff && booking.UserID != userID {
		return nil, shared.ErrNotFound
	}

	view := newBookingView(booking)
	return &view, nil
}

// ListMine returns the caller's bookings, newest first
func (s *BookingService) ListMine(ctx context.Context, userID uuid.UUID, filter parking.BookingFilter) ([]BookingView, int64, error) {
	bookings, total, err := s.bookingRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return bookingViews(bookings), total, nil
}

// ListAll returns all bookings for the staff dashboard
func (s *BookingService) ListAll(ctx context.Context, filter parking.BookingFilter) ([]BookingView, int64, error) {
	bookings, total, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return bookingViews(bookings), total, nil
}

// Dashboard returns the caller's booking overview
func (s *BookingService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	counts := []struct {
		status parking.BookingStatus
		dest   *int64
	}{
		{parking.BookingStatusReserved, &summary.Reserved},
		{parking.BookingStatusActive, &summary.Active},
		{parking.BookingStatusCompleted, &summary.Completed},
	}
	for _, c := range counts {
		status := c.status
		n, err := s.bookingRepo.Count(ctx, parking.BookingFilter{UserID: &userID, Status: &status})
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	completed := parking.BookingStatusCompleted
	unpaid, err := s.bookingRepo.Count(ctx, parking.BookingFilter{
		UserID:     &userID,
		Status:     &completed,
		UnpaidOnly: true,
	})
	if err != nil {
		return nil, err
	}
	summary.Unpaid = unpaid

	return summary, nil
}

// PurgeBookings removes every booking and frees all slots. Staff only.
func (s *BookingService) PurgeBookings(ctx context.Context) error {
	if err := s.bookingRepo.DeleteAll(ctx); err != nil {
		s.logger.Error("Failed to purge bookings", zap.Error(err))
		return err
	}

	s.logger.Warn("All bookings purged")
	return nil
}

func (s *BookingService) findOwned(ctx context.Context, userID, bookingID uuid.UUID) (*parking.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return booking, nil
}

// releaseSlot frees a slot, logging failures without propagating them
func (s *BookingService) releaseSlot(ctx context.Context, slotID uuid.UUID) {
	slot, err := s.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		s.logger.Error("Failed to load slot for release",
			zap.String("slot_id", slotID.String()),
			zap.Error(err))
		return
	}
	slot.Release()
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		s.logger.Error("Failed to release slot",
			zap.String("slot_id", slotID.String()),
			zap.Error(err))
	}
}

func bookingViews(bookings []*parking.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, newBookingView(b))
	}
	return views
}
