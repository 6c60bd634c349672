package parking

import (
	"math"
	"strings"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"  // Slot held, session not started
	BookingStatusActive    BookingStatus = "active"    // Vehicle parked, session running
	BookingStatusCompleted BookingStatus = "completed" // Session ended, fee computed
	BookingStatusExpired   BookingStatus = "expired"   // Reservation lapsed unused
	BookingStatusCancelled BookingStatus = "cancelled" // Withdrawn by the user
)

// IsTerminal reports whether the status permits no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusExpired || s == BookingStatusCancelled
}

// VehicleType classifies the vehicle a booking is made for
type VehicleType string

const (
	VehicleTypeTwoWheeler  VehicleType = "2-wheeler"
	VehicleTypeFourWheeler VehicleType = "4-wheeler"
)

// IsValid reports whether the vehicle type is one of the known values
func (t VehicleType) IsValid() bool {
	return t == VehicleTypeTwoWheeler || t == VehicleTypeFourWheeler
}

// BookingConfig carries the booking policy tunables
type BookingConfig struct {
	// GracePeriod is how long a reserved booking is held before it expires
	GracePeriod time.Duration

	// HourlyRate is the fee per started hour
	HourlyRate decimal.Decimal

	// MinLeadTime is the minimum gap between booking and requested start
	MinLeadTime time.Duration
}

// DefaultBookingConfig returns the standard booking policy
func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		GracePeriod: 15 * time.Minute,
		HourlyRate:  decimal.NewFromInt(20),
		MinLeadTime: 2 * time.Hour,
	}
}

// Booking represents a reservation of one parking slot by one user.
// It is the aggregate root for the reservation lifecycle.
type Booking struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID
	ParkingSlotID   uuid.UUID
	VehicleType     VehicleType
	VehicleNumber   string
	StartTime       time.Time
	EndTime         time.Time
	ReservationTime time.Time
	ExpiryTime      time.Time
	Amount          *decimal.Decimal
	Paid            bool
	Status          BookingStatus
}

// NewBooking reserves a slot for the requested window. The expiry deadline
// is fixed at creation and never recomputed.
func NewBooking(userID, slotID uuid.UUID, vehicleType VehicleType, vehicleNumber string, start, end time.Time, cfg BookingConfig) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if slotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SLOT_ID", "Parking slot ID cannot be empty")
	}
	if !vehicleType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VEHICLE_TYPE", "Vehicle type must be 2-wheeler or 4-wheeler")
	}
	vehicleNumber = strings.ToUpper(strings.TrimSpace(vehicleNumber))
	if vehicleNumber == "" {
		return nil, shared.NewDomainError("INVALID_VEHICLE_NUMBER", "Vehicle number cannot be empty")
	}
	if len(vehicleNumber) > 20 {
		return nil, shared.NewDomainError("INVALID_VEHICLE_NUMBER", "Vehicle number cannot exceed 20 characters")
	}

	now := time.Now()
	if start.Before(now.Add(cfg.MinLeadTime)) {
		return nil, shared.NewDomainError("INVALID_START_TIME", "Start time must be at least 2 hours from now")
	}
	if !end.After(start) {
		return nil, shared.NewDomainError("INVALID_END_TIME", "End time must be after start time")
	}

	booking := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ParkingSlotID:     slotID,
		VehicleType:       vehicleType,
		VehicleNumber:     vehicleNumber,
		StartTime:         start,
		EndTime:           end,
		ReservationTime:   now,
		ExpiryTime:        now.Add(cfg.GracePeriod),
		Status:            BookingStatusReserved,
	}

	booking.AddDomainEvent(NewBookingReservedEvent(booking))

	return booking, nil
}

// Start begins the parking session. Allowed only while the booking is
// reserved and the grace deadline has not passed; failure leaves the
// booking untouched.
func (b *Booking) Start(now time.Time) error {
	if b.Status != BookingStatusReserved {
		return shared.NewDomainError("INVALID_STATE", "Only a reserved booking can be started")
	}
	if now.After(b.ExpiryTime) {
		return shared.NewDomainError("RESERVATION_EXPIRED", "Reservation grace period has passed")
	}

	b.Status = BookingStatusActive
	b.StartTime = now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingStartedEvent(b))

	return nil
}

// End finishes the parking session and computes the fee. Every started
// hour is billed in full.
func (b *Booking) End(now time.Time, cfg BookingConfig) error {
	if b.Status != BookingStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active booking can be ended")
	}

	b.EndTime = now
	hours := int64(math.Ceil(now.Sub(b.StartTime).Hours()))
	if hours < 1 {
		hours = 1
	}
	amount := cfg.HourlyRate.Mul(decimal.NewFromInt(hours))
	b.Amount = &amount
	b.Status = BookingStatusCompleted
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingCompletedEvent(b))

	return nil
}

// Expire marks a lapsed reservation. Allowed only from reserved.
func (b *Booking) Expire(now time.Time) error {
	if b.Status != BookingStatusReserved {
		return shared.NewDomainError("INVALID_STATE", "Only a reserved booking can expire")
	}

	b.Status = BookingStatusExpired
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingExpiredEvent(b))

	return nil
}

// CanCancel reports whether the booking may still be withdrawn
func (b *Booking) CanCancel() bool {
	return !b.Status.IsTerminal()
}

// ConfirmPayment marks the fee as settled. Confirming an already paid
// booking is a no-op so callbacks can be retried safely.
func (b *Booking) ConfirmPayment() error {
	if b.Status != BookingStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only a completed booking can be paid")
	}
	if b.Paid {
		return nil
	}

	b.Paid = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingPaidEvent(b))

	return nil
}

// IsLapsed reports whether a reserved booking has outlived its grace period
func (b *Booking) IsLapsed(now time.Time) bool {
	return b.Status == BookingStatusReserved && now.After(b.ExpiryTime)
}
