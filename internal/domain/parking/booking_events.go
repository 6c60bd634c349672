package parking

import (
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Booking
const AggregateTypeBooking = "Booking"

// Booking domain event types
const (
	EventTypeBookingReserved  = "BookingReserved"
	EventTypeBookingStarted   = "BookingStarted"
	EventTypeBookingCompleted = "BookingCompleted"
	EventTypeBookingExpired   = "BookingExpired"
	EventTypeBookingPaid      = "BookingPaid"
)

// BookingReservedEvent is published when a slot is reserved
type BookingReservedEvent struct {
	shared.BaseDomainEvent
	UserID        uuid.UUID `json:"user_id"`
	ParkingSlotID uuid.UUID `json:"parking_slot_id"`
	ExpiryTime    time.Time `json:"expiry_time"`
}

// NewBookingReservedEvent creates a new BookingReservedEvent
func NewBookingReservedEvent(b *Booking) *BookingReservedEvent {
	return &BookingReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingReserved, AggregateTypeBooking, b.ID),
		UserID:          b.UserID,
		ParkingSlotID:   b.ParkingSlotID,
		ExpiryTime:      b.ExpiryTime,
	}
}

// BookingStartedEvent is published when a parking session begins
type BookingStartedEvent struct {
	shared.BaseDomainEvent
	StartTime time.Time `json:"start_time"`
}

// NewBookingStartedEvent creates a new BookingStartedEvent
func NewBookingStartedEvent(b *Booking) *BookingStartedEvent {
	return &BookingStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingStarted, AggregateTypeBooking, b.ID),
		StartTime:       b.StartTime,
	}
}

// BookingCompletedEvent is published when a session ends and the fee is set
type BookingCompletedEvent struct {
	shared.BaseDomainEvent
	EndTime time.Time       `json:"end_time"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewBookingCompletedEvent creates a new BookingCompletedEvent
func NewBookingCompletedEvent(b *Booking) *BookingCompletedEvent {
	var amount decimal.Decimal
	if b.Amount != nil {
		amount = *b.Amount
	}
	return &BookingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCompleted, AggregateTypeBooking, b.ID),
		EndTime:         b.EndTime,
		Amount:          amount,
	}
}

// BookingExpiredEvent is published when a reservation lapses unused
type BookingExpiredEvent struct {
	shared.BaseDomainEvent
	ParkingSlotID uuid.UUID `json:"parking_slot_id"`
}

// NewBookingExpiredEvent creates a new BookingExpiredEvent
func NewBookingExpiredEvent(b *Booking) *BookingExpiredEvent {
	return &BookingExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingExpired, AggregateTypeBooking, b.ID),
		ParkingSlotID:   b.ParkingSlotID,
	}
}

// BookingPaidEvent is published when payment is confirmed
type BookingPaidEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
}

// NewBookingPaidEvent creates a new BookingPaidEvent
func NewBookingPaidEvent(b *Booking) *BookingPaidEvent {
	var amount decimal.Decimal
	if b.Amount != nil {
		amount = *b.Amount
	}
	return &BookingPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingPaid, AggregateTypeBooking, b.ID),
		Amount:          amount,
	}
}
