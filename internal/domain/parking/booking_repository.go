package parking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// Reserve atomically verifies the slot has no overlapping booking for
	// the requested window, inserts the booking, and marks the slot
	// occupied. Returns shared.ErrBookingConflict when the window overlaps
	// an existing reserved or active booking on the same slot.
	Reserve(ctx context.Context, booking *Booking) error

	// Update updates an existing booking
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking row entirely (cancellation)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID returns a user's bookings, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]*Booking, int64, error)

	// FindAll returns bookings with pagination
	FindAll(ctx context.Context, filter BookingFilter) ([]*Booking, int64, error)

	// Count returns the number of bookings matching the filter
	Count(ctx context.Context, filter BookingFilter) (int64, error)

	// FindLapsedReserved returns reserved bookings whose expiry deadline
	// is before the given instant
	FindLapsedReserved(ctx context.Context, now time.Time) ([]*Booking, error)

	// HasOverlap checks whether the slot already has a reserved or active
	// booking intersecting the open interval (start, end)
	HasOverlap(ctx context.Context, slotID uuid.UUID, start, end time.Time) (bool, error)

	// DeleteAll removes every booking and releases all slots
	DeleteAll(ctx context.Context) error
}

// BookingFilter contains filter options for querying bookings
type BookingFilter struct {
	UserID        *uuid.UUID
	ParkingSlotID *uuid.UUID
	Status        *BookingStatus
	PaidOnly      bool
	UnpaidOnly    bool

	Page     int
	PageSize int
}

// NewBookingFilter creates a filter with default pagination
func NewBookingFilter() BookingFilter {
	return BookingFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithStatus sets the status filter
func (f BookingFilter) WithStatus(status BookingStatus) BookingFilter {
	f.Status = &status
	return f
}

// Offset returns the offset for pagination
func (f BookingFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f BookingFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
