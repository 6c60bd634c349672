package parking

import (
	"context"

	"github.com/google/uuid"
)

// ParkingSlotRepository defines the interface for slot persistence
type ParkingSlotRepository interface {
	// Create creates a new slot. Returns shared.ErrAlreadyExists when the
	// slot number is already taken within the sub-area.
	Create(ctx context.Context, slot *ParkingSlot) error

	// Update updates an existing slot
	Update(ctx context.Context, slot *ParkingSlot) error

	// Delete deletes a slot by ID, cascading to its bookings
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a slot by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ParkingSlot, error)

	// FindBySubAreaID returns all slots of a sub-area
	FindBySubAreaID(ctx context.Context, subAreaID uuid.UUID) ([]*ParkingSlot, error)

	// FindAll returns slots with pagination
	FindAll(ctx context.Context, filter SlotFilter) ([]*ParkingSlot, int64, error)

	// ExistsBySubAreaAndNumber checks the per-sub-area slot number uniqueness
	ExistsBySubAreaAndNumber(ctx context.Context, subAreaID uuid.UUID, slotNumber string) (bool, error)
}

// SlotFilter contains filter options for querying slots
type SlotFilter struct {
	SubAreaID     *uuid.UUID
	SlotType      *SlotType
	AvailableOnly bool

	Page     int
	PageSize int
}

// NewSlotFilter creates a filter with default pagination
func NewSlotFilter() SlotFilter {
	return SlotFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f SlotFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f SlotFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
