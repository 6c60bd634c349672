package parking

import (
	"strings"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SlotType classifies a parking slot
type SlotType string

const (
	SlotTypeCovered SlotType = "covered"
	SlotTypeOpen    SlotType = "open"
)

// IsValid reports whether the slot type is one of the known values
func (t SlotType) IsValid() bool {
	return t == SlotTypeCovered || t == SlotTypeOpen
}

// ParkingSlot represents a single parking space within a sub-area.
// Slot numbers are unique per sub-area.
type ParkingSlot struct {
	shared.BaseAggregateRoot
	SubAreaID   uuid.UUID
	SlotNumber  string
	SlotType    SlotType
	IsAvailable bool
}

// NewParkingSlot creates a new available parking slot
func NewParkingSlot(subAreaID uuid.UUID, slotNumber string, slotType SlotType) (*ParkingSlot, error) {
	if subAreaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUB_AREA_ID", "Sub-area ID cannot be empty")
	}
	slotNumber = strings.TrimSpace(slotNumber)
	if slotNumber == "" {
		return nil, shared.NewDomainError("INVALID_SLOT_NUMBER", "Slot number cannot be empty")
	}
	if len(slotNumber) > 20 {
		return nil, shared.NewDomainError("INVALID_SLOT_NUMBER", "Slot number cannot exceed 20 characters")
	}
	if !slotType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SLOT_TYPE", "Slot type must be covered or open")
	}

	return &ParkingSlot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SubAreaID:         subAreaID,
		SlotNumber:        slotNumber,
		SlotType:          slotType,
		IsAvailable:       true,
	}, nil
}

// MarkOccupied flags the slot as taken by an active reservation
func (s *ParkingSlot) MarkOccupied() {
	s.IsAvailable = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Release flags the slot as free again
func (s *ParkingSlot) Release() {
	s.IsAvailable = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetSlotType changes the slot classification
func (s *ParkingSlot) SetSlotType(slotType SlotType) error {
	if !slotType.IsValid() {
		return shared.NewDomainError("INVALID_SLOT_TYPE", "Slot type must be covered or open")
	}

	s.SlotType = slotType
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
