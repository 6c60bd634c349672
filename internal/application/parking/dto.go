package parking

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkly/backend/internal/domain/parking"
)

// CreateAreaInput contains the input for creating an area
type CreateAreaInput struct {
	Name        string
	Description string
}

// UpdateAreaInput contains the input for updating an area
type UpdateAreaInput struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// AreaView is the client representation of an area
type AreaView struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// AreaDetail is an area together with its sub-areas
type AreaDetail struct {
	AreaView
	SubAreas []SubAreaView
}

// CreateSubAreaInput contains the input for creating a sub-area
type CreateSubAreaInput struct {
	AreaID      uuid.UUID
	Name        string
	Description string
}

// UpdateSubAreaInput contains the input for updating a sub-area
type UpdateSubAreaInput struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// SubAreaView is the client representation of a sub-area
type SubAreaView struct {
	ID          uuid.UUID
	AreaID      uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// SubAreaDetail is a sub-area together with its slots
type SubAreaDetail struct {
	SubAreaView
	Slots []SlotView
}

// CreateSlotInput contains the input for creating a parking slot
type CreateSlotInput struct {
	SubAreaID  uuid.UUID
	SlotNumber string
	SlotType   parking.SlotType
}

// UpdateSlotInput contains the input for updating a parking slot
type UpdateSlotInput struct {
	ID       uuid.UUID
	SlotType parking.SlotType
}

// SlotView is the client representation of a parking slot
type SlotView struct {
	ID          uuid.UUID
	SubAreaID   uuid.UUID
	SlotNumber  string
	SlotType    parking.SlotType
	IsAvailable bool
}

// ReserveInput contains the input for reserving a slot
type ReserveInput struct {
	UserID        uuid.UUID
	SlotID        uuid.UUID
	VehicleType   parking.VehicleType
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
}

// BookingView is the client representation of a booking
type BookingView struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ParkingSlotID   uuid.UUID
	VehicleType     parking.VehicleType
	VehicleNumber   string
	StartTime       time.Time
	EndTime         time.Time
	ReservationTime time.Time
	ExpiryTime      time.Time
	Amount          string
	Paid            bool
	Status          parking.BookingStatus
}

// PaymentPage carries the data needed to render and confirm a payment
type PaymentPage struct {
	Booking BookingView
	Amount  string
	Token   string
}

// ConfirmPaymentInput contains the input for the payment confirmation callback
type ConfirmPaymentInput struct {
	BookingID uuid.UUID
	Token     string
}

// DashboardSummary is the authenticated user's booking overview
type DashboardSummary struct {
	Reserved  int64
	Active    int64
	Completed int64
	Unpaid    int64
}

func newBookingView(b *parking.Booking) BookingView {
	view := BookingView{
		ID:              b.ID,
		UserID:          b.UserID,
		ParkingSlotID:   b.ParkingSlotID,
		VehicleType:     b.VehicleType,
		VehicleNumber:   b.VehicleNumber,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		ReservationTime: b.ReservationTime,
		ExpiryTime:      b.ExpiryTime,
		Paid:            b.Paid,
		Status:          b.Status,
	}
	if b.Amount != nil {
		view.Amount = b.Amount.StringFixed(2)
	}
	return view
}

func newAreaView(a *parking.Area) AreaView {
	return AreaView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func newSubAreaView(s *parking.SubArea) SubAreaView {
	return SubAreaView{
		ID:          s.ID,
		AreaID:      s.AreaID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func newSlotView(s *parking.ParkingSlot) SlotView {
	return SlotView{
		ID:          s.ID,
		SubAreaID:   s.SubAreaID,
		SlotNumber:  s.SlotNumber,
		SlotType:    s.SlotType,
		IsAvailable: s.IsAvailable,
	}
}
