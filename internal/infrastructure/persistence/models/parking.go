package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parkly/backend/internal/domain/parking"
)

// AreaModel is the persistence model for the Area domain entity.
type AreaModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AreaModel) TableName() string {
	return "areas"
}

// ToDomain converts the persistence model to a domain Area entity.
func (m *AreaModel) ToDomain() *parking.Area {
	area := &parking.Area{
		Name:        m.Name,
		Description: m.Description,
	}
	m.PopulateAggregateRoot(&area.BaseAggregateRoot)
	return area
}

// FromDomain populates the persistence model from a domain Area entity.
func (m *AreaModel) FromDomain(a *parking.Area) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Description = a.Description
}

// AreaModelFromDomain creates a new persistence model from a domain Area entity.
func AreaModelFromDomain(a *parking.Area) *AreaModel {
	m := &AreaModel{}
	m.FromDomain(a)
	return m
}

// SubAreaModel is the persistence model for the SubArea domain entity.
type SubAreaModel struct {
	AggregateModel
	AreaID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SubAreaModel) TableName() string {
	return "sub_areas"
}

// ToDomain converts the persistence model to a domain SubArea entity.
func (m *SubAreaModel) ToDomain() *parking.SubArea {
	subArea := &parking.SubArea{
		AreaID:      m.AreaID,
		Name:        m.Name,
		Description: m.Description,
	}
	m.PopulateAggregateRoot(&subArea.BaseAggregateRoot)
	return subArea
}

// FromDomain populates the persistence model from a domain SubArea entity.
func (m *SubAreaModel) FromDomain(s *parking.SubArea) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.AreaID = s.AreaID
	m.Name = s.Name
	m.Description = s.Description
}

// SubAreaModelFromDomain creates a new persistence model from a domain SubArea entity.
func SubAreaModelFromDomain(s *parking.SubArea) *SubAreaModel {
	m := &SubAreaModel{}
	m.FromDomain(s)
	return m
}

// ParkingSlotModel is the persistence model for the ParkingSlot domain entity.
type ParkingSlotModel struct {
	AggregateModel
	SubAreaID   uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_sub_area_slot_number"`
	SlotNumber  string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_sub_area_slot_number"`
	SlotType    parking.SlotType `gorm:"type:varchar(20);not null"`
	IsAvailable bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ParkingSlotModel) TableName() string {
	return "parking_slots"
}

// ToDomain converts the persistence model to a domain ParkingSlot entity.
func (m *ParkingSlotModel) ToDomain() *parking.ParkingSlot {
	slot := &parking.ParkingSlot{
		SubAreaID:   m.SubAreaID,
		SlotNumber:  m.SlotNumber,
		SlotType:    m.SlotType,
		IsAvailable: m.IsAvailable,
	}
	m.PopulateAggregateRoot(&slot.BaseAggregateRoot)
	return slot
}

// FromDomain populates the persistence model from a domain ParkingSlot entity.
func (m *ParkingSlotModel) FromDomain(s *parking.ParkingSlot) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SubAreaID = s.SubAreaID
	m.SlotNumber = s.SlotNumber
	m.SlotType = s.SlotType
	m.IsAvailable = s.IsAvailable
}

// ParkingSlotModelFromDomain creates a new persistence model from a domain ParkingSlot entity.
func ParkingSlotModelFromDomain(s *parking.ParkingSlot) *ParkingSlotModel {
	m := &ParkingSlotModel{}
	m.FromDomain(s)
	return m
}

// BookingModel is the persistence model for the Booking domain entity.
type BookingModel struct {
	AggregateModel
	UserID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	ParkingSlotID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	VehicleType     parking.VehicleType   `gorm:"type:varchar(20);not null"`
	VehicleNumber   string                `gorm:"type:varchar(20);not null"`
	StartTime       time.Time             `gorm:"not null;index"`
	EndTime         time.Time             `gorm:"not null;index"`
	ReservationTime time.Time             `gorm:"not null"`
	ExpiryTime      time.Time             `gorm:"not null;index"`
	Amount          *decimal.Decimal      `gorm:"type:decimal(10,2)"`
	Paid            bool                  `gorm:"not null;default:false"`
	Status          parking.BookingStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *parking.Booking {
	booking := &parking.Booking{
		UserID:          m.UserID,
		ParkingSlotID:   m.ParkingSlotID,
		VehicleType:     m.VehicleType,
		VehicleNumber:   m.VehicleNumber,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		ReservationTime: m.ReservationTime,
		ExpiryTime:      m.ExpiryTime,
		Amount:          m.Amount,
		Paid:            m.Paid,
		Status:          m.Status,
	}
	m.PopulateAggregateRoot(&booking.BaseAggregateRoot)
	return booking
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *parking.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.UserID = b.UserID
	m.ParkingSlotID = b.ParkingSlotID
	m.VehicleType = b.VehicleType
	m.VehicleNumber = b.VehicleNumber
	m.StartTime = b.StartTime
	m.EndTime = b.EndTime
	m.ReservationTime = b.ReservationTime
	m.ExpiryTime = b.ExpiryTime
	m.Amount = b.Amount
	m.Paid = b.Paid
	m.Status = b.Status
}

// BookingModelFromDomain creates a new persistence model from a domain Booking entity.
func BookingModelFromDomain(b *parking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}
