package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Reserve inserts the booking and marks the slot occupied in one
// transaction. The overlap count is a fast path only; under concurrent
// requests the excl_bookings_slot_window exclusion constraint is the
// arbiter, and its violation surfaces as ErrBookingConflict.
func (r *GormBookingRepository) Reserve(ctx context.Context, booking *parking.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapQuery(tx, booking.ParkingSlotID, booking.StartTime, booking.EndTime).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrBookingConflict
		}

		model := models.BookingModelFromDomain(booking)
		if err := tx.Create(model).Error; err != nil {
			if isOverlapViolation(err) {
				return shared.ErrBookingConflict
			}
			return err
		}

		return tx.Model(&models.ParkingSlotModel{}).
			Where("id = ?", booking.ParkingSlotID).
			Update("is_available", false).Error
	})
}

// isOverlapViolation reports whether err is a Postgres exclusion or
// unique violation raised by the slot+window constraint.
func isOverlapViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if !errors.As(err, &pgErr) {
		return false
	}
	code := pgErr.SQLState()
	return code == "23P01" || code == "23505"
}

// Update updates an existing booking
func (r *GormBookingRepository) Update(ctx context.Context, booking *parking.Booking) error {
	model := models.BookingModelFromDomain(booking)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a booking row entirely
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BookingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID returns a user's bookings, newest first
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter parking.BookingFilter) ([]*parking.Booking, int64, error) {
	filter.UserID = &userID
	return r.FindAll(ctx, filter)
}

// FindAll returns bookings with pagination, newest first
func (r *GormBookingRepository) FindAll(ctx context.Context, filter parking.BookingFilter) ([]*parking.Booking, int64, error) {
	var bookingModels []*models.BookingModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BookingModel{})
	query = r.applyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("reservation_time desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&bookingModels).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]*parking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = model.ToDomain()
	}
	return bookings, total, nil
}

// Count returns the number of bookings matching the filter
func (r *GormBookingRepository) Count(ctx context.Context, filter parking.BookingFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BookingModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLapsedReserved returns reserved bookings whose expiry deadline is
// before the given instant
func (r *GormBookingRepository) FindLapsedReserved(ctx context.Context, now time.Time) ([]*parking.Booking, error) {
	var bookingModels []*models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_time < ?", parking.BookingStatusReserved, now).
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]*parking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = model.ToDomain()
	}
	return bookings, nil
}

// HasOverlap checks whether the slot already has a reserved or active
// booking intersecting the open interval (start, end)
func (r *GormBookingRepository) HasOverlap(ctx context.Context, slotID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	if err := overlapQuery(r.db.WithContext(ctx), slotID, start, end).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAll removes every booking and releases all slots
func (r *GormBookingRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BookingModel{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.ParkingSlotModel{}).
			Where("is_available = ?", false).
			Update("is_available", true).Error
	})
}

// applyFilter applies filter options to the query
func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter parking.BookingFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ParkingSlotID != nil {
		query = query.Where("parking_slot_id = ?", *filter.ParkingSlotID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaidOnly {
		query = query.Where("paid = ?", true)
	}
	if filter.UnpaidOnly {
		query = query.Where("paid = ?", false)
	}
	return query
}

// overlapQuery matches reserved or active bookings on the slot whose
// window intersects the open interval (start, end). Bookings that merely
// touch at an endpoint do not conflict.
func overlapQuery(db *gorm.DB, slotID uuid.UUID, start, end time.Time) *gorm.DB {
	return db.Model(&models.BookingModel{}).
		Where("parking_slot_id = ?", slotID).
		Where("status IN ?", []parking.BookingStatus{
			parking.BookingStatusReserved,
			parking.BookingStatusActive,
		}).
		Where("start_time < ? AND end_time > ?", end, start)
}

// Ensure GormBookingRepository implements BookingRepository
var _ parking.BookingRepository = (*GormBookingRepository)(nil)
