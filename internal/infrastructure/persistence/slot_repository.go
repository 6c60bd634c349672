package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormParkingSlotRepository implements ParkingSlotRepository using GORM
type GormParkingSlotRepository struct {
	db *gorm.DB
}

// NewGormParkingSlotRepository creates a new GormParkingSlotRepository
func NewGormParkingSlotRepository(db *gorm.DB) *GormParkingSlotRepository {
	return &GormParkingSlotRepository{db: db}
}

// Create creates a new slot. The slot number must be unique within the
// sub-area.
func (r *GormParkingSlotRepository) Create(ctx context.Context, slot *parking.ParkingSlot) error {
	taken, err := r.ExistsBySubAreaAndNumber(ctx, slot.SubAreaID, slot.SlotNumber)
	if err != nil {
		return err
	}
	if taken {
		return shared.ErrAlreadyExists
	}

	model := models.ParkingSlotModelFromDomain(slot)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing slot
func (r *GormParkingSlotRepository) Update(ctx context.Context, slot *parking.ParkingSlot) error {
	model := models.ParkingSlotModelFromDomain(slot)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a slot and its bookings in one transaction
func (r *GormParkingSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parking_slot_id = ?", id).
			Delete(&models.BookingModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ParkingSlotModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a slot by ID
func (r *GormParkingSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.ParkingSlot, error) {
	var model models.ParkingSlotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySubAreaID returns all slots of a sub-area
func (r *GormParkingSlotRepository) FindBySubAreaID(ctx context.Context, subAreaID uuid.UUID) ([]*parking.ParkingSlot, error) {
	var slotModels []*models.ParkingSlotModel
	if err := r.db.WithContext(ctx).
		Where("sub_area_id = ?", subAreaID).
		Order("slot_number asc").
		Find(&slotModels).Error; err != nil {
		return nil, err
	}

	slots := make([]*parking.ParkingSlot, len(slotModels))
	for i, model := range slotModels {
		slots[i] = model.ToDomain()
	}
	return slots, nil
}

// FindAll returns slots with pagination
func (r *GormParkingSlotRepository) FindAll(ctx context.Context, filter parking.SlotFilter) ([]*parking.ParkingSlot, int64, error) {
	var slotModels []*models.ParkingSlotModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ParkingSlotModel{})
	if filter.SubAreaID != nil {
		query = query.Where("sub_area_id = ?", *filter.SubAreaID)
	}
	if filter.SlotType != nil {
		query = query.Where("slot_type = ?", *filter.SlotType)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("slot_number asc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&slotModels).Error; err != nil {
		return nil, 0, err
	}

	slots := make([]*parking.ParkingSlot, len(slotModels))
	for i, model := range slotModels {
		slots[i] = model.ToDomain()
	}
	return slots, total, nil
}

// ExistsBySubAreaAndNumber checks the per-sub-area slot number uniqueness
func (r *GormParkingSlotRepository) ExistsBySubAreaAndNumber(ctx context.Context, subAreaID uuid.UUID, slotNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ParkingSlotModel{}).
		Where("sub_area_id = ? AND slot_number = ?", subAreaID, slotNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormParkingSlotRepository implements ParkingSlotRepository
var _ parking.ParkingSlotRepository = (*GormParkingSlotRepository)(nil)
