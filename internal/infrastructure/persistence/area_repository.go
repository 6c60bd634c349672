package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormAreaRepository implements AreaRepository using GORM
type GormAreaRepository struct {
	db *gorm.DB
}

// NewGormAreaRepository creates a new GormAreaRepository
func NewGormAreaRepository(db *gorm.DB) *GormAreaRepository {
	return &GormAreaRepository{db: db}
}

// Create creates a new area
func (r *GormAreaRepository) Create(ctx context.Context, area *parking.Area) error {
	model := models.AreaModelFromDomain(area)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing area
func (r *GormAreaRepository) Update(ctx context.Context, area *parking.Area) error {
	model := models.AreaModelFromDomain(area)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an area and everything beneath it. Sub-areas, their
// slots, and those slots' bookings all go in one transaction.
func (r *GormAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subAreaIDs := tx.Model(&models.SubAreaModel{}).
			Select("id").
			Where("area_id = ?", id)
		slotIDs := tx.Model(&models.ParkingSlotModel{}).
			Select("id").
			Where("sub_area_id IN (?)", subAreaIDs)

		if err := tx.Where("parking_slot_id IN (?)", slotIDs).
			Delete(&models.BookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sub_area_id IN (?)", subAreaIDs).
			Delete(&models.ParkingSlotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("area_id = ?", id).
			Delete(&models.SubAreaModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.AreaModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an area by ID
func (r *GormAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.Area, error) {
	var model models.AreaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns areas with pagination
func (r *GormAreaRepository) FindAll(ctx context.Context, filter parking.AreaFilter) ([]*parking.Area, int64, error) {
	var areaModels []*models.AreaModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AreaModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("name asc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&areaModels).Error; err != nil {
		return nil, 0, err
	}

	areas := make([]*parking.Area, len(areaModels))
	for i, model := range areaModels {
		areas[i] = model.ToDomain()
	}
	return areas, total, nil
}

// Ensure GormAreaRepository implements AreaRepository
var _ parking.AreaRepository = (*GormAreaRepository)(nil)

// GormSubAreaRepository implements SubAreaRepository using GORM
type GormSubAreaRepository struct {
	db *gorm.DB
}

// NewGormSubAreaRepository creates a new GormSubAreaRepository
func NewGormSubAreaRepository(db *gorm.DB) *GormSubAreaRepository {
	return &GormSubAreaRepository{db: db}
}

// Create creates a new sub-area
func (r *GormSubAreaRepository) Create(ctx context.Context, subArea *parking.SubArea) error {
	model := models.SubAreaModelFromDomain(subArea)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing sub-area
func (r *GormSubAreaRepository) Update(ctx context.Context, subArea *parking.SubArea) error {
	model := models.SubAreaModelFromDomain(subArea)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a sub-area, its slots, and those slots' bookings in one
// transaction.
func (r *GormSubAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slotIDs := tx.Model(&models.ParkingSlotModel{}).
			Select("id").
			Where("sub_area_id = ?", id)

		if err := tx.Where("parking_slot_id IN (?)", slotIDs).
			Delete(&models.BookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sub_area_id = ?", id).
			Delete(&models.ParkingSlotModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SubAreaModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a sub-area by ID
func (r *GormSubAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.SubArea, error) {
	var model models.SubAreaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAreaID returns all sub-areas of an area
func (r *GormSubAreaRepository) FindByAreaID(ctx context.Context, areaID uuid.UUID) ([]*parking.SubArea, error) {
	var subAreaModels []*models.SubAreaModel
	if err := r.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("name asc").
		Find(&subAreaModels).Error; err != nil {
		return nil, err
	}

	subAreas := make([]*parking.SubArea, len(subAreaModels))
	for i, model := range subAreaModels {
		subAreas[i] = model.ToDomain()
	}
	return subAreas, nil
}

// FindAll returns sub-areas with pagination
func (r *GormSubAreaRepository) FindAll(ctx context.Context, filter parking.AreaFilter) ([]*parking.SubArea, int64, error) {
	var subAreaModels []*models.SubAreaModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SubAreaModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("name asc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&subAreaModels).Error; err != nil {
		return nil, 0, err
	}

	subAreas := make([]*parking.SubArea, len(subAreaModels))
	for i, model := range subAreaModels {
		subAreas[i] = model.ToDomain()
	}
	return subAreas, total, nil
}

// Ensure GormSubAreaRepository implements SubAreaRepository
var _ parking.SubAreaRepository = (*GormSubAreaRepository)(nil)
