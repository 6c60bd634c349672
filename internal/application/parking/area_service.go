package parking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
)

// AreaService manages the area / sub-area / slot hierarchy
type AreaService struct {
	areaRepo    parking.AreaRepository
	subAreaRepo parking.SubAreaRepository
	slotRepo    parking.ParkingSlotRepository
	logger      *zap.Logger
}

// NewAreaService creates a new area service
func NewAreaService(
	areaRepo parking.AreaRepository,
	subAreaRepo parking.SubAreaRepository,
	slotRepo parking.ParkingSlotRepository,
	logger *zap.Logger,
) *AreaService {
	return &AreaService{
		areaRepo:    areaRepo,
		subAreaRepo: subAreaRepo,
		slotRepo:    slotRepo,
		logger:      logger,
	}
}

// CreateArea creates a new parking area
func (s *AreaService) CreateArea(ctx context.Context, input CreateAreaInput) (*AreaView, error) {
	area, err := parking.NewArea(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.areaRepo.Create(ctx, area); err != nil {
		s.logger.Error("Failed to create area", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Area created",
		zap.String("area_id", area.ID.String()),
		zap.String("name", area.Name))

	view := newAreaView(area)
	return &view, nil
}

// UpdateArea updates an area's name and description
func (s *AreaService) UpdateArea(ctx context.Context, input UpdateAreaInput) (*AreaView, error) {
	area, err := s.areaRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := area.Rename(input.Name); err != nil {
		return nil, err
	}
	area.SetDescription(input.Description)

	if err := s.areaRepo.Update(ctx, area); err != nil {
		s.logger.Error("Failed to update area", zap.Error(err))
		return nil, err
	}

	view := newAreaView(area)
	return &view, nil
}

// DeleteArea deletes an area, cascading to its sub-areas, slots, and bookings
func (s *AreaService) DeleteArea(ctx context.Context, id uuid.UUID) error {
	if err := s.areaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Area deleted", zap.String("area_id", id.String()))
	return nil
}

// GetArea returns an area with its sub-areas
func (s *AreaService) GetArea(ctx context.Context, id uuid.UUID) (*AreaDetail, error) {
	area, err := s.areaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subAreas, err := s.subAreaRepo.FindByAreaID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load sub-areas", zap.Error(err))
		return nil, err
	}

	detail := &AreaDetail{AreaView: newAreaView(area)}
	for _, sa := range subAreas {
		detail.SubAreas = append(detail.SubAreas, newSubAreaView(sa))
	}
	return detail, nil
}

// ListAreas returns areas matching an optional name search
func (s *AreaService) ListAreas(ctx context.Context, filter parking.AreaFilter) ([]AreaView, int64, error) {
	areas, total, err := s.areaRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		views = append(views, newAreaView(a))
	}
	return views, total, nil
}

// CreateSubArea creates a sub-area under an existing area
func (s *AreaService) CreateSubArea(ctx context.Context, input CreateSubAreaInput) (*SubAreaView, error) {
	if _, err := s.areaRepo.FindByID(ctx, input.AreaID); err != nil {
		return nil, err
	}

	subArea, err := parking.NewSubArea(input.AreaID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.subAreaRepo.Create(ctx, subArea); err != nil {
		s.logger.Error("Failed to create sub-area", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sub-area created",
		zap.String("sub_area_id", subArea.ID.String()),
		zap.String("area_id", input.AreaID.String()))

	view := newSubAreaView(subArea)
	return &view, nil
}

// UpdateSubArea updates a sub-area's name and description
func (s *AreaService) UpdateSubArea(ctx context.Context, input UpdateSubAreaInput) (*SubAreaView, error) {
	subArea, err := s.subAreaRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := subArea.Rename(input.Name); err != nil {
		return nil, err
	}
	subArea.SetDescription(input.Description)

	if err := s.subAreaRepo.Update(ctx, subArea); err != nil {
		s.logger.Error("Failed to update sub-area", zap.Error(err))
		return nil, err
	}

	view := newSubAreaView(subArea)
	return &view, nil
}

// DeleteSubArea deletes a sub-area, cascading to its slots and bookings
func (s *AreaService) DeleteSubArea(ctx context.Context, id uuid.UUID) error {
	if err := s.subAreaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Sub-area deleted", zap.String("sub_area_id", id.String()))
	return nil
}

// GetSubArea returns a sub-area with its slots
func (s *AreaService) GetSubArea(ctx context.Context, id uuid.UUID) (*SubAreaDetail, error) {
	subArea, err := s.subAreaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.FindBySubAreaID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load slots", zap.Error(err))
		return nil, err
	}

	detail := &SubAreaDetail{SubAreaView: newSubAreaView(subArea)}
	for _, slot := range slots {
		detail.Slots = append(detail.Slots, newSlotView(slot))
	}
	return detail, nil
}

// CreateSlot creates a parking slot within a sub-area. The slot number
// must be unique within the sub-area.
func (s *AreaService) CreateSlot(ctx context.Context, input CreateSlotInput) (*SlotView, error) {
	if _, err := s.subAreaRepo.FindByID(ctx, input.SubAreaID); err != nil {
		return nil, err
	}

	slot, err := parking.NewParkingSlot(input.SubAreaID, input.SlotNumber, input.SlotType)
	if err != nil {
		return nil, err
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		if domainErr, ok := err.(*shared.DomainError); ok && domainErr.Code == shared.ErrAlreadyExists.Code {
			return nil, shared.NewDomainError("SLOT_NUMBER_TAKEN", "Slot number is already used in this sub-area")
		}
		s.logger.Error("Failed to create slot", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("slot_number", slot.SlotNumber))

	view := newSlotView(slot)
	return &view, nil
}

// UpdateSlot changes a slot's classification
func (s *AreaService) UpdateSlot(ctx context.Context, input UpdateSlotInput) (*SlotView, error) {
	slot, err := s.slotRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := slot.SetSlotType(input.SlotType); err != nil {
		return nil, err
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		s.logger.Error("Failed to update slot", zap.Error(err))
		return nil, err
	}

	view := newSlotView(slot)
	return &view, nil
}

// DeleteSlot deletes a slot, cascading to its bookings
func (s *AreaService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Slot deleted", zap.String("slot_id", id.String()))
	return nil
}

// ListSlots returns slots matching the filter
func (s *AreaService) ListSlots(ctx context.Context, filter parking.SlotFilter) ([]SlotView, int64, error) {
	slots, total, err := s.slotRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, newSlotView(slot))
	}
	return views, total, nil
}
