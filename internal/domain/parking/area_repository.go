package parking

import (
	"context"

	"github.com/google/uuid"
)

// AreaRepository defines the interface for area persistence
type AreaRepository interface {
	// Create creates a new area
	Create(ctx context.Context, area *Area) error

	// Update updates an existing area
	Update(ctx context.Context, area *Area) error

	// Delete deletes an area by ID, cascading to its sub-areas,
	// slots, and their bookings
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an area by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Area, error)

	// FindAll returns areas with pagination, optionally matching a
	// case-insensitive name search
	FindAll(ctx context.Context, filter AreaFilter) ([]*Area, int64, error)
}

// SubAreaRepository defines the interface for sub-area persistence
type SubAreaRepository interface {
	// Create creates a new sub-area
	Create(ctx context.Context, subArea *SubArea) error

	// Update updates an existing sub-area
	Update(ctx context.Context, subArea *SubArea) error

	// Delete deletes a sub-area by ID, cascading to its slots and bookings
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a sub-area by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SubArea, error)

	// FindByAreaID returns all sub-areas of an area
	FindByAreaID(ctx context.Context, areaID uuid.UUID) ([]*SubArea, error)

	// FindAll returns sub-areas with pagination
	FindAll(ctx context.Context, filter AreaFilter) ([]*SubArea, int64, error)
}

// AreaFilter contains filter options for querying areas and sub-areas
type AreaFilter struct {
	// Case-insensitive match against the name
	Search string

	// Restrict sub-areas to one parent area
	AreaID *uuid.UUID

	Page     int
	PageSize int
}

// NewAreaFilter creates a filter with default pagination
func NewAreaFilter() AreaFilter {
	return AreaFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f AreaFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f AreaFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
