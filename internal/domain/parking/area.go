package parking

import (
	"strings"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Area represents a top-level parking zone
type Area struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
}

// NewArea creates a new parking area
func NewArea(name, description string) (*Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Area name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Area name cannot exceed 100 characters")
	}

	return &Area{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the area name
func (a *Area) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Area name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Area name cannot exceed 100 characters")
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetDescription updates the area description
func (a *Area) SetDescription(description string) {
	a.Description = description
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SubArea represents a section within an area
type SubArea struct {
	shared.BaseAggregateRoot
	AreaID      uuid.UUID
	Name        string
	Description string
}

// NewSubArea creates a new sub-area under the given area
func NewSubArea(areaID uuid.UUID, name, description string) (*SubArea, error) {
	if areaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AREA_ID", "Area ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-area name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-area name cannot exceed 100 characters")
	}

	return &SubArea{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AreaID:            areaID,
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the sub-area name
func (s *SubArea) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Sub-area name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Sub-area name cannot exceed 100 characters")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetDescription updates the sub-area description
func (s *SubArea) SetDescription(description string) {
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
