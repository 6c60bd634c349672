package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create appends a contact message
func (r *GormContactRepository) Create(ctx context.Context, contact *engagement.Contact) error {
	model := &models.ContactModel{}
	model.FromDomain(contact)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll returns contact messages, newest first
func (r *GormContactRepository) FindAll(ctx context.Context, page, pageSize int) ([]*engagement.Contact, int64, error) {
	var contactModels []*models.ContactModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ContactModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	if err := query.
		Order("timestamp desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contactModels).Error; err != nil {
		return nil, 0, err
	}

	contacts := make([]*engagement.Contact, len(contactModels))
	for i, model := range contactModels {
		contacts[i] = model.ToDomain()
	}
	return contacts, total, nil
}

// Ensure GormContactRepository implements ContactRepository
var _ engagement.ContactRepository = (*GormContactRepository)(nil)
