package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormAuthLogRepository implements AuthLogRepository using GORM.
// Both tables are append-only.
type GormAuthLogRepository struct {
	db *gorm.DB
}

// NewGormAuthLogRepository creates a new GormAuthLogRepository
func NewGormAuthLogRepository(db *gorm.DB) *GormAuthLogRepository {
	return &GormAuthLogRepository{db: db}
}

// CreateLog appends a successful-event log entry
func (r *GormAuthLogRepository) CreateLog(ctx context.Context, log *identity.AuthLog) error {
	model := &models.AuthLogModel{}
	model.FromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// CreateAttempt appends an attempt record
func (r *GormAuthLogRepository) CreateAttempt(ctx context.Context, attempt *identity.AuthAttempt) error {
	model := &models.AuthAttemptModel{}
	model.FromDomain(attempt)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindLogs returns log entries, newest first
func (r *GormAuthLogRepository) FindLogs(ctx context.Context, filter identity.AuthLogFilter) ([]*identity.AuthLog, int64, error) {
	var logModels []*models.AuthLogModel
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuthLogModel{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("timestamp desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*identity.AuthLog, len(logModels))
	for i, model := range logModels {
		logs[i] = model.ToDomain()
	}
	return logs, total, nil
}

// FindAttempts returns attempt records, newest first
func (r *GormAuthLogRepository) FindAttempts(ctx context.Context, filter identity.AuthLogFilter) ([]*identity.AuthAttempt, int64, error) {
	var attemptModels []*models.AuthAttemptModel
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuthAttemptModel{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("timestamp desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&attemptModels).Error; err != nil {
		return nil, 0, err
	}

	attempts := make([]*identity.AuthAttempt, len(attemptModels))
	for i, model := range attemptModels {
		attempts[i] = model.ToDomain()
	}
	return attempts, total, nil
}

// applyFilter applies filter options to the query
func (r *GormAuthLogRepository) applyFilter(query *gorm.DB, filter identity.AuthLogFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.Since != nil {
		query = query.Where("timestamp >= ?", *filter.Since)
	}
	return query
}

// Ensure GormAuthLogRepository implements AuthLogRepository
var _ identity.AuthLogRepository = (*GormAuthLogRepository)(nil)
