package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/infrastructure/persistence/models"
)

// GormFeedbackRepository implements FeedbackRepository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create appends a feedback entry
func (r *GormFeedbackRepository) Create(ctx context.Context, feedback *engagement.Feedback) error {
	model := &models.FeedbackModel{}
	model.FromDomain(feedback)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll returns feedback entries, newest first, optionally limited to
// entries submitted after since
func (r *GormFeedbackRepository) FindAll(ctx context.Context, since *time.Time, page, pageSize int) ([]*engagement.Feedback, int64, error) {
	var feedbackModels []*models.FeedbackModel
	var total int64

	query := r.sinceQuery(ctx, since)
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
		Order("submitted_on desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&feedbackModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*engagement.Feedback, len(feedbackModels))
	for i, model := range feedbackModels {
		entries[i] = model.ToDomain()
	}
	return entries, total, nil
}

// FindPublic returns public feedback entries, newest first
func (r *GormFeedbackRepository) FindPublic(ctx context.Context, limit int) ([]*engagement.Feedback, error) {
	if limit <= 0 {
		limit = 10
	}

	var feedbackModels []*models.FeedbackModel
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("submitted_on desc").
		Limit(limit).
		Find(&feedbackModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*engagement.Feedback, len(feedbackModels))
	for i, model := range feedbackModels {
		entries[i] = model.ToDomain()
	}
	return entries, nil
}

// Stats computes the dashboard aggregates for entries submitted after
// since, or all entries when since is nil
func (r *GormFeedbackRepository) Stats(ctx context.Context, since *time.Time) (*engagement.FeedbackStats, error) {
	stats := &engagement.FeedbackStats{
		ByGoal:   make(map[engagement.GoalAchievement]int64),
		ByReason: make(map[string]int64),
		ByIssue:  make(map[string]int64),
	}

	var summary struct {
		Total         int64
		AverageRating float64
	}
	if err := r.sinceQuery(ctx, since).
		Select("COUNT(*) as total, COALESCE(AVG(rating), 0) as average_rating").
		Scan(&summary).Error; err != nil {
		return nil, err
	}
	stats.Total = summary.Total
	stats.AverageRating = summary.AverageRating

	type bucket struct {
		Key   string
		Count int64
	}

	var goalBuckets []bucket
	if err := r.sinceQuery(ctx, since).
		Select("goal_achievement as key, COUNT(*) as count").
		Group("goal_achievement").
		Scan(&goalBuckets).Error; err != nil {
		return nil, err
	}
	for _, b := range goalBuckets {
		stats.ByGoal[engagement.GoalAchievement(b.Key)] = b.Count
	}

	var reasonBuckets []bucket
	if err := r.sinceQuery(ctx, since).
		Select("reason as key, COUNT(*) as count").
		Where("reason <> ''").
		Group("reason").
		Scan(&reasonBuckets).Error; err != nil {
		return nil, err
	}
	for _, b := range reasonBuckets {
		stats.ByReason[b.Key] = b.Count
	}

	var issueBuckets []bucket
	if err := r.sinceQuery(ctx, since).
		Select("issue as key, COUNT(*) as count").
		Where("issue <> ''").
		Group("issue").
		Scan(&issueBuckets).Error; err != nil {
		return nil, err
	}
	for _, b := range issueBuckets {
		stats.ByIssue[b.Key] = b.Count
	}

	return stats, nil
}

// sinceQuery builds the base query, restricted to entries submitted after
// since when it is set
func (r *GormFeedbackRepository) sinceQuery(ctx context.Context, since *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.FeedbackModel{})
	if since != nil {
		query = query.Where("submitted_on >= ?", *since)
	}
	return query
}

// Ensure GormFeedbackRepository implements FeedbackRepository
var _ engagement.FeedbackRepository = (*GormFeedbackRepository)(nil)
