package engagement

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/engagement"
)

// FeedbackService handles survey submissions and the public wall
type FeedbackService struct {
	feedbackRepo engagement.FeedbackRepository
	logger       *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo engagement.FeedbackRepository, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// SubmitFeedback records a survey response
func (s *FeedbackService) SubmitFeedback(ctx context.Context, input SubmitFeedbackInput) (*FeedbackView, error) {
	feedback, err := engagement.NewFeedback(
		input.UserID,
		input.Rating,
		input.Comments,
		input.Goal,
		input.Reason,
		input.Issue,
		input.Suggestions,
		input.IsPublic,
	)
	if err != nil {
		return nil, err
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		s.logger.Error("Failed to save feedback", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Feedback received",
		zap.String("feedback_id", feedback.ID.String()),
		zap.Int("rating", feedback.Rating))

	view := newFeedbackView(feedback)
	return &view, nil
}

// ListPublic returns the most recent public feedback entries
func (s *FeedbackService) ListPublic(ctx context.Context, limit int) ([]FeedbackView, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.feedbackRepo.FindPublic(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]FeedbackView, 0, len(entries))
	for _, f := range entries {
		views = append(views, newFeedbackView(f))
	}
	return views, nil
}
