package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/domain/identity"
)

// FeedbackDashboard holds the aggregates and recent entries for one period
type FeedbackDashboard struct {
	Period        engagement.FeedbackPeriod
	Stats         *engagement.FeedbackStats
	RecentEntries []FeedbackEntry
}

// FeedbackEntry is one feedback row on the staff dashboard. Username is
// blank for anonymous submissions.
type FeedbackEntry struct {
	Username        string
	Rating          int
	Comments        string
	GoalAchievement engagement.GoalAchievement
	Reason          string
	Issue           string
	Suggestions     string
	SubmittedOn     time.Time
}

// FeedbackDashboardService computes the staff feedback dashboard
type FeedbackDashboardService struct {
	feedbackRepo engagement.FeedbackRepository
	userRepo     identity.UserRepository
	logger       *zap.Logger
}

// NewFeedbackDashboardService creates a new dashboard service
func NewFeedbackDashboardService(
	feedbackRepo engagement.FeedbackRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *FeedbackDashboardService {
	return &FeedbackDashboardService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Dashboard returns the aggregates and recent entries for the period.
// Unknown period values fall back to all time.
func (s *FeedbackDashboardService) Dashboard(ctx context.Context, period engagement.FeedbackPeriod, page, pageSize int) (*FeedbackDashboard, error) {
	since := period.Since(time.Now())

	stats, err := s.feedbackRepo.Stats(ctx, since)
	if err != nil {
		s.logger.Error("Failed to compute feedback stats", zap.Error(err))
		return nil, err
	}

	entries, _, err := s.feedbackRepo.FindAll(ctx, since, page, pageSize)
	if err != nil {
		return nil, err
	}

	dashboard := &FeedbackDashboard{
		Period:        period,
		Stats:         stats,
		RecentEntries: make([]FeedbackEntry, 0, len(entries)),
	}

	usernames := s.resolveUsernames(ctx, entries)
	for _, f := range entries {
		entry := FeedbackEntry{
			Rating:          f.Rating,
			Comments:        f.Comments,
			GoalAchievement: f.GoalAchievement,
			Reason:          f.Reason,
			Issue:           f.Issue,
			Suggestions:     f.Suggestions,
			SubmittedOn:     f.SubmittedOn,
		}
		if f.UserID != nil {
			entry.Username = usernames[*f.UserID]
		}
		dashboard.RecentEntries = append(dashboard.RecentEntries, entry)
	}

	return dashboard, nil
}

// resolveUsernames maps the distinct submitter IDs to usernames. Lookup
// failures leave the username blank rather than failing the dashboard.
func (s *FeedbackDashboardService) resolveUsernames(ctx context.Context, entries []*engagement.Feedback) map[uuid.UUID]string {
	usernames := make(map[uuid.UUID]string)
	for _, f := range entries {
		if f.UserID == nil {
			continue
		}
		if _, seen := usernames[*f.UserID]; seen {
			continue
		}
		user, err := s.userRepo.FindByID(ctx, *f.UserID)
		if err != nil {
			s.logger.Warn("Failed to resolve feedback submitter",
				zap.String("user_id", f.UserID.String()),
				zap.Error(err))
			usernames[*f.UserID] = ""
			continue
		}
		usernames[*f.UserID] = user.Username
	}
	return usernames
}
