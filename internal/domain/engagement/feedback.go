package engagement

import (
	"context"
	"strings"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GoalAchievement captures whether the visit served its purpose
type GoalAchievement string

const (
	GoalAchieved  GoalAchievement = "Yes"
	GoalPartially GoalAchievement = "Partially"
	GoalMissed    GoalAchievement = "No"
)

// IsValid reports whether the value is one of the known answers
func (g GoalAchievement) IsValid() bool {
	return g == GoalAchieved || g == GoalPartially || g == GoalMissed
}

// Feedback is a write-once survey response. UserID is nil for anonymous
// submissions.
type Feedback struct {
	shared.BaseEntity
	UserID          *uuid.UUID
	Rating          int
	Comments        string
	GoalAchievement GoalAchievement
	Reason          string
	Issue           string
	Suggestions     string
	IsPublic        bool
	SubmittedOn     time.Time
}

// NewFeedback creates a new feedback entry. Rating must be between 1 and 5.
func NewFeedback(userID *uuid.UUID, rating int, comments string, goal GoalAchievement, reason, issue, suggestions string, isPublic bool) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if !goal.IsValid() {
		return nil, shared.NewDomainError("INVALID_GOAL", "Goal achievement must be Yes, Partially, or No")
	}

	return &Feedback{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Rating:          rating,
		Comments:        strings.TrimSpace(comments),
		GoalAchievement: goal,
		Reason:          strings.TrimSpace(reason),
		Issue:           strings.TrimSpace(issue),
		Suggestions:     strings.TrimSpace(suggestions),
		IsPublic:        isPublic,
		SubmittedOn:     time.Now(),
	}, nil
}

// FeedbackPeriod restricts dashboard aggregates to a recent window
type FeedbackPeriod string

const (
	FeedbackPeriodWeek  FeedbackPeriod = "week"
	FeedbackPeriodMonth FeedbackPeriod = "month"
	FeedbackPeriodYear  FeedbackPeriod = "year"
	FeedbackPeriodAll   FeedbackPeriod = "all"
)

// Since returns the cutoff instant for the period, or nil for all time
func (p FeedbackPeriod) Since(now time.Time) *time.Time {
	var cutoff time.Time
	switch p {
	case FeedbackPeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case FeedbackPeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	case FeedbackPeriodYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &cutoff
}

// FeedbackStats holds the dashboard aggregates for one period
type FeedbackStats struct {
	Total         int64
	AverageRating float64
	ByGoal        map[GoalAchievement]int64
	ByReason      map[string]int64
	ByIssue       map[string]int64
}

// FeedbackRepository persists feedback entries
type FeedbackRepository interface {
	// Create appends a feedback entry
	Create(ctx context.Context, feedback *Feedback) error

	// FindAll returns feedback entries, newest first, optionally limited
	// to entries submitted after since
	FindAll(ctx context.Context, since *time.Time, page, pageSize int) ([]*Feedback, int64, error)

	// FindPublic returns public feedback entries, newest first
	FindPublic(ctx context.Context, limit int) ([]*Feedback, error)

	// Stats computes the dashboard aggregates for entries submitted after
	// since, or all entries when since is nil
	Stats(ctx context.Context, since *time.Time) (*FeedbackStats, error)
}
