package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkly/backend/internal/domain/engagement"
)

// SubmitContactInput contains the input for the contact form
type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactView is the client representation of a contact message
type ContactView struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	Timestamp time.Time
}

// SubmitFeedbackInput contains the input for the feedback survey.
// UserID is nil for anonymous submissions.
type SubmitFeedbackInput struct {
	UserID      *uuid.UUID
	Rating      int
	Comments    string
	Goal        engagement.GoalAchievement
	Reason      string
	Issue       string
	Suggestions string
	IsPublic    bool
}

// FeedbackView is the client representation of a feedback entry
type FeedbackView struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	Rating          int
	Comments        string
	GoalAchievement engagement.GoalAchievement
	Reason          string
	Issue           string
	Suggestions     string
	IsPublic        bool
	SubmittedOn     time.Time
}

func newContactView(c *engagement.Contact) ContactView {
	return ContactView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Timestamp: c.Timestamp,
	}
}

func newFeedbackView(f *engagement.Feedback) FeedbackView {
	return FeedbackView{
		ID:              f.ID,
		UserID:          f.UserID,
		Rating:          f.Rating,
		Comments:        f.Comments,
		GoalAchievement: f.GoalAchievement,
		Reason:          f.Reason,
		Issue:           f.Issue,
		Suggestions:     f.Suggestions,
		IsPublic:        f.IsPublic,
		SubmittedOn:     f.SubmittedOn,
	}
}
