package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkly/backend/internal/domain/engagement"
)

// ContactModel is the persistence model for the Contact domain entity.
type ContactModel struct {
	BaseModel
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *engagement.Contact {
	return &engagement.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Message:    m.Message,
		Timestamp:  m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *engagement.Contact) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Message = c.Message
	m.Timestamp = c.Timestamp
}

// FeedbackModel is the persistence model for the Feedback domain entity.
type FeedbackModel struct {
	BaseModel
	UserID          *uuid.UUID                 `gorm:"type:uuid;index"`
	Rating          int                        `gorm:"not null"`
	Comments        string                     `gorm:"type:text"`
	GoalAchievement engagement.GoalAchievement `gorm:"type:varchar(20);not null"`
	Reason          string                     `gorm:"type:varchar(200)"`
	Issue           string                     `gorm:"type:varchar(200)"`
	Suggestions     string                     `gorm:"type:text"`
	IsPublic        bool                       `gorm:"not null;default:false;index"`
	SubmittedOn     time.Time                  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (FeedbackModel) TableName() string {
	return "feedback"
}

// ToDomain converts the persistence model to a domain Feedback entity.
func (m *FeedbackModel) ToDomain() *engagement.Feedback {
	return &engagement.Feedback{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		Rating:          m.Rating,
		Comments:        m.Comments,
		GoalAchievement: m.GoalAchievement,
		Reason:          m.Reason,
		Issue:           m.Issue,
		Suggestions:     m.Suggestions,
		IsPublic:        m.IsPublic,
		SubmittedOn:     m.SubmittedOn,
	}
}

// FromDomain populates the persistence model from a domain Feedback entity.
func (m *FeedbackModel) FromDomain(f *engagement.Feedback) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.UserID = f.UserID
	m.Rating = f.Rating
	m.Comments = f.Comments
	m.GoalAchievement = f.GoalAchievement
	m.Reason = f.Reason
	m.Issue = f.Issue
	m.Suggestions = f.Suggestions
	m.IsPublic = f.IsPublic
	m.SubmittedOn = f.SubmittedOn
}
