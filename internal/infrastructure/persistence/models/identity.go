package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	IsStaff        bool                `gorm:"not null;default:false"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		IsStaff:        m.IsStaff,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.IsStaff = u.IsStaff
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// AuthLogModel is the persistence model for successful authentication events.
type AuthLogModel struct {
	BaseModel
	UserID    *uuid.UUID          `gorm:"type:uuid;index"`
	Action    identity.AuthAction `gorm:"type:varchar(20);not null;index"`
	Timestamp time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuthLogModel) TableName() string {
	return "auth_logs"
}

// ToDomain converts the persistence model to a domain AuthLog.
func (m *AuthLogModel) ToDomain() *identity.AuthLog {
	return &identity.AuthLog{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Action:     m.Action,
		Timestamp:  m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain AuthLog.
func (m *AuthLogModel) FromDomain(l *identity.AuthLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.UserID = l.UserID
	m.Action = l.Action
	m.Timestamp = l.Timestamp
}

// AuthAttemptModel is the persistence model for authentication attempts,
// including failed ones where no account could be resolved.
type AuthAttemptModel struct {
	BaseModel
	UserID    *uuid.UUID          `gorm:"type:uuid;index"`
	Email     string              `gorm:"type:varchar(200);not null"`
	Action    identity.AuthAction `gorm:"type:varchar(20);not null;index"`
	Succeeded bool                `gorm:"not null;default:false"`
	Timestamp time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuthAttemptModel) TableName() string {
	return "auth_attempts"
}

// ToDomain converts the persistence model to a domain AuthAttempt.
func (m *AuthAttemptModel) ToDomain() *identity.AuthAttempt {
	return &identity.AuthAttempt{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Email:      m.Email,
		Action:     m.Action,
		Succeeded:  m.Succeeded,
		Timestamp:  m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain AuthAttempt.
func (m *AuthAttemptModel) FromDomain(a *identity.AuthAttempt) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.Email = a.Email
	m.Action = a.Action
	m.Succeeded = a.Succeeded
	m.Timestamp = a.Timestamp
}
