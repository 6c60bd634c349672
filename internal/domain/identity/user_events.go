package identity

import (
	"time"

	"github.com/parkly/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered = "UserRegistered"
	EventTypeUserLoggedIn   = "UserLoggedIn"
	EventTypeUserLoggedOut  = "UserLoggedOut"
	EventTypeUserLocked     = "UserLocked"
)

// UserRegisteredEvent is published when a user registers
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Email:           user.Email,
	}
}

// UserLoggedInEvent is published on a successful login
type UserLoggedInEvent struct {
	shared.BaseDomainEvent
	Username string    `json:"username"`
	LoginAt  time.Time `json:"login_at"`
	IP       string    `json:"ip"`
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent
func NewUserLoggedInEvent(user *User, ip string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedIn, AggregateTypeUser, user.ID),
		Username:        user.Username,
		LoginAt:         time.Now(),
		IP:              ip,
	}
}

// UserLockedEvent is published when an account is locked after repeated failures
type UserLockedEvent struct {
	shared.BaseDomainEvent
	Username    string     `json:"username"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(user *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, AggregateTypeUser, user.ID),
		Username:        user.Username,
		LockedUntil:     user.LockedUntil,
	}
}
