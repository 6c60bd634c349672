package identity

import (
	"context"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuthAction identifies the kind of authentication event being recorded
type AuthAction string

const (
	AuthActionLogin    AuthAction = "login"
	AuthActionRegister AuthAction = "register"
	AuthActionLogout   AuthAction = "logout"
)

// AuthLog is an append-only record of a successful authentication event
type AuthLog struct {
	shared.BaseEntity
	UserID    *uuid.UUID
	Action    AuthAction
	Timestamp time.Time
}

// NewAuthLog creates a log entry for a successful authentication event
func NewAuthLog(userID uuid.UUID, action AuthAction) *AuthLog {
	return &AuthLog{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     &userID,
		Action:     action,
		Timestamp:  time.Now(),
	}
}

// AuthAttempt is an append-only record of any authentication attempt,
// including failed logins where no account could be resolved. Email holds
// the matched account's email, or the raw submitted identifier when the
// attempt did not resolve to a known user.
type AuthAttempt struct {
	shared.BaseEntity
	UserID    *uuid.UUID
	Email     string
	Action    AuthAction
	Succeeded bool
	Timestamp time.Time
}

// NewAuthAttempt creates an attempt record bound to a known user
func NewAuthAttempt(userID uuid.UUID, email string, action AuthAction, succeeded bool) *AuthAttempt {
	return &AuthAttempt{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     &userID,
		Email:      email,
		Action:     action,
		Succeeded:  succeeded,
		Timestamp:  time.Now(),
	}
}

// NewUnresolvedAuthAttempt records a failed attempt whose identifier did not
// match any account. The identifier is kept verbatim as an unverified email.
func NewUnresolvedAuthAttempt(identifier string, action AuthAction) *AuthAttempt {
	return &AuthAttempt{
		BaseEntity: shared.NewBaseEntity(),
		Email:      identifier,
		Action:     action,
		Timestamp:  time.Now(),
	}
}

// AuthLogRepository persists authentication audit records
type AuthLogRepository interface {
	// CreateLog appends a successful-event log entry
	CreateLog(ctx context.Context, log *AuthLog) error

	// CreateAttempt appends an attempt record
	CreateAttempt(ctx context.Context, attempt *AuthAttempt) error

	// FindLogs returns log entries, newest first
	FindLogs(ctx context.Context, filter AuthLogFilter) ([]*AuthLog, int64, error)

	// FindAttempts returns attempt records, newest first
	FindAttempts(ctx context.Context, filter AuthLogFilter) ([]*AuthAttempt, int64, error)
}

// AuthLogFilter contains filter options for querying audit records
type AuthLogFilter struct {
	UserID   *uuid.UUID
	Action   *AuthAction
	Since    *time.Time
	Page     int
	PageSize int
}

// NewAuthLogFilter creates a filter with default pagination
func NewAuthLogFilter() AuthLogFilter {
	return AuthLogFilter{
		Page:     1,
		PageSize: 50,
	}
}

// Offset returns the offset for pagination
func (f AuthLogFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f AuthLogFilter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}
