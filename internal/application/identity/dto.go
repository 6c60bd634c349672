package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkly/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginInput contains the input for user login. Identifier is matched
// against username first, then email.
type LoginInput struct {
	Identifier string
	Password   string
	IP         string
}

// LoginResult contains the result of a successful login or registration
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic account information returned to clients
type UserInfo struct {
	ID       uuid.UUID
	Username string
	Email    string
	IsStaff  bool
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID of the access token being revoked
	TokenTTL time.Duration // Remaining lifetime of that token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// AuthLogEntry is one audit record returned to the staff dashboard
type AuthLogEntry struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Username  string
	Action    identity.AuthAction
	Timestamp time.Time
}

// AuthAttemptEntry is one attempt record, including unresolved failures
type AuthAttemptEntry struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Email     string
	Action    identity.AuthAction
	Succeeded bool
	Timestamp time.Time
}

// AuthLogPage is a paginated set of audit records
type AuthLogPage struct {
	Logs     []AuthLogEntry
	Attempts []AuthAttemptEntry
	Total    int64
}

func userInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
	}
}
