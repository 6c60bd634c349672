package handler

import (
	"time"

	"github.com/google/uuid"
)

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the request body for user login.
// Identifier accepts either username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,min=3,max=254"`
	Password   string `json:"password" binding:"required,min=8,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	IsStaff  bool      `json:"is_staff"`
}

// LoginResponse represents the response body for successful login or registration
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// CurrentUserResponse represents the response body for current user info
type CurrentUserResponse struct {
	User AuthUserResponse `json:"user"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// ListAuditTrailRequest represents query parameters for the audit trail
type ListAuditTrailRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AuthLogResponse represents one authentication event in responses
type AuthLogResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Action    string     `json:"action"`
	Timestamp time.Time  `json:"timestamp"`
}

// AuthAttemptResponse represents one authentication attempt in responses
type AuthAttemptResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Action    string     `json:"action"`
	Succeeded bool       `json:"succeeded"`
	Timestamp time.Time  `json:"timestamp"`
}

// AuditTrailResponse represents the audit trail page
type AuditTrailResponse struct {
	Logs     []AuthLogResponse     `json:"logs"`
	Attempts []AuthAttemptResponse `json:"attempts"`
}
