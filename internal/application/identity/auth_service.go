package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/auth"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles registration, authentication, and the audit trail
type AuthService struct {
	userRepo   identity.UserRepository
	auditRepo  identity.AuthLogRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	auditRepo identity.AuthLogRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Register creates a new account and logs the user in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	s.logger.Info("Registration attempt", zap.String("username", input.Username))

	usernameTaken, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if usernameTaken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	emailTaken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if emailTaken {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.recordAudit(ctx, user, identity.AuthActionRegister, true)

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record registration login", zap.Error(err))
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfo(user),
	}, nil
}

// Login authenticates a user and returns tokens. The identifier is
// resolved against username first, then email; a failed attempt that
// resolves to no account is still recorded with the raw identifier.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	s.logger.Info("Login attempt", zap.String("identifier", identifier))

	user, err := s.resolveIdentifier(ctx, identifier)
	if err != nil {
		s.recordUnresolvedAttempt(ctx, identifier)
		s.logger.Warn("Login identifier did not resolve", zap.String("identifier", identifier))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		s.recordAudit(ctx, user, identity.AuthActionLogin, false)
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", user.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", user.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}
		s.recordAudit(ctx, user, identity.AuthActionLogin, false)

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", user.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", user.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.recordAudit(ctx, user, identity.AuthActionLogin, true)

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfo(user),
	}, nil
}

// Logout revokes the presented access token and records the event
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to revoke token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
		}
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		s.logger.Warn("Logout for unknown user", zap.String("user_id", input.UserID.String()))
		return nil
	}

	s.recordAudit(ctx, user, identity.AuthActionLogout, true)

	return nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, user.IsStaff)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Failed to refresh token")
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := userInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Sessions opened with the old credential stay valid until their
	// tokens expire unless revoked here. The TTL covers the longest
	// outstanding refresh token.
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// ListAuditTrail returns authentication audit records for the staff
// dashboard, newest first
func (s *AuthService) ListAuditTrail(ctx context.Context, filter identity.AuthLogFilter) (*AuthLogPage, error) {
	logs, total, err := s.auditRepo.FindLogs(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list auth logs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load audit records")
	}

	attempts, _, err := s.auditRepo.FindAttempts(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list auth attempts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load audit records")
	}

	page := &AuthLogPage{Total: total}
	for _, l := range logs {
		entry := AuthLogEntry{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			Timestamp: l.Timestamp,
		}
		if l.UserID != nil {
			if u, err := s.userRepo.FindByID(ctx, *l.UserID); err == nil {
				entry.Username = u.Username
			}
		}
		page.Logs = append(page.Logs, entry)
	}
	for _, a := range attempts {
		page.Attempts = append(page.Attempts, AuthAttemptEntry{
			ID:        a.ID,
			UserID:    a.UserID,
			Email:     a.Email,
			Action:    a.Action,
			Succeeded: a.Succeeded,
			Timestamp: a.Timestamp,
		})
	}

	return page, nil
}

// resolveIdentifier matches the login identifier against username first,
// then email
func (s *AuthService) resolveIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return s.userRepo.FindByEmail(ctx, identifier)
}

// recordAudit appends audit records for an event bound to a known user.
// Audit failures are logged but never fail the operation itself.
func (s *AuthService) recordAudit(ctx context.Context, user *identity.User, action identity.AuthAction, succeeded bool) {
	if succeeded {
		if err := s.auditRepo.CreateLog(ctx, identity.NewAuthLog(user.ID, action)); err != nil {
			s.logger.Error("Failed to write auth log", zap.Error(err))
		}
	}
	if err := s.auditRepo.CreateAttempt(ctx, identity.NewAuthAttempt(user.ID, user.Email, action, succeeded)); err != nil {
		s.logger.Error("Failed to write auth attempt", zap.Error(err))
	}
}

// recordUnresolvedAttempt records a failed login whose identifier matched
// no account. The raw identifier is kept as an unverified email.
func (s *AuthService) recordUnresolvedAttempt(ctx context.Context, identifier string) {
	attempt := identity.NewUnresolvedAuthAttempt(identifier, identity.AuthActionLogin)
	if err := s.auditRepo.CreateAttempt(ctx, attempt); err != nil {
		s.logger.Error("Failed to write auth attempt", zap.Error(err))
	}
}
