package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/domain/shared"
	"github.com/parkly/backend/internal/infrastructure/auth"
	"github.com/parkly/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthLogRepository is a mock implementation of identity.AuthLogRepository
type MockAuthLogRepository struct {
	mock.Mock
}

func (m *MockAuthLogRepository) CreateLog(ctx context.Context, log *identity.AuthLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuthLogRepository) CreateAttempt(ctx context.Context, attempt *identity.AuthAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAuthLogRepository) FindLogs(ctx context.Context, filter identity.AuthLogFilter) ([]*identity.AuthLog, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.AuthLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthLogRepository) FindAttempts(ctx context.Context, filter identity.AuthLogFilter) ([]*identity.AuthAttempt, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.AuthAttempt), args.Get(1).(int64), args.Error(2)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "parkly-test",
	})
}

func newTestAuthService(userRepo *MockUserRepository, auditRepo *MockAuthLogRepository) *AuthService {
	return NewAuthService(
		userRepo,
		auditRepo,
		newTestJWTService(),
		auth.NewMemoryBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("alice", "alice@example.com", "password1")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account and returns tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		userRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
		auditRepo.On("CreateLog", mock.Anything, mock.AnythingOfType("*identity.AuthLog")).Return(nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		result, err := service.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
			IP:       "10.0.0.1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "alice", result.User.Username)
		assert.False(t, result.User.IsStaff)

		auditRepo.AssertCalled(t, "CreateLog", mock.Anything, mock.MatchedBy(func(l *identity.AuthLog) bool {
			return l.Action == identity.AuthActionRegister
		}))
	})

	t.Run("rejects taken username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		userRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		userRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "short",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("succeeds with username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		auditRepo.On("CreateLog", mock.Anything, mock.AnythingOfType("*identity.AuthLog")).Return(nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		result, err := service.Login(context.Background(), LoginInput{
			Identifier: "alice",
			Password:   "password1",
			IP:         "10.0.0.1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
	})

	t.Run("falls back to email when username misses", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		userRepo.On("FindByUsername", mock.Anything, "alice@example.com").Return(nil, shared.ErrNotFound)
		userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		auditRepo.On("CreateLog", mock.Anything, mock.AnythingOfType("*identity.AuthLog")).Return(nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		result, err := service.Login(context.Background(), LoginInput{
			Identifier: "alice@example.com",
			Password:   "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
	})

	t.Run("records unresolved identifier verbatim", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
		userRepo.On("FindByEmail", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		_, err := service.Login(context.Background(), LoginInput{
			Identifier: "ghost",
			Password:   "whatever1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)

		auditRepo.AssertCalled(t, "CreateAttempt", mock.Anything, mock.MatchedBy(func(a *identity.AuthAttempt) bool {
			return a.UserID == nil && a.Email == "ghost" && !a.Succeeded
		}))
	})

	t.Run("wrong password records failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		_, err := service.Login(context.Background(), LoginInput{
			Identifier: "alice",
			Password:   "wrongpass1",
		})

		require.Error(t, err)
		assert.Equal(t, 1, user.FailedAttempts)
		auditRepo.AssertCalled(t, "CreateAttempt", mock.Anything, mock.MatchedBy(func(a *identity.AuthAttempt) bool {
			return a.UserID != nil && !a.Succeeded
		}))
		auditRepo.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	})

	t.Run("locks account after max failures", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		user.FailedAttempts = 4
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		_, err := service.Login(context.Background(), LoginInput{
			Identifier: "alice",
			Password:   "wrongpass1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())
	})

	t.Run("rejects locked account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		require.NoError(t, user.Lock(time.Hour))
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

		_, err := service.Login(context.Background(), LoginInput{
			Identifier: "alice",
			Password:   "password1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuthLogRepository)
	blacklist := auth.NewMemoryBlacklist()
	service := NewAuthService(userRepo, auditRepo, newTestJWTService(), blacklist, DefaultAuthServiceConfig(), zap.NewNop())

	user := newTestUser(t)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	auditRepo.On("CreateLog", mock.Anything, mock.AnythingOfType("*identity.AuthLog")).Return(nil)
	auditRepo.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*identity.AuthAttempt")).Return(nil)

	err := service.Logout(context.Background(), LogoutInput{
		UserID:   user.ID,
		TokenJTI: "token-jti-1",
		TokenTTL: time.Hour,
	})

	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(context.Background(), "token-jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	auditRepo.AssertCalled(t, "CreateLog", mock.Anything, mock.MatchedBy(func(l *identity.AuthLog) bool {
		return l.Action == identity.AuthActionLogout
	}))
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("issues a fresh pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		user := newTestUser(t)
		jwtService := newTestJWTService()
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Username: user.Username,
		})
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		result, err := service.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: pair.RefreshToken,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuthLogRepository)
		service := newTestAuthService(userRepo, auditRepo)

		_, err := service.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: "not.a.token",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuthLogRepository)
	blacklist := auth.NewMemoryBlacklist()
	service := NewAuthService(userRepo, auditRepo, newTestJWTService(), blacklist, DefaultAuthServiceConfig(), zap.NewNop())

	user := newTestUser(t)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	issuedBefore := time.Now().Add(-time.Minute)

	err := service.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "password1",
		NewPassword: "password2",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("password2"))

	// Sessions opened before the change are revoked.
	revoked, err := blacklist.IsUserRevoked(context.Background(), user.ID.String(), issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	t.Run("wrong current password", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "nope12345",
			NewPassword: "password3",
		})
		require.Error(t, err)
	})
}

func TestAuthService_ListAuditTrail(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuthLogRepository)
	service := newTestAuthService(userRepo, auditRepo)

	user := newTestUser(t)
	logEntry := identity.NewAuthLog(user.ID, identity.AuthActionLogin)
	attempt := identity.NewUnresolvedAuthAttempt("ghost", identity.AuthActionLogin)

	filter := identity.NewAuthLogFilter()
	auditRepo.On("FindLogs", mock.Anything, filter).Return([]*identity.AuthLog{logEntry}, int64(1), nil)
	auditRepo.On("FindAttempts", mock.Anything, filter).Return([]*identity.AuthAttempt{attempt}, int64(1), nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	page, err := service.ListAuditTrail(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "alice", page.Logs[0].Username)
	require.Len(t, page.Attempts, 1)
	assert.Equal(t, "ghost", page.Attempts[0].Email)
	assert.Nil(t, page.Attempts[0].UserID)
}
