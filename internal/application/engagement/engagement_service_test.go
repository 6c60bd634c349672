package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/engagement"
)

// MockContactRepository is a mock implementation of engagement.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *engagement.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindAll(ctx context.Context, page, pageSize int) ([]*engagement.Contact, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*engagement.Contact), args.Get(1).(int64), args.Error(2)
}

// MockFeedbackRepository is a mock implementation of engagement.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *engagement.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindAll(ctx context.Context, since *time.Time, page, pageSize int) ([]*engagement.Feedback, int64, error) {
	args := m.Called(ctx, since, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*engagement.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackRepository) FindPublic(ctx context.Context, limit int) ([]*engagement.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*engagement.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Stats(ctx context.Context, since *time.Time) (*engagement.FeedbackStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.FeedbackStats), args.Error(1)
}

func TestContactService_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("successful submission", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		service := NewContactService(contactRepo, zap.NewNop())

		contactRepo.On("Create", ctx, mock.AnythingOfType("*engagement.Contact")).Return(nil)

		view, err := service.SubmitContact(ctx, SubmitContactInput{
			Name:    "  Alice Smith ",
			Email:   "alice@example.com",
			Message: "The gate near block A is hard to find.",
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", view.Name)
		assert.Equal(t, "alice@example.com", view.Email)
		contactRepo.AssertExpectations(t)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		service := NewContactService(contactRepo, zap.NewNop())

		_, err := service.SubmitContact(ctx, SubmitContactInput{
			Name:    "Alice",
			Email:   "not-an-email",
			Message: "Hello",
		})

		require.Error(t, err)
		contactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestContactService_ListContacts(t *testing.T) {
	ctx := context.Background()
	contactRepo := new(MockContactRepository)
	service := NewContactService(contactRepo, zap.NewNop())

	contact, err := engagement.NewContact("Bob", "bob@example.com", "Where do I pay?")
	require.NoError(t, err)

	contactRepo.On("FindAll", ctx, 1, 20).Return([]*engagement.Contact{contact}, int64(1), nil)

	views, total, err := service.ListContacts(ctx, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "Bob", views[0].Name)
}

func TestFeedbackService_SubmitFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated submission", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		service := NewFeedbackService(feedbackRepo, zap.NewNop())
		userID := uuid.New()

		feedbackRepo.On("Create", ctx, mock.AnythingOfType("*engagement.Feedback")).Return(nil)

		view, err := service.SubmitFeedback(ctx, SubmitFeedbackInput{
			UserID:   &userID,
			Rating:   4,
			Comments: "Smooth booking",
			Goal:     engagement.GoalAchieved,
			IsPublic: true,
		})

		require.NoError(t, err)
		require.NotNil(t, view.UserID)
		assert.Equal(t, userID, *view.UserID)
		assert.Equal(t, 4, view.Rating)
	})

	t.Run("anonymous submission", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		service := NewFeedbackService(feedbackRepo, zap.NewNop())

		feedbackRepo.On("Create", ctx, mock.MatchedBy(func(f *engagement.Feedback) bool {
			return f.UserID == nil
		})).Return(nil)

		view, err := service.SubmitFeedback(ctx, SubmitFeedbackInput{
			Rating: 2,
			Goal:   engagement.GoalMissed,
			Issue:  "Slot was occupied",
		})

		require.NoError(t, err)
		assert.Nil(t, view.UserID)
	})

	t.Run("out-of-range rating", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		service := NewFeedbackService(feedbackRepo, zap.NewNop())

		_, err := service.SubmitFeedback(ctx, SubmitFeedbackInput{
			Rating: 6,
			Goal:   engagement.GoalAchieved,
		})

		require.Error(t, err)
		feedbackRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFeedbackService_ListPublic(t *testing.T) {
	ctx := context.Background()
	feedbackRepo := new(MockFeedbackRepository)
	service := NewFeedbackService(feedbackRepo, zap.NewNop())

	public, err := engagement.NewFeedback(nil, 5, "Great", engagement.GoalAchieved, "", "", "", true)
	require.NoError(t, err)

	feedbackRepo.On("FindPublic", ctx, 10).Return([]*engagement.Feedback{public}, nil)

	views, err := service.ListPublic(ctx, 0)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsPublic)
	feedbackRepo.AssertExpectations(t)
}
