package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appengagement "github.com/parkly/backend/internal/application/engagement"
	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/infrastructure/auth"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
)

type engagementTestEnv struct {
	contactRepo  *MockContactRepository
	feedbackRepo *MockFeedbackRepository
	jwtService   *auth.JWTService
	router       *gin.Engine
}

func newEngagementTestEnv() *engagementTestEnv {
	contactRepo := new(MockContactRepository)
	feedbackRepo := new(MockFeedbackRepository)

	jwtService := auth.NewJWTService(testJWTConfig())
	contactService := appengagement.NewContactService(contactRepo, zap.NewNop())
	feedbackService := appengagement.NewFeedbackService(feedbackRepo, zap.NewNop())

	h := NewEngagementHandler(
		contactService,
		feedbackService,
		middleware.OptionalJWTAuthMiddleware(jwtService),
	)

	return &engagementTestEnv{
		contactRepo:  contactRepo,
		feedbackRepo: feedbackRepo,
		jwtService:   jwtService,
		router:       newTestRouter(jwtService, h),
	}
}

func newTestFeedback(t *testing.T, userID *uuid.UUID, rating int, public bool) *engagement.Feedback {
	t.Helper()
	feedback, err := engagement.NewFeedback(
		userID,
		rating,
		"Smooth reservation flow",
		engagement.GoalAchieved,
		"",
		"",
		"",
		public,
	)
	require.NoError(t, err)
	return feedback
}

func TestEngagementHandler_SubmitContact_Anonymous(t *testing.T) {
	env := newEngagementTestEnv()
	env.contactRepo.On("Create", mock.Anything, mock.AnythingOfType("*engagement.Contact")).Return(nil)

	body, _ := json.Marshal(SubmitContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "Is the north lot open on weekends?",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Asha Rao", data["name"])
	assert.Equal(t, "asha@example.com", data["email"])
	env.contactRepo.AssertExpectations(t)
}

func TestEngagementHandler_SubmitContact_InvalidEmail(t *testing.T) {
	env := newEngagementTestEnv()

	body, _ := json.Marshal(SubmitContactRequest{
		Name:    "Asha Rao",
		Email:   "not-an-email",
		Message: "hello",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.contactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngagementHandler_SubmitFeedback_Anonymous(t *testing.T) {
	env := newEngagementTestEnv()
	env.feedbackRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *engagement.Feedback) bool {
		return f.UserID == nil && f.Rating == 4
	})).Return(nil)

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Rating:   4,
		Comments: "Easy to find a slot",
		Goal:     "Yes",
		IsPublic: true,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(4), data["rating"])
	assert.Equal(t, "Yes", data["goal"])
	env.feedbackRepo.AssertExpectations(t)
}

func TestEngagementHandler_SubmitFeedback_Attributed(t *testing.T) {
	env := newEngagementTestEnv()
	userID := uuid.New()
	token := issueToken(t, env.jwtService, userID, false)

	env.feedbackRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *engagement.Feedback) bool {
		return f.UserID != nil && *f.UserID == userID
	})).Return(nil)

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Rating: 5,
		Goal:   "Partially",
		Reason: "App crashed once",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	env.feedbackRepo.AssertExpectations(t)
}

func TestEngagementHandler_SubmitFeedback_RatingOutOfRange(t *testing.T) {
	env := newEngagementTestEnv()

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Rating: 6,
		Goal:   "Yes",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.feedbackRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngagementHandler_SubmitFeedback_InvalidGoal(t *testing.T) {
	env := newEngagementTestEnv()

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Rating: 3,
		Goal:   "Maybe",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEngagementHandler_ListPublicFeedback(t *testing.T) {
	env := newEngagementTestEnv()
	entries := []*engagement.Feedback{
		newTestFeedback(t, nil, 5, true),
		newTestFeedback(t, nil, 4, true),
	}
	env.feedbackRepo.On("FindPublic", mock.Anything, 10).Return(entries, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/feedback", nil)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["rating"])
	assert.Equal(t, true, first["is_public"])
}

func TestEngagementHandler_ListContacts_NonStaffForbidden(t *testing.T) {
	env := newEngagementTestEnv()
	token := issueToken(t, env.jwtService, uuid.New(), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/staff/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	env.contactRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngagementHandler_ListContacts_Staff(t *testing.T) {
	env := newEngagementTestEnv()
	token := issueToken(t, env.jwtService, uuid.New(), true)

	contact, err := engagement.NewContact("Ravi", "ravi@example.com", "Lost my ticket")
	require.NoError(t, err)
	env.contactRepo.On("FindAll", mock.Anything, 1, 20).
		Return([]*engagement.Contact{contact}, int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/staff/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)

	data := resp.Data.([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "ravi@example.com", first["email"])
}
