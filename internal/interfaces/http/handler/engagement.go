package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appengagement "github.com/parkly/backend/internal/application/engagement"
	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/interfaces/http/dto"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
)

// EngagementHandler handles contact form and feedback survey HTTP requests.
// Submission endpoints are public; feedback submissions pick up the user
// identity when a valid token is presented.
type EngagementHandler struct {
	BaseHandler
	contactService  *appengagement.ContactService
	feedbackService *appengagement.FeedbackService
	optionalAuth    gin.HandlerFunc
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(
	contactService *appengagement.ContactService,
	feedbackService *appengagement.FeedbackService,
	optionalAuth gin.HandlerFunc,
) *EngagementHandler {
	return &EngagementHandler{
		contactService:  contactService,
		feedbackService: feedbackService,
		optionalAuth:    optionalAuth,
	}
}

// =====================
// Request DTOs
// =====================

// SubmitContactRequest represents the contact form body
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// SubmitFeedbackRequest represents the feedback survey body
type SubmitFeedbackRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comments    string `json:"comments" binding:"max=2000"`
	Goal        string `json:"goal" binding:"required,oneof=Yes Partially No"`
	Reason      string `json:"reason" binding:"max=200"`
	Issue       string `json:"issue" binding:"max=200"`
	Suggestions string `json:"suggestions" binding:"max=2000"`
	IsPublic    bool   `json:"is_public"`
}

// =====================
// Response DTOs
// =====================

// ContactResponse represents a contact message in responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackResponse represents a feedback entry in responses
type FeedbackResponse struct {
	ID          uuid.UUID `json:"id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments,omitempty"`
	Goal        string    `json:"goal"`
	Reason      string    `json:"reason,omitempty"`
	Issue       string    `json:"issue,omitempty"`
	Suggestions string    `json:"suggestions,omitempty"`
	IsPublic    bool      `json:"is_public"`
	SubmittedOn time.Time `json:"submitted_on"`
}

// SubmitContact godoc
// @Summary      Submit contact message
// @Description  Accepts a message from the public contact form
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        request body SubmitContactRequest true "Contact details"
// @Success      201 {object} dto.Response{data=ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/contact [post]
func (h *EngagementHandler) SubmitContact(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.contactService.SubmitContact(c.Request.Context(), appengagement.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contactResponse(*view))
}

// SubmitFeedback godoc
// @Summary      Submit feedback
// @Description  Accepts a feedback survey entry, anonymously or from a logged-in user
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        request body SubmitFeedbackRequest true "Feedback details"
// @Success      201 {object} dto.Response{data=FeedbackResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/feedback [post]
func (h *EngagementHandler) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := appengagement.SubmitFeedbackInput{
		Rating:      req.Rating,
		Comments:    req.Comments,
		Goal:        engagement.GoalAchievement(req.Goal),
		Reason:      req.Reason,
		Issue:       req.Issue,
		Suggestions: req.Suggestions,
		IsPublic:    req.IsPublic,
	}

	// Attribute the entry when the caller presented a valid token
	if userID, err := getUserID(c); err == nil {
		input.UserID = &userID
	}

	view, err := h.feedbackService.SubmitFeedback(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, feedbackResponse(*view))
}

// ListPublicFeedback godoc
// @Summary      List public feedback
// @Description  Returns recent feedback entries marked public by their authors
// @Tags         engagement
// @Produce      json
// @Param        limit query int false "Maximum entries"
// @Success      200 {object} dto.Response{data=[]FeedbackResponse}
// @Router       /public/feedback [get]
func (h *EngagementHandler) ListPublicFeedback(c *gin.Context) {
	var req struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	views, err := h.feedbackService.ListPublic(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]FeedbackResponse, len(views))
	for i, v := range views {
		out[i] = feedbackResponse(v)
	}

	h.Success(c, out)
}

// ListContacts godoc
// @Summary      List contact messages
// @Description  Staff view of received contact messages
// @Tags         staff
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]ContactResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/contacts [get]
func (h *EngagementHandler) ListContacts(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	views, total, err := h.contactService.ListContacts(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ContactResponse, len(views))
	for i, v := range views {
		out[i] = contactResponse(v)
	}

	h.SuccessWithMeta(c, out, total, req.Page, req.PageSize)
}

// RegisterRoutes registers all engagement routes
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/public")
	{
		public.POST("/contact", h.SubmitContact)
		public.GET("/feedback", h.ListPublicFeedback)
		if h.optionalAuth != nil {
			public.POST("/feedback", h.optionalAuth, h.SubmitFeedback)
		} else {
			public.POST("/feedback", h.SubmitFeedback)
		}
	}

	staff := rg.Group("/staff", middleware.StaffOnly())
	{
		staff.GET("/contacts", h.ListContacts)
	}
}

func contactResponse(v appengagement.ContactView) ContactResponse {
	return ContactResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Message:   v.Message,
		Timestamp: v.Timestamp,
	}
}

func feedbackResponse(v appengagement.FeedbackView) FeedbackResponse {
	return FeedbackResponse{
		ID:          v.ID,
		Rating:      v.Rating,
		Comments:    v.Comments,
		Goal:        string(v.GoalAchievement),
		Reason:      v.Reason,
		Issue:       v.Issue,
		Suggestions: v.Suggestions,
		IsPublic:    v.IsPublic,
		SubmittedOn: v.SubmittedOn,
	}
}
