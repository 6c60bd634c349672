package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkly/backend/internal/application/report"
	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles staff reporting endpoints: the feedback dashboard
// and CSV exports
type ReportHandler struct {
	BaseHandler
	dashboardService *report.FeedbackDashboardService
	exportService    *report.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	dashboardService *report.FeedbackDashboardService,
	exportService *report.ExportService,
) *ReportHandler {
	return &ReportHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// FeedbackDashboardRequest represents query parameters for the dashboard
type FeedbackDashboardRequest struct {
	Period   string `form:"period" binding:"omitempty,oneof=week month year all"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeedbackStatsResponse represents feedback aggregates in responses
type FeedbackStatsResponse struct {
	Total         int64            `json:"total"`
	AverageRating float64          `json:"average_rating"`
	ByGoal        map[string]int64 `json:"by_goal"`
	ByReason      map[string]int64 `json:"by_reason"`
	ByIssue       map[string]int64 `json:"by_issue"`
}

// FeedbackEntryResponse represents one dashboard feedback row
type FeedbackEntryResponse struct {
	Username    string    `json:"username,omitempty"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments,omitempty"`
	Goal        string    `json:"goal"`
	Reason      string    `json:"reason,omitempty"`
	Issue       string    `json:"issue,omitempty"`
	Suggestions string    `json:"suggestions,omitempty"`
	SubmittedOn time.Time `json:"submitted_on"`
}

// FeedbackDashboardResponse represents the staff feedback dashboard
type FeedbackDashboardResponse struct {
	Period  string                  `json:"period"`
	Stats   FeedbackStatsResponse   `json:"stats"`
	Entries []FeedbackEntryResponse `json:"entries"`
}

// FeedbackDashboard godoc
// @Summary      Feedback dashboard
// @Description  Aggregated feedback statistics and recent entries for a period
// @Tags         staff
// @Produce      json
// @Param        period query string false "Period" Enums(week, month, year, all)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=FeedbackDashboardResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/feedback/dashboard [get]
func (h *ReportHandler) FeedbackDashboard(c *gin.Context) {
	var req FeedbackDashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	period := engagement.FeedbackPeriodAll
	if req.Period != "" {
		period = engagement.FeedbackPeriod(req.Period)
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), period, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	byGoal := make(map[string]int64, len(dashboard.Stats.ByGoal))
	for goal, count := range dashboard.Stats.ByGoal {
		byGoal[string(goal)] = count
	}

	entries := make([]FeedbackEntryResponse, len(dashboard.RecentEntries))
	for i, e := range dashboard.RecentEntries {
		entries[i] = FeedbackEntryResponse{
			Username:    e.Username,
			Rating:      e.Rating,
			Comments:    e.Comments,
			Goal:        string(e.GoalAchievement),
			Reason:      e.Reason,
			Issue:       e.Issue,
			Suggestions: e.Suggestions,
			SubmittedOn: e.SubmittedOn,
		}
	}

	h.Success(c, FeedbackDashboardResponse{
		Period: string(dashboard.Period),
		Stats: FeedbackStatsResponse{
			Total:         dashboard.Stats.Total,
			AverageRating: dashboard.Stats.AverageRating,
			ByGoal:        byGoal,
			ByReason:      dashboard.Stats.ByReason,
			ByIssue:       dashboard.Stats.ByIssue,
		},
		Entries: entries,
	})
}

// Export godoc
// @Summary      Export records as CSV
// @Description  Streams the requested entity as a CSV download
// @Tags         staff
// @Produce      text/csv
// @Param        entity path string true "Entity" Enums(bookings, users, feedback, contacts)
// @Success      200 {string} string "CSV data"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/export/{entity} [get]
func (h *ReportHandler) Export(c *gin.Context) {
	entity := report.ExportEntity(c.Param("entity"))
	if !entity.IsValid() {
		h.BadRequest(c, "Unknown export entity")
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", entity, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := h.exportService.Export(c.Request.Context(), entity, c.Writer); err != nil {
		// Headers are already sent, nothing sensible left to report
		_ = c.Error(err)
	}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff", middleware.StaffOnly())
	{
		staff.GET("/feedback/dashboard", h.FeedbackDashboard)
		staff.GET("/export/:entity", h.Export)
	}
}
