package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appparking "github.com/parkly/backend/internal/application/parking"
	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/interfaces/http/dto"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
)

// AreaHandler handles area, sub-area and parking slot HTTP requests.
// Reads are available to any authenticated user, writes are staff only.
type AreaHandler struct {
	BaseHandler
	areaService *appparking.AreaService
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService *appparking.AreaService) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
	}
}

// =====================
// Request DTOs
// =====================

// CreateAreaRequest represents the request body for creating an area
type CreateAreaRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateAreaRequest represents the request body for updating an area
type UpdateAreaRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreateSubAreaRequest represents the request body for creating a sub-area
type CreateSubAreaRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateSubAreaRequest represents the request body for updating a sub-area
type UpdateSubAreaRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreateSlotRequest represents the request body for creating a parking slot
type CreateSlotRequest struct {
	SlotNumber string `json:"slot_number" binding:"required,min=1,max=20"`
	SlotType   string `json:"slot_type" binding:"required,oneof=covered open"`
}

// UpdateSlotRequest represents the request body for updating a parking slot
type UpdateSlotRequest struct {
	SlotType string `json:"slot_type" binding:"required,oneof=covered open"`
}

// ListSlotsRequest represents query parameters for listing slots
type ListSlotsRequest struct {
	SubAreaID     string `form:"sub_area_id" binding:"omitempty,uuid"`
	SlotType      string `form:"slot_type" binding:"omitempty,oneof=covered open"`
	AvailableOnly bool   `form:"available_only"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =====================
// Response DTOs
// =====================

// AreaResponse represents an area in responses
type AreaResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AreaDetailResponse represents an area with its sub-areas
type AreaDetailResponse struct {
	AreaResponse
	SubAreas []SubAreaResponse `json:"sub_areas"`
}

// SubAreaResponse represents a sub-area in responses
type SubAreaResponse struct {
	ID          uuid.UUID `json:"id"`
	AreaID      uuid.UUID `json:"area_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubAreaDetailResponse represents a sub-area with its slots
type SubAreaDetailResponse struct {
	SubAreaResponse
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse represents a parking slot in responses
type SlotResponse struct {
	ID          uuid.UUID `json:"id"`
	SubAreaID   uuid.UUID `json:"sub_area_id"`
	SlotNumber  string    `json:"slot_number"`
	SlotType    string    `json:"slot_type"`
	IsAvailable bool      `json:"is_available"`
}

// =====================
// Browse endpoints
// =====================

// ListAreas godoc
// @Summary      List areas
// @Description  List parking areas with optional name search
// @Tags         areas
// @Produce      json
// @Param        search query string false "Name search"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]AreaResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas [get]
func (h *AreaHandler) ListAreas(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := parking.NewAreaFilter()
	filter.Search = req.Search
	filter.Page = req.Page
	filter.PageSize = req.PageSize

	areas, total, err := h.areaService.ListAreas(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]AreaResponse, len(areas))
	for i, a := range areas {
		views[i] = areaResponse(a)
	}

	h.SuccessWithMeta(c, views, total, filter.Page, filter.PageSize)
}

// GetArea godoc
// @Summary      Get area
// @Description  Get an area together with its sub-areas
// @Tags         areas
// @Produce      json
// @Param        id path string true "Area ID"
// @Success      200 {object} dto.Response{data=AreaDetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /areas/{id} [get]
func (h *AreaHandler) GetArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	detail, err := h.areaService.GetArea(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	response := AreaDetailResponse{
		AreaResponse: areaResponse(detail.AreaView),
		SubAreas:     make([]SubAreaResponse, len(detail.SubAreas)),
	}
	for i, s := range detail.SubAreas {
		response.SubAreas[i] = subAreaResponse(s)
	}

	h.Success(c, response)
}

// GetSubArea godoc
// @Summary      Get sub-area
// @Description  Get a sub-area together with its parking slots
// @Tags         areas
// @Produce      json
// @Param        id path string true "Sub-area ID"
// @Success      200 {object} dto.Response{data=SubAreaDetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subareas/{id} [get]
func (h *AreaHandler) GetSubArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	detail, err := h.areaService.GetSubArea(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	response := SubAreaDetailResponse{
		SubAreaResponse: subAreaResponse(detail.SubAreaView),
		Slots:           make([]SlotResponse, len(detail.Slots)),
	}
	for i, s := range detail.Slots {
		response.Slots[i] = slotResponse(s)
	}

	h.Success(c, response)
}

// ListSlots godoc
// @Summary      List parking slots
// @Description  List parking slots, optionally filtered by sub-area, type or availability
// @Tags         areas
// @Produce      json
// @Param        sub_area_id query string false "Sub-area ID"
// @Param        slot_type query string false "Slot type"
// @Param        available_only query bool false "Only available slots"
// @Success      200 {object} dto.Response{data=[]SlotResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /slots [get]
func (h *AreaHandler) ListSlots(c *gin.Context) {
	var req ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := parking.NewSlotFilter()
	filter.AvailableOnly = req.AvailableOnly
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.SubAreaID != "" {
		id, err := uuid.Parse(req.SubAreaID)
		if err != nil {
			h.BadRequest(c, "Invalid sub-area ID")
			return
		}
		filter.SubAreaID = &id
	}
	if req.SlotType != "" {
		slotType := parking.SlotType(req.SlotType)
		filter.SlotType = &slotType
	}

	slots, total, err := h.areaService.ListSlots(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]SlotResponse, len(slots))
	for i, s := range slots {
		views[i] = slotResponse(s)
	}

	h.SuccessWithMeta(c, views, total, filter.Page, filter.PageSize)
}

// =====================
// Staff endpoints
// =====================

// CreateArea godoc
// @Summary      Create area
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body CreateAreaRequest true "Area details"
// @Success      201 {object} dto.Response{data=AreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/areas [post]
func (h *AreaHandler) CreateArea(c *gin.Context) {
	var req CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.CreateArea(c.Request.Context(), appparking.CreateAreaInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, areaResponse(*view))
}

// UpdateArea godoc
// @Summary      Update area
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Area ID"
// @Param        request body UpdateAreaRequest true "Area details"
// @Success      200 {object} dto.Response{data=AreaResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/areas/{id} [put]
func (h *AreaHandler) UpdateArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.UpdateArea(c.Request.Context(), appparking.UpdateAreaInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, areaResponse(*view))
}

// DeleteArea godoc
// @Summary      Delete area
// @Tags         staff
// @Produce      json
// @Param        id path string true "Area ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/areas/{id} [delete]
func (h *AreaHandler) DeleteArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.areaService.DeleteArea(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSubArea godoc
// @Summary      Create sub-area
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Parent area ID"
// @Param        request body CreateSubAreaRequest true "Sub-area details"
// @Success      201 {object} dto.Response{data=SubAreaResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/areas/{id}/subareas [post]
func (h *AreaHandler) CreateSubArea(c *gin.Context) {
	areaID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req CreateSubAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.CreateSubArea(c.Request.Context(), appparking.CreateSubAreaInput{
		AreaID:      areaID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, subAreaResponse(*view))
}

// UpdateSubArea godoc
// @Summary      Update sub-area
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Sub-area ID"
// @Param        request body UpdateSubAreaRequest true "Sub-area details"
// @Success      200 {object} dto.Response{data=SubAreaResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/subareas/{id} [put]
func (h *AreaHandler) UpdateSubArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateSubAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.UpdateSubArea(c.Request.Context(), appparking.UpdateSubAreaInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subAreaResponse(*view))
}

// DeleteSubArea godoc
// @Summary      Delete sub-area
// @Tags         staff
// @Produce      json
// @Param        id path string true "Sub-area ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/subareas/{id} [delete]
func (h *AreaHandler) DeleteSubArea(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.areaService.DeleteSubArea(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSlot godoc
// @Summary      Create parking slot
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Sub-area ID"
// @Param        request body CreateSlotRequest true "Slot details"
// @Success      201 {object} dto.Response{data=SlotResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/subareas/{id}/slots [post]
func (h *AreaHandler) CreateSlot(c *gin.Context) {
	subAreaID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.CreateSlot(c.Request.Context(), appparking.CreateSlotInput{
		SubAreaID:  subAreaID,
		SlotNumber: req.SlotNumber,
		SlotType:   parking.SlotType(req.SlotType),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, slotResponse(*view))
}

// UpdateSlot godoc
// @Summary      Update parking slot
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Slot ID"
// @Param        request body UpdateSlotRequest true "Slot details"
// @Success      200 {object} dto.Response{data=SlotResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/slots/{id} [put]
func (h *AreaHandler) UpdateSlot(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.areaService.UpdateSlot(c.Request.Context(), appparking.UpdateSlotInput{
		ID:       id,
		SlotType: parking.SlotType(req.SlotType),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, slotResponse(*view))
}

// DeleteSlot godoc
// @Summary      Delete parking slot
// @Tags         staff
// @Produce      json
// @Param        id path string true "Slot ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/slots/{id} [delete]
func (h *AreaHandler) DeleteSlot(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.areaService.DeleteSlot(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all area, sub-area and slot routes
func (h *AreaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	areas := rg.Group("/areas")
	{
		areas.GET("", h.ListAreas)
		areas.GET("/:id", h.GetArea)
	}
	rg.GET("/subareas/:id", h.GetSubArea)
	rg.GET("/slots", h.ListSlots)

	staff := rg.Group("/staff", middleware.StaffOnly())
	{
		staff.POST("/areas", h.CreateArea)
		staff.PUT("/areas/:id", h.UpdateArea)
		staff.DELETE("/areas/:id", h.DeleteArea)
		staff.POST("/areas/:id/subareas", h.CreateSubArea)
		staff.PUT("/subareas/:id", h.UpdateSubArea)
		staff.DELETE("/subareas/:id", h.DeleteSubArea)
		staff.POST("/subareas/:id/slots", h.CreateSlot)
		staff.PUT("/slots/:id", h.UpdateSlot)
		staff.DELETE("/slots/:id", h.DeleteSlot)
	}
}

func (h *AreaHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func areaResponse(a appparking.AreaView) AreaResponse {
	return AreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func subAreaResponse(s appparking.SubAreaView) SubAreaResponse {
	return SubAreaResponse{
		ID:          s.ID,
		AreaID:      s.AreaID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func slotResponse(s appparking.SlotView) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		SubAreaID:   s.SubAreaID,
		SlotNumber:  s.SlotNumber,
		SlotType:    string(s.SlotType),
		IsAvailable: s.IsAvailable,
	}
}
