package handler

import (
	"fmt"

	appreturns "github.com/aftersales/backend/internal/application/returns"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReturnHandler handles return record API endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *appreturns.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *appreturns.ReturnService) *ReturnHandler {
	return &ReturnHandler{
		returnService: returnService,
	}
}

// Create handles POST /returns
func (h *ReturnHandler) Create(c *gin.Context) {
	var req appreturns.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.CreatedWithMessage(c, record, "Return record created successfully")
}

// List handles GET /returns with optional status filter and pagination
func (h *ReturnHandler) List(c *gin.Context) {
	var filter appreturns.ReturnListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetStats handles GET /returns/stats
func (h *ReturnHandler) GetStats(c *gin.Context) {
	var filter appreturns.StatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stats, err := h.returnService.GetStats(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetByID handles GET /returns/:id
func (h *ReturnHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	record, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// GetByReturnNumber handles GET /returns/number/:return_number
func (h *ReturnHandler) GetByReturnNumber(c *gin.Context) {
	returnNumber := c.Param("return_number")
	if returnNumber == "" {
		h.BadRequest(c, "Return number is required")
		return
	}

	record, err := h.returnService.GetByReturnNumber(c.Request.Context(), returnNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// UpdateStatus handles PUT /returns/:id/status
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req appreturns.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.returnService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, record, "Return status updated successfully")
}

// BulkUpdateStatus handles PUT /returns/bulk/status
func (h *ReturnHandler) BulkUpdateStatus(c *gin.Context) {
	var req appreturns.BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.returnService.BulkUpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	message := fmt.Sprintf("Bulk status update completed: %d succeeded, %d failed",
		result.SuccessCount, result.FailedCount)
	h.SuccessWithMessage(c, result, message)
}

// RegisterRoutes registers return record routes on the given router group
func (h *ReturnHandler) RegisterRoutes(api *gin.RouterGroup) {
	returnsGroup := api.Group("/returns")
	{
		returnsGroup.POST("", h.Create)
		returnsGroup.GET("", h.List)
		returnsGroup.GET("/stats", h.GetStats)
		returnsGroup.GET("/number/:return_number", h.GetByReturnNumber)
		returnsGroup.GET("/:id", h.GetByID)
		returnsGroup.PUT("/:id/status", h.UpdateStatus)
		returnsGroup.PUT("/bulk/status", h.BulkUpdateStatus)
	}
}
