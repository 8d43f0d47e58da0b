package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	analysisapp "github.com/rebechilabs/tributalks/internal/application/analysis"
	"github.com/rebechilabs/tributalks/internal/interfaces/http/dto"
	"github.com/rebechilabs/tributalks/internal/interfaces/http/middleware"
)

// AnalysisHandler handles financial analysis endpoints
type AnalysisHandler struct {
	BaseHandler
	service *analysisapp.Service
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(service *analysisapp.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// RegisterRoutes registers analysis routes on the API group
func (h *AnalysisHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analysis := rg.Group("/analysis")
	{
		analysis.POST("", h.Analyze)
		analysis.GET("", h.List)
		analysis.GET("/:id", h.Get)
	}
}

// Analyze derives the full financial picture for one period and stores it
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req analysisapp.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one stored analysis owned by the caller
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid analysis id")
		return
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid analysis id")
		return
	}

	resp, err := h.service.GetResult(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns the caller's stored analyses, newest period first
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if listReq.Page == 0 {
		listReq.Page = 1
	}
	if listReq.PageSize == 0 {
		listReq.PageSize = 20
	}

	results, total, err := h.service.ListResults(c.Request.Context(), userID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, listReq.Page, listReq.PageSize)
}

