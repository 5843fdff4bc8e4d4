package v1

import (
	"errors"
	"net/http"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initFundingRoutes(api *gin.RouterGroup) {
	funding := api.Group("/funding", h.userIdentityMiddleware)

	funding.POST("/applications", h.requireRole(domain.RoleFounder), h.submitFundingApplication)
	funding.GET("/applications", h.requireRole(domain.RoleManager), h.listFundingApplications)
	funding.PUT("/applications/:id/status", h.requireRole(domain.RoleManager), h.updateFundingStatus)
}

type submitFundingRequest struct {
	StartupID     uuid.UUID `json:"startup_id" binding:"required"`
	Round         string    `json:"round" binding:"required,oneof=pre_seed seed series_a series_b series_c"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	EquityOffered *float64  `json:"equity_offered" binding:"omitempty,min=0,max=100"`
	Valuation     *float64  `json:"valuation" binding:"omitempty,min=0"`
	Pitch         string    `json:"pitch" binding:"required,max=8000"`
	UseOfFunds    string    `json:"use_of_funds" binding:"max=4000"`
	Milestones    string    `json:"milestones" binding:"max=4000"`
}

// @Summary Submit funding application
// @Tags Funding
// @Description Founder-only; submission fans out to all managers
// @ModuleID submitFundingApplication
// @Accept  json
// @Produce  json
// @Param input body submitFundingRequest true "application"
// @Success 201 {object} domain.FundingApplication
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /funding/applications [post]
func (h *Handler) submitFundingApplication(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req submitFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	application, err := h.services.Funding.Submit(c.Request.Context(), userID, service.CreateFundingInput{
		StartupID:     req.StartupID,
		Round:         domain.FundingRound(req.Round),
		Amount:        req.Amount,
		EquityOffered: req.EquityOffered,
		Valuation:     req.Valuation,
		Pitch:         req.Pitch,
		UseOfFunds:    req.UseOfFunds,
		Milestones:    req.Milestones,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStartupNotFound):
			errorResponse(c, StartupNotFoundCode)
		case errors.Is(err, service.ErrPermissionDenied):
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, application)
}

// @Summary List funding applications
// @Tags Funding
// @Description Manager-only; filter with the status query parameter
// @ModuleID listFundingApplications
// @Accept  json
// @Produce  json
// @Param status query string false "application status, default submitted"
// @Success 200 {object} fundingListResponse
// @Security UserAuth
// @Router /funding/applications [get]
func (h *Handler) listFundingApplications(c *gin.Context) {
	status := domain.FundingStatus(c.DefaultQuery("status", string(domain.FundingSubmitted)))

	applications, err := h.services.Funding.ListByStatus(c.Request.Context(), status)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, fundingListResponse{Applications: applications})
}

type updateFundingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft submitted under_review approved rejected funded"`
}

// @Summary Update funding status
// @Tags Funding
// @Description Manager-only; the new status fans out to the startup founder
// @ModuleID updateFundingStatus
// @Accept  json
// @Produce  json
// @Param id path string true "application id"
// @Param input body updateFundingStatusRequest true "new status"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /funding/applications/{id}/status [put]
func (h *Handler) updateFundingStatus(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req updateFundingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Funding.UpdateStatus(c.Request.Context(), userID, applicationID, domain.FundingStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrFundingNotFound) {
			errorResponse(c, FundingNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
