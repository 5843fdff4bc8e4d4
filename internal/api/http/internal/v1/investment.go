package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initInvestmentRoutes(api *gin.RouterGroup) {
	investments := api.Group("/investments", h.userIdentityMiddleware)

	investments.POST("", h.requireRole(domain.RoleInvestor, domain.RoleManager), h.createInvestment)
	investments.GET("", h.requireRole(domain.RoleInvestor, domain.RoleManager), h.listMyInvestments)
}

type createInvestmentRequest struct {
	StartupID      uuid.UUID `json:"startup_id" binding:"required"`
	Amount         float64   `json:"amount" binding:"required,gt=0"`
	Equity         float64   `json:"equity" binding:"min=0,max=100"`
	Valuation      float64   `json:"valuation" binding:"min=0"`
	Round          string    `json:"round" binding:"required,oneof=pre_seed seed series_a series_b series_c"`
	InvestmentDate string    `json:"investment_date" binding:"required"`
}

// @Summary Create investment
// @Tags Investments
// @ModuleID createInvestment
// @Accept  json
// @Produce  json
// @Param input body createInvestmentRequest true "investment info"
// @Success 201 {object} domain.Investment
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /investments [post]
func (h *Handler) createInvestment(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	investmentDate, err := time.Parse("2006-01-02", req.InvestmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "investment_date must be YYYY-MM-DD"})
		return
	}

	investment, err := h.services.Investments.Create(c.Request.Context(), userID, service.CreateInvestmentInput{
		StartupID:      req.StartupID,
		Amount:         req.Amount,
		Equity:         req.Equity,
		Valuation:      req.Valuation,
		Round:          domain.FundingRound(req.Round),
		InvestmentDate: investmentDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			errorResponse(c, StartupNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

type portfolioResponse struct {
	Investments   []domain.Investment `json:"investments"`
	TotalInvested float64             `json:"total_invested"`
	CurrentValue  float64             `json:"current_value"`
}

// @Summary My investments
// @Tags Investments
// @Description Portfolio of the authenticated investor with value aggregates
// @ModuleID listMyInvestments
// @Accept  json
// @Produce  json
// @Success 200 {object} portfolioResponse
// @Security UserAuth
// @Router /investments [get]
func (h *Handler) listMyInvestments(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	investments, err := h.services.Investments.ListByInvestor(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	response := portfolioResponse{Investments: investments}
	for i := range investments {
		response.TotalInvested += investments[i].Amount
		response.CurrentValue += investments[i].CurrentValue()
	}

	c.JSON(http.StatusOK, response)
}
