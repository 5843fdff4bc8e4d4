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

func (h *Handler) initStartupRoutes(api *gin.RouterGroup) {
	startups := api.Group("/startups", h.userIdentityMiddleware)

	startups.POST("", h.requireRole(domain.RoleFounder, domain.RoleManager), h.createStartup)
	startups.GET("", h.listStartups)
	startups.GET("/:id", h.getStartup)
	startups.PUT("/:id", h.updateStartup)
	startups.POST("/:id/team", h.addTeamMember)
	startups.GET("/:id/projects", h.listStartupProjects)
	startups.GET("/:id/investments", h.listStartupInvestments)
	startups.GET("/:id/funding", h.listStartupFunding)
}

type createStartupRequest struct {
	Name           string  `json:"name" binding:"required,max=128"`
	Description    string  `json:"description" binding:"max=4000"`
	Industry       string  `json:"industry" binding:"max=64"`
	Stage          string  `json:"stage" binding:"omitempty,oneof=idea pre_seed seed series_a series_b growth"`
	Location       string  `json:"location" binding:"max=128"`
	Website        string  `json:"website" binding:"omitempty,url"`
	TeamSize       int     `json:"team_size" binding:"min=0"`
	Market         string  `json:"market" binding:"max=128"`
	MonthlyRevenue float64 `json:"monthly_revenue" binding:"min=0"`
	Valuation      float64 `json:"valuation" binding:"min=0"`
	FoundingDate   string  `json:"founding_date" binding:"required"`
}

// @Summary Create startup
// @Tags Startups
// @ModuleID createStartup
// @Accept  json
// @Produce  json
// @Param input body createStartupRequest true "startup info"
// @Success 201 {object} domain.Startup
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /startups [post]
func (h *Handler) createStartup(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	foundingDate, err := time.Parse("2006-01-02", req.FoundingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "founding_date must be YYYY-MM-DD"})
		return
	}

	startup, err := h.services.Startups.Create(c.Request.Context(), userID, service.CreateStartupInput{
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		Stage:          domain.StartupStage(req.Stage),
		Location:       req.Location,
		Website:        req.Website,
		TeamSize:       req.TeamSize,
		Market:         req.Market,
		MonthlyRevenue: req.MonthlyRevenue,
		Valuation:      req.Valuation,
		FoundingDate:   foundingDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, startup)
}

type startupListResponse struct {
	Startups []domain.Startup `json:"startups"`
}

// @Summary List startups
// @Tags Startups
// @Description Managers see all startups, founders their own, team members theirs
// @ModuleID listStartups
// @Accept  json
// @Produce  json
// @Success 200 {object} startupListResponse
// @Security UserAuth
// @Router /startups [get]
func (h *Handler) listStartups(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role, err := h.getUserRole(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var startups []domain.Startup
	switch role {
	case domain.RoleManager:
		startups, err = h.services.Startups.ListAll(c.Request.Context())
	default:
		startups, err = h.services.Startups.ListByFounder(c.Request.Context(), userID)
	}
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, startupListResponse{Startups: startups})
}

// @Summary Get startup
// @Tags Startups
// @ModuleID getStartup
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Success 200 {object} domain.Startup
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /startups/{id} [get]
func (h *Handler) getStartup(c *gin.Context) {
	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	startup, err := h.services.Startups.GetOneByID(c.Request.Context(), startupID)
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			errorResponse(c, StartupNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, startup)
}

type updateStartupRequest struct {
	Name           string  `json:"name" binding:"required,max=128"`
	Description    string  `json:"description" binding:"max=4000"`
	Industry       string  `json:"industry" binding:"max=64"`
	Stage          string  `json:"stage" binding:"omitempty,oneof=idea pre_seed seed series_a series_b growth"`
	Location       string  `json:"location" binding:"max=128"`
	Website        string  `json:"website" binding:"omitempty,url"`
	TeamSize       int     `json:"team_size" binding:"min=0"`
	Market         string  `json:"market" binding:"max=128"`
	MonthlyRevenue float64 `json:"monthly_revenue" binding:"min=0"`
	Valuation      float64 `json:"valuation" binding:"min=0"`
	IsActive       *bool   `json:"is_active"`
}

// @Summary Update startup
// @Tags Startups
// @Description Restricted to the owning founder and managers
// @ModuleID updateStartup
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Param input body updateStartupRequest true "startup info"
// @Success 200 {object} domain.Startup
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /startups/{id} [put]
func (h *Handler) updateStartup(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req updateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	startup, err := h.services.Startups.GetOneByID(c.Request.Context(), startupID)
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			errorResponse(c, StartupNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	startup.Name = req.Name
	startup.Description = req.Description
	startup.Industry = req.Industry
	if req.Stage != "" {
		startup.Stage = domain.StartupStage(req.Stage)
	}
	startup.Location = req.Location
	startup.Website.String = req.Website
	startup.Website.Valid = req.Website != ""
	startup.TeamSize = req.TeamSize
	startup.Market = req.Market
	startup.MonthlyRevenue = req.MonthlyRevenue
	startup.Valuation = req.Valuation
	if req.IsActive != nil {
		startup.IsActive = *req.IsActive
	}

	if err := h.services.Startups.Update(c.Request.Context(), userID, startup); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, startup)
}

type addTeamMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// @Summary Add team member
// @Tags Startups
// @ModuleID addTeamMember
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Param input body addTeamMemberRequest true "team member"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /startups/{id}/team [post]
func (h *Handler) addTeamMember(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Startups.AddTeamMember(c.Request.Context(), userID, startupID, req.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
		case errors.Is(err, service.ErrStartupNotFound):
			errorResponse(c, StartupNotFoundCode)
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, UserNotFoundCode)
		case errors.Is(err, service.ErrInvalidRole):
			errorResponse(c, InvalidRoleCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

type projectListResponse struct {
	Projects []domain.Project `json:"projects"`
}

// @Summary Startup projects
// @Tags Startups
// @ModuleID listStartupProjects
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Success 200 {object} projectListResponse
// @Security UserAuth
// @Router /startups/{id}/projects [get]
func (h *Handler) listStartupProjects(c *gin.Context) {
	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	projects, err := h.services.Projects.ListByStartup(c.Request.Context(), startupID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

type investmentListResponse struct {
	Investments []domain.Investment `json:"investments"`
}

// @Summary Startup investments
// @Tags Startups
// @ModuleID listStartupInvestments
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Success 200 {object} investmentListResponse
// @Security UserAuth
// @Router /startups/{id}/investments [get]
func (h *Handler) listStartupInvestments(c *gin.Context) {
	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	investments, err := h.services.Investments.ListByStartup(c.Request.Context(), startupID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, investmentListResponse{Investments: investments})
}

type fundingListResponse struct {
	Applications []domain.FundingApplication `json:"applications"`
}

// @Summary Startup funding applications
// @Tags Startups
// @ModuleID listStartupFunding
// @Accept  json
// @Produce  json
// @Param id path string true "startup id"
// @Success 200 {object} fundingListResponse
// @Security UserAuth
// @Router /startups/{id}/funding [get]
func (h *Handler) listStartupFunding(c *gin.Context) {
	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	applications, err := h.services.Funding.ListByStartup(c.Request.Context(), startupID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, fundingListResponse{Applications: applications})
}
