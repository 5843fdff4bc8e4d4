package v1

import (
	"github.com/venturenest/backend/internal/config"
	"github.com/venturenest/backend/internal/service"
	"github.com/venturenest/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title VentureNest API
// @version 1.0
// @description Venture portfolio management backend

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initUsersRoutes(v1)
	h.initNotificationRoutes(v1)
	h.initConversationRoutes(v1)
	h.initStartupRoutes(v1)
	h.initProjectRoutes(v1)
	h.initTaskRoutes(v1)
	h.initInvestmentRoutes(v1)
	h.initFundingRoutes(v1)
	h.initDashboardRoutes(v1)
}
