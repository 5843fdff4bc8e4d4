package v1

import (
	"errors"
	"net/http"

	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.userIdentityMiddleware, h.getDashboard)
}

// @Summary Dashboard
// @Tags Dashboard
// @Description Role-scoped aggregates for the authenticated user
// @ModuleID getDashboard
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, UserNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	dashboard, err := h.services.Dashboard.ForUser(c.Request.Context(), user)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
