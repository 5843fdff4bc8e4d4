package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", h.userIdentityMiddleware)

	users.GET("/me", h.getMe)
}

type userResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// @Summary Current user
// @Tags Users
// @Description Profile of the authenticated user
// @ModuleID getMe
// @Accept  json
// @Produce  json
// @Success 200 {object} userResponse
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) getMe(c *gin.Context) {
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

	c.JSON(http.StatusOK, userResponse{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		FirstName:     user.FirstName.String,
		LastName:      user.LastName.String,
		Role:          user.Role.String(),
		Phone:         user.Phone.String,
		Bio:           user.Bio.String,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	})
}
