package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userId"
	roleCtx             = "userRole"
)

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	id, role, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Error("parse auth header failed", zap.Error(err))
		}
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(userCtx, id)
	c.Set(roleCtx, role)
}

// requireRole gates a route group to the given roles; it assumes
// userIdentityMiddleware already ran.
func (h *Handler) requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := h.getUserRole(c)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func (h *Handler) parseAuthHeader(c *gin.Context) (string, string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", "", errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

func (h *Handler) getUserUUID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(userCtx)
	if !ok {
		return uuid.Nil, errors.New("user id not found")
	}

	return uuid.Parse(id.(string))
}

func (h *Handler) getUserRole(c *gin.Context) (domain.Role, error) {
	raw, ok := c.Get(roleCtx)
	if !ok {
		return "", errors.New("user role not found")
	}

	role, valid := domain.ParseRole(raw.(string))
	if !valid {
		return "", errors.New("unknown role in token")
	}
	return role, nil
}
