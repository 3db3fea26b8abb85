package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/infrastructure/auth"
	"coachdesk/internal/shared/constants"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCoachID, claims.CoachID)
		c.Set(constants.ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth; it checks the role claim set there.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role != constants.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireCoachOwnership rejects coaches reaching into another coach's
// resources. Admins pass through.
func (m *AuthMiddleware) RequireCoachOwnership(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == constants.RoleAdmin {
			c.Next()
			return
		}

		coachID, err := utils.ParseUintParam(c, paramName, "coach")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if c.GetUint(constants.ContextKeyCoachID) != coachID {
			utils.ErrorResponse(c, http.StatusForbidden, "cannot access another coach's resources")
			c.Abort()
			return
		}

		c.Next()
	}
}
