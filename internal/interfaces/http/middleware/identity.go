package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/shared/constants"
	"inkwell/internal/shared/logger"
)

type IdentityMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewIdentityMiddleware(jwtService *auth.JWTService, logger logger.Interface) *IdentityMiddleware {
	return &IdentityMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// Resolve verifies the bearer credential when one is presented and records
// the verified user id in the context. It never aborts: a missing,
// malformed, or expired credential simply leaves no user id, and the
// handler falls back to the request's device id.
func (m *IdentityMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Debugw("malformed authorization header")
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Debugw("failed to verify session token", "error", err)
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}
