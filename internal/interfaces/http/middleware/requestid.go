package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell/internal/shared/constants"
)

// RequestID attaches a request id to the context and response, reusing the
// client's X-Request-ID when one is supplied.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		c.Next()
	}
}
