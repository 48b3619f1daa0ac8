// Package handlers implements the HTTP surface. Every handler resolves the
// caller's identity from the verified credential and the request's device
// id before touching any service.
package handlers

import (
	"math"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain/identity"
	"inkwell/internal/shared/constants"
)

// resolveIdentity combines the middleware's verification result with the
// request's device id. A credential that failed verification leaves no
// user id in the context, so the caller falls back to guest scope when a
// device id is present.
func resolveIdentity(c *gin.Context, deviceID string) identity.Identity {
	return identity.Resolve(c.GetString(constants.ContextKeyUserID), deviceID)
}

// queryIdentity resolves the identity for read endpoints, where guests
// carry their device id as a query parameter.
func queryIdentity(c *gin.Context) identity.Identity {
	return resolveIdentity(c, c.Query("deviceId"))
}

// finiteNonNegative reports whether a JSON number can be narrowed to a
// non-negative int64. NaN and infinities arrive as valid float64 values
// through some clients and must be rejected before narrowing, as must
// values past the int64 range.
func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v < math.MaxInt64
}
