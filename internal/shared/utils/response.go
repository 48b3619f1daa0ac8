package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/shared/errors"
)

// All endpoints answer with an `ok` boolean envelope. Extra payload fields
// sit next to `ok` rather than under a nested data key, matching what the
// clients already parse.

// OkResponse sends {ok:true} merged with the given payload fields.
func OkResponse(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// OkEmptyResponse sends an empty-shaped success-compatible body with a
// non-200 status. Blocked reads use this so clients can render an empty
// list without branching on the envelope shape.
func OkEmptyResponse(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// FailResponse sends {ok:false, message} with the given status code.
func FailResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"ok": false, "message": message})
}

// FailResponseWithError maps an error onto the envelope. AppError carries
// its own status code; anything else is reported as a generic internal
// failure so storage details never leak to the client.
func FailResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		FailResponse(c, appErr.Code, appErr.Message)
		return
	}
	FailResponse(c, http.StatusInternalServerError, "internal server error")
}
