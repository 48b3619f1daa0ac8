package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"inkwell/internal/shared/constants"
	"inkwell/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// callerState simulates what the identity middleware leaves in the
// context: nothing for guests (a failed credential verification leaves
// nothing either), or a verified user id for members.
type callerState struct {
	userID string
}

func asGuest() callerState {
	return callerState{}
}

func asUser(userID string) callerState {
	return callerState{userID: userID}
}

func newTestEngine(state callerState, register func(*gin.Engine)) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if state.userID != "" {
			c.Set(constants.ContextKeyUserID, state.userID)
		}
		c.Next()
	})
	register(engine)
	return engine
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
