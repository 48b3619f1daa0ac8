package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"inkwell/internal/domain/migration"
)

type mockMigrationCoordinator struct {
	hasGuestDataFn func(ctx context.Context, userID, deviceID string) (bool, error)
	mergeFn        func(ctx context.Context, userID, deviceID string) (*migration.Result, error)

	calls int
}

func (m *mockMigrationCoordinator) HasGuestData(ctx context.Context, userID, deviceID string) (bool, error) {
	m.calls++
	if m.hasGuestDataFn != nil {
		return m.hasGuestDataFn(ctx, userID, deviceID)
	}
	return false, nil
}

func (m *mockMigrationCoordinator) Merge(ctx context.Context, userID, deviceID string) (*migration.Result, error) {
	m.calls++
	if m.mergeFn != nil {
		return m.mergeFn(ctx, userID, deviceID)
	}
	return &migration.Result{ClaimedRows: map[migration.Table]int64{}}, nil
}

func newMigrationEngine(state callerState, coordinator MigrationCoordinator) *gin.Engine {
	handler := NewMigrationHandler(coordinator, testLogger())
	return newTestEngine(state, func(engine *gin.Engine) {
		engine.GET("/api/guest-data", handler.HasGuestData)
		engine.POST("/api/guest-data/merge", handler.Merge)
	})
}

func TestMigrationHandler_HasGuestData_RequiresAuthentication(t *testing.T) {
	coordinator := &mockMigrationCoordinator{}
	engine := newMigrationEngine(asGuest(), coordinator)

	w := performRequest(t, engine, http.MethodGet, "/api/guest-data?deviceId=dev1", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, false, body["hasData"])
	assert.Zero(t, coordinator.calls)
}

func TestMigrationHandler_HasGuestData(t *testing.T) {
	var seenUser, seenDevice string
	coordinator := &mockMigrationCoordinator{
		hasGuestDataFn: func(ctx context.Context, userID, deviceID string) (bool, error) {
			seenUser, seenDevice = userID, deviceID
			return true, nil
		},
	}
	engine := newMigrationEngine(asUser("u1"), coordinator)

	w := performRequest(t, engine, http.MethodGet, "/api/guest-data?deviceId=dev1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["hasData"])
	assert.Equal(t, "u1", seenUser)
	assert.Equal(t, "dev1", seenDevice)
}

func TestMigrationHandler_HasGuestData_MissingDeviceID(t *testing.T) {
	coordinator := &mockMigrationCoordinator{}
	engine := newMigrationEngine(asUser("u1"), coordinator)

	w := performRequest(t, engine, http.MethodGet, "/api/guest-data", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, coordinator.calls)
}

func TestMigrationHandler_Merge(t *testing.T) {
	coordinator := &mockMigrationCoordinator{
		mergeFn: func(ctx context.Context, userID, deviceID string) (*migration.Result, error) {
			return &migration.Result{
				ClaimedRows: map[migration.Table]int64{
					migration.TableNotes:          3,
					migration.TableNoteDetails:    5,
					migration.TableHistoryEntries: 0,
				},
			}, nil
		},
	}
	engine := newMigrationEngine(asUser("u1"), coordinator)

	w := performRequest(t, engine, http.MethodPost, "/api/guest-data/merge", gin.H{"deviceId": "dev1"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["ok"])

	claimed, ok := body["claimed_rows"].(map[string]any)
	assert.True(t, ok)
	assert.EqualValues(t, 3, claimed["notes"])
	assert.EqualValues(t, 5, claimed["note_details"])
	assert.EqualValues(t, 0, claimed["history_entries"])
}

func TestMigrationHandler_Merge_RequiresAuthentication(t *testing.T) {
	coordinator := &mockMigrationCoordinator{}
	engine := newMigrationEngine(asGuest(), coordinator)

	w := performRequest(t, engine, http.MethodPost, "/api/guest-data/merge", gin.H{"deviceId": "dev1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, coordinator.calls)
}

func TestMigrationHandler_Merge_FailureAsksForRetry(t *testing.T) {
	coordinator := &mockMigrationCoordinator{
		mergeFn: func(ctx context.Context, userID, deviceID string) (*migration.Result, error) {
			return nil, assert.AnError
		},
	}
	engine := newMigrationEngine(asUser("u1"), coordinator)

	w := performRequest(t, engine, http.MethodPost, "/api/guest-data/merge", gin.H{"deviceId": "dev1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["message"], "retry")
}
