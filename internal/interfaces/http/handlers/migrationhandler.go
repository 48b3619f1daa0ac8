package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/migration"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

// MigrationCoordinator is the application-layer contract for the guest
// data endpoints.
type MigrationCoordinator interface {
	HasGuestData(ctx context.Context, userID, deviceID string) (bool, error)
	Merge(ctx context.Context, userID, deviceID string) (*migration.Result, error)
}

type MigrationHandler struct {
	coordinator MigrationCoordinator
	logger      logger.Interface
}

func NewMigrationHandler(coordinator MigrationCoordinator, logger logger.Interface) *MigrationHandler {
	return &MigrationHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// HasGuestData reports whether the device still owns unclaimed journal
// data. Only an authenticated caller can ask, since the answer is about
// merging into their account.
func (h *MigrationHandler) HasGuestData(c *gin.Context) {
	id := queryIdentity(c)
	if id.Kind() != identity.KindAuthenticated {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"hasData": false})
		return
	}

	deviceID := c.Query("deviceId")
	if deviceID == "" {
		utils.FailResponse(c, http.StatusBadRequest, "deviceId is required")
		return
	}

	hasData, err := h.coordinator.HasGuestData(c.Request.Context(), id.UserID(), deviceID)
	if err != nil {
		h.logger.Errorw("failed to probe guest data", "error", err)
		utils.FailResponse(c, http.StatusInternalServerError, "failed to check guest data")
		return
	}

	utils.OkResponse(c, gin.H{"hasData": hasData})
}

type mergeRequest struct {
	DeviceID string `json:"deviceId"`
}

// Merge claims the device's guest data for the authenticated account.
// A partial failure leaves earlier tables claimed; the client may retry
// the same call and only the remaining rows will be touched.
func (h *MigrationHandler) Merge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.Kind() != identity.KindAuthenticated {
		utils.FailResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if req.DeviceID == "" {
		utils.FailResponse(c, http.StatusBadRequest, "deviceId is required")
		return
	}

	result, err := h.coordinator.Merge(c.Request.Context(), id.UserID(), req.DeviceID)
	if err != nil {
		utils.FailResponse(c, http.StatusInternalServerError, "guest data merge failed, please retry")
		return
	}

	claimed := make(map[string]int64, len(result.ClaimedRows))
	for table, count := range result.ClaimedRows {
		claimed[string(table)] = count
	}

	utils.OkResponse(c, gin.H{"claimed_rows": claimed})
}
