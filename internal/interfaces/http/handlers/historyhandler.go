package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/journal"
	"inkwell/internal/domain/usage"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

// HistoryService is the application-layer contract for session history.
type HistoryService interface {
	List(ctx context.Context, id identity.Identity, limit int) ([]*journal.HistoryEntry, error)
	Append(ctx context.Context, id identity.Identity, sessionID string, role journal.HistoryRole, content string, metadata map[string]any) (*journal.HistoryEntry, error)
}

// QuotaGate is the slice of the usage ledger the history handler needs:
// the append is AI-invoking, so it is quota-checked before and metered
// after.
type QuotaGate interface {
	Decide(ctx context.Context, id identity.Identity) usage.Decision
	Record(ctx context.Context, id identity.Identity, delta usage.Delta) error
}

type HistoryHandler struct {
	history HistoryService
	quota   QuotaGate
	logger  logger.Interface
}

func NewHistoryHandler(history HistoryService, quota QuotaGate, logger logger.Interface) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		quota:   quota,
		logger:  logger,
	}
}

type historyEntryResponse struct {
	SessionID string         `json:"session_id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func toHistoryEntryResponse(entry *journal.HistoryEntry) historyEntryResponse {
	return historyEntryResponse{
		SessionID: entry.SessionID(),
		Role:      string(entry.Role()),
		Content:   entry.Content(),
		Metadata:  entry.Metadata(),
		CreatedAt: entry.CreatedAt(),
	}
}

func (h *HistoryHandler) List(c *gin.Context) {
	id := queryIdentity(c)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"history": []historyEntryResponse{}})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.history.List(c.Request.Context(), id, limit)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	responses := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toHistoryEntryResponse(entry))
	}

	utils.OkResponse(c, gin.H{"history": responses})
}

type appendHistoryRequest struct {
	DeviceID  string         `json:"deviceId"`
	SessionID string         `json:"sessionId"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Usage     *usageFields   `json:"usage"`
}

// Append stores one session turn. The call is quota-gated: a denied scope
// gets a 429 with the reset hint and nothing is stored. Usage attached to
// the turn is metered afterward, best-effort.
func (h *HistoryHandler) Append(c *gin.Context) {
	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	decision := h.quota.Decide(c.Request.Context(), id)
	if !decision.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"ok":      false,
			"message": decision.Message,
			"limit":   string(decision.Limit),
		})
		return
	}

	entry, err := h.history.Append(c.Request.Context(), id, req.SessionID, journal.HistoryRole(req.Role), req.Content, req.Metadata)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	if req.Usage != nil {
		delta, ok := req.Usage.toDelta()
		if ok {
			delta.RequestCount = 1
			if err := h.quota.Record(c.Request.Context(), id, delta); err != nil {
				h.logger.Warnw("failed to meter history append", "error", err)
			}
		}
	}

	utils.OkResponse(c, gin.H{"entry": toHistoryEntryResponse(entry)})
}
