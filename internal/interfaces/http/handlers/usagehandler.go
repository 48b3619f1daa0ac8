package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appusage "inkwell/internal/application/usage"
	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

// UsageLedger is the application-layer contract for the usage endpoints.
type UsageLedger interface {
	QuotaGate
	Status(ctx context.Context, id identity.Identity) (*appusage.Status, error)
}

type UsageHandler struct {
	ledger UsageLedger
	logger logger.Interface
}

func NewUsageHandler(ledger UsageLedger, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		ledger: ledger,
		logger: logger,
	}
}

// usageFields carries client-reported counters as float64 so non-finite
// JSON numbers are caught before narrowing to integers.
type usageFields struct {
	TotalTokens       float64 `json:"total_tokens"`
	InputTokens       float64 `json:"input_tokens"`
	OutputTokens      float64 `json:"output_tokens"`
	RequestCount      float64 `json:"request_count"`
	SessionCount      float64 `json:"session_count"`
	NoteProposalCount float64 `json:"note_proposal_count"`
}

// toDelta narrows the reported counters. It returns false when any field
// is negative or non-finite; such a payload must not reach storage.
func (f *usageFields) toDelta() (usage.Delta, bool) {
	fields := []float64{
		f.TotalTokens, f.InputTokens, f.OutputTokens,
		f.RequestCount, f.SessionCount, f.NoteProposalCount,
	}
	for _, v := range fields {
		if !finiteNonNegative(v) {
			return usage.Delta{}, false
		}
	}

	return usage.Delta{
		TotalTokens:       int64(f.TotalTokens),
		InputTokens:       int64(f.InputTokens),
		OutputTokens:      int64(f.OutputTokens),
		RequestCount:      int64(f.RequestCount),
		SessionCount:      int64(f.SessionCount),
		NoteProposalCount: int64(f.NoteProposalCount),
	}, true
}

type usageIdentityRequest struct {
	DeviceID string `json:"deviceId"`
}

// Status returns the caller's usage snapshot for the current period.
func (h *UsageHandler) Status(c *gin.Context) {
	var req usageIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{
			"usage":     appusage.Status{},
			"is_member": false,
		})
		return
	}

	status, err := h.ledger.Status(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to load usage status", "error", err)
		utils.FailResponse(c, http.StatusInternalServerError, "failed to load usage status")
		return
	}

	utils.OkResponse(c, gin.H{
		"usage":     status,
		"is_member": id.Kind() == identity.KindAuthenticated,
	})
}

type recordUsageRequest struct {
	DeviceID string `json:"deviceId"`
	usageFields
}

// Record applies a usage delta. The zero delta is acknowledged with
// {ok:true} and causes no storage access; negative or non-finite fields
// are rejected before any narrowing.
func (h *UsageHandler) Record(c *gin.Context) {
	var req recordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	delta, ok := req.toDelta()
	if !ok {
		utils.FailResponse(c, http.StatusBadRequest, "usage fields must be non-negative finite numbers")
		return
	}

	if err := h.ledger.Record(c.Request.Context(), id, delta); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.OkResponse(c, nil)
}
