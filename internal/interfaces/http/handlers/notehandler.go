package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/journal"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

// NoteService is the application-layer contract the note handler depends on.
type NoteService interface {
	List(ctx context.Context, id identity.Identity) ([]*journal.Note, error)
	Get(ctx context.Context, id identity.Identity, sid string) (*journal.Note, error)
	Create(ctx context.Context, id identity.Identity, title, content string) (*journal.Note, error)
	Update(ctx context.Context, id identity.Identity, sid, title, content string) (*journal.Note, error)
	Delete(ctx context.Context, id identity.Identity, sid string) error
	Render(ctx context.Context, id identity.Identity, sid string) (string, error)
	AddDetail(ctx context.Context, id identity.Identity, noteSID, content string) (*journal.NoteDetail, error)
	ListDetails(ctx context.Context, id identity.Identity, noteSID string) ([]*journal.NoteDetail, error)
}

type NoteHandler struct {
	notes  NoteService
	logger logger.Interface
}

func NewNoteHandler(notes NoteService, logger logger.Interface) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		logger: logger,
	}
}

type noteResponse struct {
	SID       string    `json:"sid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(note *journal.Note) noteResponse {
	return noteResponse{
		SID:       note.SID(),
		Title:     note.Title(),
		Content:   note.Content(),
		CreatedAt: note.CreatedAt(),
		UpdatedAt: note.UpdatedAt(),
	}
}

type noteDetailResponse struct {
	SID       string    `json:"sid"`
	NoteSID   string    `json:"note_sid"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toNoteDetailResponse(detail *journal.NoteDetail) noteDetailResponse {
	return noteDetailResponse{
		SID:       detail.SID(),
		NoteSID:   detail.NoteSID(),
		Content:   detail.Content(),
		CreatedAt: detail.CreatedAt(),
	}
}

type writeNoteRequest struct {
	DeviceID string `json:"deviceId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// List returns the caller's notes. A blocked caller receives an
// empty-shaped body so clients render an empty journal without branching.
func (h *NoteHandler) List(c *gin.Context) {
	id := queryIdentity(c)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"notes": []noteResponse{}})
		return
	}

	notes, err := h.notes.List(c.Request.Context(), id)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	responses := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, toNoteResponse(note))
	}

	utils.OkResponse(c, gin.H{"notes": responses})
}

func (h *NoteHandler) Get(c *gin.Context) {
	id := queryIdentity(c)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"note": nil})
		return
	}

	note, err := h.notes.Get(c.Request.Context(), id, c.Param("sid"))
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, gin.H{"note": toNoteResponse(note)})
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req writeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	note, err := h.notes.Create(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, gin.H{"note": toNoteResponse(note)})
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req writeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	note, err := h.notes.Update(c.Request.Context(), id, c.Param("sid"), req.Title, req.Content)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, gin.H{"note": toNoteResponse(note)})
}

type deleteNoteRequest struct {
	DeviceID string `json:"deviceId"`
}

func (h *NoteHandler) Delete(c *gin.Context) {
	// Mutations carry the device id in the body; the query parameter is
	// accepted as a fallback for clients that omit a DELETE body.
	var req deleteNoteRequest
	_ = c.ShouldBindJSON(&req)
	if req.DeviceID == "" {
		req.DeviceID = c.Query("deviceId")
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	if err := h.notes.Delete(c.Request.Context(), id, c.Param("sid")); err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, nil)
}

// Render returns the sanitized HTML preview of a note.
func (h *NoteHandler) Render(c *gin.Context) {
	id := queryIdentity(c)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"html": ""})
		return
	}

	html, err := h.notes.Render(c.Request.Context(), id, c.Param("sid"))
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, gin.H{"html": html})
}

type addDetailRequest struct {
	DeviceID string `json:"deviceId"`
	Content  string `json:"content"`
}

func (h *NoteHandler) AddDetail(c *gin.Context) {
	var req addDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveIdentity(c, req.DeviceID)
	if id.IsBlocked() {
		utils.FailResponse(c, http.StatusUnauthorized, "no identity")
		return
	}

	detail, err := h.notes.AddDetail(c.Request.Context(), id, c.Param("sid"), req.Content)
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	utils.OkResponse(c, gin.H{"detail": toNoteDetailResponse(detail)})
}

func (h *NoteHandler) ListDetails(c *gin.Context) {
	id := queryIdentity(c)
	if id.IsBlocked() {
		utils.OkEmptyResponse(c, http.StatusUnauthorized, gin.H{"details": []noteDetailResponse{}})
		return
	}

	details, err := h.notes.ListDetails(c.Request.Context(), id, c.Param("sid"))
	if err != nil {
		utils.FailResponseWithError(c, err)
		return
	}

	responses := make([]noteDetailResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, toNoteDetailResponse(detail))
	}

	utils.OkResponse(c, gin.H{"details": responses})
}
