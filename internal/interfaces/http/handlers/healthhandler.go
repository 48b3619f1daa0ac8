package handlers

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/shared/utils"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.OkResponse(c, gin.H{"status": "healthy"})
}
