package handlers

import (
	"net/http"

	"github.com/dylankatchen/achieveup-badges/internal/client"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and upstream reachability.
type HealthHandler struct {
	backend *client.Client
}

func NewHealthHandler(backend *client.Client) *HealthHandler {
	return &HealthHandler{backend: backend}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	backendStatus := "ok"
	if h.backend != nil && !h.backend.Healthy(c.Request.Context()) {
		backendStatus = "error"
	}

	status := "ok"
	if backendStatus != "ok" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": "AchieveUp Badge Service is running",
		"checks": gin.H{
			"backend": backendStatus,
		},
	})
}
