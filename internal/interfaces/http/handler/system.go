package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startTime: time.Now()}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/system/info", h.GetSystemInfo)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports process liveness. It is intentionally dependency-free so
// probes stay green while a backing store restarts.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic process information.
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      "Gestor API",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}
