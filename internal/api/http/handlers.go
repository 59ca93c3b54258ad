package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/NavFS/internal/backend"
	"github.com/GriffinCanCode/NavFS/internal/domain/session"
	"github.com/GriffinCanCode/NavFS/internal/domain/watch"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NavFS/internal/service"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/GriffinCanCode/NavFS/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	backends *backend.Registry
	sessions *session.Manager
	watches  *watch.Manager
	metrics  *monitoring.Metrics
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *service.Registry,
	backends *backend.Registry,
	sessions *session.Manager,
	watches *watch.Manager,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		registry: registry,
		backends: backends,
		sessions: sessions,
		watches:  watches,
		metrics:  metrics,
		started:  time.Now(),
	}
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "NavFS",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"uptime":   time.Since(h.started).String(),
		"registry": h.registry.Stats(),
		"backend":  h.backends.Status(),
		"sessions": h.sessions.Count(),
		"watches":  h.watches.Count(),
	})
}

// ListServices lists registered command definitions
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(raw)
		category = &cat
	}

	services := h.registry.List(category)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    h.registry.Stats(),
	})
}

// ExecuteCommand dispatches one command through the registry. The result
// envelope is always 200; HTTP errors mark dispatch-level failures only.
func (h *Handlers) ExecuteCommand(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCommandID(req.Command, "command", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var appCtx *types.Context
	if req.SessionID != nil {
		appCtx = &types.Context{SessionID: req.SessionID}
	}

	timer := monitoring.NewTimer(h.metrics, req.Command)
	result, err := h.registry.Execute(c.Request.Context(), req.Command, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		if result != nil && result.Code == types.CodeInvalidRequest {
			c.JSON(http.StatusNotFound, result)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "success"
	if !result.Success {
		status = "failure"
		if h.metrics != nil && result.Code != "" {
			h.metrics.RecordCommandError(req.Command, result.Code.String())
		}
	}
	timer.Stop(status)

	c.JSON(http.StatusOK, result)
}

// Backend exposes the dynamic loader observers
func (h *Handlers) Backend(c *gin.Context) {
	c.JSON(http.StatusOK, h.backends.Status())
}

// MetricsJSON returns a counter summary for callers without a Prometheus
// scraper.
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
