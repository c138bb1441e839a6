package handler

import (
	"time"

	"donorhub/config"
	"donorhub/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	serviceName string
	now         func() time.Time
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	name := cfg.Env.ServiceName
	if name == "" {
		name = "donorhub"
	}

	return &HealthHandler{serviceName: name, now: time.Now}
}

// Check handles GET /health and GET /users/health.
func (h *HealthHandler) Check(c echo.Context) error {
	return response.OK(c, HealthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Timestamp: h.now().UTC(),
	})
}
