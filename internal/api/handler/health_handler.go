package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, db *gorm.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db}
}

// Check handles GET /health. It pings the database and reports sanitized
// environment configuration. Secrets are reported as set/unset only.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		status, dbStatus = "degraded", "unavailable: "+err.Error()
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			status, dbStatus = "degraded", "unavailable: "+err.Error()
		}
	}

	response.OK(c, dto.HealthResponse{
		Status:   status,
		Database: dbStatus,
		Environment: map[string]string{
			"db_host":         h.cfg.Database.Host,
			"db_name":         h.cfg.Database.Name,
			"redis_cache":     boolWord(h.cfg.Redis.Addr != ""),
			"linear_api_key":  boolWord(h.cfg.Linear.APIKey != ""),
			"linear_endpoint": h.cfg.Linear.Endpoint,
			"log_level":       h.cfg.Log.Level,
			"server_port":     fmt.Sprintf("%d", h.cfg.Server.Port),
		},
	})
}

func boolWord(set bool) string {
	if set {
		return "set"
	}
	return "unset"
}
