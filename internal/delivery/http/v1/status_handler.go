package v1

import (
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	healthUC usecase.HealthUsecase
	cfg      *config.Config
}

// NewStatusHandler registers the root status and health check routes
func NewStatusHandler(r *gin.Engine, healthUC usecase.HealthUsecase, cfg *config.Config) {
	handler := &StatusHandler{
		healthUC: healthUC,
		cfg:      cfg,
	}

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health)
}

// Root godoc
// @Summary      API Status
// @Description  Returns a welcome message with the running status and version.
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *StatusHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the " + h.cfg.SiteName + " API",
		"status":  "running",
		"version": h.cfg.Version,
	})
}

// Health godoc
// @Summary      Health Check
// @Description  Reports service health.
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
