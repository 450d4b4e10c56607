package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	httputil "bookline/pkg/http"
	"bookline/pkg/logger"
)

type HealthHandler struct {
	serviceName string
	startedAt   time.Time
	log         *logger.Logger
}

func NewHealthHandler(serviceName string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		startedAt:   time.Now(),
		log:         log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status := map[string]any{
		"status":  "healthy",
		"service": h.serviceName,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	}

	if err := httputil.WriteJSON(w, http.StatusOK, status); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		h.log.Error("failed to write ready response", "error", err)
	}
}
