package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
