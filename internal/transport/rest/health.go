package rest

import (
	"context"
	"net/http"
	"time"
)

type dbPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db      dbPinger
	version string
}

func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Health pings the database: 200 when it answers, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Version: h.version, Database: "ok", Timestamp: time.Now()}
	status := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		resp.Status, resp.Database = "down", "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
