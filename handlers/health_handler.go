package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	db                   *sql.DB
	cricketAPIConfigured bool
}

func NewHealthHandler(db *sql.DB, cricketAPIConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, cricketAPIConfigured: cricketAPIConfigured}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := h.db.PingContext(r.Context()); err != nil {
		database = "disconnected"
	}

	cricketAPI := "configured"
	if !h.cricketAPIConfigured {
		cricketAPI = "not configured"
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"status":     "ok",
		"database":   database,
		"cricketApi": cricketAPI,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
