package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler serves the change feed endpoints.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleChanges subscribes a websocket to row changes:
// /ws/changes?table=game_results&events=INSERT,UPDATE
func (h *WebSocketHandler) HandleChanges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	table := q.Get("table")
	if table == "" {
		table = TableGameResults
	}
	if table != TableGameResults {
		http.Error(w, "unknown table", http.StatusBadRequest)
		return
	}
	events, err := parseEvents(q.Get("events"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// on failure the upgrader has already answered the request
	if err := h.connectionManager.UpgradeConnection(w, r, table, events); err != nil {
		log.Error().Err(err).Str("table", table).Msg("failed to upgrade WebSocket connection")
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("encode connection stats")
	}
}

func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/changes", h.HandleChanges)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
