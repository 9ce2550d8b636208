package api

import (
	"maps"
	"net/http"
	"time"
)

// StatsProvider reports service and catalog statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

// NewStatsHandler returns a handler reading from provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats writes a snapshot stamped with its generation time. Snapshots
// change on every catalog refresh and are never cacheable.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	snapshot := maps.Clone(h.provider.GetStats())
	if snapshot == nil {
		snapshot = map[string]interface{}{}
	}
	snapshot["generatedAt"] = h.now().UTC().Format(time.RFC3339)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snapshot)
}
