package api

import (
	"context"
	"net/http"

	"github.com/okian/stylematch/internal/domain/matching"
)

// ExplainDependencies defines the interface for match explanations.
type ExplainDependencies interface {
	ExplainMatch(ctx context.Context, userID, itemID int64) (matching.Explanation, error)
}

// ExplainHandler handles explanation requests.
type ExplainHandler struct {
	deps ExplainDependencies
}

// NewExplainHandler creates a new explain handler.
func NewExplainHandler(deps ExplainDependencies) *ExplainHandler {
	return &ExplainHandler{deps: deps}
}

// HandleExplain handles GET /users/{userID}/items/{itemID}/explain.
func (h *ExplainHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	const op = "api.explain"
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}

	e, err := h.deps.ExplainMatch(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toExplanation(e))
}
