package api

import (
	"context"
	"fmt"
	"net/http"

	service "github.com/okian/stylematch/internal/app"
	"github.com/okian/stylematch/internal/domain/matching"
)

const maxZineProducts = 100

// ZineDependencies defines the interface for curated collections.
type ZineDependencies interface {
	GetCuratedCollection(ctx context.Context, userID int64, maxProducts int) (matching.CuratedCollection, error)
	CurateBatch(ctx context.Context, userIDs []int64, maxProducts int) ([]service.BatchResult, error)
}

// ZineHandler handles curated collection requests.
type ZineHandler struct {
	deps ZineDependencies
}

// NewZineHandler creates a new zine handler.
func NewZineHandler(deps ZineDependencies) *ZineHandler {
	return &ZineHandler{deps: deps}
}

// HandleGetZine handles GET /users/{userID}/zine?max_products=N.
func (h *ZineHandler) HandleGetZine(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_zine"
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	maxProducts, err := queryInt(r, "max_products", 0)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	if maxProducts < 0 || maxProducts > maxZineProducts {
		writeServiceError(w, Wrap(op, fmt.Errorf("%w: max_products must be between 0 and %d", ErrBadRequest, maxZineProducts)))
		return
	}

	c, err := h.deps.GetCuratedCollection(r.Context(), userID, maxProducts)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toZine(c))
}

// batchRequest is the body of POST /zines/batch.
type batchRequest struct {
	UserIDs     []int64 `json:"userIds" validate:"required,min=1,max=500,unique,dive,gt=0"`
	MaxProducts int     `json:"maxProducts" validate:"gte=0,lte=100"`
}

// HandleBatch handles POST /zines/batch. Per-user failures are reported in
// the body; the request itself succeeds.
func (h *ZineHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.zines_batch"
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}

	results, err := h.deps.CurateBatch(r.Context(), req.UserIDs, req.MaxProducts)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toBatch(results))
}
