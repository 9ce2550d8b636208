package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/stylematch/internal/domain/matching"
	"github.com/okian/stylematch/internal/domain/model"
)

// MatchDependencies defines the interface for ranked match listings.
type MatchDependencies interface {
	GetMatches(ctx context.Context, userID int64, page matching.Page, f matching.Filters) (matching.MatchPage, error)
	PreviewMatches(ctx context.Context, profile model.UserProfile, page matching.Page, f matching.Filters) (matching.MatchPage, error)
}

// MatchesHandler handles ranked match requests.
type MatchesHandler struct {
	deps     MatchDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies, maxLimit int) *MatchesHandler {
	if maxLimit < 1 {
		maxLimit = defaultPageLimit
	}
	return &MatchesHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetMatches handles GET /users/{userID}/matches.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	page, err := h.page(r)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	filters, err := queryFilters(r)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}

	out, err := h.deps.GetMatches(r.Context(), userID, page, filters)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toMatches(out, page))
}

// previewRequest is the body of POST /preview/matches.
type previewRequest struct {
	Aesthetic      string   `json:"aesthetic" validate:"omitempty,aesthetic"`
	Palette        string   `json:"palette" validate:"omitempty,palette"`
	Vibe           string   `json:"vibe" validate:"omitempty,vibe"`
	Silhouette     string   `json:"silhouette" validate:"omitempty,oneof=menswear womenswear all"`
	FollowedBrands []string `json:"followedBrands" validate:"max=100,dive,required"`

	Limit    *int     `json:"limit" validate:"omitempty,gte=1"`
	Offset   int      `json:"offset" validate:"gte=0"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

func (p previewRequest) profile() model.UserProfile {
	return model.UserProfile{
		Name:           "preview",
		Aesthetic:      model.Aesthetic(p.Aesthetic),
		Palette:        model.Palette(p.Palette),
		Vibe:           model.Vibe(p.Vibe),
		Silhouette:     model.Silhouette(p.Silhouette),
		FollowedBrands: p.FollowedBrands,
	}
}

// HandlePreview handles POST /preview/matches for a profile that is not stored.
func (h *MatchesHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview_matches"
	var req previewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}

	page := matching.Page{Limit: defaultPageLimit, Offset: req.Offset}
	if req.Limit != nil {
		page.Limit = *req.Limit
	}
	if page.Limit > h.maxLimit {
		writeServiceError(w, NewKind(op, ErrLimitExceeded))
		return
	}
	filters := matching.Filters{Category: req.Category, MinPrice: req.MinPrice, MaxPrice: req.MaxPrice}
	if err := checkPriceRange(filters); err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}

	out, err := h.deps.PreviewMatches(r.Context(), req.profile(), page, filters)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toMatches(out, page))
}

func (h *MatchesHandler) page(r *http.Request) (matching.Page, error) {
	limit, err := queryInt(r, "limit", min(defaultPageLimit, h.maxLimit))
	if err != nil {
		return matching.Page{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return matching.Page{}, err
	}
	switch {
	case limit < 1:
		return matching.Page{}, fmt.Errorf("%w: limit must be positive", ErrBadRequest)
	case limit > h.maxLimit:
		return matching.Page{}, fmt.Errorf("%w: maximum is %d", ErrLimitExceeded, h.maxLimit)
	case offset < 0:
		return matching.Page{}, fmt.Errorf("%w: offset must not be negative", ErrBadRequest)
	}
	return matching.Page{Limit: limit, Offset: offset}, nil
}

func queryFilters(r *http.Request) (matching.Filters, error) {
	f := matching.Filters{Category: r.URL.Query().Get("category")}
	var err error
	if f.MinPrice, err = queryFloat(r, "min_price"); err != nil {
		return matching.Filters{}, err
	}
	if f.MaxPrice, err = queryFloat(r, "max_price"); err != nil {
		return matching.Filters{}, err
	}
	return f, checkPriceRange(f)
}

func checkPriceRange(f matching.Filters) error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price exceeds max_price", ErrBadRequest)
	}
	return nil
}
