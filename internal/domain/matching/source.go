package matching

import (
	"context"

	"github.com/okian/stylematch/internal/domain/model"
)

// Source is the data access the matching pipeline needs. Implementations
// own consistency, timeouts and retries.
type Source interface {
	// LoadUser returns model.ErrUserNotFound when id does not resolve.
	LoadUser(ctx context.Context, id int64) (model.UserProfile, error)
	// LoadRejectedItemIDs returns the items whose most recent swipe by the
	// user was negative.
	LoadRejectedItemIDs(ctx context.Context, userID int64) (model.RejectionSet, error)
	// QueryCandidateItems returns active, in-stock items matching q.
	QueryCandidateItems(ctx context.Context, q model.CandidateQuery) ([]model.Item, error)
	// LoadItem returns model.ErrItemNotFound when id does not resolve.
	LoadItem(ctx context.Context, id int64) (model.Item, error)
}
