// Package repository provides catalog stores backing the matching pipeline.
package repository

import (
	"context"
	"time"

	"github.com/okian/stylematch/internal/domain/model"
)

// Store is a catalog the matching pipeline can read from.
type Store interface {
	LoadUser(ctx context.Context, id int64) (model.UserProfile, error)
	LoadRejectedItemIDs(ctx context.Context, userID int64) (model.RejectionSet, error)
	QueryCandidateItems(ctx context.Context, q model.CandidateQuery) ([]model.Item, error)
	LoadItem(ctx context.Context, id int64) (model.Item, error)

	// Close releases held resources.
	Close() error
}

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Interaction is one recorded user reaction to an item.
type Interaction struct {
	UserID int64
	ItemID int64
	Action string
	At     time.Time
}
