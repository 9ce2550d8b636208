package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/okian/stylematch/internal/domain/model"
)

// MemoryStore is an in-process catalog. It is safe for concurrent use.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[int64]model.UserProfile
	items        map[int64]model.Item
	interactions []Interaction
	settings
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]model.UserProfile),
		items:    make(map[int64]model.Item),
		settings: newSettings(opts),
	}
}

// PutUser inserts or replaces a user.
func (s *MemoryStore) PutUser(u model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.FollowedBrands = slices.Clone(u.FollowedBrands)
	s.users[u.ID] = u
}

// PutItem inserts or replaces an item.
func (s *MemoryStore) PutItem(it model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it.Classification.IsEmpty() {
		it.Classification = nil
	} else {
		c := *it.Classification
		if c.PriceTier == "" {
			c.PriceTier = model.ClassifyPriceTier(it.Price)
		}
		it.Classification = &c
	}
	s.items[it.ID] = it
}

// RecordInteraction appends to the interaction log. A zero At is stamped
// with the store clock.
func (s *MemoryStore) RecordInteraction(in Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.At.IsZero() {
		in.At = s.now()
	}
	s.interactions = append(s.interactions, in)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// LoadUser returns the profile for id.
func (s *MemoryStore) LoadUser(_ context.Context, id int64) (model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user %d: %w", id, model.ErrUserNotFound)
	}
	u.FollowedBrands = slices.Clone(u.FollowedBrands)
	return u, nil
}

// LoadRejectedItemIDs returns the items whose latest swipe by the user was
// a swipe left. Later log entries win ties on At.
func (s *MemoryStore) LoadRejectedItemIDs(_ context.Context, userID int64) (model.RejectionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := map[int64]Interaction{}
	for _, in := range s.interactions {
		if in.UserID != userID {
			continue
		}
		if in.Action != model.ActionSwipeLeft && in.Action != model.ActionSwipeRight {
			continue
		}
		if prev, ok := latest[in.ItemID]; ok && in.At.Before(prev.At) {
			continue
		}
		latest[in.ItemID] = in
	}

	out := model.RejectionSet{}
	for id, in := range latest {
		if in.Action == model.ActionSwipeLeft {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// QueryCandidateItems returns active, in-stock items matching q ordered by id.
func (s *MemoryStore) QueryCandidateItems(_ context.Context, q model.CandidateQuery) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if !matchesQuery(it, q) {
			continue
		}
		out = append(out, s.withNewness(it, now))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadItem returns the item with id regardless of its availability.
func (s *MemoryStore) LoadItem(_ context.Context, id int64) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return model.Item{}, fmt.Errorf("item %d: %w", id, model.ErrItemNotFound)
	}
	return s.withNewness(it, s.now()), nil
}

// Counts returns the number of users and items held.
func (s *MemoryStore) Counts() (users, items int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.items)
}

func (s *MemoryStore) withNewness(it model.Item, now time.Time) model.Item {
	it.IsNew = model.IsNewAt(it.FirstSeen, now, s.newItemWindow)
	return it
}

func matchesQuery(it model.Item, q model.CandidateQuery) bool {
	if !it.IsActive || it.Availability != model.AvailabilityInStock {
		return false
	}
	if q.RequireClassification && it.Classification == nil {
		return false
	}
	if len(q.AllowedGenders) > 0 && it.Gender != "" && !slices.Contains(q.AllowedGenders, it.Gender) {
		return false
	}
	if q.Category != "" && it.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && it.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && it.Price > *q.MaxPrice {
		return false
	}
	return true
}
