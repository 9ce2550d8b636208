package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"github.com/okian/stylematch/internal/domain/model"
	"github.com/okian/stylematch/pkg/logger"
)

// Connection pool defaults.
const (
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 5 * time.Minute
)

const selectUser = `
SELECT id, name, COALESCE(aesthetic, ''), COALESCE(palette, ''), COALESCE(vibe, ''),
       COALESCE(silhouette, ''), followed_brands
FROM users
WHERE id = $1`

// The latest swipe per product decides; other actions do not count.
const selectRejected = `
SELECT product_id FROM (
    SELECT DISTINCT ON (product_id) product_id, action
    FROM user_interactions
    WHERE user_id = $1 AND action IN ('swipe_left', 'swipe_right')
    ORDER BY product_id, created_at DESC, id DESC
) latest
WHERE action = 'swipe_left'`

const selectItems = `
SELECT p.id, p.name, COALESCE(b.name, ''), p.price, COALESCE(p.currency, ''), COALESCE(p.url, ''),
       COALESCE(p.category, ''), COALESCE(p.gender, ''), COALESCE(p.availability, ''), p.is_active,
       p.first_seen, p.ai_tags
FROM products p
LEFT JOIN brands b ON b.id = p.brand_id`

// PoolConfig sizes the database connection pool.
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
}

// PostgresStore reads users, items and interactions from Postgres.
type PostgresStore struct {
	db *sql.DB
	settings
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string, pool PoolConfig, opts ...Option) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db, opts...), nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{db: db, settings: newSettings(opts)}
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadUser returns the profile for id.
func (s *PostgresStore) LoadUser(ctx context.Context, id int64) (model.UserProfile, error) {
	var (
		u        model.UserProfile
		brandsJS []byte
	)
	err := s.db.QueryRowContext(ctx, selectUser, id).Scan(
		&u.ID, &u.Name, &u.Aesthetic, &u.Palette, &u.Vibe, &u.Silhouette, &brandsJS,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, fmt.Errorf("user %d: %w", id, model.ErrUserNotFound)
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("query user %d: %w", id, err)
	}
	if len(brandsJS) > 0 {
		if err := json.Unmarshal(brandsJS, &u.FollowedBrands); err != nil {
			return model.UserProfile{}, fmt.Errorf("decode followed brands for user %d: %w", id, err)
		}
	}
	return u, nil
}

// LoadRejectedItemIDs returns the items the user last swiped left on.
func (s *PostgresStore) LoadRejectedItemIDs(ctx context.Context, userID int64) (model.RejectionSet, error) {
	rows, err := s.db.QueryContext(ctx, selectRejected, userID)
	if err != nil {
		return nil, fmt.Errorf("query rejections for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := model.RejectionSet{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rejections: %w", err)
	}
	return out, nil
}

// QueryCandidateItems returns active, in-stock items matching q ordered by id.
func (s *PostgresStore) QueryCandidateItems(ctx context.Context, q model.CandidateQuery) ([]model.Item, error) {
	query, args := buildCandidateQuery(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := s.scanItem(ctx, rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return items, nil
}

// LoadItem returns the item with id regardless of its availability.
func (s *PostgresStore) LoadItem(ctx context.Context, id int64) (model.Item, error) {
	row := s.db.QueryRowContext(ctx, selectItems+"\nWHERE p.id = $1", id)
	it, err := s.scanItem(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, fmt.Errorf("item %d: %w", id, model.ErrItemNotFound)
	}
	return it, err
}

func buildCandidateQuery(q model.CandidateQuery) (string, []any) {
	var (
		sb    strings.Builder
		args  []any
		conds = []string{"p.is_active", "p.availability = '" + model.AvailabilityInStock + "'"}
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.RequireClassification {
		conds = append(conds, "p.ai_tags IS NOT NULL")
	}
	if len(q.AllowedGenders) > 0 {
		genders := make([]string, len(q.AllowedGenders))
		for i, g := range q.AllowedGenders {
			genders[i] = string(g)
		}
		conds = append(conds, "(p.gender = ANY("+arg(pq.Array(genders))+") OR COALESCE(p.gender, '') = '')")
	}
	if q.Category != "" {
		conds = append(conds, "p.category = "+arg(q.Category))
	}
	if q.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*q.MaxPrice))
	}

	sb.WriteString(selectItems)
	sb.WriteString("\nWHERE ")
	sb.WriteString(strings.Join(conds, " AND "))
	sb.WriteString("\nORDER BY p.id")
	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanItem(ctx context.Context, row rowScanner) (model.Item, error) {
	var (
		it        model.Item
		gender    string
		firstSeen sql.NullTime
		tagsJS    []byte
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Brand, &it.Price, &it.Currency, &it.URL,
		&it.Category, &gender, &it.Availability, &it.IsActive,
		&firstSeen, &tagsJS,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, err
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("scan item: %w", err)
	}
	it.Gender = model.Gender(gender)
	if firstSeen.Valid {
		it.FirstSeen = firstSeen.Time
		it.IsNew = model.IsNewAt(it.FirstSeen, s.now(), s.newItemWindow)
	}

	tags, err := decodeClassification(tagsJS, it.Price)
	if err != nil {
		s.logger.Warn(ctx, "ignoring malformed item classification",
			logger.Int64("itemID", it.ID), logger.Error(err))
	}
	it.Classification = tags
	return it, nil
}

// decodeClassification parses an ai_tags document. A NULL column, JSON null
// or an empty object yields nil. A missing price tier is derived from price.
func decodeClassification(raw []byte, price float64) (*model.Classification, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var c model.Classification
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if c.IsEmpty() {
		return nil, nil
	}
	if c.PriceTier == "" {
		c.PriceTier = model.ClassifyPriceTier(price)
	}
	return &c, nil
}
