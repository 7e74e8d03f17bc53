// AngelaMos | 2026
// repository.go

package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, rating *Rating) error
	ListByUser(ctx context.Context, userID string) ([]MyRating, error)
	OwnerStores(ctx context.Context, ownerID string) ([]StoreSummary, error)
	RatersForOwner(ctx context.Context, ownerID string) ([]Rater, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert writes the one rating a user holds for a store. A second
// submission overwrites the value and keeps the original row id. A missing
// store is ErrNotFound; a missing rater is ErrUnauthorized.
func (r *repository) Upsert(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO ratings (id, store_id, user_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT ratings_store_user_key
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, store_id, user_id, rating, created_at, updated_at`

	err := r.db.GetContext(ctx, rating, query,
		rating.ID,
		rating.StoreID,
		rating.UserID,
		rating.Value,
	)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok {
			if constraint == ratingsUserFKey {
				return fmt.Errorf("upsert rating: %w", core.ErrUnauthorized)
			}
			return fmt.Errorf("upsert rating: %w", core.ErrNotFound)
		}
		return fmt.Errorf("upsert rating: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]MyRating, error) {
	query := `
		SELECT r.store_id, s.name AS store_name, s.address AS store_address,
		       r.rating, r.updated_at
		FROM ratings r
		JOIN stores s ON s.id = r.store_id
		WHERE r.user_id = $1
		ORDER BY r.updated_at DESC, s.name ASC`

	ratings := []MyRating{}
	if err := r.db.SelectContext(ctx, &ratings, query, userID); err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}

	return ratings, nil
}

func (r *repository) OwnerStores(
	ctx context.Context,
	ownerID string,
) ([]StoreSummary, error) {
	query := `
		SELECT s.id, s.name, s.address,
		       COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
		       COUNT(r.rating) AS rating_count
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id
		WHERE s.owner_id = $1
		GROUP BY s.id, s.name, s.address
		ORDER BY s.name ASC`

	stores := []StoreSummary{}
	if err := r.db.SelectContext(ctx, &stores, query, ownerID); err != nil {
		return nil, fmt.Errorf("list owner stores: %w", err)
	}

	return stores, nil
}

func (r *repository) RatersForOwner(
	ctx context.Context,
	ownerID string,
) ([]Rater, error) {
	query := `
		SELECT u.id AS user_id, u.name AS user_name, u.email AS user_email,
		       r.rating, s.name AS store_name, s.id AS store_id
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN stores s ON s.id = r.store_id
		WHERE s.owner_id = $1
		ORDER BY u.name ASC, s.name ASC`

	raters := []Rater{}
	if err := r.db.SelectContext(ctx, &raters, query, ownerID); err != nil {
		return nil, fmt.Errorf("list raters: %w", err)
	}

	return raters, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ratings`); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return total, nil
}

const ratingsUserFKey = "ratings_user_id_fkey"

func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
