// AngelaMos | 2026
// repository.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

type Repository interface {
	Create(ctx context.Context, store *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	GetByName(ctx context.Context, name string) (*Store, error)
	Update(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams, viewerID string) ([]Listing, error)
	Count(ctx context.Context) (int, error)
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// WithinTx runs fn against a repository bound to one transaction. A
// repository already inside a transaction passes itself through.
func (r *repository) WithinTx(
	ctx context.Context,
	fn func(repo Repository) error,
) error {
	beginner, ok := r.db.(core.TxBeginner)
	if !ok {
		return fn(r)
	}

	return core.InTx(ctx, beginner, func(tx *sqlx.Tx) error {
		return fn(&repository{db: tx})
	})
}

const storeColumns = `id, name, address, owner_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, store *Store) error {
	query := `
		INSERT INTO stores (id, name, address, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		store.ID,
		store.Name,
		store.Address,
		store.OwnerID,
	)
	if err := row.Scan(&store.CreatedAt, &store.UpdatedAt); err != nil {
		return fmt.Errorf("create store: %w", mapWriteError(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &store, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE name = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store by name: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store by name: %w", err)
	}

	return &store, nil
}

func (r *repository) Update(ctx context.Context, store *Store) error {
	query := `
		UPDATE stores
		SET name = $2, address = $3, owner_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &store.UpdatedAt, query,
		store.ID,
		store.Name,
		store.Address,
		store.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update store: %w", mapWriteError(err))
	}

	return nil
}

// Delete removes the store together with its ratings.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete store: %w", core.ErrNotFound)
	}

	return nil
}

// List returns the directory joined with rating aggregates. When viewerID
// is non-empty each row also carries that user's own rating, if any.
func (r *repository) List(
	ctx context.Context,
	params ListParams,
	viewerID string,
) ([]Listing, error) {
	params.Normalize()

	var viewer any
	if viewerID != "" {
		viewer = viewerID
	}

	conditions := []string{}
	args := []any{viewer}
	argIdx := 2

	if params.Name != "" {
		conditions = append(conditions, fmt.Sprintf("s.name ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Name)+"%")
		argIdx++
	}

	if params.Address != "" {
		conditions = append(conditions, fmt.Sprintf("s.address ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Address)+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.name, s.address, s.owner_id,
		       COALESCE(AVG(r.rating), 0)::float8 AS overall_rating,
		       COUNT(r.rating) AS rating_count,
		       (SELECT ur.rating FROM ratings ur
		        WHERE ur.store_id = s.id AND ur.user_id = $1) AS user_submitted_rating
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id
		%s
		GROUP BY s.id, s.name, s.address, s.owner_id
		ORDER BY %s, s.name ASC`,
		whereClause, params.orderBy())

	listings := []Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return listings, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM stores`); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return total, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505":
		return core.ErrDuplicateKey
	case "23503":
		return core.ErrNotFound
	}

	return err
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
