// AngelaMos | 2026
// repository_test.go

package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

const (
	testStoreID  = "0b8f6a52-8a0e-4f0b-9d0e-6a1f4d7c9b21"
	testViewerID = "6f1c2b9e-2d7a-4c1e-9a51-0b4f5c3d2e10"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func listingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "address", "owner_id", "overall_rating", "rating_count",
		"user_submitted_rating",
	})
}

func TestRepositoryCreateMapsConstraintErrors(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", core.ErrDuplicateKey},
		{"23503", core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stores")).
				WillReturnError(&pgconn.PgError{Code: tt.code})

			err := repo.Create(context.Background(), &Store{ID: testStoreID})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stores")).
		WithArgs(testStoreID, "Acme Hardware Co", "1 Main St", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	s := &Store{ID: testStoreID, Name: "Acme Hardware Co", Address: "1 Main St"}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, now, s.UpdatedAt)
}

func TestRepositoryGetByNameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stores WHERE name = $1")).
		WithArgs("Acme Hardware Co").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "address", "owner_id", "created_at", "updated_at",
		}))

	_, err := repo.GetByName(context.Background(), "Acme Hardware Co")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryListWithViewer(t *testing.T) {
	repo, mock := newMockRepo(t)
	rated := 2

	mock.ExpectQuery(
		`WHERE s.name ILIKE \$2 AND s.address ILIKE \$3\s+GROUP BY .+ ORDER BY overall_rating DESC, s.name ASC`,
	).
		WithArgs(testViewerID, "%acme%", "%main%").
		WillReturnRows(listingRows().
			AddRow(testStoreID, "Acme Hardware Co", "1 Main St", nil, 2.0, 1, rated))

	listings, err := repo.List(context.Background(), ListParams{
		Name:      "acme",
		Address:   "main",
		SortField: "overall_rating",
		SortOrder: "desc",
	}, testViewerID)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, 2.0, listings[0].OverallRating)
	require.NotNil(t, listings[0].UserRating)
	assert.Equal(t, 2, *listings[0].UserRating)
	assert.Nil(t, listings[0].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListWithoutViewerPassesNull(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM stores s\s+LEFT JOIN ratings r ON r.store_id = s.id\s+GROUP BY`).
		WithArgs(nil).
		WillReturnRows(listingRows().
			AddRow(testStoreID, "Acme Hardware Co", "1 Main St", nil, 0.0, 0, nil))

	listings, err := repo.List(context.Background(), ListParams{SortField: "bogus"}, "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Nil(t, listings[0].UserRating)
	assert.Zero(t, listings[0].OverallRating)
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stores WHERE id = $1")).
		WithArgs(testStoreID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), testStoreID), core.ErrNotFound)
}

func TestListParamsNormalize(t *testing.T) {
	p := ListParams{SortField: "owner_id", SortOrder: "desc"}
	p.Normalize()
	assert.Equal(t, "s.name ASC", p.orderBy())

	p = ListParams{SortField: "address", SortOrder: "DESC"}
	p.Normalize()
	assert.Equal(t, "s.address DESC", p.orderBy())

	p = ListParams{SortField: "overall_rating"}
	p.Normalize()
	assert.Equal(t, "overall_rating ASC", p.orderBy())
}

func TestServiceCreateCommitsInOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(repo, nil, nil)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM stores WHERE name = $1")).
		WithArgs("Acme Hardware Co").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "address", "owner_id", "created_at", "updated_at",
		}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stores")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:    "Acme Hardware Co",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceCreateRollsBackOnTakenName(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(repo, nil, nil)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM stores WHERE name = $1")).
		WithArgs("Acme Hardware Co").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "address", "owner_id", "created_at", "updated_at",
		}).AddRow(testStoreID, "Acme Hardware Co", "1 Main St", nil, now, now))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:    "Acme Hardware Co",
		Address: "1 Main St",
	})

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.CodeDuplicate, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
