// AngelaMos | 2026
// memdb_test.go

package memdb

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
	"github.com/suprilp8221/Store-Rating-Platform/internal/store"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

type fixture struct {
	db      *DB
	ownerID string
	raterID string
	storeID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := New()

	owner := &user.User{ID: uuid.NewString(), Name: "Owner Person", Email: "owner@x.io", Role: policy.RoleOwner}
	rater := &user.User{ID: uuid.NewString(), Name: "Rater Person", Email: "rater@x.io", Role: policy.RoleUser}
	require.NoError(t, db.Users().Create(ctx, owner))
	require.NoError(t, db.Users().Create(ctx, rater))

	s := &store.Store{ID: uuid.NewString(), Name: "Acme Hardware Co", Address: "1 Main St", OwnerID: &owner.ID}
	require.NoError(t, db.Stores().Create(ctx, s))

	return fixture{db: db, ownerID: owner.ID, raterID: rater.ID, storeID: s.ID}
}

func TestUpsertKeepsOneRowPerPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ratings := f.db.Ratings()

	first := &rating.Rating{ID: uuid.NewString(), StoreID: f.storeID, UserID: f.raterID, Value: 4}
	require.NoError(t, ratings.Upsert(ctx, first))

	second := &rating.Rating{ID: uuid.NewString(), StoreID: f.storeID, UserID: f.raterID, Value: 2}
	require.NoError(t, ratings.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	total, _ := ratings.Count(ctx)
	assert.Equal(t, 1, total)

	stores, err := ratings.OwnerStores(ctx, f.ownerID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, 2.0, stores[0].AverageRating)
	assert.Equal(t, 1, stores[0].RatingCount)
}

func TestUpsertUnknownStore(t *testing.T) {
	f := newFixture(t)

	err := f.db.Ratings().Upsert(context.Background(), &rating.Rating{
		ID:      uuid.NewString(),
		StoreID: uuid.NewString(),
		UserID:  f.raterID,
		Value:   3,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpsertUnknownRater(t *testing.T) {
	f := newFixture(t)

	err := f.db.Ratings().Upsert(context.Background(), &rating.Rating{
		ID:      uuid.NewString(),
		StoreID: f.storeID,
		UserID:  uuid.NewString(),
		Value:   3,
	})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestDeleteStoreCascadesRatings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Ratings().Upsert(ctx, &rating.Rating{
		ID: uuid.NewString(), StoreID: f.storeID, UserID: f.raterID, Value: 5,
	}))
	require.NoError(t, f.db.Stores().Delete(ctx, f.storeID))

	total, _ := f.db.Ratings().Count(ctx)
	assert.Zero(t, total)
}

func TestDeleteOwnerDetachesStores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Users().Delete(ctx, f.ownerID))

	s, err := f.db.Stores().GetByID(ctx, f.storeID)
	require.NoError(t, err)
	assert.Nil(t, s.OwnerID)
}

func TestDeleteRaterCascadesRatings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Ratings().Upsert(ctx, &rating.Rating{
		ID: uuid.NewString(), StoreID: f.storeID, UserID: f.raterID, Value: 5,
	}))
	require.NoError(t, f.db.Users().Delete(ctx, f.raterID))

	listings, err := f.db.Stores().List(ctx, store.ListParams{}, "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Zero(t, listings[0].RatingCount)
	assert.Zero(t, listings[0].OverallRating)
}

func TestUniqueKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.db.Users().Create(ctx, &user.User{ID: uuid.NewString(), Email: "owner@x.io"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	err = f.db.Stores().Create(ctx, &store.Store{ID: uuid.NewString(), Name: "Acme Hardware Co"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	missing := uuid.NewString()
	err = f.db.Stores().Create(ctx, &store.Store{ID: uuid.NewString(), Name: "Other Store Ltd", OwnerID: &missing})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUserListSortsAddressNullsLast(t *testing.T) {
	db := New()
	ctx := context.Background()
	addr := "9 Elm St"

	require.NoError(t, db.Users().Create(ctx, &user.User{ID: uuid.NewString(), Name: "No Address", Email: "n@x.io"}))
	require.NoError(t, db.Users().Create(ctx, &user.User{ID: uuid.NewString(), Name: "Has Address", Email: "h@x.io", Address: &addr}))

	users, err := db.Users().List(ctx, user.ListUsersParams{SortField: "address"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Has Address", users[0].Name)

	users, err = db.Users().List(ctx, user.ListUsersParams{SortField: "address", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "No Address", users[0].Name)
}

func TestStoreTxRestoresOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stores := f.db.Stores()
	failed := errors.New("abort")

	err := stores.WithinTx(ctx, func(repo store.Repository) error {
		s := &store.Store{ID: uuid.NewString(), Name: "Second Store", Address: "2 Main St"}
		require.NoError(t, repo.Create(ctx, s))
		return failed
	})
	assert.ErrorIs(t, err, failed)

	total, _ := stores.Count(ctx)
	assert.Equal(t, 1, total)

	err = stores.WithinTx(ctx, func(repo store.Repository) error {
		return repo.Create(ctx, &store.Store{ID: uuid.NewString(), Name: "Second Store", Address: "2 Main St"})
	})
	require.NoError(t, err)
	total, _ = stores.Count(ctx)
	assert.Equal(t, 2, total)
}
