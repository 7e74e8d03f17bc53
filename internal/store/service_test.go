// AngelaMos | 2026
// service_test.go

package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/memdb"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
	"github.com/suprilp8221/Store-Rating-Platform/internal/store"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

type env struct {
	stores  *store.Service
	ratings *rating.Service
	users   *user.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := memdb.New()
	ratings := rating.NewService(db.Ratings())
	users := user.NewService(db.Users(), ratings)
	return env{
		stores:  store.NewService(db.Stores(), users, ratings),
		ratings: ratings,
		users:   users,
	}
}

func (e env) addUser(t *testing.T, name, email string, role policy.Role) string {
	t.Helper()
	resp, err := e.users.CreateUser(context.Background(), user.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "Abcdef1!",
		Role:     string(role),
	})
	require.NoError(t, err)
	return resp.ID
}

func (e env) addStore(t *testing.T, name, address string, ownerID *string) string {
	t.Helper()
	s, err := e.stores.Create(context.Background(), store.CreateStoreRequest{
		Name:    name,
		Address: address,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return s.ID
}

func (e env) rate(t *testing.T, userID, storeID string, value string) {
	t.Helper()
	_, err := e.ratings.Submit(context.Background(), userID, storeID, rating.SubmitRatingRequest{
		Rating: json.Number(value),
	})
	require.NoError(t, err)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := core.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.StatusCode
}

func TestCreateStoreValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.stores.Create(context.Background(), store.CreateStoreRequest{Name: "Tiny"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, []string{
		"name must be at least 8 characters",
		"address is required",
	}, core.ValidationMessages(err))
}

func TestCreateStoreOwnerMustBeStoreOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	plainID := e.addUser(t, "Plain Person", "plain@x.io", policy.RoleUser)
	missing := uuid.NewString()
	garbage := "17"

	for _, ownerID := range []*string{&plainID, &missing, &garbage} {
		_, err := e.stores.Create(ctx, store.CreateStoreRequest{
			Name:    "Acme Hardware Co",
			Address: "1 Main St",
			OwnerID: ownerID,
		})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	}

	ownerID := e.addUser(t, "Olive Owner", "olive@x.io", policy.RoleOwner)
	e.addStore(t, "Acme Hardware Co", "1 Main St", &ownerID)
}

func TestStoreNameUniqueness(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	acme := e.addStore(t, "Acme Hardware Co", "1 Main St", nil)
	bolt := e.addStore(t, "Bolt Supplies Inc", "2 Main St", nil)

	_, err := e.stores.Create(ctx, store.CreateStoreRequest{Name: "Acme Hardware Co", Address: "9 Elm St"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	name := "Acme Hardware Co"
	_, err = e.stores.Update(ctx, acme, store.UpdateStoreRequest{Name: &name})
	assert.NoError(t, err, "renaming to its own name is allowed")

	_, err = e.stores.Update(ctx, bolt, store.UpdateStoreRequest{Name: &name})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestUpdateStoreOwnerField(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ownerID := e.addUser(t, "Olive Owner", "olive@x.io", policy.RoleOwner)
	id := e.addStore(t, "Acme Hardware Co", "1 Main St", &ownerID)

	var keep store.UpdateStoreRequest
	require.NoError(t, json.Unmarshal([]byte(`{"address":"5 Main St"}`), &keep))
	s, err := e.stores.Update(ctx, id, keep)
	require.NoError(t, err)
	require.NotNil(t, s.OwnerID)
	assert.Equal(t, ownerID, *s.OwnerID)
	assert.Equal(t, "5 Main St", s.Address)

	var clear store.UpdateStoreRequest
	require.NoError(t, json.Unmarshal([]byte(`{"owner_id":null}`), &clear))
	s, err = e.stores.Update(ctx, id, clear)
	require.NoError(t, err)
	assert.Nil(t, s.OwnerID)

	_, err = e.stores.Update(ctx, uuid.NewString(), keep)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestListAttachesOwnRatingForNormalUsersOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	raterID := e.addUser(t, "Randy Rater", "randy@x.io", policy.RoleUser)
	otherID := e.addUser(t, "Other Rater", "other@x.io", policy.RoleUser)
	adminID := e.addUser(t, "Admin Person", "admin@x.io", policy.RoleAdmin)

	acme := e.addStore(t, "Acme Hardware Co", "1 Main St", nil)
	e.addStore(t, "Bolt Supplies Inc", "2 Elm St", nil)

	e.rate(t, raterID, acme, "5")
	e.rate(t, otherID, acme, "2")

	stores, err := e.stores.List(ctx, store.ListParams{SortField: "overall_rating", SortOrder: "desc"}, raterID, policy.RoleUser)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Acme Hardware Co", stores[0].Name)
	assert.InDelta(t, 3.5, stores[0].OverallRating, 1e-9)
	require.NotNil(t, stores[0].UserSubmittedRating)
	assert.Equal(t, 5, *stores[0].UserSubmittedRating)
	assert.Nil(t, stores[1].UserSubmittedRating)
	assert.Zero(t, stores[1].OverallRating)

	stores, err = e.stores.List(ctx, store.ListParams{Address: "elm"}, adminID, policy.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Bolt Supplies Inc", stores[0].Name)
	assert.Nil(t, stores[0].UserSubmittedRating)
}

func TestAdminListIncludesOwnerAndCount(t *testing.T) {
	e := newEnv(t)

	ownerID := e.addUser(t, "Olive Owner", "olive@x.io", policy.RoleOwner)
	raterID := e.addUser(t, "Randy Rater", "randy@x.io", policy.RoleUser)
	acme := e.addStore(t, "Acme Hardware Co", "1 Main St", &ownerID)
	e.rate(t, raterID, acme, "4")

	stores, err := e.stores.AdminList(context.Background(), store.ListParams{})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	require.NotNil(t, stores[0].OwnerID)
	assert.Equal(t, ownerID, *stores[0].OwnerID)
	assert.Equal(t, 1, stores[0].RatingCount)
}

func TestOwnerDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ownerID := e.addUser(t, "Olive Owner", "olive@x.io", policy.RoleOwner)
	zed := e.addUser(t, "Zed Zimmerman", "zed@x.io", policy.RoleUser)
	amy := e.addUser(t, "Amy Anderson", "amy@x.io", policy.RoleUser)

	rated := e.addStore(t, "Acme Hardware Co", "1 Main St", &ownerID)
	e.addStore(t, "Unrated Store Co", "2 Main St", &ownerID)
	e.addStore(t, "Someone Elses", "3 Main St", nil)

	e.rate(t, zed, rated, "5")
	e.rate(t, amy, rated, "3")

	dash, err := e.stores.OwnerDashboard(ctx, ownerID)
	require.NoError(t, err)

	require.Len(t, dash.OwnerStores, 2)
	assert.Equal(t, "Acme Hardware Co", dash.OwnerStores[0].Name)
	assert.Equal(t, 2, dash.OwnerStores[0].RatingCount)
	assert.Equal(t, 0, dash.OwnerStores[1].RatingCount)

	require.Len(t, dash.UsersWhoRated, 2)
	assert.Equal(t, "Amy Anderson", dash.UsersWhoRated[0].UserName)
	assert.Equal(t, "Zed Zimmerman", dash.UsersWhoRated[1].UserName)

	assert.InDelta(t, 4.0, dash.OverallAverageRatingOfOwnedStores, 1e-9)
}

func TestDeleteStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	raterID := e.addUser(t, "Randy Rater", "randy@x.io", policy.RoleUser)
	id := e.addStore(t, "Acme Hardware Co", "1 Main St", nil)
	e.rate(t, raterID, id, "4")

	require.NoError(t, e.stores.Delete(ctx, id))

	total, err := e.ratings.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	err = e.stores.Delete(ctx, id)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
