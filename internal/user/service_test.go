// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
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

func ptr[T any](v T) *T {
	return &v
}

func newService(t *testing.T) (*user.Service, *memdb.DB) {
	t.Helper()
	db := memdb.New()
	return user.NewService(db.Users(), rating.NewService(db.Ratings())), db
}

func mustCreate(t *testing.T, svc *user.Service, name, email, role string) *user.UserResponse {
	t.Helper()
	resp, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "Abcdef1!",
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := core.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.StatusCode
}

func TestCreateUserAnyRole(t *testing.T) {
	svc, _ := newService(t)

	admin := mustCreate(t, svc, "Second Admin", "Admin2@Example.com", "System Administrator")
	assert.Equal(t, policy.RoleAdmin, admin.Role)
	assert.Equal(t, "admin2@example.com", admin.Email)

	plain := mustCreate(t, svc, "Plain Person", "plain@example.com", "")
	assert.Equal(t, policy.RoleUser, plain.Role)
}

func TestCreateUserValidationAndConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Name:  "Short",
		Email: "nope",
		Role:  "Superuser",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Len(t, core.ValidationMessages(err), 4)

	mustCreate(t, svc, "Jane Roe Smith", "a@b.com", "")
	_, err = svc.CreateUser(ctx, user.CreateUserRequest{
		Name:     "Jane Roe Smith",
		Email:    "A@B.com",
		Password: "Abcdef1!",
	})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestUpdateUserOnlyTouchesSuppliedFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Name:     "Jane Roe Smith",
		Email:    "a@b.com",
		Password: "Abcdef1!",
		Address:  ptr("1 Main St"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.ID, user.UpdateUserRequest{
		Name: ptr("Jane Roe Doe"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe Doe", updated.Name)
	assert.Equal(t, "a@b.com", updated.Email)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "1 Main St", *updated.Address)
	assert.Equal(t, policy.RoleUser, updated.Role)
}

func TestUpdateUserEmailUniquenessExcludesSelf(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	jane := mustCreate(t, svc, "Jane Roe Smith", "a@b.com", "")
	mustCreate(t, svc, "John Roe Smith", "c@d.com", "")

	_, err := svc.UpdateUser(ctx, jane.ID, user.UpdateUserRequest{Email: ptr("a@b.com")})
	assert.NoError(t, err)

	_, err = svc.UpdateUser(ctx, jane.ID, user.UpdateUserRequest{Email: ptr("C@D.com")})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestUpdateUserRejectsInvalidFieldsBeforeLookup(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateUser(context.Background(), uuid.NewString(), user.UpdateUserRequest{
		Role: ptr("Overlord"),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUpdateUserPasswordRehashes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Jane Roe Smith", "a@b.com", "")
	before, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, created.ID, user.UpdateUserRequest{Password: ptr("Zyxwvu9#")})
	require.NoError(t, err)

	after, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	ok, err := core.VerifyPassword("Zyxwvu9#", after.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	admin := mustCreate(t, svc, "Admin Person", "admin@x.io", "System Administrator")
	victim := mustCreate(t, svc, "Victim Person", "victim@x.io", "")

	err := svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, victim.ID))

	_, err = svc.GetUser(ctx, victim.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.DeleteUser(ctx, admin.ID, victim.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.DeleteUser(ctx, admin.ID, "42")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListUsersFiltersAndOwnerAggregate(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	owner := mustCreate(t, svc, "Olive Owner", "olive@x.io", "Store Owner")
	rater := mustCreate(t, svc, "Randy Rater", "randy@x.io", "")
	mustCreate(t, svc, "Another Rater", "another@x.io", "")

	s := &store.Store{ID: uuid.NewString(), Name: "Acme Hardware Co", Address: "1 Main St", OwnerID: &owner.ID}
	require.NoError(t, db.Stores().Create(ctx, s))
	require.NoError(t, db.Ratings().Upsert(ctx, &rating.Rating{
		ID: uuid.NewString(), StoreID: s.ID, UserID: rater.ID, Value: 3,
	}))

	users, err := svc.ListUsers(ctx, user.ListUsersParams{Role: "Store Owner"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].OwnedStoresAverageRating)
	assert.Equal(t, 3.0, *users[0].OwnedStoresAverageRating)

	users, err = svc.ListUsers(ctx, user.ListUsersParams{
		Name:      "rater",
		SortField: "name",
		SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Randy Rater", users[0].Name)
	assert.Nil(t, users[0].OwnedStoresAverageRating)

	users, err = svc.ListUsers(ctx, user.ListUsersParams{Role: "Emperor"})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	me := mustCreate(t, svc, "Jane Roe Smith", "a@b.com", "")

	updated, err := svc.UpdateProfile(ctx, me.ID, user.UpdateProfileRequest{
		Address: ptr("22 Acacia Avenue"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "22 Acacia Avenue", *updated.Address)
	assert.Equal(t, policy.RoleUser, updated.Role)

	_, err = svc.GetProfile(ctx, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
