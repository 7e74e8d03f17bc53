// AngelaMos | 2026
// handler_test.go

package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/middleware"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Upsert(ctx context.Context, rating *Rating) error {
	args := m.Called(ctx, rating)
	if err := args.Error(0); err != nil {
		return err
	}
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	return nil
}

func (m *repoMock) ListByUser(ctx context.Context, userID string) ([]MyRating, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]MyRating), args.Error(1)
}

func (m *repoMock) OwnerStores(ctx context.Context, ownerID string) ([]StoreSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]StoreSummary), args.Error(1)
}

func (m *repoMock) RatersForOwner(ctx context.Context, ownerID string) ([]Rater, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]Rater), args.Error(1)
}

func (m *repoMock) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func serveAs(repo Repository, role policy.Role, method, path, body string) *httptest.ResponseRecorder {
	asCaller := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: testUserID,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, asCaller)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandlerSubmit(t *testing.T) {
	repo := &repoMock{}
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *Rating) bool {
		return r.StoreID == testStoreID && r.UserID == testUserID && r.Value == 4
	})).Return(nil).Once()

	rec := serveAs(repo, policy.RoleUser, http.MethodPost, "/ratings/"+testStoreID, `{"rating": 4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body SubmitRatingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Rating submitted/updated successfully!", body.Message)
	assert.Equal(t, 4, body.Rating.Rating)
	repo.AssertExpectations(t)
}

func TestHandlerSubmitRejectsBeforeStorage(t *testing.T) {
	repo := &repoMock{}

	rec := serveAs(repo, policy.RoleUser, http.MethodPut, "/ratings/"+testStoreID, `{"rating": 9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveAs(repo, policy.RoleUser, http.MethodPost, "/ratings/"+testStoreID, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestHandlerSubmitUnknownStore(t *testing.T) {
	repo := &repoMock{}
	repo.On("Upsert", mock.Anything, mock.Anything).Return(core.ErrNotFound).Once()

	rec := serveAs(repo, policy.RoleUser, http.MethodPost, "/ratings/"+testStoreID, `{"rating": "3"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertExpectations(t)
}

func TestHandlerRatingIsNormalUserOnly(t *testing.T) {
	repo := &repoMock{}

	for _, role := range []policy.Role{policy.RoleAdmin, policy.RoleOwner} {
		rec := serveAs(repo, role, http.MethodPost, "/ratings/"+testStoreID, `{"rating": 3}`)
		assert.Equal(t, http.StatusForbidden, rec.Code, string(role))
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestHandlerMyRatings(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListByUser", mock.Anything, testUserID).Return([]MyRating{
		{StoreID: testStoreID, StoreName: "Acme Hardware Co", StoreAddress: "1 Main St", Rating: 5},
	}, nil).Once()

	rec := serveAs(repo, policy.RoleUser, http.MethodGet, "/ratings/my", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []MyRating
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "Acme Hardware Co", body[0].StoreName)
	repo.AssertExpectations(t)
}
