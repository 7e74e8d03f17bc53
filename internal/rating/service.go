// AngelaMos | 2026
// service.go

package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records userID's rating for storeID, replacing any earlier one.
// The value is checked before storage is touched; an unknown store is
// reported as not found.
func (s *Service) Submit(
	ctx context.Context,
	userID, storeID string,
	req SubmitRatingRequest,
) (*Rating, error) {
	value, err := req.Value()
	if err != nil {
		return nil, core.ValidationError([]string{err.Error()})
	}

	if !core.IsValidID(storeID) {
		return nil, core.NotFoundError("store")
	}

	ctx, span := core.StartSpan(ctx, "rating.submit",
		attribute.String("store.id", storeID),
		attribute.Int("rating.value", value),
	)
	defer span.End()

	rating := &Rating{
		ID:      uuid.New().String(),
		StoreID: storeID,
		UserID:  userID,
		Value:   value,
	}

	if err := s.repo.Upsert(ctx, rating); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("submit rating: %w", core.NotFoundError("store"))
		}
		if errors.Is(err, core.ErrUnauthorized) {
			return nil, fmt.Errorf("submit rating: %w",
				core.UnauthorizedError("account no longer exists"))
		}
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	return rating, nil
}

func (s *Service) MyRatings(ctx context.Context, userID string) ([]MyRating, error) {
	ratings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("my ratings: %w", err)
	}
	return ratings, nil
}

func (s *Service) OwnerStores(
	ctx context.Context,
	ownerID string,
) ([]StoreSummary, error) {
	return s.repo.OwnerStores(ctx, ownerID)
}

func (s *Service) RatersForOwner(ctx context.Context, ownerID string) ([]Rater, error) {
	return s.repo.RatersForOwner(ctx, ownerID)
}

// OwnerAverage loads the owner's stores and folds them with the package
// level OwnerAverage.
func (s *Service) OwnerAverage(ctx context.Context, ownerID string) (float64, error) {
	stores, err := s.repo.OwnerStores(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("owner average: %w", err)
	}
	return OwnerAverage(stores), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
