// AngelaMos | 2026
// service.go

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
)

const invalidOwnerMessage = "owner_id must reference an existing Store Owner"

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type RatingReader interface {
	OwnerStores(ctx context.Context, ownerID string) ([]rating.StoreSummary, error)
	RatersForOwner(ctx context.Context, ownerID string) ([]rating.Rater, error)
}

type Service struct {
	repo    Repository
	users   UserLookup
	ratings RatingReader
}

func NewService(repo Repository, users UserLookup, ratings RatingReader) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		ratings: ratings,
	}
}

// List is the directory read shared by every role. A Normal User also sees
// their own rating inline; other roles never do.
func (s *Service) List(
	ctx context.Context,
	params ListParams,
	viewerID string,
	viewerRole policy.Role,
) ([]StoreView, error) {
	if viewerRole != policy.RoleUser {
		viewerID = ""
	}

	listings, err := s.repo.List(ctx, params, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	views := make([]StoreView, 0, len(listings))
	for _, l := range listings {
		views = append(views, toStoreView(l))
	}

	return views, nil
}

func (s *Service) AdminList(
	ctx context.Context,
	params ListParams,
) ([]AdminStoreView, error) {
	listings, err := s.repo.List(ctx, params, "")
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	views := make([]AdminStoreView, 0, len(listings))
	for _, l := range listings {
		views = append(views, toAdminStoreView(l))
	}

	return views, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Store, error) {
	if !core.IsValidID(id) {
		return nil, core.NotFoundError("store")
	}

	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("get store: %w", core.NotFoundError("store"))
		}
		return nil, fmt.Errorf("get store: %w", err)
	}

	return store, nil
}

func (s *Service) Create(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	store := &Store{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}

	err := s.repo.WithinTx(ctx, func(repo Repository) error {
		if err := ensureNameFree(ctx, repo, req.Name, ""); err != nil {
			return err
		}
		if err := s.ensureOwner(ctx, req.OwnerID); err != nil {
			return err
		}
		if err := repo.Create(ctx, store); err != nil {
			return s.writeError("create store", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Update applies a partial update. Name uniqueness ignores the store being
// updated; a reassigned owner must be an existing Store Owner. The read, the
// checks and the write share one transaction.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateStoreRequest,
) (*Store, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	if !core.IsValidID(id) {
		return nil, core.NotFoundError("store")
	}

	var updated *Store
	err := s.repo.WithinTx(ctx, func(repo Repository) error {
		store, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("get store: %w", core.NotFoundError("store"))
			}
			return fmt.Errorf("get store: %w", err)
		}

		if req.Name != nil {
			if err := ensureNameFree(ctx, repo, *req.Name, store.ID); err != nil {
				return err
			}
			store.Name = *req.Name
		}
		if req.Address != nil {
			store.Address = *req.Address
		}
		if req.OwnerID.Set {
			if err := s.ensureOwner(ctx, req.OwnerID.Value); err != nil {
				return err
			}
			store.OwnerID = req.OwnerID.Value
		}

		if err := repo.Update(ctx, store); err != nil {
			return s.writeError("update store", err)
		}
		updated = store
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !core.IsValidID(id) {
		return core.NotFoundError("store")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("delete store: %w", core.NotFoundError("store"))
		}
		return fmt.Errorf("delete store: %w", err)
	}

	return nil
}

// OwnerDashboard gathers an owner's stores with their aggregates, every
// rating left on them, and the owner-level average.
func (s *Service) OwnerDashboard(
	ctx context.Context,
	ownerID string,
) (*OwnerDashboard, error) {
	ctx, span := core.StartSpan(ctx, "store.owner_dashboard")
	defer span.End()

	stores, err := s.ratings.OwnerStores(ctx, ownerID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("owner dashboard: %w", err)
	}

	raters, err := s.ratings.RatersForOwner(ctx, ownerID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("owner dashboard: %w", err)
	}

	return &OwnerDashboard{
		OwnerStores:                       stores,
		UsersWhoRated:                     raters,
		OverallAverageRatingOfOwnedStores: rating.OwnerAverage(stores),
	}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func ensureNameFree(ctx context.Context, repo Repository, name, selfID string) error {
	existing, err := repo.GetByName(ctx, name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check store name: %w", err)
	case existing.ID != selfID:
		return core.DuplicateError("store name")
	}
	return nil
}

// ensureOwner accepts a nil owner. Otherwise the id must resolve to a user
// whose role is Store Owner at the time of the write.
func (s *Service) ensureOwner(ctx context.Context, ownerID *string) error {
	if ownerID == nil {
		return nil
	}

	owner, err := s.users.GetByID(ctx, *ownerID)
	if errors.Is(err, core.ErrNotFound) {
		return core.BadRequestError(invalidOwnerMessage)
	}
	if err != nil {
		return fmt.Errorf("check owner: %w", err)
	}

	if owner.Role != policy.RoleOwner {
		return core.BadRequestError(invalidOwnerMessage)
	}

	return nil
}

func (s *Service) writeError(op string, err error) error {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		return fmt.Errorf("%s: %w", op, core.DuplicateError("store name"))
	case errors.Is(err, core.ErrNotFound):
		return fmt.Errorf("%s: %w", op, core.BadRequestError(invalidOwnerMessage))
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
