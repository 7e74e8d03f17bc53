// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

// OwnerAverager yields the average-of-averages across the stores an owner
// holds, 0 when none of them has been rated.
type OwnerAverager interface {
	OwnerAverage(ctx context.Context, ownerID string) (float64, error)
}

type Service struct {
	repo   Repository
	owners OwnerAverager
}

// NewService builds the user service. owners may be nil, in which case
// owner entries are returned without their rating aggregate.
func NewService(repo Repository, owners OwnerAverager) *Service {
	return &Service{repo: repo, owners: owners}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         nu.Name,
		Email:        normalizeEmail(nu.Email),
		PasswordHash: nu.PasswordHash,
		Address:      nu.Address,
		Role:         nu.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// CreateUser is the administrator path: any role may be assigned and the
// password is mandatory. A known email is rejected before the password is
// hashed; the unique index still settles concurrent creates.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*UserResponse, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("create user: %w", core.DuplicateError("email"))
	}

	role := policy.RoleUser
	if req.Role != "" {
		role = policy.Role(req.Role)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Address:      req.Address,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("create user: %w", core.DuplicateError("email"))
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.toResponse(ctx, user)
}

func (s *Service) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, user)
}

// ListUsers filters by exact role; a role nobody holds yields an empty list.
func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]UserResponse, error) {
	params.Normalize()

	users, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		resp, err := s.toResponse(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}

	return out, nil
}

// UpdateUser applies an administrator's partial update. Only supplied
// fields change; a new email must not belong to another account.
func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*UserResponse, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := s.ensureEmailFree(ctx, *req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.Role != nil {
		user.Role = policy.Role(*req.Role)
	}
	if req.Password != nil {
		passwordHash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, user)
}

// DeleteUser hard-deletes id on behalf of requesterID. Administrators may
// not remove their own account.
func (s *Service) DeleteUser(ctx context.Context, requesterID, id string) error {
	if requesterID == id {
		return core.ForbiddenError("administrators cannot delete their own account")
	}

	if !core.IsValidID(id) {
		return fmt.Errorf("delete user: %w", core.NotFoundError("user"))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("delete user: %w", core.NotFoundError("user"))
		}
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	if userID == "" {
		return nil, core.UnauthorizedError("")
	}

	return s.GetUser(ctx, userID)
}

// UpdateProfile is the self-service partial update. Role and password are
// not reachable from here.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*UserResponse, error) {
	if userID == "" {
		return nil, core.UnauthorizedError("")
	}

	return s.UpdateUser(ctx, userID, UpdateUserRequest{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) load(ctx context.Context, id string) (*User, error) {
	if !core.IsValidID(id) {
		return nil, core.NotFoundError("user")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("get user: %w", core.NotFoundError("user"))
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (s *Service) save(ctx context.Context, user *User) error {
	err := s.repo.Update(ctx, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrDuplicateKey):
		return fmt.Errorf("update user: %w", core.DuplicateError("email"))
	case errors.Is(err, core.ErrNotFound):
		return fmt.Errorf("update user: %w", core.NotFoundError("user"))
	default:
		return fmt.Errorf("update user: %w", err)
	}
}

func (s *Service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != selfID:
		return core.DuplicateError("email")
	}
	return nil
}

func (s *Service) toResponse(ctx context.Context, u *User) (*UserResponse, error) {
	resp := ToUserResponse(u)

	if u.IsStoreOwner() && s.owners != nil {
		avg, err := s.owners.OwnerAverage(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("owner average: %w", err)
		}
		resp.OwnedStoresAverageRating = &avg
	}

	return &resp, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Address:      u.Address,
		Role:         u.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ auth.UserProvider = (*Service)(nil)
