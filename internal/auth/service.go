// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/middleware"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, user NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type TokenIssuer interface {
	CreateAccessToken(
		claims middleware.AccessTokenClaims,
	) (string, time.Time, error)
}

type Service struct {
	tokens TokenIssuer
	users  UserProvider
}

func NewService(tokens TokenIssuer, users UserProvider) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
	}
}

// Register creates a self-service account. Only Store Owner may be chosen;
// every other requested role, System Administrator included, silently
// becomes Normal User.
func (s *Service) Register(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Address:      req.Address,
		Role:         policy.SignupRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("register: %w", core.NewAppError(
				err,
				"user with this email already exists",
				http.StatusConflict,
				core.CodeConflict,
			))
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user, "Registration successful!")
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	if err := core.Validate(&req); err != nil {
		return nil, err
	}

	var storedHash string
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case err == nil:
		storedHash = user.PasswordHash
	case errors.Is(err, core.ErrNotFound):
	default:
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, storedHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, invalidCredentials("invalid credentials")
	}

	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	return s.createAuthResponse(user, "Login successful!")
}

// ChangePassword checks the new password against the policy before looking
// at the old one, so a weak replacement is reported as 400 even when the old
// password is also wrong.
func (s *Service) ChangePassword(
	ctx context.Context,
	userID string,
	req ChangePasswordRequest,
) error {
	if err := core.Validate(&req); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("change password: %w", core.NotFoundError("user"))
		}
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		req.OldPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return invalidCredentials("incorrect old password")
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *Service) createAuthResponse(
	user *UserInfo,
	message string,
) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.CreateAccessToken(
		middleware.AccessTokenClaims{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		Message:   message,
		User:      toUserResponse(user),
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

func invalidCredentials(message string) error {
	return core.NewAppError(
		ErrInvalidCredentials,
		message,
		http.StatusUnauthorized,
		core.CodeUnauthorized,
	)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
