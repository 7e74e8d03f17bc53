// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/middleware"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /auth. limiter, when non-nil, guards the
// credential endpoints on top of the global budget.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter)
			}
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.Authorize(policy.OpProfile))
			r.Post("/logout", h.Logout)
			r.Put("/password", h.ChangePassword)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, resp)
}

// Logout has no server-side effect; tokens are stateless and the client
// discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		slog.InfoContext(r.Context(), "user logged out",
			"user_id", claims.UserID,
			"role", claims.Role,
		)
	}
	core.Message(w, "Logged out successfully (client should discard token).")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.Message(w, "Password updated successfully!")
}
