// AngelaMos | 2026
// handler.go

package rating

import (
	"encoding/json"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/ratings", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.Authorize(policy.OpSubmitRating))

		r.Get("/my", h.MyRatings)
		r.Post("/{storeID}", h.Submit)
		r.Put("/{storeID}", h.Submit)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	rating, err := h.service.Submit(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "storeID"),
		req,
	)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, SubmitRatingResponse{
		Message: "Rating submitted/updated successfully!",
		Rating:  ToRatingResponse(rating),
	})
}

func (h *Handler) MyRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.MyRatings(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, ratings)
}
