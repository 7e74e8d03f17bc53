// AngelaMos | 2026
// handler.go

package store

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
	r.Route("/stores", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.Authorize(policy.OpListStores)).Get("/", h.List)
		r.With(middleware.Authorize(policy.OpOwnerDashboard)).
			Get("/owner/dashboard", h.OwnerDashboard)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin/stores", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.Authorize(policy.OpManageStores))

		r.Get("/", h.AdminList)
		r.Post("/", h.Create)
		r.Get("/{storeID}", h.Get)
		r.Put("/{storeID}", h.Update)
		r.Delete("/{storeID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stores, err := h.service.List(
		ctx,
		listParams(r),
		middleware.GetUserID(ctx),
		middleware.GetUserRole(ctx),
	)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, stores)
}

func (h *Handler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.OwnerDashboard(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, dashboard)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.AdminList(r.Context(), listParams(r))
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, stores)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.Get(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, ToStoreResponse(store))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	store, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.Created(w, StoreEnvelope{
		Message: "Store added successfully!",
		Store:   ToStoreResponse(store),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	store, err := h.service.Update(r.Context(), chi.URLParam(r, "storeID"), req)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.OK(w, StoreEnvelope{
		Message: "Store updated successfully!",
		Store:   ToStoreResponse(store),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "storeID")); err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.Message(w, "Store deleted successfully!")
}

func listParams(r *http.Request) ListParams {
	q := r.URL.Query()
	return ListParams{
		Name:      q.Get("name"),
		Address:   q.Get("address"),
		SortField: q.Get("field"),
		SortOrder: q.Get("order"),
	}
}
