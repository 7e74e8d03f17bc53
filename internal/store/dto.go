// AngelaMos | 2026
// dto.go

package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
)

type CreateStoreRequest struct {
	Name    string  `json:"name"     validate:"required,min=8,max=20"`
	Address string  `json:"address"  validate:"required,max=400"`
	OwnerID *string `json:"owner_id"`
}

// UpdateStoreRequest is a partial update. OwnerID distinguishes an absent
// key (keep the owner) from an explicit null (clear it).
type UpdateStoreRequest struct {
	Name    *string    `json:"name"     validate:"omitempty,min=8,max=20"`
	Address *string    `json:"address"  validate:"omitempty,max=400"`
	OwnerID OptionalID `json:"owner_id" validate:"-"`
}

type OptionalID struct {
	Set   bool
	Value *string
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

const (
	SortByName          = "name"
	SortByAddress       = "address"
	SortByOverallRating = "overall_rating"

	SortAsc  = "asc"
	SortDesc = "desc"
)

var sortColumns = map[string]string{
	SortByName:          "s.name",
	SortByAddress:       "s.address",
	SortByOverallRating: "overall_rating",
}

type ListParams struct {
	Name      string
	Address   string
	SortField string
	SortOrder string
}

// Normalize falls back to name ascending for an unknown sort field; an
// unknown order means ascending.
func (p *ListParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)

	if _, ok := sortColumns[p.SortField]; !ok {
		p.SortField = SortByName
		p.SortOrder = SortAsc
		return
	}

	if strings.EqualFold(p.SortOrder, SortDesc) {
		p.SortOrder = SortDesc
	} else {
		p.SortOrder = SortAsc
	}
}

func (p ListParams) orderBy() string {
	return sortColumns[p.SortField] + " " + strings.ToUpper(p.SortOrder)
}

// StoreView is the directory entry every role sees. UserSubmittedRating is
// present only for a Normal User who has rated the store.
type StoreView struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	OverallRating       float64 `json:"overall_rating"`
	UserSubmittedRating *int    `json:"user_submitted_rating,omitempty"`
}

type AdminStoreView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	OwnerID       *string `json:"owner_id"`
	OverallRating float64 `json:"overall_rating"`
	RatingCount   int     `json:"rating_count"`
}

type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	OwnerID   *string   `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StoreEnvelope struct {
	Message string        `json:"message"`
	Store   StoreResponse `json:"store"`
}

type OwnerDashboard struct {
	OwnerStores                       []rating.StoreSummary `json:"owner_stores"`
	UsersWhoRated                     []rating.Rater        `json:"users_who_rated"`
	OverallAverageRatingOfOwnedStores float64               `json:"overall_average_rating_of_owned_stores"`
}

func ToStoreResponse(s *Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toStoreView(l Listing) StoreView {
	return StoreView{
		ID:                  l.ID,
		Name:                l.Name,
		Address:             l.Address,
		OverallRating:       l.OverallRating,
		UserSubmittedRating: l.UserRating,
	}
}

func toAdminStoreView(l Listing) AdminStoreView {
	return AdminStoreView{
		ID:            l.ID,
		Name:          l.Name,
		Address:       l.Address,
		OwnerID:       l.OwnerID,
		OverallRating: l.OverallRating,
		RatingCount:   l.RatingCount,
	}
}
