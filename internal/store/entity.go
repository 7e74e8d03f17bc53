// AngelaMos | 2026
// entity.go

package store

import (
	"time"
)

type Store struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	OwnerID   *string   `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Listing is a store row joined with its rating aggregate. UserRating is
// set only when the listing was requested on behalf of a viewer who has
// rated the store.
type Listing struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Address       string  `db:"address"`
	OwnerID       *string `db:"owner_id"`
	OverallRating float64 `db:"overall_rating"`
	RatingCount   int     `db:"rating_count"`
	UserRating    *int    `db:"user_submitted_rating"`
}
