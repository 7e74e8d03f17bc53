// AngelaMos | 2026
// entity.go

package rating

import (
	"time"
)

const (
	MinValue = 1
	MaxValue = 5
)

type Rating struct {
	ID        string    `db:"id"`
	StoreID   string    `db:"store_id"`
	UserID    string    `db:"user_id"`
	Value     int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MyRating is one of the caller's own ratings joined with its store.
type MyRating struct {
	StoreID      string    `db:"store_id"      json:"store_id"`
	StoreName    string    `db:"store_name"    json:"store_name"`
	StoreAddress string    `db:"store_address" json:"store_address"`
	Rating       int       `db:"rating"        json:"rating"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}

// Rater is a (user, store, rating) triple on a store held by some owner.
type Rater struct {
	UserID    string `db:"user_id"    json:"user_id"`
	UserName  string `db:"user_name"  json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
	Rating    int    `db:"rating"     json:"rating"`
	StoreName string `db:"store_name" json:"store_name"`
	StoreID   string `db:"store_id"   json:"store_id"`
}

// StoreSummary carries one store's mean rating and how many ratings it has.
// AverageRating is 0 when RatingCount is 0.
type StoreSummary struct {
	ID            string  `db:"id"             json:"id"`
	Name          string  `db:"name"           json:"name"`
	Address       string  `db:"address"        json:"address"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	RatingCount   int     `db:"rating_count"   json:"rating_count"`
}
