// AngelaMos | 2026
// dto.go

package rating

import (
	"encoding/json"
	"fmt"
	"time"
)

// SubmitRatingRequest takes the value as a json.Number so that both 4 and
// "4" are accepted; anything that is not a whole number in range is
// rejected by Value.
type SubmitRatingRequest struct {
	Rating json.Number `json:"rating"`
}

func (r SubmitRatingRequest) Value() (int, error) {
	invalid := fmt.Errorf(
		"rating must be a whole number between %d and %d", MinValue, MaxValue)

	if r.Rating == "" {
		return 0, invalid
	}

	n, err := r.Rating.Int64()
	if err != nil || n < MinValue || n > MaxValue {
		return 0, invalid
	}

	return int(n), nil
}

type RatingResponse struct {
	StoreID   string    `json:"store_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmitRatingResponse struct {
	Message string         `json:"message"`
	Rating  RatingResponse `json:"rating"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		StoreID:   r.StoreID,
		UserID:    r.UserID,
		Rating:    r.Value,
		UpdatedAt: r.UpdatedAt,
	}
}
