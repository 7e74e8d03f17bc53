// AngelaMos | 2026
// aggregate_test.go

package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreAverage(t *testing.T) {
	assert.Equal(t, 0.0, StoreAverage(nil))
	assert.Equal(t, 4.0, StoreAverage([]int{4}))
	assert.InDelta(t, 3.5, StoreAverage([]int{3, 4}), 1e-9)
	assert.InDelta(t, 2.0, StoreAverage([]int{1, 2, 3}), 1e-9)
}

func TestOwnerAverage(t *testing.T) {
	tests := []struct {
		name   string
		stores []StoreSummary
		want   float64
	}{
		{
			name: "no stores",
			want: 0,
		},
		{
			name: "only unrated stores",
			stores: []StoreSummary{
				{ID: "a", AverageRating: 0, RatingCount: 0},
				{ID: "b", AverageRating: 0, RatingCount: 0},
			},
			want: 0,
		},
		{
			name: "unrated store is excluded",
			stores: []StoreSummary{
				{ID: "a", AverageRating: 4, RatingCount: 2},
				{ID: "b", AverageRating: 0, RatingCount: 0},
			},
			want: 4,
		},
		{
			name: "mean of means is unweighted",
			stores: []StoreSummary{
				{ID: "a", AverageRating: 5, RatingCount: 10},
				{ID: "b", AverageRating: 2, RatingCount: 1},
			},
			want: 3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OwnerAverage(tt.stores), 1e-9)
		})
	}
}

func TestSubmitRatingRequestValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "5", want: 5},
		{raw: "0", wantErr: true},
		{raw: "6", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "4.5", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := SubmitRatingRequest{Rating: jsonNumber(tt.raw)}.Value()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
