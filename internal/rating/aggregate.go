// AngelaMos | 2026
// aggregate.go

package rating

// StoreAverage is the arithmetic mean of values, or 0 for none.
func StoreAverage(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum int
	for _, v := range values {
		sum += v
	}

	return float64(sum) / float64(len(values))
}

// OwnerAverage is the unweighted mean of the per-store averages of the
// stores that have at least one rating. Unrated stores do not pull the
// result down; with no rated store at all the result is 0.
func OwnerAverage(stores []StoreSummary) float64 {
	var sum float64
	var rated int

	for _, s := range stores {
		if s.RatingCount <= 0 {
			continue
		}
		sum += s.AverageRating
		rated++
	}

	if rated == 0 {
		return 0
	}

	return sum / float64(rated)
}
