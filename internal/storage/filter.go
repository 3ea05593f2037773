package storage

import (
	"sort"
	"strings"

	"github.com/cinelog/cinelog/internal/model"
)

// MatchesFilter reports whether a review satisfies the filter's match
// constraints (exact title, exact rating, substring search). Ordering
// is applied separately via SortReviews.
func MatchesFilter(review *model.Review, filter model.ReviewFilter) bool {
	if filter.MovieTitle != nil && review.MovieTitle != *filter.MovieTitle {
		return false
	}
	if filter.Rating != nil && review.Rating != *filter.Rating {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(review.MovieTitle), needle) &&
			!strings.Contains(strings.ToLower(review.Content), needle) {
			return false
		}
	}
	return true
}

// SortReviews orders reviews in place according to the filter.
// Default is creation time; rating ties fall back to creation time so
// results are stable across backends.
func SortReviews(reviews []*model.Review, filter model.ReviewFilter) {
	less := func(a, b *model.Review) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if filter.OrderBy == model.OrderByRating {
		less = func(a, b *model.Review) bool {
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		if filter.Descending {
			return less(reviews[j], reviews[i])
		}
		return less(reviews[i], reviews[j])
	})
}
