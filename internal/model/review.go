package model

import "time"

// ReviewID uniquely identifies a review
type ReviewID string

// Rating bounds for a review
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents one user's review of a movie.
// AuthorID and CreatedAt are assigned by the service layer at creation
// and are immutable thereafter.
type Review struct {
	ID         ReviewID
	MovieTitle string
	Content    string
	Rating     int
	AuthorID   AccountID
	CreatedAt  time.Time
}

// Review ordering options
type ReviewOrder string

const (
	OrderByCreated ReviewOrder = "created"
	OrderByRating  ReviewOrder = "rating"
)

// ReviewFilter describes list constraints: exact matches on movie title
// and rating, a case-insensitive substring search over title and
// content, and an ordering. Nil pointer fields mean "no constraint".
type ReviewFilter struct {
	MovieTitle *string
	Rating     *int
	Search     string
	OrderBy    ReviewOrder
	Descending bool
}
