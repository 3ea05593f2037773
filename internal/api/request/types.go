package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateAccountRequest is the request body for the authenticated
// account creation endpoint
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

// UpdateAccountRequest is the request body for updating an account.
// Omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password,omitempty"`
}

// ReviewRequest is the request body for creating a review. Any author
// or timestamp fields in the payload are ignored; the server assigns
// both.
type ReviewRequest struct {
	MovieTitle string `json:"movie_title"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
}

// UpdateReviewRequest is the request body for updating a review.
// Omitted fields are left unchanged.
type UpdateReviewRequest struct {
	MovieTitle *string `json:"movie_title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
}
