package account

import (
	"strings"

	"github.com/cinelog/cinelog/internal/model"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
)

// ValidateCreate checks the caller-supplied fields of a new account
func ValidateCreate(input CreateInput) *model.ValidationError {
	verr := &model.ValidationError{}
	validateUsername(verr, input.Username)
	if input.Password == "" {
		verr.Add("password", "is required")
	} else if len(input.Password) < minPasswordLen {
		verr.Add("password", "must be at least 8 characters")
	}
	return verr
}

// ValidateUpdate checks the caller-supplied fields of an account
// update. An empty password means "leave unchanged" and is not an
// error.
func ValidateUpdate(input UpdateInput) *model.ValidationError {
	verr := &model.ValidationError{}
	if input.Username != nil {
		validateUsername(verr, *input.Username)
	}
	if input.Password != "" && len(input.Password) < minPasswordLen {
		verr.Add("password", "must be at least 8 characters")
	}
	return verr
}

func validateUsername(verr *model.ValidationError, username string) {
	switch {
	case strings.TrimSpace(username) == "":
		verr.Add("username", "is required")
	case len(username) < minUsernameLen:
		verr.Add("username", "must be at least 3 characters")
	case len(username) > maxUsernameLen:
		verr.Add("username", "must be at most 50 characters")
	}
}
