package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID string

// Account represents a registered user of the review site.
// PasswordHash is a bcrypt digest; the plaintext credential is never
// stored and the hash is never exposed through adapter response types.
type Account struct {
	ID           AccountID
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
