package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AccountList:
		o.printAccountList(v)
	case AuthResult:
		o.printAuthResult(v)
	case Review:
		o.printReview(v)
	case ReviewList:
		o.printReviewList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountList response type
type AccountList struct {
	Accounts []Account `json:"accounts"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// Review response type
type Review struct {
	ID         string    `json:"id"`
	MovieTitle string    `json:"movie_title"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewList response type
type ReviewList struct {
	Reviews []Review `json:"reviews"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Username, a.ID)
	if a.Email != "" {
		fmt.Printf("Email: %s\n", a.Email)
	}
	if a.IsAdmin {
		fmt.Println("Admin: yes")
	}
	fmt.Printf("Created: %s\n", a.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printAccountList(l AccountList) {
	fmt.Printf("Accounts (%d):\n", len(l.Accounts))
	for _, a := range l.Accounts {
		adminStr := ""
		if a.IsAdmin {
			adminStr = " [admin]"
		}
		fmt.Printf("  - %s (%s)%s\n", a.Username, a.ID, adminStr)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printReview(r Review) {
	fmt.Printf("%s\n", r.MovieTitle)
	fmt.Printf("%s (%d/5)\n", strings.Repeat("★", r.Rating)+strings.Repeat("☆", 5-r.Rating), r.Rating)
	fmt.Printf("%s\n", r.Content)
	fmt.Printf("ID: %s\n", r.ID)
	fmt.Printf("Author: %s\n", r.AuthorID)
	fmt.Printf("Created: %s\n", r.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printReviewList(l ReviewList) {
	fmt.Printf("Reviews (%d):\n", len(l.Reviews))
	for _, r := range l.Reviews {
		fmt.Printf("  - %s (%d/5) [%s]\n", r.MovieTitle, r.Rating, r.ID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
