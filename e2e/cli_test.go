package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/api"
	"github.com/cinelog/cinelog/internal/factory"
	"github.com/cinelog/cinelog/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "cinelog-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/cinelog")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with in-memory storage
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		AccountService: app.AccountService,
		ReviewService:  app.ReviewService,
	})

	webRouter, err := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		AccountService: app.AccountService,
		ReviewService:  app.ReviewService,
	})
	require.NoError(t, err)

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type accountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type authResponse struct {
	Account      accountResponse `json:"account"`
	SessionToken string          `json:"session_token"`
}

type reviewResponse struct {
	ID         string `json:"id"`
	MovieTitle string `json:"movie_title"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	AuthorID   string `json:"author_id"`
}

type reviewListResponse struct {
	Reviews []reviewResponse `json:"reviews"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("account", "register", "--user", "alice", "--email", "alice@example.com", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.Account.Username)
	assert.False(t, authResp.Account.IsAdmin)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("account", "me")
	require.NoError(t, err, "output: %s", output)

	var me accountResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, authResp.Account.ID, me.ID)

	// Update own email
	output, err = cli.run("account", "update", me.ID, "--email", "new@example.com")
	require.NoError(t, err, "output: %s", output)

	var updated accountResponse
	require.NoError(t, json.Unmarshal([]byte(output), &updated))
	assert.Equal(t, "new@example.com", updated.Email)

	// Logout clears the saved token
	output, err = cli.run("account", "logout")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Logged out", msgResp.Message)

	output, err = cli.run("account", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Login again
	output, err = cli.run("account", "login", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.Account.Username)
}

func TestCLI_ReviewFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Register two accounts
	output, err := cli1.run("account", "register", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("account", "register", "--user", "bob", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice publishes a review
	output, err = cli1.runWithToken(token1, "review", "create",
		"--title", "Dune", "--content", "Sandworms deliver.", "--rating", "5")
	require.NoError(t, err, "output: %s", output)

	var created reviewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Dune", created.MovieTitle)
	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, auth1.Account.ID, created.AuthorID)

	// Bob publishes one too
	output, err = cli2.runWithToken(token2, "review", "create",
		"--title", "Heat", "--content", "The diner scene alone.", "--rating", "4")
	require.NoError(t, err, "output: %s", output)

	// Anyone can list
	output, err = cli1.run("review", "list")
	require.NoError(t, err, "output: %s", output)
	var list reviewListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Len(t, list.Reviews, 2)

	// Filter by rating
	output, err = cli1.run("review", "list", "--rating", "5")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, "Dune", list.Reviews[0].MovieTitle)

	// Search review text
	output, err = cli1.run("review", "list", "--search", "diner")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, "Heat", list.Reviews[0].MovieTitle)

	// Order by rating, highest first
	output, err = cli1.run("review", "list", "--order", "rating")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Reviews, 2)
	assert.Equal(t, "Dune", list.Reviews[0].MovieTitle)

	// Bob cannot touch Alice's review
	output, err = cli2.runWithToken(token2, "review", "update", created.ID,
		"--title", "Dune", "--content", "Hijacked.", "--rating", "1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "permission")

	output, err = cli2.runWithToken(token2, "review", "delete", created.ID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "permission")

	// Alice updates and deletes her own
	output, err = cli1.runWithToken(token1, "review", "update", created.ID,
		"--title", "Dune", "--content", "Even better on rewatch.", "--rating", "5")
	require.NoError(t, err, "output: %s", output)

	var updated reviewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &updated))
	assert.Equal(t, "Even better on rewatch.", updated.Content)

	output, err = cli1.runWithToken(token1, "review", "delete", created.ID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Review deleted", msgResp.Message)

	output, err = cli1.run("review", "get", created.ID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get account without auth
	output, err := cli.run("account", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Create review without auth
	output, err = cli.run("review", "create", "--title", "Dune", "--content", "x", "--rating", "5")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Validation errors name the failing fields
	output, err = cli.run("account", "register", "--user", "al", "--pass", "short")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "username")
	assert.Contains(t, strings.ToLower(output), "password")

	// Get non-existent review
	output, err = cli.run("review", "get", "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
