// staffdeskctl is a small operator CLI against a running StaffDesk API. It
// keeps a local session record so permission predicates can be answered
// offline between calls.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/guard"
	"github.com/staffdesk/staffdesk-backend-go/internal/session"
)

const usage = `Usage: staffdeskctl <command> [args]

Commands:
  login <username> <password>   sign in and persist the session
  logout                        sign out and erase the session
  whoami                        print the current identity
  can <permission> [...]        check permissions (ANY semantics)
  landing                       print the resolved landing route
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Error("cannot resolve home directory", "error", err)
		os.Exit(1)
	}
	store := session.NewFileStore(filepath.Join(home, ".staffdesk", "session.json"))

	baseURL := os.Getenv("STAFFDESK_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	creds := &apiCredentialStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	sess := session.New(store, creds, audit.NewLogRecorder(logger), logger)

	ctx := context.Background()
	sess.Restore(ctx)

	switch os.Args[1] {
	case "login":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "usage: staffdeskctl login <username> <password>")
			os.Exit(2)
		}
		if err := sess.Login(ctx, os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintln(os.Stderr, "login failed:", err)
			os.Exit(1)
		}
		ident, _ := sess.Current()
		fmt.Printf("signed in as %s (%s)\n", ident.Username, ident.Role)

	case "logout":
		sess.Logout(ctx)
		fmt.Println("signed out")

	case "whoami":
		ident, ok := sess.Current()
		if !ok {
			fmt.Println("not signed in")
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(identity.ToResponse(ident), "", "  ")
		fmt.Println(string(out))

	case "can":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: staffdeskctl can <permission> [...]")
			os.Exit(2)
		}
		perms := identity.PermissionsFromStrings(os.Args[2:])
		if len(perms) != len(os.Args[2:]) {
			fmt.Fprintln(os.Stderr, "unknown permission token")
			os.Exit(2)
		}
		if sess.HasAnyPermission(perms) {
			fmt.Println("yes")
		} else {
			fmt.Println("no")
			os.Exit(1)
		}

	case "landing":
		fmt.Println(guard.ResolveLanding(sess))

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// apiCredentialStore verifies credentials against the API's login endpoint.
// The CLI never sees password hashes; the server does the checking.
type apiCredentialStore struct {
	baseURL string
	client  *http.Client
}

func (s *apiCredentialStore) Verify(ctx context.Context, username, password string) (identity.Identity, error) {
	body, err := json.Marshal(auth.LoginRequest{Username: username, Password: password})
	if err != nil {
		return identity.Identity{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return identity.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return identity.Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return identity.Identity{}, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return identity.Identity{}, fmt.Errorf("decode login response: %w", err)
	}

	return envelope.Data.User.ToIdentity(), nil
}
