package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"pmctl/internal/commands"
	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/identity"
)

func testIdentity() config.Identity {
	return config.Identity{
		AuthURL:  "https://id.example.com/oauth/authorize",
		TokenURL: "https://id.example.com/oauth/token",
		ClientID: "pmctl-test",
	}
}

func saveToken(t *testing.T, path string, tok *oauth2.Token) {
	t.Helper()
	if err := identity.NewStore(path).Save(tok); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TestLoginCommand_NotConfigured verifies login fails without identity settings
func TestLoginCommand_NotConfigured(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, nil, false)

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stdout", "", stdout)
	if !strings.HasPrefix(stderr, "error: identity provider not configured\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !strings.Contains(stderr, "PMCTL_CLIENT_ID") {
		t.Errorf("expected env guidance in %q", stderr)
	}
}

// TestLoginCommand_AlreadyLoggedIn verifies a valid stored token short-circuits login
func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	cfg.Settings.Identity = testIdentity()
	saveToken(t, cfg.TokenPath(), &oauth2.Token{
		AccessToken: "access",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	})

	stdout, stderr, code := runWithConfig(t, cfg, &commands.LoginCmd{}, nil)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	expectOutput(t, "stdout", "already logged in\n", stdout)
}

// TestLoginCommand_GoogleNoClient verifies login --google explains the missing client file
func TestLoginCommand_GoogleNoClient(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, nil, false, "--google")

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stdout", "", stdout)
	if !strings.Contains(stderr, config.GoogleClientFile) {
		t.Errorf("expected %s in %q", config.GoogleClientFile, stderr)
	}
	if !strings.Contains(stderr, "pmctl login --google") {
		t.Errorf("expected retry hint in %q", stderr)
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout without a token is a no-op
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "not logged in\n", stdout)
}

// TestLogoutCommand_RemovesOnlyIdentityToken verifies the Google token survives a plain logout
func TestLogoutCommand_RemovesOnlyIdentityToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	saveToken(t, cfg.TokenPath(), &oauth2.Token{AccessToken: "access"})
	saveToken(t, cfg.GoogleTokenPath(), &oauth2.Token{AccessToken: "google"})

	stdout, _, code := runWithConfig(t, cfg, &commands.LogoutCmd{}, nil)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "ok\n", stdout)
	if fileExists(cfg.TokenPath()) {
		t.Error("token.json should be removed")
	}
	if !fileExists(cfg.GoogleTokenPath()) {
		t.Error("google token should be kept")
	}

	stdout, _, code = runWithConfig(t, cfg, &commands.LogoutCmd{}, nil, "--google")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "ok\n", stdout)
	if fileExists(cfg.GoogleTokenPath()) {
		t.Error("google token should be removed")
	}
}

// TestLogoutCommand_Quiet verifies --quiet suppresses output
func TestLogoutCommand_Quiet(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}
	saveToken(t, filepath.Join(cfg.Dir, config.TokenFile), &oauth2.Token{AccessToken: "access"})

	stdout, _, code := runWithConfig(t, cfg, &commands.LogoutCmd{}, nil)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "", stdout)
}

// TestWhoamiCommand_NotLoggedIn verifies whoami reports a missing session
func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.WhoamiCmd{}, nil, false)

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stdout", "", stdout)
	expectOutput(t, "stderr", "error: not logged in (run: pmctl login)\n", stderr)
}

// TestWhoamiCommand_IDTokenClaims verifies whoami decodes the stored ID token
func TestWhoamiCommand_IDTokenClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user_123",
		"email": "ada@example.com",
		"iss":   "https://id.example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	cfg := &config.Config{Dir: t.TempDir()}
	tok := (&oauth2.Token{AccessToken: "opaque", Expiry: exp}).WithExtra(map[string]any{"id_token": raw})
	saveToken(t, cfg.TokenPath(), tok)

	stdout, stderr, code := runWithConfig(t, cfg, &commands.WhoamiCmd{}, nil)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	want := "subject: user_123\n" +
		"email: ada@example.com\n" +
		"issuer: https://id.example.com\n" +
		"expires: 2030-01-02T03:04:05Z\n"
	expectOutput(t, "stdout", want, stdout)
}

// TestWhoamiCommand_OpaqueToken verifies whoami falls back for non-JWT tokens
func TestWhoamiCommand_OpaqueToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	saveToken(t, cfg.TokenPath(), &oauth2.Token{
		AccessToken: "opaque",
		Expiry:      time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	stdout, _, code := runWithConfig(t, cfg, &commands.WhoamiCmd{}, nil)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "signed in\nexpires: 2030-01-02T03:04:05Z\n", stdout)
}
