package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"

	"pmctl/internal/backend/googletasks"
	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/identity"
	"pmctl/internal/service"
)

// Token validation timeout
const validateTimeout = 10 * time.Second

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	google bool
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Sign in (--google: authorize Google Tasks export)" }
func (c *LoginCmd) Usage() string      { return "pmctl login [--google]" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.google = false
	fs.BoolVar(&c.google, "google", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.google {
		return loginGoogle(ctx, cfg, out, errOut)
	}

	id := cfg.Settings.Identity
	if !id.Configured() {
		fmt.Fprintln(errOut, "error: identity provider not configured")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Set these environment variables:")
		fmt.Fprintln(errOut, "  PMCTL_AUTH_URL    authorization endpoint")
		fmt.Fprintln(errOut, "  PMCTL_TOKEN_URL   token endpoint")
		fmt.Fprintln(errOut, "  PMCTL_CLIENT_ID   OAuth client id")
		fmt.Fprintf(errOut, "or add an [identity] table to %s\n", cfg.SettingsPath())
		return exitcode.AuthError
	}

	oauthConfig := identity.OAuthConfig(id)
	store := identity.NewStore(cfg.TokenPath())

	if tok, err := store.Load(); err == nil && isTokenValid(ctx, oauthConfig, store, tok) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	tok, err := identity.Login(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := store.Save(tok); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// isTokenValid reports whether tok is usable now or can be refreshed.
func isTokenValid(ctx context.Context, cfg *oauth2.Config, store *identity.Store, tok *oauth2.Token) bool {
	if tok.Valid() {
		return true
	}
	if tok.RefreshToken == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()
	_, err := identity.NewProvider(ctx, cfg, store, tok, discardLogger()).Token(ctx)
	return err == nil
}

func loginGoogle(ctx context.Context, cfg *config.Config, out, errOut io.Writer) int {
	if !cfg.HasGoogleClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.GoogleClientFile, cfg.Dir)
		fmt.Fprintln(errOut, "To export tasks to Google Tasks, you need OAuth credentials:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
		fmt.Fprintln(errOut, "2. Enable the Google Tasks API:")
		fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
		fmt.Fprintln(errOut, "3. Create an OAuth client ID of type 'Desktop app' and download the JSON")
		fmt.Fprintln(errOut, "4. Save it as:")
		fmt.Fprintf(errOut, "   %s\n", cfg.GoogleClientPath())
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Then run 'pmctl login --google' again.")
		return exitcode.AuthError
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	tok, err := identity.Login(ctx, oauthConfig, errOut, oauth2.SetAuthURLParam("prompt", "consent"))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if err := identity.NewStore(cfg.GoogleTokenPath()).Save(tok); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

var errNotLoggedIn = errors.New("not logged in (run: pmctl login)")
