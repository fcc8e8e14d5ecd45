package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/identity"
	"pmctl/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the identity of the stored session without calling any backend.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Show the signed-in identity" }
func (c *WhoamiCmd) Usage() string      { return "pmctl whoami" }
func (c *WhoamiCmd) NeedsService() bool { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tok, err := identity.NewStore(cfg.TokenPath()).Load()
	if errors.Is(err, identity.ErrNotLoggedIn) {
		fmt.Fprintf(errOut, "error: %v\n", errNotLoggedIn)
		return exitcode.AuthError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	claims, err := identity.ParseClaims(identity.BearerToken(tok))
	if err != nil {
		// Opaque token: only the expiry is known.
		fmt.Fprintln(out, "signed in")
		if !tok.Expiry.IsZero() {
			fmt.Fprintf(out, "expires: %s\n", tok.Expiry.UTC().Format(time.RFC3339))
		}
		return exitcode.Success
	}

	fmt.Fprintf(out, "subject: %s\n", claims.Subject)
	if claims.Email != "" {
		fmt.Fprintf(out, "email: %s\n", claims.Email)
	}
	if claims.Issuer != "" {
		fmt.Fprintf(out, "issuer: %s\n", claims.Issuer)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "expires: %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return exitcode.Success
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
