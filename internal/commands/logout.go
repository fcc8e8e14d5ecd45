package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
// Only the identity token is removed unless --google is given.
type LogoutCmd struct {
	google bool
}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string      { return "pmctl logout [--google]" }
func (c *LogoutCmd) NeedsService() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {
	c.google = false
	fs.BoolVar(&c.google, "google", false, "")
}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	has, remove := cfg.HasToken, cfg.RemoveToken
	if c.google {
		has, remove = cfg.HasGoogleToken, cfg.RemoveGoogleToken
	}

	if !has() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := remove(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
