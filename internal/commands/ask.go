package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/service"
)

func init() {
	Register(&AskCmd{})
}

// AskCmd sends a question to the AI assistant.
type AskCmd struct{}

func (c *AskCmd) Name() string       { return "ask" }
func (c *AskCmd) Aliases() []string  { return []string{"chat"} }
func (c *AskCmd) Synopsis() string   { return "Ask the AI assistant" }
func (c *AskCmd) Usage() string      { return "pmctl ask <message...>" }
func (c *AskCmd) NeedsService() bool { return true }

func (c *AskCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AskCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	msg := strings.TrimSpace(strings.Join(args, " "))
	if msg == "" {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}

	reply, err := svc.SendAIMessage(ctx, msg)
	if err != nil {
		return reportError(errOut, err)
	}
	fmt.Fprintln(out, strings.TrimRight(reply, "\n"))
	return exitcode.Success
}
