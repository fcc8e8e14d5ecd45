package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"pmctl/internal/backend/googletasks"
	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/service"
)

func init() {
	Register(&ExportGoogleCmd{})
}

// TaskExporter writes task items into an external task list.
type TaskExporter interface {
	Export(ctx context.Context, listTitle string, items []service.TaskListItem) (googletasks.Result, error)
}

// ExportGoogleCmd mirrors a project's open tasks into Google Tasks.
type ExportGoogleCmd struct {
	// NewExporter builds the exporter. Nil means googletasks.New.
	NewExporter func(ctx context.Context, cfg *config.Config) (TaskExporter, error)

	list string
}

func (c *ExportGoogleCmd) Name() string       { return "export-google" }
func (c *ExportGoogleCmd) Aliases() []string  { return nil }
func (c *ExportGoogleCmd) Synopsis() string   { return "Copy a project's open tasks to Google Tasks" }
func (c *ExportGoogleCmd) Usage() string      { return "pmctl export-google [--list <name>] <project-id>" }
func (c *ExportGoogleCmd) NeedsService() bool { return true }

func (c *ExportGoogleCmd) RegisterFlags(fs *flag.FlagSet) {
	c.list = ""
	fs.StringVar(&c.list, "list", "", "")
}

func (c *ExportGoogleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	projectID, ok := idArg("project", args, errOut)
	if !ok {
		return exitcode.UserError
	}

	newExporter := c.NewExporter
	if newExporter == nil {
		if !cfg.HasGoogleToken() {
			fmt.Fprintln(errOut, "error: not authorized for Google Tasks (run: pmctl login --google)")
			return exitcode.AuthError
		}
		newExporter = func(ctx context.Context, cfg *config.Config) (TaskExporter, error) {
			return googletasks.New(ctx, cfg)
		}
	}

	project, items, err := projectTasks(ctx, svc, projectID)
	if err != nil {
		return reportError(errOut, err)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	title := strings.TrimSpace(c.list)
	if title == "" {
		title = project.Title
	}
	res, err := exporter.Export(ctx, title, items)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if res.CreatedList {
			fmt.Fprintf(out, "created list %s\n", res.ListTitle)
		}
		fmt.Fprintf(out, "exported %d, skipped %d\n", res.Exported, res.Skipped)
	}
	return exitcode.Success
}
