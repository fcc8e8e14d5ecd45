package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/output"
	"pmctl/internal/service"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func init() {
	Register(&LabelsCmd{})
	Register(&LabelCmd{})
	Register(&LabelCreateCmd{})
	Register(&LabelUpdateCmd{})
	Register(&LabelRmCmd{})
}

// LabelsCmd lists labels.
type LabelsCmd struct {
	active optBool
	skip   optInt
	limit  optInt
}

func (c *LabelsCmd) Name() string       { return "labels" }
func (c *LabelsCmd) Aliases() []string  { return nil }
func (c *LabelsCmd) Synopsis() string   { return "List labels" }
func (c *LabelsCmd) Usage() string      { return "pmctl labels [--active] [--skip <n>] [--limit <n>]" }
func (c *LabelsCmd) NeedsService() bool { return true }

func (c *LabelsCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = LabelsCmd{}
	fs.Var(&c.active, "active", "")
	fs.Var(&c.skip, "skip", "")
	fs.Var(&c.limit, "limit", "")
}

func (c *LabelsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	labels, err := svc.Labels(ctx, service.LabelFilters{
		Skip:     c.skip.ptr(),
		Limit:    c.limit.ptr(),
		IsActive: c.active.ptr(),
	})
	if err != nil {
		return reportError(errOut, err)
	}
	if len(labels) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no labels found")
		}
		return exitcode.Success
	}
	output.Labels(out, labels)
	return exitcode.Success
}

// LabelCmd shows one label.
type LabelCmd struct{}

func (c *LabelCmd) Name() string       { return "label" }
func (c *LabelCmd) Aliases() []string  { return nil }
func (c *LabelCmd) Synopsis() string   { return "Show a label" }
func (c *LabelCmd) Usage() string      { return "pmctl label <id>" }
func (c *LabelCmd) NeedsService() bool { return true }

func (c *LabelCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LabelCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("label", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	l, err := svc.Label(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	output.Labels(out, []service.Label{l})
	if desc := strings.TrimSpace(l.Description); desc != "" {
		fmt.Fprintf(out, "\n%s\n", desc)
	}
	return exitcode.Success
}

// LabelCreateCmd creates a label.
type LabelCreateCmd struct {
	color       string
	description optString
}

func (c *LabelCreateCmd) Name() string       { return "label-create" }
func (c *LabelCreateCmd) Aliases() []string  { return nil }
func (c *LabelCreateCmd) Synopsis() string   { return "Create a label" }
func (c *LabelCreateCmd) Usage() string      { return "pmctl label-create [--color #rrggbb] [--description <d>] <name...>" }
func (c *LabelCreateCmd) NeedsService() bool { return true }

func (c *LabelCreateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = LabelCreateCmd{}
	fs.StringVar(&c.color, "color", "#3b82f6", "")
	fs.Var(&c.description, "description", "")
}

func (c *LabelCreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}
	req := service.LabelRequest{Name: &name, Description: c.description.ptr()}
	if c.color != "" {
		if !hexColor.MatchString(c.color) {
			fmt.Fprintf(errOut, "error: invalid color: %s\n", c.color)
			return exitcode.UserError
		}
		color := c.color
		req.Color = &color
	}

	l, err := svc.CreateLabel(ctx, req)
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "created label %d\n", l.ID)
	}
	return exitcode.Success
}

// LabelRmCmd deletes a label.
type LabelRmCmd struct{}

func (c *LabelRmCmd) Name() string       { return "label-rm" }
func (c *LabelRmCmd) Aliases() []string  { return nil }
func (c *LabelRmCmd) Synopsis() string   { return "Delete a label" }
func (c *LabelRmCmd) Usage() string      { return "pmctl label-rm <id>" }
func (c *LabelRmCmd) NeedsService() bool { return true }

func (c *LabelRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LabelRmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("label", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := svc.DeleteLabel(ctx, id); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// LabelUpdateCmd changes the given label fields.
type LabelUpdateCmd struct {
	name        optString
	color       optString
	description optString
	active      optBool
}

func (c *LabelUpdateCmd) Name() string      { return "label-update" }
func (c *LabelUpdateCmd) Aliases() []string { return nil }
func (c *LabelUpdateCmd) Synopsis() string  { return "Update a label" }
func (c *LabelUpdateCmd) Usage() string {
	return "pmctl label-update <id> [--name <n>] [--color #rrggbb] [--description <d>] [--active=true|false]"
}
func (c *LabelUpdateCmd) NeedsService() bool { return true }

func (c *LabelUpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = LabelUpdateCmd{}
	fs.Var(&c.name, "name", "")
	fs.Var(&c.color, "color", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.active, "active", "")
}

func (c *LabelUpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("label", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if c.color.set && !hexColor.MatchString(c.color.value) {
		fmt.Fprintf(errOut, "error: invalid color: %s\n", c.color.value)
		return exitcode.UserError
	}
	req := service.LabelRequest{
		Name:        c.name.ptr(),
		Color:       c.color.ptr(),
		Description: c.description.ptr(),
		IsActive:    c.active.ptr(),
	}
	if req == (service.LabelRequest{}) {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	if _, err := svc.UpdateLabel(ctx, id, req); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
