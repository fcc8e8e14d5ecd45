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
	Register(&SubtaskAddCmd{})
	Register(&SubtaskDoneCmd{})
	Register(&SubtaskRmCmd{})
}

// SubtaskAddCmd adds a subtask to a task.
type SubtaskAddCmd struct {
	assignee optInt
}

func (c *SubtaskAddCmd) Name() string       { return "subtask-add" }
func (c *SubtaskAddCmd) Aliases() []string  { return nil }
func (c *SubtaskAddCmd) Synopsis() string   { return "Add a subtask to a task" }
func (c *SubtaskAddCmd) Usage() string      { return "pmctl subtask-add [--assignee <id>] <task-id> <title...>" }
func (c *SubtaskAddCmd) NeedsService() bool { return true }

func (c *SubtaskAddCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = SubtaskAddCmd{}
	fs.Var(&c.assignee, "assignee", "")
}

func (c *SubtaskAddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task ID required")
		return exitcode.UserError
	}
	taskID, err := parseID("task", args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	sub, err := svc.CreateSubtask(ctx, taskID, service.CreateSubtaskRequest{
		Title:    title,
		IsActive: true,
		TaskID:   taskID,
		Assignee: c.assignee.ptr(),
	})
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "created subtask %d\n", sub.ID)
	}
	return exitcode.Success
}

// SubtaskDoneCmd marks a subtask completed, or open again with --undo.
type SubtaskDoneCmd struct {
	undo bool
}

func (c *SubtaskDoneCmd) Name() string       { return "subtask-done" }
func (c *SubtaskDoneCmd) Aliases() []string  { return nil }
func (c *SubtaskDoneCmd) Synopsis() string   { return "Complete a subtask" }
func (c *SubtaskDoneCmd) Usage() string      { return "pmctl subtask-done [--undo] <id>" }
func (c *SubtaskDoneCmd) NeedsService() bool { return true }

func (c *SubtaskDoneCmd) RegisterFlags(fs *flag.FlagSet) {
	c.undo = false
	fs.BoolVar(&c.undo, "undo", false, "")
}

func (c *SubtaskDoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("subtask", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	completed := !c.undo
	if _, err := svc.UpdateSubtask(ctx, id, service.UpdateSubtaskRequest{IsCompleted: &completed}); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// SubtaskRmCmd deletes a subtask.
type SubtaskRmCmd struct{}

func (c *SubtaskRmCmd) Name() string       { return "subtask-rm" }
func (c *SubtaskRmCmd) Aliases() []string  { return nil }
func (c *SubtaskRmCmd) Synopsis() string   { return "Delete a subtask" }
func (c *SubtaskRmCmd) Usage() string      { return "pmctl subtask-rm <id>" }
func (c *SubtaskRmCmd) NeedsService() bool { return true }

func (c *SubtaskRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SubtaskRmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("subtask", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := svc.DeleteSubtask(ctx, id); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
