package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/output"
	"pmctl/internal/service"
)

var taskTypes = []string{
	service.TypeFeature, service.TypeBug, service.TypeImprovement,
	service.TypeDocumentation, service.TypeTesting, service.TypeOther,
}

func init() {
	Register(&TasksCmd{})
	Register(&TaskCmd{})
	Register(&TaskAddCmd{})
	Register(&TaskUpdateCmd{})
	Register(&TaskRmCmd{})
}

// TasksCmd lists tasks with optional filters.
type TasksCmd struct {
	project  optInt
	status   string
	priority string
	skip     optInt
	limit    optInt
	active   optBool
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"ls"} }
func (c *TasksCmd) Synopsis() string  { return "List tasks" }
func (c *TasksCmd) Usage() string {
	return "pmctl tasks [--project <id>] [--status <s>] [--priority <p>] [--skip <n>] [--limit <n>] [--active]"
}
func (c *TasksCmd) NeedsService() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = TasksCmd{}
	fs.Var(&c.project, "project", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.Var(&c.skip, "skip", "")
	fs.Var(&c.limit, "limit", "")
	fs.Var(&c.active, "active", "")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := checkOneOf("status", c.status, service.TaskStatuses); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := checkOneOf("priority", c.priority, priorities); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.Tasks(ctx, service.TaskFilters{
		Skip:           c.skip.ptr(),
		Limit:          c.limit.ptr(),
		ProjectID:      c.project.ptr(),
		StatusFilter:   c.status,
		PriorityFilter: c.priority,
		IsActive:       c.active.ptr(),
	})
	if err != nil {
		return reportError(errOut, err)
	}
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	output.Tasks(out, tasks)
	return exitcode.Success
}

// TaskCmd shows a task together with its subtasks.
type TaskCmd struct{}

func (c *TaskCmd) Name() string       { return "task" }
func (c *TaskCmd) Aliases() []string  { return []string{"show"} }
func (c *TaskCmd) Synopsis() string   { return "Show a task and its subtasks" }
func (c *TaskCmd) Usage() string      { return "pmctl task <id>" }
func (c *TaskCmd) NeedsService() bool { return true }

func (c *TaskCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TaskCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("task", args, errOut)
	if !ok {
		return exitcode.UserError
	}

	var (
		task     service.Task
		subtasks []service.SubtaskListItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		task, err = svc.Task(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		subtasks, err = svc.TaskSubtasks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return reportError(errOut, err)
	}

	output.TaskDetail(out, task, subtasks)
	return exitcode.Success
}

// TaskAddCmd creates a task.
type TaskAddCmd struct {
	project     int
	department  int
	assignee    int
	description string
	start       string
	due         string
	estimate    float64
	priority    string
	status      string
	taskType    string
	labels      intList
}

func (c *TaskAddCmd) Name() string      { return "task-add" }
func (c *TaskAddCmd) Aliases() []string { return []string{"add"} }
func (c *TaskAddCmd) Synopsis() string  { return "Create a task" }
func (c *TaskAddCmd) Usage() string {
	return "pmctl task-add --project <id> [--assignee --department --due --priority --status --type --label] <title...>"
}
func (c *TaskAddCmd) NeedsService() bool { return true }

func (c *TaskAddCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = TaskAddCmd{}
	fs.IntVar(&c.project, "project", 0, "")
	fs.IntVar(&c.department, "department", 0, "")
	fs.IntVar(&c.assignee, "assignee", 0, "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.start, "start", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.Float64Var(&c.estimate, "estimate", 0, "")
	fs.StringVar(&c.priority, "priority", service.PriorityMedium, "")
	fs.StringVar(&c.status, "status", service.StatusTodo, "")
	fs.StringVar(&c.taskType, "type", service.TypeFeature, "")
	fs.Var(&c.labels, "label", "")
}

func (c *TaskAddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if c.project <= 0 {
		fmt.Fprintln(errOut, "error: --project required")
		return exitcode.UserError
	}
	for _, err := range []error{
		checkOneOf("priority", c.priority, priorities),
		checkOneOf("status", c.status, service.TaskStatuses),
		checkOneOf("type", c.taskType, taskTypes),
	} {
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	task, err := svc.CreateTask(ctx, service.CreateTaskRequest{
		Title:         title,
		Description:   c.description,
		Project:       c.project,
		Department:    c.department,
		Assignee:      c.assignee,
		StartDate:     c.start,
		DueDate:       c.due,
		EstimatedTime: c.estimate,
		Priority:      c.priority,
		Status:        c.status,
		TaskType:      c.taskType,
		Labels:        append([]int{}, c.labels...),
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created task %d\n", task.ID)
	}
	return exitcode.Success
}

// TaskUpdateCmd changes the given fields of a task and leaves the rest alone.
type TaskUpdateCmd struct {
	title    optString
	status   optString
	priority optString
	assignee optInt
	project  optInt
	due      optString
}

func (c *TaskUpdateCmd) Name() string      { return "task-update" }
func (c *TaskUpdateCmd) Aliases() []string { return nil }
func (c *TaskUpdateCmd) Synopsis() string  { return "Update a task" }
func (c *TaskUpdateCmd) Usage() string {
	return "pmctl task-update <id> [--status <s>] [--priority <p>] [--title <t>] [--assignee <id>] [--due <date>]"
}
func (c *TaskUpdateCmd) NeedsService() bool { return true }

func (c *TaskUpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = TaskUpdateCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.assignee, "assignee", "")
	fs.Var(&c.project, "project", "")
	fs.Var(&c.due, "due", "")
}

func (c *TaskUpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("task", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	req := service.UpdateTaskRequest{
		Title:    c.title.ptr(),
		Status:   c.status.ptr(),
		Priority: c.priority.ptr(),
		Assignee: c.assignee.ptr(),
		Project:  c.project.ptr(),
		DueDate:  c.due.ptr(),
	}
	if req == (service.UpdateTaskRequest{}) {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}
	if c.status.set {
		if err := checkOneOf("status", c.status.value, service.TaskStatuses); err != nil || c.status.value == "" {
			fmt.Fprintf(errOut, "error: invalid status: %q\n", c.status.value)
			return exitcode.UserError
		}
	}
	if c.priority.set {
		if err := checkOneOf("priority", c.priority.value, priorities); err != nil || c.priority.value == "" {
			fmt.Fprintf(errOut, "error: invalid priority: %q\n", c.priority.value)
			return exitcode.UserError
		}
	}

	if _, err := svc.UpdateTask(ctx, id, req); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// TaskRmCmd deletes a task.
type TaskRmCmd struct{}

func (c *TaskRmCmd) Name() string       { return "task-rm" }
func (c *TaskRmCmd) Aliases() []string  { return nil }
func (c *TaskRmCmd) Synopsis() string   { return "Delete a task" }
func (c *TaskRmCmd) Usage() string      { return "pmctl task-rm <id>" }
func (c *TaskRmCmd) NeedsService() bool { return true }

func (c *TaskRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TaskRmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("task", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := svc.DeleteTask(ctx, id); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
