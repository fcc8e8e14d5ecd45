package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/output"
	"pmctl/internal/service"
)

func init() {
	Register(&DashboardCmd{})
	Register(&BoardCmd{})
}

// DashboardCmd shows the caller's dashboard.
type DashboardCmd struct{}

func (c *DashboardCmd) Name() string       { return "dashboard" }
func (c *DashboardCmd) Aliases() []string  { return nil }
func (c *DashboardCmd) Synopsis() string   { return "Show your projects and tasks" }
func (c *DashboardCmd) Usage() string      { return "pmctl dashboard" }
func (c *DashboardCmd) NeedsService() bool { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashboardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	d, err := svc.Dashboard(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	output.Dashboard(out, d)
	return exitcode.Success
}

// BoardCmd shows tasks as kanban columns, one per status.
type BoardCmd struct {
	project optInt
}

func (c *BoardCmd) Name() string       { return "board" }
func (c *BoardCmd) Aliases() []string  { return []string{"kanban"} }
func (c *BoardCmd) Synopsis() string   { return "Show tasks grouped by status" }
func (c *BoardCmd) Usage() string      { return "pmctl board [--project <id>]" }
func (c *BoardCmd) NeedsService() bool { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = BoardCmd{}
	fs.Var(&c.project, "project", "")
}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !c.project.set {
		tasks, err := svc.Tasks(ctx, service.TaskFilters{})
		if err != nil {
			return reportError(errOut, err)
		}
		output.Board(out, listItems(tasks))
		return exitcode.Success
	}

	project, items, err := projectTasks(ctx, svc, c.project.value)
	if err != nil {
		return reportError(errOut, err)
	}
	fmt.Fprintf(out, "#%d %s\n", project.ID, project.Title)
	output.Board(out, items)
	return exitcode.Success
}

// projectTasks fetches a project and its task list concurrently.
func projectTasks(ctx context.Context, svc service.Service, projectID int) (service.Project, []service.TaskListItem, error) {
	var (
		project service.Project
		items   []service.TaskListItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		project, err = svc.Project(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		items, err = svc.TasksByProject(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return service.Project{}, nil, err
	}
	return project, items, nil
}

func listItems(tasks []service.Task) []service.TaskListItem {
	items := make([]service.TaskListItem, len(tasks))
	for i, t := range tasks {
		items[i] = service.TaskListItem{
			ID:             t.ID,
			Title:          t.Title,
			Project:        t.Project,
			Assignee:       t.Assignee,
			Priority:       t.Priority,
			Status:         t.Status,
			DonePercentage: t.DonePercentage,
			DueDate:        t.DueDate,
			SubtaskCount:   t.SubtaskCount,
			CreatedAt:      t.CreatedAt,
		}
		if t.AssigneeDetails != nil {
			items[i].AssigneeName = t.AssigneeDetails.FullName
		}
	}
	return items
}
