package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/output"
	"pmctl/internal/service"
)

func init() {
	Register(&ProjectsCmd{})
	Register(&ProjectCmd{})
	Register(&ProjectCreateCmd{})
}

// ProjectsCmd lists projects.
type ProjectsCmd struct {
	all bool
}

func (c *ProjectsCmd) Name() string       { return "projects" }
func (c *ProjectsCmd) Aliases() []string  { return nil }
func (c *ProjectsCmd) Synopsis() string   { return "List projects (--all: every project, admin)" }
func (c *ProjectsCmd) Usage() string      { return "pmctl projects [--all]" }
func (c *ProjectsCmd) NeedsService() bool { return true }

func (c *ProjectsCmd) RegisterFlags(fs *flag.FlagSet) {
	c.all = false
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *ProjectsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list := svc.Projects
	if c.all {
		list = svc.AllProjects
	}
	projects, err := list(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(projects) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no projects found")
		}
		return exitcode.Success
	}
	output.Projects(out, projects)
	return exitcode.Success
}

// ProjectCmd shows one project.
type ProjectCmd struct{}

func (c *ProjectCmd) Name() string       { return "project" }
func (c *ProjectCmd) Aliases() []string  { return nil }
func (c *ProjectCmd) Synopsis() string   { return "Show a project" }
func (c *ProjectCmd) Usage() string      { return "pmctl project <id>" }
func (c *ProjectCmd) NeedsService() bool { return true }

func (c *ProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("project", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	p, err := svc.Project(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	output.Project(out, p)
	return exitcode.Success
}

// ProjectCreateCmd creates a project.
type ProjectCreateCmd struct {
	title       string
	description string
	projectType string
	priority    string
	status      string
	start       string
	end         string
	duration    int
	department  optInt
	owner       optInt
	labels      intList
}

var (
	projectTypes    = []string{"internal", "external"}
	projectStatuses = []string{"planning", "in_progress", "completed", "on_hold", "cancelled"}
)

func (c *ProjectCreateCmd) Name() string      { return "project-create" }
func (c *ProjectCreateCmd) Aliases() []string { return nil }
func (c *ProjectCreateCmd) Synopsis() string  { return "Create a project" }
func (c *ProjectCreateCmd) Usage() string {
	return "pmctl project-create --title <title> [--type --priority --status --start --end --department --owner --label]"
}
func (c *ProjectCreateCmd) NeedsService() bool { return true }

func (c *ProjectCreateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = ProjectCreateCmd{}
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.projectType, "type", "internal", "")
	fs.StringVar(&c.priority, "priority", service.PriorityMedium, "")
	fs.StringVar(&c.status, "status", "planning", "")
	fs.StringVar(&c.start, "start", "", "")
	fs.StringVar(&c.end, "end", "", "")
	fs.IntVar(&c.duration, "duration", 0, "")
	fs.Var(&c.department, "department", "")
	fs.Var(&c.owner, "owner", "")
	fs.Var(&c.labels, "label", "")
}

func (c *ProjectCreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(c.title)
	if title == "" {
		title = strings.TrimSpace(strings.Join(args, " "))
	}
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	for _, err := range []error{
		checkOneOf("type", c.projectType, projectTypes),
		checkOneOf("priority", c.priority, priorities),
		checkOneOf("status", c.status, projectStatuses),
	} {
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	p, err := svc.CreateProject(ctx, service.CreateProjectRequest{
		Title:             title,
		Description:       c.description,
		ProjectType:       c.projectType,
		StartDate:         c.start,
		EndDate:           c.end,
		EstimatedDuration: c.duration,
		Priority:          c.priority,
		Status:            c.status,
		Department:        c.department.ptr(),
		ProjectOwner:      c.owner.ptr(),
		Labels:            append([]int{}, c.labels...),
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created project %d\n", p.ID)
	}
	return exitcode.Success
}
