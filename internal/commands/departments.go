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
	Register(&DepartmentsCmd{})
	Register(&DepartmentCmd{})
	Register(&DepartmentCreateCmd{})
	Register(&DepartmentUpdateCmd{})
	Register(&DepartmentMemberCmd{})
	Register(&DepartmentRmCmd{})
	Register(&MyDepartmentCmd{})
}

// DepartmentsCmd lists departments.
type DepartmentsCmd struct{}

func (c *DepartmentsCmd) Name() string       { return "departments" }
func (c *DepartmentsCmd) Aliases() []string  { return nil }
func (c *DepartmentsCmd) Synopsis() string   { return "List departments" }
func (c *DepartmentsCmd) Usage() string      { return "pmctl departments" }
func (c *DepartmentsCmd) NeedsService() bool { return true }

func (c *DepartmentsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DepartmentsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	depts, err := svc.Departments(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(depts) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no departments found")
		}
		return exitcode.Success
	}
	output.Departments(out, depts)
	return exitcode.Success
}

// DepartmentCmd shows a department with its members.
type DepartmentCmd struct{}

func (c *DepartmentCmd) Name() string       { return "department" }
func (c *DepartmentCmd) Aliases() []string  { return nil }
func (c *DepartmentCmd) Synopsis() string   { return "Show a department" }
func (c *DepartmentCmd) Usage() string      { return "pmctl department <id>" }
func (c *DepartmentCmd) NeedsService() bool { return true }

func (c *DepartmentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DepartmentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("department", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	d, err := svc.DepartmentDetails(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	output.DepartmentDetail(out, d)
	return exitcode.Success
}

// DepartmentCreateCmd creates a department.
type DepartmentCreateCmd struct {
	description string
	lead        int
	members     intList
}

func (c *DepartmentCreateCmd) Name() string      { return "department-create" }
func (c *DepartmentCreateCmd) Aliases() []string { return nil }
func (c *DepartmentCreateCmd) Synopsis() string  { return "Create a department" }
func (c *DepartmentCreateCmd) Usage() string {
	return "pmctl department-create --lead <user-id> [--description <text>] [--member <ids>] <name...>"
}
func (c *DepartmentCreateCmd) NeedsService() bool { return true }

func (c *DepartmentCreateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = DepartmentCreateCmd{}
	fs.StringVar(&c.description, "description", "", "")
	fs.IntVar(&c.lead, "lead", 0, "")
	fs.Var(&c.members, "member", "")
}

func (c *DepartmentCreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}
	if c.lead <= 0 {
		fmt.Fprintln(errOut, "error: --lead required")
		return exitcode.UserError
	}

	d, err := svc.CreateDepartment(ctx, service.CreateDepartmentRequest{
		Name:           name,
		Description:    c.description,
		DepartmentLead: c.lead,
		Members:        append([]int{}, c.members...),
	})
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "created department %d\n", d.ID)
	}
	return exitcode.Success
}

// DepartmentUpdateCmd patches the given department fields.
// With --replace the update is sent as PUT instead.
type DepartmentUpdateCmd struct {
	name        optString
	description optString
	lead        optInt
	members     intList
	replace     bool
}

func (c *DepartmentUpdateCmd) Name() string      { return "department-update" }
func (c *DepartmentUpdateCmd) Aliases() []string { return nil }
func (c *DepartmentUpdateCmd) Synopsis() string  { return "Update a department" }
func (c *DepartmentUpdateCmd) Usage() string {
	return "pmctl department-update <id> [--name <n>] [--description <d>] [--lead <user-id>] [--member <ids>] [--replace]"
}
func (c *DepartmentUpdateCmd) NeedsService() bool { return true }

func (c *DepartmentUpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = DepartmentUpdateCmd{}
	fs.Var(&c.name, "name", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.lead, "lead", "")
	fs.Var(&c.members, "member", "")
	fs.BoolVar(&c.replace, "replace", false, "")
}

func (c *DepartmentUpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("department", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	req := service.UpdateDepartmentRequest{
		Name:           c.name.ptr(),
		Description:    c.description.ptr(),
		DepartmentLead: c.lead.ptr(),
		Members:        c.members,
	}
	if req.Name == nil && req.Description == nil && req.DepartmentLead == nil && len(req.Members) == 0 {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	update := svc.PatchDepartment
	if c.replace {
		update = svc.UpdateDepartment
	}
	if _, err := update(ctx, id, req); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// DepartmentMemberCmd adds or removes one department member.
type DepartmentMemberCmd struct{}

func (c *DepartmentMemberCmd) Name() string       { return "department-member" }
func (c *DepartmentMemberCmd) Aliases() []string  { return nil }
func (c *DepartmentMemberCmd) Synopsis() string   { return "Add or remove a department member" }
func (c *DepartmentMemberCmd) Usage() string      { return "pmctl department-member add|remove <id> <user-id>" }
func (c *DepartmentMemberCmd) NeedsService() bool { return true }

func (c *DepartmentMemberCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DepartmentMemberCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintf(errOut, "error: usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	var op func(context.Context, int, service.MemberRequest) (service.MemberOperationResponse, error)
	switch args[0] {
	case "add":
		op = svc.AddDepartmentMember
	case "remove", "rm":
		op = svc.RemoveDepartmentMember
	default:
		fmt.Fprintf(errOut, "error: unknown action: %s (want add or remove)\n", args[0])
		return exitcode.UserError
	}

	id, err := parseID("department", args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	userID, err := parseID("user", args[2])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	resp, err := op(ctx, id, service.MemberRequest{UserID: userID})
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		msg := resp.Message
		if msg == "" {
			msg = "ok"
		}
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}

// DepartmentRmCmd deletes a department.
type DepartmentRmCmd struct{}

func (c *DepartmentRmCmd) Name() string       { return "department-rm" }
func (c *DepartmentRmCmd) Aliases() []string  { return nil }
func (c *DepartmentRmCmd) Synopsis() string   { return "Delete a department" }
func (c *DepartmentRmCmd) Usage() string      { return "pmctl department-rm <id>" }
func (c *DepartmentRmCmd) NeedsService() bool { return true }

func (c *DepartmentRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DepartmentRmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := idArg("department", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := svc.DeleteDepartment(ctx, id); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// MyDepartmentCmd shows the caller's department.
type MyDepartmentCmd struct{}

func (c *MyDepartmentCmd) Name() string       { return "my-department" }
func (c *MyDepartmentCmd) Aliases() []string  { return nil }
func (c *MyDepartmentCmd) Synopsis() string   { return "Show your department" }
func (c *MyDepartmentCmd) Usage() string      { return "pmctl my-department" }
func (c *MyDepartmentCmd) NeedsService() bool { return true }

func (c *MyDepartmentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MyDepartmentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	resp, err := svc.MyDepartment(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	output.MyDepartment(out, resp)
	return exitcode.Success
}
