package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/output"
	"pmctl/internal/service"
)

func init() {
	Register(&UsersCmd{})
	Register(&MeCmd{})
	Register(&RolesCmd{})
	Register(&RoleCmd{})
	Register(&RoleAssignCmd{})
}

// UsersCmd lists the user directory.
type UsersCmd struct {
	search   string
	role     string
	page     optInt
	pageSize optInt
	active   optBool
	admin    bool
}

func (c *UsersCmd) Name() string      { return "users" }
func (c *UsersCmd) Aliases() []string { return nil }
func (c *UsersCmd) Synopsis() string  { return "List users (--admin: full records)" }
func (c *UsersCmd) Usage() string {
	return "pmctl users [--search <q>] [--role <r>] [--page <n>] [--page-size <n>] [--active] [--admin]"
}
func (c *UsersCmd) NeedsService() bool { return true }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = UsersCmd{}
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.role, "role", "", "")
	fs.Var(&c.page, "page", "")
	fs.Var(&c.pageSize, "page-size", "")
	fs.Var(&c.active, "active", "")
	fs.BoolVar(&c.admin, "admin", false, "")
}

func (c *UsersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := checkOneOf("role", c.role, service.Roles); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if c.page.set && c.page.value < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page.value)
		return exitcode.UserError
	}

	filters := service.UserFilters{
		Page:     c.page.ptr(),
		PageSize: c.pageSize.ptr(),
		Search:   c.search,
		Role:     c.role,
		IsActive: c.active.ptr(),
	}

	if c.admin {
		resp, err := svc.AdminUsers(ctx, filters)
		if err != nil {
			return reportError(errOut, err)
		}
		output.AdminUsers(out, resp)
		return exitcode.Success
	}

	resp, err := svc.Users(ctx, filters)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(resp.Users) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no users found")
		}
		return exitcode.Success
	}
	output.Users(out, resp)
	return exitcode.Success
}

// MeCmd shows the caller's profile.
type MeCmd struct{}

func (c *MeCmd) Name() string       { return "me" }
func (c *MeCmd) Aliases() []string  { return nil }
func (c *MeCmd) Synopsis() string   { return "Show your profile" }
func (c *MeCmd) Usage() string      { return "pmctl me" }
func (c *MeCmd) NeedsService() bool { return true }

func (c *MeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	me, err := svc.Me(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	output.Profile(out, me)
	return exitcode.Success
}

// RolesCmd lists role assignments.
type RolesCmd struct{}

func (c *RolesCmd) Name() string       { return "roles" }
func (c *RolesCmd) Aliases() []string  { return nil }
func (c *RolesCmd) Synopsis() string   { return "List role assignments" }
func (c *RolesCmd) Usage() string      { return "pmctl roles" }
func (c *RolesCmd) NeedsService() bool { return true }

func (c *RolesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RolesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	roles, err := svc.Roles(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(roles) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no roles found")
		}
		return exitcode.Success
	}
	output.Roles(out, roles)
	return exitcode.Success
}

// RoleCmd shows the role of one user.
type RoleCmd struct{}

func (c *RoleCmd) Name() string       { return "role" }
func (c *RoleCmd) Aliases() []string  { return nil }
func (c *RoleCmd) Synopsis() string   { return "Show a user's role" }
func (c *RoleCmd) Usage() string      { return "pmctl role <user-id>" }
func (c *RoleCmd) NeedsService() bool { return true }

func (c *RoleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RoleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	userID, ok := idArg("user", args, errOut)
	if !ok {
		return exitcode.UserError
	}
	resp, err := svc.UserRole(ctx, userID)
	if err != nil {
		return reportError(errOut, err)
	}
	output.UserRole(out, resp)
	return exitcode.Success
}

// RoleAssignCmd sets a user's role, creating the assignment if the user has none.
type RoleAssignCmd struct{}

func (c *RoleAssignCmd) Name() string       { return "role-assign" }
func (c *RoleAssignCmd) Aliases() []string  { return nil }
func (c *RoleAssignCmd) Synopsis() string   { return "Assign a role to a user" }
func (c *RoleAssignCmd) Usage() string      { return "pmctl role-assign <user-id> <admin|employee|project_manager>" }
func (c *RoleAssignCmd) NeedsService() bool { return true }

func (c *RoleAssignCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RoleAssignCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(errOut, "error: usage: %s\n", c.Usage())
		return exitcode.UserError
	}
	userID, err := parseID("user", args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	role := args[1]
	if err := checkOneOf("role", role, service.Roles); err != nil || role == "" {
		fmt.Fprintf(errOut, "error: invalid role: %q\n", role)
		return exitcode.UserError
	}

	current, err := svc.UserRole(ctx, userID)
	if err != nil {
		return reportError(errOut, err)
	}

	req := service.RoleRequest{User: userID, Role: role}
	if current.HasRole && current.RoleID > 0 {
		_, err = svc.UpdateRole(ctx, current.RoleID, req)
	} else {
		_, err = svc.CreateRole(ctx, req)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
