package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pmctl/internal/apiclient"
	"pmctl/internal/backend/googletasks"
	"pmctl/internal/commands"
	"pmctl/internal/config"
	"pmctl/internal/exitcode"
	"pmctl/internal/service"
	"pmctl/internal/testutil"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// runCommand parses args with the command's flags and runs it against svc.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, quiet bool, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}
	return runWithConfig(t, cfg, cmd, svc, args...)
}

func runWithConfig(t *testing.T, cfg *config.Config, cmd commands.Command, svc service.Service, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seededService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddProject(service.Project{ID: 5, Title: "Apollo", Status: "in_progress", Priority: service.PriorityHigh, OwnerName: "Grace Hopper", TaskCount: 2})
	svc.AddProject(service.Project{ID: 6, Title: "Gemini", Status: "planning", Priority: service.PriorityLow})
	svc.AddTask(service.Task{ID: 1, Title: "Design schema", Project: 5, Status: service.StatusInProgress, Priority: service.PriorityHigh})
	svc.AddTask(service.Task{ID: 2, Title: "Write docs", Project: 5, Status: service.StatusTodo, Priority: service.PriorityLow,
		AssigneeDetails: &service.UserDetails{ID: 7, FullName: "Ada Lovelace"}, Assignee: 7, DueDate: "2025-03-01", DonePercentage: 50})
	svc.AddSubtask(service.SubtaskListItem{ID: 10, Title: "Tables", Task: 1, IsCompleted: true})
	svc.AddSubtask(service.SubtaskListItem{ID: 11, Title: "Indexes", Task: 1})
	return svc
}

func expectCode(t *testing.T, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("expected exit code %d, got %d", want, got)
	}
}

func expectOutput(t *testing.T, name, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("expected %s %q, got %q", name, want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	expectOutput(t, "stdout", "pmctl 0.1.0\n", stdout)
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	for _, want := range []string{"Usage:", "pmctl task-update <id>", "pmctl export-google", "Common flags:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for projects commands
func TestProjectsCommand(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.ProjectsCmd{}, svc, false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", stdout)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "Apollo") || !strings.Contains(lines[2], "Gemini") {
		t.Errorf("unexpected table %q", stdout)
	}
	if svc.Calls[0] != "Projects" {
		t.Errorf("expected Projects call, got %v", svc.Calls)
	}
}

func TestProjectsCommand_All(t *testing.T) {
	svc := seededService()

	_, _, code := runCommand(t, &commands.ProjectsCmd{}, svc, false, "--all")

	expectCode(t, exitcode.Success, code)
	if len(svc.Calls) != 1 || svc.Calls[0] != "AllProjects" {
		t.Errorf("expected AllProjects call, got %v", svc.Calls)
	}
}

func TestProjectsCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, testutil.NewFakeService(), false)
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "no projects found\n", stdout)

	stdout, _, code = runCommand(t, &commands.ProjectsCmd{}, testutil.NewFakeService(), true)
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "", stdout)
}

func TestProjectCommand_InvalidID(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.ProjectCmd{}, svc, false, "abc")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: invalid project ID: abc\n", stderr)

	_, stderr, code = runCommand(t, &commands.ProjectCmd{}, svc, false, "0")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: invalid project ID: 0\n", stderr)

	if len(svc.Calls) != 0 {
		t.Errorf("invalid ids must not reach the backend, got %v", svc.Calls)
	}
}

func TestProjectCommand_NotFound(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ProjectCmd{}, seededService(), false, "99")

	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: not found: Not Found\n", stderr)
}

func TestProjectCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ProjectCmd{}, seededService(), false, "5")

	expectCode(t, exitcode.Success, code)
	for _, want := range []string{"#5 Apollo", "in_progress", "Grace Hopper"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
}

func TestProjectCreateCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.ProjectCreateCmd{}, svc, false)
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: title required\n", stderr)

	_, stderr, code = runCommand(t, &commands.ProjectCreateCmd{}, svc, false, "--title", "Apollo", "--status", "someday")
	expectCode(t, exitcode.UserError, code)
	if !strings.HasPrefix(stderr, "error: invalid status: someday") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	stdout, stderr, code := runCommand(t, &commands.ProjectCreateCmd{}, svc, false, "--title", "Apollo", "--department", "3", "--label", "1,2")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	expectOutput(t, "stdout", "created project 101\n", stdout)
}

// Tests for task commands
func TestTasksCommand_Filters(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.TasksCmd{}, svc, false, "--project", "5", "--status", "todo", "--active")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	f := svc.LastTaskFilters
	if f.ProjectID == nil || *f.ProjectID != 5 {
		t.Errorf("expected project filter 5, got %v", f.ProjectID)
	}
	if f.StatusFilter != "todo" || f.PriorityFilter != "" {
		t.Errorf("unexpected status/priority filters %q/%q", f.StatusFilter, f.PriorityFilter)
	}
	if f.IsActive == nil || !*f.IsActive {
		t.Errorf("expected is_active=true, got %v", f.IsActive)
	}
	if f.Skip != nil || f.Limit != nil {
		t.Errorf("unset skip/limit must stay nil")
	}
	if !strings.Contains(stdout, "Write docs") || strings.Contains(stdout, "Design schema") {
		t.Errorf("unexpected tasks output %q", stdout)
	}
	if !strings.Contains(stdout, "Ada Lovelace") || !strings.Contains(stdout, "50%") {
		t.Errorf("expected assignee and progress in %q", stdout)
	}
}

func TestTasksCommand_InvalidStatus(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.TasksCmd{}, svc, false, "--status", "done")

	expectCode(t, exitcode.UserError, code)
	if !strings.HasPrefix(stderr, "error: invalid status: done") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no backend call, got %v", svc.Calls)
	}
}

func TestTasksCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.TasksCmd{}, testutil.NewFakeService(), false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "no tasks found\n", stdout)
}

func TestTaskCommand_WithSubtasks(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.TaskCmd{}, svc, false, "1")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	for _, want := range []string{"#1 Design schema", "[x]   10  Tables", "[ ]   11  Indexes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
	if len(svc.Calls) != 2 {
		t.Errorf("expected task and subtasks to be fetched, got %v", svc.Calls)
	}
}

func TestTaskCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.Errors["TaskSubtasks"] = &apiclient.APIError{Type: apiclient.ErrorGeneric, Status: 500, Message: "HTTP error! status: 500"}

	stdout, stderr, code := runCommand(t, &commands.TaskCmd{}, svc, false, "1")

	expectCode(t, exitcode.BackendError, code)
	expectOutput(t, "stdout", "", stdout)
	expectOutput(t, "stderr", "error: backend error: HTTP error! status: 500\n", stderr)
}

func TestTaskAddCommand(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.TaskAddCmd{}, svc, false, "Write", "the", "docs")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: --project required\n", stderr)

	stdout, _, code := runCommand(t, &commands.TaskAddCmd{}, svc, false, "--project", "5", "Write", "the", "docs")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "created task 101\n", stdout)

	task, ok := svc.TaskByID(101)
	if !ok {
		t.Fatal("task was not created")
	}
	if task.Title != "Write the docs" || task.Project != 5 {
		t.Errorf("unexpected task %+v", task)
	}
	if task.Status != service.StatusTodo || task.Priority != service.PriorityMedium || task.TaskType != service.TypeFeature {
		t.Errorf("expected defaults todo/medium/feature, got %s/%s/%s", task.Status, task.Priority, task.TaskType)
	}
}

func TestTaskUpdateCommand(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.TaskUpdateCmd{}, svc, false, "1")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: nothing to update\n", stderr)

	_, stderr, code = runCommand(t, &commands.TaskUpdateCmd{}, svc, false, "--status", "finished", "1")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: invalid status: \"finished\"\n", stderr)

	stdout, _, code := runCommand(t, &commands.TaskUpdateCmd{}, svc, false, "--status", "completed", "1")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "ok\n", stdout)

	req := svc.LastUpdateTask
	if req.Status == nil || *req.Status != service.StatusCompleted {
		t.Errorf("expected status in request, got %v", req.Status)
	}
	if req.Title != nil || req.Priority != nil || req.Assignee != nil {
		t.Errorf("unset fields must not be sent: %+v", req)
	}
	task, _ := svc.TaskByID(1)
	if task.Status != service.StatusCompleted || task.Title != "Design schema" {
		t.Errorf("unexpected task after update %+v", task)
	}
}

func TestTaskRmCommand(t *testing.T) {
	svc := seededService()

	stdout, _, code := runCommand(t, &commands.TaskRmCmd{}, svc, false, "2")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "ok\n", stdout)
	if _, ok := svc.TaskByID(2); ok {
		t.Error("task should be deleted")
	}

	stdout, _, code = runCommand(t, &commands.TaskRmCmd{}, svc, true, "1")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "", stdout)

	_, stderr, code := runCommand(t, &commands.TaskRmCmd{}, svc, false)
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: task ID required\n", stderr)
}

// Tests for subtask commands
func TestSubtaskLifecycle(t *testing.T) {
	svc := seededService()

	stdout, _, code := runCommand(t, &commands.SubtaskAddCmd{}, svc, false, "2", "Proofread")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "created subtask 101\n", stdout)

	_, _, code = runCommand(t, &commands.SubtaskDoneCmd{}, svc, false, "101")
	expectCode(t, exitcode.Success, code)
	if sub, _ := svc.SubtaskByID(101); !sub.IsCompleted {
		t.Error("subtask should be completed")
	}
	if done := svc.LastUpdateSubtask.IsCompleted; done == nil || !*done {
		t.Errorf("expected is_completed=true in request")
	}

	_, _, code = runCommand(t, &commands.SubtaskDoneCmd{}, svc, false, "--undo", "101")
	expectCode(t, exitcode.Success, code)
	if sub, _ := svc.SubtaskByID(101); sub.IsCompleted {
		t.Error("subtask should be open again")
	}

	_, _, code = runCommand(t, &commands.SubtaskRmCmd{}, svc, false, "101")
	expectCode(t, exitcode.Success, code)
	if _, ok := svc.SubtaskByID(101); ok {
		t.Error("subtask should be deleted")
	}
}

func TestSubtaskAddCommand_MissingTitle(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.SubtaskAddCmd{}, seededService(), false, "2")

	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: title required\n", stderr)
}

// Tests for department commands
func TestMyDepartmentCommand_NoDepartment(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.MyDepartmentCmd{}, testutil.NewFakeService(), false)

	expectCode(t, exitcode.NoDepartment, code)
	expectOutput(t, "stdout", "", stdout)
	if !strings.Contains(stderr, "Please contact your administrator to be assigned to a department") {
		t.Errorf("expected no-department hint, got %q", stderr)
	}
}

func TestMyDepartmentCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.MyDept = &service.MyDepartmentResponse{
		Department: service.MyDepartment{
			ID:          3,
			Name:        "Research",
			MemberCount: 1,
			MembersDetails: []service.DepartmentMember{
				{UserDetails: service.UserDetails{ID: 7, FullName: "Ada Lovelace", Email: "ada@example.com"}},
			},
		},
		UserRoleInDepartment: "member",
	}

	stdout, _, code := runCommand(t, &commands.MyDepartmentCmd{}, svc, false)

	expectCode(t, exitcode.Success, code)
	for _, want := range []string{"#3 Research", "member", "ada@example.com"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
}

func TestDepartmentMemberCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddDepartment(service.DepartmentDetails{ID: 3, Name: "Research", Members: []int{1}})

	stdout, _, code := runCommand(t, &commands.DepartmentMemberCmd{}, svc, false, "add", "3", "7")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "Member added successfully\n", stdout)
	if svc.LastMember.UserID != 7 {
		t.Errorf("expected user 7, got %d", svc.LastMember.UserID)
	}
	if d, _ := svc.DepartmentByID(3); len(d.Members) != 2 {
		t.Errorf("expected 2 members, got %v", d.Members)
	}

	_, _, code = runCommand(t, &commands.DepartmentMemberCmd{}, svc, false, "remove", "3", "1")
	expectCode(t, exitcode.Success, code)
	if d, _ := svc.DepartmentByID(3); len(d.Members) != 1 || d.Members[0] != 7 {
		t.Errorf("expected only member 7, got %v", d.Members)
	}

	_, stderr, code := runCommand(t, &commands.DepartmentMemberCmd{}, svc, false, "promote", "3", "1")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: unknown action: promote (want add or remove)\n", stderr)
}

func TestDepartmentUpdateCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddDepartment(service.DepartmentDetails{ID: 3, Name: "Research", Description: "R&D"})

	_, _, code := runCommand(t, &commands.DepartmentUpdateCmd{}, svc, false, "--name", "Labs", "3")
	expectCode(t, exitcode.Success, code)
	if svc.Calls[len(svc.Calls)-1] != "PatchDepartment" {
		t.Errorf("expected PATCH, got %v", svc.Calls)
	}
	req := svc.LastPatchDept
	if req.Name == nil || *req.Name != "Labs" || req.Description != nil {
		t.Errorf("unexpected request %+v", req)
	}
	if d, _ := svc.DepartmentByID(3); d.Name != "Labs" || d.Description != "R&D" {
		t.Errorf("unexpected department %+v", d)
	}

	_, _, code = runCommand(t, &commands.DepartmentUpdateCmd{}, svc, false, "--replace", "--name", "Lab", "3")
	expectCode(t, exitcode.Success, code)
	if svc.Calls[len(svc.Calls)-1] != "UpdateDepartment" {
		t.Errorf("expected PUT, got %v", svc.Calls)
	}
}

func TestDepartmentsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddDepartment(service.DepartmentDetails{ID: 3, Name: "Research", Members: []int{1, 2},
		DepartmentLeadDetails: &service.UserDetails{FullName: "Grace Hopper"}})

	stdout, _, code := runCommand(t, &commands.DepartmentsCmd{}, svc, false)

	expectCode(t, exitcode.Success, code)
	if !strings.Contains(stdout, "Research") || !strings.Contains(stdout, "Grace Hopper") {
		t.Errorf("unexpected output %q", stdout)
	}
}

// Tests for label commands
func TestLabelsCommand_ActiveFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddLabel(service.Label{ID: 1, Name: "bug", Color: "#ff0000", IsActive: true})
	svc.AddLabel(service.Label{ID: 2, Name: "legacy", Color: "#999999"})

	stdout, _, code := runCommand(t, &commands.LabelsCmd{}, svc, false, "--active=false")

	expectCode(t, exitcode.Success, code)
	if f := svc.LastLabelFilters.IsActive; f == nil || *f {
		t.Errorf("expected is_active=false filter, got %v", f)
	}
	if !strings.Contains(stdout, "legacy") || strings.Contains(stdout, "bug") {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestLabelCreateCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.LabelCreateCmd{}, svc, false, "--color", "red", "bug")
	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: invalid color: red\n", stderr)

	stdout, _, code := runCommand(t, &commands.LabelCreateCmd{}, svc, false, "--color", "#ff0000", "bug")
	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "created label 101\n", stdout)
	if l, _ := svc.LabelByID(101); l.Name != "bug" || l.Color != "#ff0000" {
		t.Errorf("unexpected label %+v", l)
	}
}

func TestLabelUpdateCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddLabel(service.Label{ID: 1, Name: "bug", Color: "#ff0000", IsActive: true})

	_, _, code := runCommand(t, &commands.LabelUpdateCmd{}, svc, false, "--active=false", "1")

	expectCode(t, exitcode.Success, code)
	if l, _ := svc.LabelByID(1); l.IsActive || l.Name != "bug" {
		t.Errorf("unexpected label %+v", l)
	}
}

// Tests for role commands
func TestRoleAssignCommand_CreatesWhenMissing(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(service.User{ID: 7, FullName: "Ada Lovelace", Email: "ada@example.com"})

	stdout, _, code := runCommand(t, &commands.RoleAssignCmd{}, svc, false, "7", "project_manager")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "ok\n", stdout)
	if got := svc.Calls; len(got) != 2 || got[0] != "UserRole" || got[1] != "CreateRole" {
		t.Errorf("expected UserRole then CreateRole, got %v", got)
	}
	if r := svc.LastRoleRequest; r.User != 7 || r.Role != "project_manager" {
		t.Errorf("unexpected role request %+v", r)
	}
}

func TestRoleAssignCommand_UpdatesExisting(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(service.User{ID: 7, FullName: "Ada Lovelace"})
	svc.AddRole(service.UserRole{ID: 40, User: 7, Role: "employee"})

	_, _, code := runCommand(t, &commands.RoleAssignCmd{}, svc, false, "7", "admin")

	expectCode(t, exitcode.Success, code)
	if got := svc.Calls; len(got) != 2 || got[1] != "UpdateRole" {
		t.Errorf("expected UpdateRole, got %v", got)
	}

	stdout, _, _ := runCommand(t, &commands.RoleCmd{}, svc, false, "7")
	expectOutput(t, "stdout", "Ada Lovelace: admin\n", stdout)
}

func TestRoleAssignCommand_InvalidRole(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.RoleAssignCmd{}, svc, false, "7", "owner")

	expectCode(t, exitcode.UserError, code)
	expectOutput(t, "stderr", "error: invalid role: \"owner\"\n", stderr)
	if len(svc.Calls) != 0 {
		t.Errorf("expected no backend call, got %v", svc.Calls)
	}
}

func TestUsersCommand_Filters(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(service.User{ID: 7, FullName: "Ada Lovelace", Email: "ada@example.com"})

	stdout, _, code := runCommand(t, &commands.UsersCmd{}, svc, false, "--search", "ada", "--page", "2", "--role", "admin")

	expectCode(t, exitcode.Success, code)
	f := svc.LastUserFilters
	if f.Search != "ada" || f.Role != "admin" || f.Page == nil || *f.Page != 2 || f.PageSize != nil {
		t.Errorf("unexpected filters %+v", f)
	}
	if !strings.Contains(stdout, "ada@example.com") {
		t.Errorf("unexpected output %q", stdout)
	}

	_, _, code = runCommand(t, &commands.UsersCmd{}, svc, false, "--page", "0")
	expectCode(t, exitcode.UserError, code)
}

// Tests for dashboard and board
func TestDashboardCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.DashboardCmd{}, seededService(), false)

	expectCode(t, exitcode.Success, code)
	for _, want := range []string{"Tasks:", "2 (0 completed, 2 pending)", "Apollo", "Write docs"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
}

func TestBoardCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: 1, Title: "Design schema", Status: service.StatusInProgress})
	svc.AddTask(service.Task{ID: 2, Title: "Write docs", Status: service.StatusTodo})
	svc.AddTask(service.Task{ID: 3, Title: "Ship it", Status: service.StatusCompleted})
	svc.AddTask(service.Task{ID: 4, Title: "Blocked on legal", Status: "blocked"})

	stdout, stderr, code := runCommand(t, &commands.BoardCmd{}, svc, false)

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	testutil.Golden(t, "board", stdout)
}

func TestBoardCommand_Project(t *testing.T) {
	svc := seededService()

	stdout, _, code := runCommand(t, &commands.BoardCmd{}, svc, false, "--project", "5")

	expectCode(t, exitcode.Success, code)
	if !strings.HasPrefix(stdout, "#5 Apollo\n") {
		t.Errorf("expected project header, got %q", stdout)
	}
	if !strings.Contains(stdout, "IN PROGRESS (1)") || !strings.Contains(stdout, "TODO (1)") {
		t.Errorf("unexpected board %q", stdout)
	}
}

// Tests for ask
func TestAskCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AIReply = "You have 2 open tasks.\n"

	stdout, _, code := runCommand(t, &commands.AskCmd{}, svc, false, "what", "is", "open?")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stdout", "You have 2 open tasks.\n", stdout)
	expectOutput(t, "message", "what is open?", svc.LastAIMessage)
}

func TestAskCommand_SignedOut(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Errors["SendAIMessage"] = apiclient.ErrNoTokenProvider

	_, stderr, code := runCommand(t, &commands.AskCmd{}, svc, false, "hello")

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stderr", "error: auth token provider not set (run: pmctl login)\n", stderr)
}

func TestCommand_UnauthorizedIsAuthError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Errors["Dashboard"] = &apiclient.APIError{Type: apiclient.ErrorGeneric, Status: 401, Message: "HTTP error! status: 401"}

	_, stderr, code := runCommand(t, &commands.DashboardCmd{}, svc, false)

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stderr", "error: auth error: HTTP error! status: 401\n", stderr)
}

// Tests for export-google
type fakeExporter struct {
	title string
	items []service.TaskListItem
	err   error
}

func (f *fakeExporter) Export(ctx context.Context, title string, items []service.TaskListItem) (googletasks.Result, error) {
	f.title, f.items = title, items
	if f.err != nil {
		return googletasks.Result{}, f.err
	}
	return googletasks.Result{ListTitle: title, CreatedList: true, Exported: len(items)}, nil
}

func exportCmd(exp *fakeExporter) *commands.ExportGoogleCmd {
	return &commands.ExportGoogleCmd{
		NewExporter: func(context.Context, *config.Config) (commands.TaskExporter, error) {
			return exp, nil
		},
	}
}

func TestExportGoogleCommand(t *testing.T) {
	exp := &fakeExporter{}

	stdout, stderr, code := runCommand(t, exportCmd(exp), seededService(), false, "5")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "stderr", "", stderr)
	expectOutput(t, "stdout", "created list Apollo\nexported 2, skipped 0\n", stdout)
	expectOutput(t, "list title", "Apollo", exp.title)
	if len(exp.items) != 2 {
		t.Errorf("expected 2 items, got %d", len(exp.items))
	}
}

func TestExportGoogleCommand_ListOverride(t *testing.T) {
	exp := &fakeExporter{}

	_, _, code := runCommand(t, exportCmd(exp), seededService(), false, "--list", "Sprint 12", "5")

	expectCode(t, exitcode.Success, code)
	expectOutput(t, "list title", "Sprint 12", exp.title)
}

func TestExportGoogleCommand_ExportFails(t *testing.T) {
	exp := &fakeExporter{err: errors.New("google token expired or revoked (run: pmctl login --google)")}

	_, stderr, code := runCommand(t, exportCmd(exp), seededService(), false, "5")

	expectCode(t, exitcode.BackendError, code)
	expectOutput(t, "stderr", "error: backend error: google token expired or revoked (run: pmctl login --google)\n", stderr)
}

func TestExportGoogleCommand_NotAuthorized(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.ExportGoogleCmd{}, svc, false, "5")

	expectCode(t, exitcode.AuthError, code)
	expectOutput(t, "stderr", "error: not authorized for Google Tasks (run: pmctl login --google)\n", stderr)
	if len(svc.Calls) != 0 {
		t.Errorf("expected no backend call, got %v", svc.Calls)
	}
}
