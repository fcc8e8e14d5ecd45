// Package service defines the backend-agnostic interface for project-management operations.
package service

import "context"

// Service defines the interface for project-management backend operations.
// All REST calls go through this interface; commands never build requests directly.
type Service interface {
	// Projects returns the projects visible to the caller.
	Projects(ctx context.Context) ([]Project, error)

	// Project returns one project. id must be positive.
	Project(ctx context.Context, id int) (Project, error)

	// AllProjects returns every project (admin view).
	AllProjects(ctx context.Context) ([]Project, error)

	// CreateProject creates a project.
	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectDetails, error)

	Departments(ctx context.Context) ([]Department, error)
	Department(ctx context.Context, id int) (Department, error)
	DepartmentDetails(ctx context.Context, id int) (DepartmentDetails, error)
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentDetails, error)

	// UpdateDepartment replaces department fields (PUT).
	UpdateDepartment(ctx context.Context, id int, req UpdateDepartmentRequest) (DepartmentDetails, error)

	// PatchDepartment updates only the set fields (PATCH).
	PatchDepartment(ctx context.Context, id int, req UpdateDepartmentRequest) (DepartmentDetails, error)

	AddDepartmentMember(ctx context.Context, id int, req MemberRequest) (MemberOperationResponse, error)
	RemoveDepartmentMember(ctx context.Context, id int, req MemberRequest) (MemberOperationResponse, error)
	DeleteDepartment(ctx context.Context, id int) error

	// MyDepartment returns the caller's department.
	// Fails with a no_department error when the caller has none.
	MyDepartment(ctx context.Context) (MyDepartmentResponse, error)

	Labels(ctx context.Context, filters LabelFilters) ([]Label, error)
	Label(ctx context.Context, id int) (Label, error)
	CreateLabel(ctx context.Context, req LabelRequest) (Label, error)
	UpdateLabel(ctx context.Context, id int, req LabelRequest) (Label, error)
	DeleteLabel(ctx context.Context, id int) error

	// Tasks returns tasks matching filters, in API order.
	Tasks(ctx context.Context, filters TaskFilters) ([]Task, error)

	// TasksByProject returns the compact task list of a project.
	TasksByProject(ctx context.Context, projectID int) ([]TaskListItem, error)

	Task(ctx context.Context, id int) (Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (Task, error)
	DeleteTask(ctx context.Context, id int) error

	TaskSubtasks(ctx context.Context, taskID int) ([]SubtaskListItem, error)
	CreateSubtask(ctx context.Context, taskID int, req CreateSubtaskRequest) (Subtask, error)
	UpdateSubtask(ctx context.Context, id int, req UpdateSubtaskRequest) (SubtaskResponse, error)
	DeleteSubtask(ctx context.Context, id int) error

	// Users lists the user directory (user service).
	Users(ctx context.Context, filters UserFilters) (UserListResponse, error)

	// AdminUsers lists full user records (user service).
	AdminUsers(ctx context.Context, filters UserFilters) (AdminUserListResponse, error)

	// Me returns the caller's profile (user service).
	Me(ctx context.Context) (UserProfile, error)

	Roles(ctx context.Context) ([]UserRole, error)
	UserRole(ctx context.Context, userID int) (UserRoleResponse, error)
	CreateRole(ctx context.Context, req RoleRequest) (UserRole, error)
	UpdateRole(ctx context.Context, roleID int, req RoleRequest) (UserRole, error)

	Dashboard(ctx context.Context) (Dashboard, error)

	// SendAIMessage asks the assistant and returns its free-text answer.
	// Requires a signed-in session.
	SendAIMessage(ctx context.Context, message string) (string, error)
}
