// Package service defines the backend-agnostic interface for project-management operations.
package service

import "encoding/json"

// Task priorities, statuses and types accepted by the project service.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	TypeFeature       = "feature"
	TypeBug           = "bug"
	TypeImprovement   = "improvement"
	TypeDocumentation = "documentation"
	TypeTesting       = "testing"
	TypeOther         = "other"
)

// TaskStatuses lists task statuses in board order.
var TaskStatuses = []string{StatusTodo, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled}

// Roles that can be assigned to a user.
var Roles = []string{"admin", "employee", "project_manager"}

// UserDetails is the user summary embedded in most responses.
type UserDetails struct {
	ID              int     `json:"id"`
	ClerkID         string  `json:"clerk_id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Username        *string `json:"username"`
	FullName        string  `json:"full_name"`
	ProfileImageURL string  `json:"profile_image_url"`
	IsActive        bool    `json:"is_active"`
	PhoneNumber     *string `json:"phone_number"`
	Organization    *string `json:"organization"`
}

// Project is a project as listed by /projects/.
type Project struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ProjectType string `json:"project_type"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	OwnerName   string `json:"owner_name"`
	TaskCount   int    `json:"task_count"`
	LabelsCount int    `json:"labels_count"`
	CreatedAt   string `json:"created_at"`
}

// CreateProjectRequest is the body of /projects/create/.
// Department and ProjectOwner are sent as null when unset.
type CreateProjectRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	ProjectType       string `json:"project_type"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	EstimatedDuration int    `json:"estimated_duration"`
	Priority          string `json:"priority"`
	Status            string `json:"status"`
	Department        *int   `json:"department"`
	ProjectOwner      *int   `json:"project_owner"`
	Labels            []int  `json:"labels"`
}

// ProjectDetails is the full project returned on creation.
type ProjectDetails struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	ProjectType         string          `json:"project_type"`
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	EstimatedDuration   int             `json:"estimated_duration"`
	Priority            string          `json:"priority"`
	Status              string          `json:"status"`
	Department          *int            `json:"department"`
	DepartmentDetails   json.RawMessage `json:"department_details,omitempty"`
	ProjectOwner        int             `json:"project_owner"`
	ProjectOwnerDetails *UserDetails    `json:"project_owner_details"`
	OwnerName           string          `json:"owner_name"`
	Labels              []int           `json:"labels"`
	LabelsDetails       []Label         `json:"labels_details"`
	TaskCount           int             `json:"task_count"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
	CreatedBy           int             `json:"created_by"`
	CreatedByDetails    *UserDetails    `json:"created_by_details"`
}

// Department is a department as listed by /departments/.
type Department struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DepartmentLead     int    `json:"department_lead"`
	DepartmentLeadName string `json:"department_lead_name"`
	MemberCount        int    `json:"member_count"`
	CreatedAt          string `json:"created_at"`
}

// DepartmentDetails is a department with its lead and members expanded.
type DepartmentDetails struct {
	ID                    int           `json:"id"`
	Name                  string        `json:"name"`
	Description           string        `json:"description"`
	DepartmentLead        int           `json:"department_lead"`
	DepartmentLeadDetails *UserDetails  `json:"department_lead_details"`
	Members               []int         `json:"members"`
	MembersDetails        []UserDetails `json:"members_details"`
	MemberCount           int           `json:"member_count"`
	CreatedAt             string        `json:"created_at"`
	UpdatedAt             string        `json:"updated_at"`
	CreatedBy             int           `json:"created_by"`
	CreatedByDetails      *UserDetails  `json:"created_by_details"`
}

// CreateDepartmentRequest is the body of /departments/create/.
type CreateDepartmentRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	DepartmentLead int    `json:"department_lead"`
	Members        []int  `json:"members"`
}

// UpdateDepartmentRequest is the body of /departments/{id}/update/.
// Nil fields are left out so PATCH only touches what was set.
type UpdateDepartmentRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	DepartmentLead *int    `json:"department_lead,omitempty"`
	Members        []int   `json:"members,omitempty"`
}

// MemberRequest adds or removes a department member.
type MemberRequest struct {
	UserID int `json:"user_id"`
}

// MemberOperationResponse is returned by the member endpoints.
type MemberOperationResponse struct {
	Message string `json:"message"`
}

// DepartmentMember is a member entry of /my-department/.
type DepartmentMember struct {
	UserDetails
	Role         string  `json:"role,omitempty"`
	CreatedAt    string  `json:"created_at"`
	LastSignInAt *string `json:"last_sign_in_at"`
}

// DepartmentProject is a project entry of /my-department/.
type DepartmentProject struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectType string `json:"project_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	OwnerName   string `json:"owner_name"`
	TaskCount   int    `json:"task_count"`
}

// MyDepartment is the caller's department as returned by /my-department/.
type MyDepartment struct {
	ID                    int                 `json:"id"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	DepartmentLead        int                 `json:"department_lead"`
	DepartmentLeadDetails *DepartmentMember   `json:"department_lead_details"`
	Members               []int               `json:"members"`
	MembersDetails        []DepartmentMember  `json:"members_details"`
	Projects              []DepartmentProject `json:"projects"`
	MemberCount           int                 `json:"member_count"`
	ProjectCount          int                 `json:"project_count"`
	ActiveProjectCount    int                 `json:"active_project_count"`
	CompletedProjectCount int                 `json:"completed_project_count"`
	TotalTasksCount       int                 `json:"total_tasks_count"`
	UserRoleInDepartment  string              `json:"user_role_in_department"`
	CreatedAt             string              `json:"created_at"`
	UpdatedAt             string              `json:"updated_at"`
}

// MyDepartmentResponse wraps /my-department/.
type MyDepartmentResponse struct {
	Department           MyDepartment `json:"department"`
	UserRoleInDepartment string       `json:"user_role_in_department"`
	Message              string       `json:"message"`
}

// Label is a task/project label.
type Label struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// LabelRequest creates or updates a label.
type LabelRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// LabelFilters narrows /labels/.
type LabelFilters struct {
	Skip     *int
	Limit    *int
	IsActive *bool
}

// TaskListItem is the compact task shape used in lists and dashboards.
type TaskListItem struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Project        int     `json:"project"`
	ProjectTitle   string  `json:"project_title"`
	Assignee       int     `json:"assignee"`
	AssigneeName   string  `json:"assignee_name"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	DonePercentage float64 `json:"done_percentage"`
	DueDate        string  `json:"due_date"`
	SubtaskCount   int     `json:"subtask_count"`
	CreatedAt      string  `json:"created_at"`
}

// Task is the full task shape.
type Task struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Project           int          `json:"project"`
	ProjectDetails    *Project     `json:"project_details,omitempty"`
	Department        int          `json:"department"`
	DepartmentDetails *Department  `json:"department_details,omitempty"`
	StartDate         string       `json:"start_date"`
	DueDate           string       `json:"due_date"`
	EndDate           *string      `json:"end_date"`
	EstimatedTime     float64      `json:"estimated_time"`
	TimeSpent         float64      `json:"time_spent"`
	MinimumSpend      float64      `json:"minimum_spend"`
	DonePercentage    float64      `json:"done_percentage"`
	Assignee          int          `json:"assignee"`
	AssigneeDetails   *UserDetails `json:"assignee_details,omitempty"`
	Owner             int          `json:"owner"`
	OwnerDetails      *UserDetails `json:"owner_details,omitempty"`
	Priority          string       `json:"priority"`
	Status            string       `json:"status"`
	TaskType          string       `json:"task_type"`
	Labels            []int        `json:"labels"`
	LabelsDetails     []Label      `json:"labels_details"`
	SubtaskCount      int          `json:"subtask_count"`
	CreatedAt         string       `json:"created_at"`
	UpdatedAt         string       `json:"updated_at"`
	CreatedBy         int          `json:"created_by"`
	CreatedByDetails  *UserDetails `json:"created_by_details,omitempty"`
}

// CreateTaskRequest is the body of /tasks/create/.
type CreateTaskRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Project       int     `json:"project"`
	Department    int     `json:"department"`
	Assignee      int     `json:"assignee"`
	StartDate     string  `json:"start_date"`
	DueDate       string  `json:"due_date"`
	EstimatedTime float64 `json:"estimated_time"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
	TaskType      string  `json:"task_type"`
	Labels        []int   `json:"labels"`
}

// UpdateTaskRequest is the body of /tasks/{id}/update/.
type UpdateTaskRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Assignee      *int     `json:"assignee,omitempty"`
	Project       *int     `json:"project,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	EstimatedTime *float64 `json:"estimated_time,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// TaskFilters narrows /tasks/. Nil and empty fields are not sent.
type TaskFilters struct {
	Skip           *int
	Limit          *int
	ProjectID      *int
	StatusFilter   string
	PriorityFilter string
	IsActive       *bool
}

// Subtask is returned on subtask creation.
type Subtask struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsCompleted bool    `json:"is_completed"`
	IsActive    bool    `json:"is_active"`
	TaskID      int     `json:"task_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// SubtaskListItem is the compact subtask shape.
type SubtaskListItem struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Task         int    `json:"task"`
	TaskTitle    string `json:"task_title"`
	Assignee     int    `json:"assignee"`
	AssigneeName string `json:"assignee_name"`
	IsCompleted  bool   `json:"is_completed"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// SubtaskResponse is returned on subtask update.
type SubtaskResponse struct {
	ID               int           `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Task             int           `json:"task"`
	TaskDetails      *TaskListItem `json:"task_details,omitempty"`
	Assignee         int           `json:"assignee"`
	AssigneeDetails  *UserDetails  `json:"assignee_details,omitempty"`
	IsCompleted      bool          `json:"is_completed"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
	CreatedBy        int           `json:"created_by"`
	CreatedByDetails *UserDetails  `json:"created_by_details,omitempty"`
}

// CreateSubtaskRequest is the body of /tasks/{id}/subtasks/create/.
type CreateSubtaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	IsActive    bool   `json:"is_active"`
	TaskID      int    `json:"task_id"`
	Assignee    *int   `json:"assignee,omitempty"`
}

// UpdateSubtaskRequest is the body of /subtasks/{id}/update/.
type UpdateSubtaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Assignee    *int    `json:"assignee,omitempty"`
}

// User is the directory entry of the user service.
type User struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Pagination describes a page of users.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalUsers  int  `json:"total_users"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// UserListResponse is the directory listing of /users/.
type UserListResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// UserProfile is a full user record.
type UserProfile struct {
	UserDetails
	EmailVerified bool    `json:"email_verified"`
	Role          string  `json:"role"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	LastSignInAt  *string `json:"last_sign_in_at"`
}

// AdminUserListResponse is the admin listing of /users/.
type AdminUserListResponse struct {
	Users      []UserProfile `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// UserFilters narrows /users/. Nil and empty fields are not sent.
type UserFilters struct {
	Page     *int
	PageSize *int
	Search   string
	Role     string
	IsActive *bool
}

// UserRole is a role assignment record.
type UserRole struct {
	ID               int          `json:"id"`
	User             int          `json:"user"`
	UserDetails      *UserDetails `json:"user_details,omitempty"`
	Role             string       `json:"role"`
	CreatedAt        string       `json:"created_at"`
	UpdatedAt        string       `json:"updated_at"`
	CreatedBy        int          `json:"created_by"`
	CreatedByDetails *UserDetails `json:"created_by_details,omitempty"`
}

// UserRoleResponse is returned by /users/{id}/role/.
type UserRoleResponse struct {
	UserID      int     `json:"user_id"`
	RoleID      int     `json:"role_id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Role        *string `json:"role"`
	RoleDisplay *string `json:"role_display"`
	HasRole     bool    `json:"has_role"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// RoleRequest creates or updates a role assignment.
type RoleRequest struct {
	User int    `json:"user"`
	Role string `json:"role"`
}

// Dashboard aggregates the caller's projects, tasks and subtasks.
type Dashboard struct {
	Projects       []Project         `json:"projects"`
	Tasks          []TaskListItem    `json:"tasks"`
	Subtasks       []SubtaskListItem `json:"subtasks"`
	TotalProjects  int               `json:"total_projects"`
	TotalTasks     int               `json:"total_tasks"`
	TotalSubtasks  int               `json:"total_subtasks"`
	CompletedTasks int               `json:"completed_tasks"`
	PendingTasks   int               `json:"pending_tasks"`
}

// ChatRequest is posted to the AI webhook.
type ChatRequest struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ChatResponse is the AI webhook reply.
type ChatResponse struct {
	Output string `json:"output"`
}
