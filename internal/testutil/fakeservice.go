// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"pmctl/internal/apiclient"
	"pmctl/internal/service"
)

// NotFound is the error the fake returns for unknown ids.
func NotFound() error {
	return &apiclient.APIError{Type: apiclient.ErrorGeneric, Status: http.StatusNotFound, Message: "Not Found"}
}

// NoDepartment is the error the backend returns when the caller has no department.
func NoDepartment() error {
	return &apiclient.APIError{
		Type:    apiclient.ErrorNoDepartment,
		Status:  http.StatusNotFound,
		Message: "You are not assigned to any department. Please contact your administrator to be assigned to a department",
	}
}

// FakeService is an in-memory implementation of service.Service for testing.
// Ids are validated the way the HTTP client validates them.
type FakeService struct {
	mu sync.Mutex

	projects    map[int]service.Project
	departments map[int]service.DepartmentDetails
	labels      map[int]service.Label
	tasks       map[int]service.Task
	subtasks    map[int]service.SubtaskListItem
	users       []service.User
	roles       map[int]service.UserRole
	nextID      int

	// Profile is returned by Me. MyDept is returned by MyDepartment when set.
	Profile service.UserProfile
	MyDept  *service.MyDepartmentResponse

	// AIReply is the assistant's answer.
	AIReply string

	// Errors maps a method name (e.g. "Tasks") to the error it returns.
	Errors map[string]error

	// Calls records method names in call order.
	Calls []string

	// LastTaskFilters and the Last* requests capture what commands sent.
	LastTaskFilters   service.TaskFilters
	LastUserFilters   service.UserFilters
	LastLabelFilters  service.LabelFilters
	LastUpdateTask    service.UpdateTaskRequest
	LastUpdateSubtask service.UpdateSubtaskRequest
	LastPatchDept     service.UpdateDepartmentRequest
	LastMember        service.MemberRequest
	LastRoleRequest   service.RoleRequest
	LastAIMessage     string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		projects:    make(map[int]service.Project),
		departments: make(map[int]service.DepartmentDetails),
		labels:      make(map[int]service.Label),
		tasks:       make(map[int]service.Task),
		subtasks:    make(map[int]service.SubtaskListItem),
		roles:       make(map[int]service.UserRole),
		nextID:      100,
		Errors:      make(map[string]error),
	}
}

// AddProject stores a project.
func (f *FakeService) AddProject(p service.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = p
}

// AddTask stores a task.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = t
}

// AddSubtask stores a subtask.
func (f *FakeService) AddSubtask(s service.SubtaskListItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subtasks[s.ID] = s
}

// AddDepartment stores a department.
func (f *FakeService) AddDepartment(d service.DepartmentDetails) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.departments[d.ID] = d
}

// AddLabel stores a label.
func (f *FakeService) AddLabel(l service.Label) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labels[l.ID] = l
}

// AddUser stores a directory entry.
func (f *FakeService) AddUser(u service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, u)
}

// AddRole stores a role assignment.
func (f *FakeService) AddRole(r service.UserRole) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[r.ID] = r
}

// TaskByID returns a stored task.
func (f *FakeService) TaskByID(id int) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	return t, ok
}

// SubtaskByID returns a stored subtask.
func (f *FakeService) SubtaskByID(id int) (service.SubtaskListItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subtasks[id]
	return s, ok
}

// DepartmentByID returns a stored department.
func (f *FakeService) DepartmentByID(id int) (service.DepartmentDetails, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.departments[id]
	return d, ok
}

// LabelByID returns a stored label.
func (f *FakeService) LabelByID(id int) (service.Label, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[id]
	return l, ok
}

// begin records the call and returns the injected error, if any.
// The caller must hold f.mu.
func (f *FakeService) begin(method string) error {
	f.Calls = append(f.Calls, method)
	return f.Errors[method]
}

func (f *FakeService) newID() int {
	f.nextID++
	return f.nextID
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Projects implements service.Service.
func (f *FakeService) Projects(ctx context.Context) ([]service.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Projects"); err != nil {
		return nil, err
	}
	var out []service.Project
	for _, id := range sortedKeys(f.projects) {
		out = append(out, f.projects[id])
	}
	return out, nil
}

// Project implements service.Service.
func (f *FakeService) Project(ctx context.Context, id int) (service.Project, error) {
	if err := apiclient.CheckID("project", id); err != nil {
		return service.Project{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Project"); err != nil {
		return service.Project{}, err
	}
	p, ok := f.projects[id]
	if !ok {
		return service.Project{}, NotFound()
	}
	return p, nil
}

// AllProjects implements service.Service.
func (f *FakeService) AllProjects(ctx context.Context) ([]service.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AllProjects"); err != nil {
		return nil, err
	}
	var out []service.Project
	for _, id := range sortedKeys(f.projects) {
		out = append(out, f.projects[id])
	}
	return out, nil
}

// CreateProject implements service.Service.
func (f *FakeService) CreateProject(ctx context.Context, req service.CreateProjectRequest) (service.ProjectDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateProject"); err != nil {
		return service.ProjectDetails{}, err
	}
	id := f.newID()
	f.projects[id] = service.Project{
		ID:          id,
		Title:       req.Title,
		ProjectType: req.ProjectType,
		Priority:    req.Priority,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	return service.ProjectDetails{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ProjectType: req.ProjectType,
		Priority:    req.Priority,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Department:  req.Department,
		Labels:      req.Labels,
	}, nil
}

// Departments implements service.Service.
func (f *FakeService) Departments(ctx context.Context) ([]service.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Departments"); err != nil {
		return nil, err
	}
	var out []service.Department
	for _, id := range sortedKeys(f.departments) {
		out = append(out, summary(f.departments[id]))
	}
	return out, nil
}

func summary(d service.DepartmentDetails) service.Department {
	out := service.Department{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		DepartmentLead: d.DepartmentLead,
		MemberCount:    len(d.Members),
		CreatedAt:      d.CreatedAt,
	}
	if d.DepartmentLeadDetails != nil {
		out.DepartmentLeadName = d.DepartmentLeadDetails.FullName
	}
	return out
}

// Department implements service.Service.
func (f *FakeService) Department(ctx context.Context, id int) (service.Department, error) {
	d, err := f.DepartmentDetails(ctx, id)
	if err != nil {
		return service.Department{}, err
	}
	return summary(d), nil
}

// DepartmentDetails implements service.Service.
func (f *FakeService) DepartmentDetails(ctx context.Context, id int) (service.DepartmentDetails, error) {
	if err := apiclient.CheckID("department", id); err != nil {
		return service.DepartmentDetails{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DepartmentDetails"); err != nil {
		return service.DepartmentDetails{}, err
	}
	d, ok := f.departments[id]
	if !ok {
		return service.DepartmentDetails{}, NotFound()
	}
	d.MemberCount = len(d.Members)
	return d, nil
}

// CreateDepartment implements service.Service.
func (f *FakeService) CreateDepartment(ctx context.Context, req service.CreateDepartmentRequest) (service.DepartmentDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateDepartment"); err != nil {
		return service.DepartmentDetails{}, err
	}
	d := service.DepartmentDetails{
		ID:             f.newID(),
		Name:           req.Name,
		Description:    req.Description,
		DepartmentLead: req.DepartmentLead,
		Members:        req.Members,
		MemberCount:    len(req.Members),
	}
	f.departments[d.ID] = d
	return d, nil
}

// UpdateDepartment implements service.Service.
func (f *FakeService) UpdateDepartment(ctx context.Context, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	return f.updateDepartment("UpdateDepartment", id, req)
}

// PatchDepartment implements service.Service.
func (f *FakeService) PatchDepartment(ctx context.Context, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	return f.updateDepartment("PatchDepartment", id, req)
}

func (f *FakeService) updateDepartment(method string, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	if err := apiclient.CheckID("department", id); err != nil {
		return service.DepartmentDetails{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(method); err != nil {
		return service.DepartmentDetails{}, err
	}
	f.LastPatchDept = req
	d, ok := f.departments[id]
	if !ok {
		return service.DepartmentDetails{}, NotFound()
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.DepartmentLead != nil {
		d.DepartmentLead = *req.DepartmentLead
	}
	if req.Members != nil {
		d.Members = req.Members
	}
	d.MemberCount = len(d.Members)
	f.departments[id] = d
	return d, nil
}

// AddDepartmentMember implements service.Service.
func (f *FakeService) AddDepartmentMember(ctx context.Context, id int, req service.MemberRequest) (service.MemberOperationResponse, error) {
	if err := apiclient.CheckID("department", id); err != nil {
		return service.MemberOperationResponse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AddDepartmentMember"); err != nil {
		return service.MemberOperationResponse{}, err
	}
	f.LastMember = req
	d, ok := f.departments[id]
	if !ok {
		return service.MemberOperationResponse{}, NotFound()
	}
	d.Members = append(d.Members, req.UserID)
	f.departments[id] = d
	return service.MemberOperationResponse{Message: "Member added successfully"}, nil
}

// RemoveDepartmentMember implements service.Service.
func (f *FakeService) RemoveDepartmentMember(ctx context.Context, id int, req service.MemberRequest) (service.MemberOperationResponse, error) {
	if err := apiclient.CheckID("department", id); err != nil {
		return service.MemberOperationResponse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("RemoveDepartmentMember"); err != nil {
		return service.MemberOperationResponse{}, err
	}
	f.LastMember = req
	d, ok := f.departments[id]
	if !ok {
		return service.MemberOperationResponse{}, NotFound()
	}
	kept := d.Members[:0]
	for _, m := range d.Members {
		if m != req.UserID {
			kept = append(kept, m)
		}
	}
	d.Members = kept
	f.departments[id] = d
	return service.MemberOperationResponse{Message: "Member removed successfully"}, nil
}

// DeleteDepartment implements service.Service.
func (f *FakeService) DeleteDepartment(ctx context.Context, id int) error {
	if err := apiclient.CheckID("department", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteDepartment"); err != nil {
		return err
	}
	if _, ok := f.departments[id]; !ok {
		return NotFound()
	}
	delete(f.departments, id)
	return nil
}

// MyDepartment implements service.Service.
func (f *FakeService) MyDepartment(ctx context.Context) (service.MyDepartmentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("MyDepartment"); err != nil {
		return service.MyDepartmentResponse{}, err
	}
	if f.MyDept == nil {
		return service.MyDepartmentResponse{}, NoDepartment()
	}
	return *f.MyDept, nil
}

// Labels implements service.Service.
func (f *FakeService) Labels(ctx context.Context, filters service.LabelFilters) ([]service.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Labels"); err != nil {
		return nil, err
	}
	f.LastLabelFilters = filters
	var out []service.Label
	for _, id := range sortedKeys(f.labels) {
		l := f.labels[id]
		if filters.IsActive != nil && l.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Label implements service.Service.
func (f *FakeService) Label(ctx context.Context, id int) (service.Label, error) {
	if err := apiclient.CheckID("label", id); err != nil {
		return service.Label{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Label"); err != nil {
		return service.Label{}, err
	}
	l, ok := f.labels[id]
	if !ok {
		return service.Label{}, NotFound()
	}
	return l, nil
}

// CreateLabel implements service.Service.
func (f *FakeService) CreateLabel(ctx context.Context, req service.LabelRequest) (service.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateLabel"); err != nil {
		return service.Label{}, err
	}
	l := service.Label{ID: f.newID(), IsActive: true}
	applyLabel(&l, req)
	f.labels[l.ID] = l
	return l, nil
}

// UpdateLabel implements service.Service.
func (f *FakeService) UpdateLabel(ctx context.Context, id int, req service.LabelRequest) (service.Label, error) {
	if err := apiclient.CheckID("label", id); err != nil {
		return service.Label{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateLabel"); err != nil {
		return service.Label{}, err
	}
	l, ok := f.labels[id]
	if !ok {
		return service.Label{}, NotFound()
	}
	applyLabel(&l, req)
	f.labels[id] = l
	return l, nil
}

func applyLabel(l *service.Label, req service.LabelRequest) {
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Color != nil {
		l.Color = *req.Color
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
}

// DeleteLabel implements service.Service.
func (f *FakeService) DeleteLabel(ctx context.Context, id int) error {
	if err := apiclient.CheckID("label", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteLabel"); err != nil {
		return err
	}
	if _, ok := f.labels[id]; !ok {
		return NotFound()
	}
	delete(f.labels, id)
	return nil
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(ctx context.Context, filters service.TaskFilters) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Tasks"); err != nil {
		return nil, err
	}
	f.LastTaskFilters = filters
	var out []service.Task
	for _, id := range sortedKeys(f.tasks) {
		t := f.tasks[id]
		if filters.ProjectID != nil && t.Project != *filters.ProjectID {
			continue
		}
		if filters.StatusFilter != "" && t.Status != filters.StatusFilter {
			continue
		}
		if filters.PriorityFilter != "" && t.Priority != filters.PriorityFilter {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// TasksByProject implements service.Service.
func (f *FakeService) TasksByProject(ctx context.Context, projectID int) ([]service.TaskListItem, error) {
	if err := apiclient.CheckID("project", projectID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("TasksByProject"); err != nil {
		return nil, err
	}
	var out []service.TaskListItem
	for _, id := range sortedKeys(f.tasks) {
		if t := f.tasks[id]; t.Project == projectID {
			out = append(out, listItem(t))
		}
	}
	return out, nil
}

func listItem(t service.Task) service.TaskListItem {
	item := service.TaskListItem{
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
		item.AssigneeName = t.AssigneeDetails.FullName
	}
	if t.ProjectDetails != nil {
		item.ProjectTitle = t.ProjectDetails.Title
	}
	return item
}

// Task implements service.Service.
func (f *FakeService) Task(ctx context.Context, id int) (service.Task, error) {
	if err := apiclient.CheckID("task", id); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Task"); err != nil {
		return service.Task{}, err
	}
	t, ok := f.tasks[id]
	if !ok {
		return service.Task{}, NotFound()
	}
	return t, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateTask"); err != nil {
		return service.Task{}, err
	}
	t := service.Task{
		ID:            f.newID(),
		Title:         req.Title,
		Description:   req.Description,
		Project:       req.Project,
		Department:    req.Department,
		Assignee:      req.Assignee,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		EstimatedTime: req.EstimatedTime,
		Priority:      req.Priority,
		Status:        req.Status,
		TaskType:      req.TaskType,
		Labels:        req.Labels,
	}
	f.tasks[t.ID] = t
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	if err := apiclient.CheckID("task", id); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateTask"); err != nil {
		return service.Task{}, err
	}
	f.LastUpdateTask = req
	t, ok := f.tasks[id]
	if !ok {
		return service.Task{}, NotFound()
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Assignee != nil {
		t.Assignee = *req.Assignee
	}
	if req.Project != nil {
		t.Project = *req.Project
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.EstimatedTime != nil {
		t.EstimatedTime = *req.EstimatedTime
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	f.tasks[id] = t
	return t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if err := apiclient.CheckID("task", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteTask"); err != nil {
		return err
	}
	if _, ok := f.tasks[id]; !ok {
		return NotFound()
	}
	delete(f.tasks, id)
	return nil
}

// TaskSubtasks implements service.Service.
func (f *FakeService) TaskSubtasks(ctx context.Context, taskID int) ([]service.SubtaskListItem, error) {
	if err := apiclient.CheckID("task", taskID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("TaskSubtasks"); err != nil {
		return nil, err
	}
	var out []service.SubtaskListItem
	for _, id := range sortedKeys(f.subtasks) {
		if s := f.subtasks[id]; s.Task == taskID {
			out = append(out, s)
		}
	}
	return out, nil
}

// CreateSubtask implements service.Service.
func (f *FakeService) CreateSubtask(ctx context.Context, taskID int, req service.CreateSubtaskRequest) (service.Subtask, error) {
	if err := apiclient.CheckID("task", taskID); err != nil {
		return service.Subtask{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateSubtask"); err != nil {
		return service.Subtask{}, err
	}
	if _, ok := f.tasks[taskID]; !ok {
		return service.Subtask{}, NotFound()
	}
	s := service.SubtaskListItem{
		ID:          f.newID(),
		Title:       req.Title,
		Task:        taskID,
		IsCompleted: req.IsCompleted,
		IsActive:    req.IsActive,
	}
	f.subtasks[s.ID] = s
	return service.Subtask{
		ID:          s.ID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		IsActive:    req.IsActive,
		TaskID:      taskID,
	}, nil
}

// UpdateSubtask implements service.Service.
func (f *FakeService) UpdateSubtask(ctx context.Context, id int, req service.UpdateSubtaskRequest) (service.SubtaskResponse, error) {
	if err := apiclient.CheckID("subtask", id); err != nil {
		return service.SubtaskResponse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateSubtask"); err != nil {
		return service.SubtaskResponse{}, err
	}
	f.LastUpdateSubtask = req
	s, ok := f.subtasks[id]
	if !ok {
		return service.SubtaskResponse{}, NotFound()
	}
	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.IsCompleted != nil {
		s.IsCompleted = *req.IsCompleted
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	f.subtasks[id] = s
	return service.SubtaskResponse{ID: s.ID, Title: s.Title, Task: s.Task, IsCompleted: s.IsCompleted, IsActive: s.IsActive}, nil
}

// DeleteSubtask implements service.Service.
func (f *FakeService) DeleteSubtask(ctx context.Context, id int) error {
	if err := apiclient.CheckID("subtask", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteSubtask"); err != nil {
		return err
	}
	if _, ok := f.subtasks[id]; !ok {
		return NotFound()
	}
	delete(f.subtasks, id)
	return nil
}

// Users implements service.Service.
func (f *FakeService) Users(ctx context.Context, filters service.UserFilters) (service.UserListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Users"); err != nil {
		return service.UserListResponse{}, err
	}
	f.LastUserFilters = filters
	users := append([]service.User(nil), f.users...)
	return service.UserListResponse{
		Users:      users,
		Pagination: service.Pagination{CurrentPage: 1, TotalPages: 1, TotalUsers: len(users), PageSize: len(users)},
	}, nil
}

// AdminUsers implements service.Service.
func (f *FakeService) AdminUsers(ctx context.Context, filters service.UserFilters) (service.AdminUserListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AdminUsers"); err != nil {
		return service.AdminUserListResponse{}, err
	}
	f.LastUserFilters = filters
	out := service.AdminUserListResponse{Pagination: service.Pagination{CurrentPage: 1, TotalPages: 1, TotalUsers: len(f.users)}}
	for _, u := range f.users {
		out.Users = append(out.Users, service.UserProfile{UserDetails: service.UserDetails{ID: u.ID, Email: u.Email, FullName: u.FullName}})
	}
	return out, nil
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Me"); err != nil {
		return service.UserProfile{}, err
	}
	return f.Profile, nil
}

// Roles implements service.Service.
func (f *FakeService) Roles(ctx context.Context) ([]service.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Roles"); err != nil {
		return nil, err
	}
	var out []service.UserRole
	for _, id := range sortedKeys(f.roles) {
		out = append(out, f.roles[id])
	}
	return out, nil
}

// UserRole implements service.Service.
func (f *FakeService) UserRole(ctx context.Context, userID int) (service.UserRoleResponse, error) {
	if err := apiclient.CheckID("user", userID); err != nil {
		return service.UserRoleResponse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UserRole"); err != nil {
		return service.UserRoleResponse{}, err
	}
	resp := service.UserRoleResponse{UserID: userID}
	for _, u := range f.users {
		if u.ID == userID {
			resp.Email, resp.FullName = u.Email, u.FullName
		}
	}
	for _, id := range sortedKeys(f.roles) {
		if r := f.roles[id]; r.User == userID {
			role := r.Role
			resp.RoleID, resp.Role, resp.HasRole = r.ID, &role, true
		}
	}
	return resp, nil
}

// CreateRole implements service.Service.
func (f *FakeService) CreateRole(ctx context.Context, req service.RoleRequest) (service.UserRole, error) {
	if err := apiclient.CheckID("user", req.User); err != nil {
		return service.UserRole{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateRole"); err != nil {
		return service.UserRole{}, err
	}
	f.LastRoleRequest = req
	r := service.UserRole{ID: f.newID(), User: req.User, Role: req.Role}
	f.roles[r.ID] = r
	return r, nil
}

// UpdateRole implements service.Service.
func (f *FakeService) UpdateRole(ctx context.Context, roleID int, req service.RoleRequest) (service.UserRole, error) {
	if err := apiclient.CheckID("role", roleID); err != nil {
		return service.UserRole{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateRole"); err != nil {
		return service.UserRole{}, err
	}
	f.LastRoleRequest = req
	r, ok := f.roles[roleID]
	if !ok {
		return service.UserRole{}, NotFound()
	}
	r.Role = req.Role
	f.roles[roleID] = r
	return r, nil
}

// Dashboard implements service.Service.
func (f *FakeService) Dashboard(ctx context.Context) (service.Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Dashboard"); err != nil {
		return service.Dashboard{}, err
	}
	var d service.Dashboard
	for _, id := range sortedKeys(f.projects) {
		d.Projects = append(d.Projects, f.projects[id])
	}
	for _, id := range sortedKeys(f.tasks) {
		t := f.tasks[id]
		d.Tasks = append(d.Tasks, listItem(t))
		if t.Status == service.StatusCompleted {
			d.CompletedTasks++
		} else {
			d.PendingTasks++
		}
	}
	for _, id := range sortedKeys(f.subtasks) {
		d.Subtasks = append(d.Subtasks, f.subtasks[id])
	}
	d.TotalProjects, d.TotalTasks, d.TotalSubtasks = len(d.Projects), len(d.Tasks), len(d.Subtasks)
	return d, nil
}

// SendAIMessage implements service.Service.
func (f *FakeService) SendAIMessage(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("SendAIMessage"); err != nil {
		return "", err
	}
	f.LastAIMessage = message
	return f.AIReply, nil
}

var _ service.Service = (*FakeService)(nil)
