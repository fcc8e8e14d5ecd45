package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pmctl/internal/service"
)

// Tasks returns tasks matching filters. The list is returned as the API sent it.
func (c *Client) Tasks(ctx context.Context, filters service.TaskFilters) ([]service.Task, error) {
	var q query
	q.addInt("skip", filters.Skip)
	q.addInt("limit", filters.Limit)
	q.addInt("project_id", filters.ProjectID)
	q.addString("status_filter", filters.StatusFilter)
	q.addString("priority_filter", filters.PriorityFilter)
	q.addBool("is_active", filters.IsActive)
	return get[[]service.Task](ctx, c, Primary, q.attach("/tasks/"))
}

// TasksByProject lists the tasks of a project in their compact form.
func (c *Client) TasksByProject(ctx context.Context, projectID int) ([]service.TaskListItem, error) {
	if err := CheckID("project", projectID); err != nil {
		return nil, err
	}
	return get[[]service.TaskListItem](ctx, c, Primary, fmt.Sprintf("/tasks/?project_id=%d", projectID))
}

// Task returns one task.
func (c *Client) Task(ctx context.Context, id int) (service.Task, error) {
	if err := CheckID("task", id); err != nil {
		return service.Task{}, err
	}
	return get[service.Task](ctx, c, Primary, fmt.Sprintf("/tasks/%d/", id))
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	return send[service.Task](ctx, c, http.MethodPost, Primary, "/tasks/create/", req)
}

// UpdateTask changes the set fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	if err := CheckID("task", id); err != nil {
		return service.Task{}, err
	}
	return send[service.Task](ctx, c, http.MethodPut, Primary, fmt.Sprintf("/tasks/%d/update/", id), req)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if err := CheckID("task", id); err != nil {
		return err
	}
	return remove(ctx, c, fmt.Sprintf("/tasks/%d/delete/", id))
}

// TaskSubtasks lists the subtasks of a task.
func (c *Client) TaskSubtasks(ctx context.Context, taskID int) ([]service.SubtaskListItem, error) {
	if err := CheckID("task", taskID); err != nil {
		return nil, err
	}
	return get[[]service.SubtaskListItem](ctx, c, Primary, fmt.Sprintf("/tasks/%d/subtasks/", taskID))
}

// CreateSubtask adds a subtask to a task.
func (c *Client) CreateSubtask(ctx context.Context, taskID int, req service.CreateSubtaskRequest) (service.Subtask, error) {
	if err := CheckID("task", taskID); err != nil {
		return service.Subtask{}, err
	}
	return send[service.Subtask](ctx, c, http.MethodPost, Primary, fmt.Sprintf("/tasks/%d/subtasks/create/", taskID), req)
}

// UpdateSubtask changes the set fields of a subtask.
func (c *Client) UpdateSubtask(ctx context.Context, id int, req service.UpdateSubtaskRequest) (service.SubtaskResponse, error) {
	if err := CheckID("subtask", id); err != nil {
		return service.SubtaskResponse{}, err
	}
	return send[service.SubtaskResponse](ctx, c, http.MethodPut, Primary, fmt.Sprintf("/subtasks/%d/update/", id), req)
}

// DeleteSubtask deletes a subtask.
func (c *Client) DeleteSubtask(ctx context.Context, id int) error {
	if err := CheckID("subtask", id); err != nil {
		return err
	}
	return remove(ctx, c, fmt.Sprintf("/subtasks/%d/delete/", id))
}
