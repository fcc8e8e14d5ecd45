package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pmctl/internal/service"
)

// Projects returns the projects visible to the caller.
func (c *Client) Projects(ctx context.Context) ([]service.Project, error) {
	return get[[]service.Project](ctx, c, Primary, "/projects/")
}

// Project returns one project.
func (c *Client) Project(ctx context.Context, id int) (service.Project, error) {
	if err := CheckID("project", id); err != nil {
		return service.Project{}, err
	}
	return get[service.Project](ctx, c, Primary, fmt.Sprintf("/projects/%d/", id))
}

// AllProjects returns every project, regardless of department.
func (c *Client) AllProjects(ctx context.Context) ([]service.Project, error) {
	return get[[]service.Project](ctx, c, Primary, "/projects/all/")
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req service.CreateProjectRequest) (service.ProjectDetails, error) {
	return send[service.ProjectDetails](ctx, c, http.MethodPost, Primary, "/projects/create/", req)
}

// Dashboard returns the caller's dashboard aggregate.
func (c *Client) Dashboard(ctx context.Context) (service.Dashboard, error) {
	return get[service.Dashboard](ctx, c, Primary, "/dashboard/")
}
