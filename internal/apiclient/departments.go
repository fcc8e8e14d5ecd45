package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pmctl/internal/service"
)

// Departments lists all departments.
func (c *Client) Departments(ctx context.Context) ([]service.Department, error) {
	return get[[]service.Department](ctx, c, Primary, "/departments/")
}

// Department returns one department.
func (c *Client) Department(ctx context.Context, id int) (service.Department, error) {
	if err := CheckID("department", id); err != nil {
		return service.Department{}, err
	}
	return get[service.Department](ctx, c, Primary, fmt.Sprintf("/departments/%d/", id))
}

// DepartmentDetails reads the same endpoint as Department with lead and members expanded.
func (c *Client) DepartmentDetails(ctx context.Context, id int) (service.DepartmentDetails, error) {
	if err := CheckID("department", id); err != nil {
		return service.DepartmentDetails{}, err
	}
	return get[service.DepartmentDetails](ctx, c, Primary, fmt.Sprintf("/departments/%d/", id))
}

// CreateDepartment creates a department.
func (c *Client) CreateDepartment(ctx context.Context, req service.CreateDepartmentRequest) (service.DepartmentDetails, error) {
	return send[service.DepartmentDetails](ctx, c, http.MethodPost, Primary, "/departments/create/", req)
}

// UpdateDepartment replaces a department with PUT.
func (c *Client) UpdateDepartment(ctx context.Context, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	return c.writeDepartment(ctx, http.MethodPut, id, req)
}

// PatchDepartment changes the set fields of a department with PATCH.
func (c *Client) PatchDepartment(ctx context.Context, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	return c.writeDepartment(ctx, http.MethodPatch, id, req)
}

func (c *Client) writeDepartment(ctx context.Context, method string, id int, req service.UpdateDepartmentRequest) (service.DepartmentDetails, error) {
	if err := CheckID("department", id); err != nil {
		return service.DepartmentDetails{}, err
	}
	return send[service.DepartmentDetails](ctx, c, method, Primary, fmt.Sprintf("/departments/%d/update/", id), req)
}

// AddDepartmentMember adds a user to a department.
func (c *Client) AddDepartmentMember(ctx context.Context, id int, req service.MemberRequest) (service.MemberOperationResponse, error) {
	return c.memberOp(ctx, id, "add-member", req)
}

// RemoveDepartmentMember removes a user from a department.
func (c *Client) RemoveDepartmentMember(ctx context.Context, id int, req service.MemberRequest) (service.MemberOperationResponse, error) {
	return c.memberOp(ctx, id, "remove-member", req)
}

func (c *Client) memberOp(ctx context.Context, id int, op string, req service.MemberRequest) (service.MemberOperationResponse, error) {
	if err := CheckID("department", id); err != nil {
		return service.MemberOperationResponse{}, err
	}
	return send[service.MemberOperationResponse](ctx, c, http.MethodPost, Primary, fmt.Sprintf("/departments/%d/%s/", id, op), req)
}

// DeleteDepartment deletes a department.
func (c *Client) DeleteDepartment(ctx context.Context, id int) error {
	if err := CheckID("department", id); err != nil {
		return err
	}
	return remove(ctx, c, fmt.Sprintf("/departments/%d/delete/", id))
}

// MyDepartment returns the caller's department. A caller without one gets
// an *APIError of type no_department.
func (c *Client) MyDepartment(ctx context.Context) (service.MyDepartmentResponse, error) {
	return get[service.MyDepartmentResponse](ctx, c, Primary, "/my-department/")
}
