package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pmctl/internal/service"
)

func userQuery(filters service.UserFilters) string {
	var q query
	q.addInt("page", filters.Page)
	q.addInt("page_size", filters.PageSize)
	q.addString("search", filters.Search)
	q.addString("role", filters.Role)
	q.addBool("is_active", filters.IsActive)
	return q.attach("/users/")
}

// Users lists the user directory.
func (c *Client) Users(ctx context.Context, filters service.UserFilters) (service.UserListResponse, error) {
	return get[service.UserListResponse](ctx, c, UserService, userQuery(filters))
}

// AdminUsers lists the same endpoint as Users, decoded as full profiles.
func (c *Client) AdminUsers(ctx context.Context, filters service.UserFilters) (service.AdminUserListResponse, error) {
	return get[service.AdminUserListResponse](ctx, c, UserService, userQuery(filters))
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (service.UserProfile, error) {
	return get[service.UserProfile](ctx, c, UserService, "/users/me/")
}

// Roles lists all role assignments.
func (c *Client) Roles(ctx context.Context) ([]service.UserRole, error) {
	return get[[]service.UserRole](ctx, c, Primary, "/roles/")
}

// CreateRole assigns a role to a user who has none.
func (c *Client) CreateRole(ctx context.Context, req service.RoleRequest) (service.UserRole, error) {
	if err := CheckID("user", req.User); err != nil {
		return service.UserRole{}, err
	}
	return send[service.UserRole](ctx, c, http.MethodPost, Primary, "/roles/create/", req)
}

// UpdateRole changes an existing role assignment.
func (c *Client) UpdateRole(ctx context.Context, roleID int, req service.RoleRequest) (service.UserRole, error) {
	if err := CheckID("role", roleID); err != nil {
		return service.UserRole{}, err
	}
	return send[service.UserRole](ctx, c, http.MethodPut, Primary, fmt.Sprintf("/roles/%d/update/", roleID), req)
}

// UserRole returns the role assignment of a user. HasRole is false when none exists.
func (c *Client) UserRole(ctx context.Context, userID int) (service.UserRoleResponse, error) {
	if err := CheckID("user", userID); err != nil {
		return service.UserRoleResponse{}, err
	}
	return get[service.UserRoleResponse](ctx, c, Primary, fmt.Sprintf("/users/%d/role/", userID))
}
