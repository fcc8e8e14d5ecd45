package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pmctl/internal/service"
)

// Labels lists labels matching filters.
func (c *Client) Labels(ctx context.Context, filters service.LabelFilters) ([]service.Label, error) {
	var q query
	q.addInt("skip", filters.Skip)
	q.addInt("limit", filters.Limit)
	q.addBool("is_active", filters.IsActive)
	return get[[]service.Label](ctx, c, Primary, q.attach("/labels/"))
}

// Label returns one label.
func (c *Client) Label(ctx context.Context, id int) (service.Label, error) {
	if err := CheckID("label", id); err != nil {
		return service.Label{}, err
	}
	return get[service.Label](ctx, c, Primary, fmt.Sprintf("/labels/%d/", id))
}

// CreateLabel creates a label.
func (c *Client) CreateLabel(ctx context.Context, req service.LabelRequest) (service.Label, error) {
	return send[service.Label](ctx, c, http.MethodPost, Primary, "/labels/create/", req)
}

// UpdateLabel replaces the given label fields.
func (c *Client) UpdateLabel(ctx context.Context, id int, req service.LabelRequest) (service.Label, error) {
	if err := CheckID("label", id); err != nil {
		return service.Label{}, err
	}
	return send[service.Label](ctx, c, http.MethodPut, Primary, fmt.Sprintf("/labels/%d/update/", id), req)
}

// DeleteLabel deletes a label.
func (c *Client) DeleteLabel(ctx context.Context, id int) error {
	if err := CheckID("label", id); err != nil {
		return err
	}
	return remove(ctx, c, fmt.Sprintf("/labels/%d/delete/", id))
}
