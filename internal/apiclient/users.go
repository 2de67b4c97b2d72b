package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/entities"
)

func (c *Client) ListUsers(ctx context.Context, bearer string) ([]entities.User, error) {
	var users []entities.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", bearer, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UsersSummary(ctx context.Context, bearer string) (entities.RoleSummary, error) {
	summary := entities.RoleSummary{}
	if err := c.doJSON(ctx, http.MethodGet, "/users/summary", bearer, nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *Client) CreateUser(ctx context.Context, bearer string, user dto.CreateUserDTO) error {
	return c.doJSON(ctx, http.MethodPost, "/users", bearer, user, nil)
}

func (c *Client) UpdateUser(ctx context.Context, bearer, id string, user dto.UpdateUserDTO) error {
	return c.doJSON(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), bearer, user, nil)
}

func (c *Client) UpdateUserRole(ctx context.Context, bearer, id string, role dto.UpdateRoleDTO) error {
	return c.doJSON(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/role", bearer, role, nil)
}

func (c *Client) DeleteUser(ctx context.Context, bearer, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), bearer, nil, nil)
}
