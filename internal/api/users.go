package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"lineagehub/internal/models"
)

// UserFilters are the query parameters of GET /users
type UserFilters struct {
	Page   int
	Size   int
	Status models.UserStatus
	Role   models.RoleType
	Search string
}

func (f UserFilters) values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// ListUsers fetches a filtered page of accounts (admin only)
func (c *Client) ListUsers(ctx context.Context, filters UserFilters) (*models.PaginatedResponse[models.User], error) {
	var out models.PaginatedResponse[models.User]
	if err := c.get(ctx, "/users", filters.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches one account
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveUser activates a PENDING account
func (c *Client) ApproveUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%s/approve", url.PathEscape(id)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateUser moves an account to INACTIVE
func (c *Client) DeactivateUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%s/deactivate", url.PathEscape(id)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

// GetUserRoles fetches an account's role grants
func (c *Client) GetUserRoles(ctx context.Context, userID string) (*models.UserRolesResponse, error) {
	var out models.UserRolesResponse
	if err := c.get(ctx, fmt.Sprintf("/users/%s/roles", url.PathEscape(userID)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddUserRole grants one role, optionally scoped to a managed member
func (c *Client) AddUserRole(ctx context.Context, userID string, req models.AddUserRoleRequest) (*models.UserRole, error) {
	var out models.UserRole
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/roles", url.PathEscape(userID)), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRoles replaces an account's role set
func (c *Client) UpdateUserRoles(ctx context.Context, userID string, req models.UpdateUserRolesRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%s/roles", url.PathEscape(userID)), nil, req, nil)
}

// DeleteUserRole revokes one role grant
func (c *Client) DeleteUserRole(ctx context.Context, userID, roleID string) error {
	path := fmt.Sprintf("/users/%s/roles/%s", url.PathEscape(userID), url.PathEscape(roleID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
