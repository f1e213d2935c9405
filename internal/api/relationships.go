package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"lineagehub/internal/models"
)

// AddParentChild creates a parent-child edge. Callers should run the graph
// package's cycle guard first; the server revalidates regardless.
func (c *Client) AddParentChild(ctx context.Context, req models.CreateParentChildRequest) (*models.Relationship, error) {
	var out models.Relationship
	if err := c.do(ctx, http.MethodPost, "/relationships/parent-child", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddSpouse creates a symmetric spouse pair; the server records both directions
func (c *Client) AddSpouse(ctx context.Context, req models.CreateSpouseRequest) ([]models.Relationship, error) {
	var out []models.Relationship
	if err := c.do(ctx, http.MethodPost, "/relationships/spouse", nil, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRelationship removes a relationship edge; for spouse edges the
// server removes the reverse direction as well
func (c *Client) DeleteRelationship(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/relationships/"+url.PathEscape(id), nil, nil, nil)
}

// GetMemberRelationships fetches a member's direct relatives grouped by edge type
func (c *Client) GetMemberRelationships(ctx context.Context, memberID string) (*models.MemberRelationships, error) {
	var out models.MemberRelationships
	path := fmt.Sprintf("/members/%s/relationships", url.PathEscape(memberID))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
