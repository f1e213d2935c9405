package api

import (
	"context"
	"net/url"
	"strconv"

	"lineagehub/internal/models"
)

// GetTree fetches the full tree, optionally re-rooted and depth-bounded
func (c *Client) GetTree(ctx context.Context, rootMemberID string, depth int) (*models.TreeData, error) {
	q := url.Values{}
	if rootMemberID != "" {
		q.Set("rootMemberId", rootMemberID)
	}
	if depth > 0 {
		q.Set("depth", strconv.Itoa(depth))
	}
	var out models.TreeData
	if err := c.get(ctx, "/tree", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTreePath fetches the relationship path between two members
func (c *Client) GetTreePath(ctx context.Context, fromID, toID string) (*models.TreePath, error) {
	q := url.Values{"fromId": {fromID}, "toId": {toID}}
	var out models.TreePath
	if err := c.get(ctx, "/tree/path", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
