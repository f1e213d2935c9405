package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"lineagehub/internal/models"
)

// MemberFilters are the query parameters of GET /members
type MemberFilters struct {
	Page            int
	Size            int
	Generation      *int
	Gender          models.Gender
	Search          string
	IsDeceased      *bool
	IsBloodRelative *bool
	RootMemberID    string
}

func (f MemberFilters) values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if f.Generation != nil {
		q.Set("generation", strconv.Itoa(*f.Generation))
	}
	if f.Gender != "" {
		q.Set("gender", string(f.Gender))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.IsDeceased != nil {
		q.Set("isDeceased", strconv.FormatBool(*f.IsDeceased))
	}
	if f.IsBloodRelative != nil {
		q.Set("isBloodRelative", strconv.FormatBool(*f.IsBloodRelative))
	}
	if f.RootMemberID != "" {
		q.Set("rootMemberId", f.RootMemberID)
	}
	return q
}

// CacheKey renders the filters as a stable cache key segment
func (f MemberFilters) CacheKey() string {
	return f.values().Encode()
}

// ListMembers fetches a filtered page of members
func (c *Client) ListMembers(ctx context.Context, filters MemberFilters) (*models.PaginatedResponse[models.Member], error) {
	var out models.PaginatedResponse[models.Member]
	if err := c.get(ctx, "/members", filters.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMember fetches a member with relationships and audit metadata
func (c *Client) GetMember(ctx context.Context, id string) (*models.MemberDetail, error) {
	var out models.MemberDetail
	if err := c.get(ctx, "/members/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMember creates a member, optionally linked to parents or spouses
func (c *Client) CreateMember(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error) {
	var out models.Member
	if err := c.do(ctx, http.MethodPost, "/members", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMember replaces a member's editable fields
func (c *Client) UpdateMember(ctx context.Context, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	var out models.Member
	if err := c.do(ctx, http.MethodPut, "/members/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMember removes a member. Without force the server rejects the delete
// with a conflict when dependent relationships still exist.
func (c *Client) DeleteMember(ctx context.Context, id string, force bool) error {
	var q url.Values
	if force {
		q = url.Values{"force": {"true"}}
	}
	return c.do(ctx, http.MethodDelete, "/members/"+url.PathEscape(id), q, nil, nil)
}

// UploadAvatar uploads a member portrait and returns its served URL
func (c *Client) UploadAvatar(ctx context.Context, id, filename string, file io.Reader) (string, error) {
	var out models.AvatarResponse
	path := fmt.Sprintf("/members/%s/avatar", url.PathEscape(id))
	if err := c.upload(ctx, path, filename, file, &out); err != nil {
		return "", err
	}
	return out.AvatarURL, nil
}

// GetSubtree fetches the depth-bounded subtree rooted at a member
func (c *Client) GetSubtree(ctx context.Context, id string, maxDepth int, includeSpouses bool) (*models.SubtreeData, error) {
	q := url.Values{}
	if maxDepth > 0 {
		q.Set("maxDepth", strconv.Itoa(maxDepth))
	}
	q.Set("includeSpouses", strconv.FormatBool(includeSpouses))
	var out models.SubtreeData
	if err := c.get(ctx, fmt.Sprintf("/members/%s/subtree", url.PathEscape(id)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
