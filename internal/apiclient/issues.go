package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/entities"
)

func (c *Client) ListIssues(ctx context.Context, bearer string) ([]entities.Issue, error) {
	var issues []entities.Issue
	if err := c.doJSON(ctx, http.MethodGet, "/issues", bearer, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) CreateIssue(ctx context.Context, bearer string, issue dto.IssueFormDTO) error {
	return c.doJSON(ctx, http.MethodPost, "/issues", bearer, issue, nil)
}

func (c *Client) UpdateIssue(ctx context.Context, bearer, id string, issue dto.IssueFormDTO) error {
	return c.doJSON(ctx, http.MethodPatch, "/issues/"+url.PathEscape(id), bearer, issue, nil)
}

func (c *Client) DeleteIssue(ctx context.Context, bearer, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/issues/"+url.PathEscape(id), bearer, nil, nil)
}
