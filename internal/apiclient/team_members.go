package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/entities"
)

func (c *Client) ListTeamMembers(ctx context.Context, bearer string) ([]entities.TeamMember, error) {
	var members []entities.TeamMember
	if err := c.doJSON(ctx, http.MethodGet, "/team-members", bearer, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) CreateTeamMember(ctx context.Context, bearer string, member dto.TeamMemberDTO) (entities.TeamMember, error) {
	var created entities.TeamMember
	err := c.doJSON(ctx, http.MethodPost, "/team-members", bearer, member, &created)
	return created, err
}

func (c *Client) RenameTeamMember(ctx context.Context, bearer, id string, member dto.TeamMemberDTO) error {
	return c.doJSON(ctx, http.MethodPut, "/team-members/"+url.PathEscape(id), bearer, member, nil)
}

func (c *Client) DeleteTeamMember(ctx context.Context, bearer, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/team-members/"+url.PathEscape(id), bearer, nil, nil)
}
