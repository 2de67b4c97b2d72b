package apiclient

import (
	"context"
	"net/http"

	"issues-dashboard/internal/dto"
)

func (c *Client) Login(ctx context.Context, creds dto.LoginDTO) (dto.LoginResponseDTO, error) {
	var resp dto.LoginResponseDTO
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", creds, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, creds dto.LoginDTO) (string, error) {
	var resp apiMessage
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", creds, &resp)
	return resp.Message, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp apiMessage
	payload := map[string]string{"email": email}
	err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", "", payload, &resp)
	return resp.Message, err
}
