package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"issues-dashboard/pkg/config"
	apperrors "issues-dashboard/pkg/errors"
)

// Client talks to the remote issues API. It is the dashboard's only source
// of persistent state; every call carries the caller's bearer credential
// and the API authorizes each one independently.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// apiMessage is the upstream error/success envelope.
type apiMessage struct {
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, method, path, bearer string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperrors.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	// A 401/403 means "session over" only for calls that carried a bearer.
	// Unauthenticated calls (login itself) keep the upstream's message.
	if bearer != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return apperrors.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var msg apiMessage
		_ = json.Unmarshal(raw, &msg)
		if msg.Message == "" {
			msg.Message = fmt.Sprintf("the issues API rejected the request (%d)", resp.StatusCode)
		}
		return apperrors.NewHttpError(resp.StatusCode, msg.Message, nil, map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
