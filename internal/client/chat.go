package client

import (
	"context"
	"net/http"

	"github.com/iris-civica/iris-client/internal/models"
)

func (c *Client) EnviarChat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.Request(ctx, http.MethodPost, "/chat/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
