package gateway

import (
	"clementus360/taskai/api"
	"clementus360/taskai/routes"
	"clementus360/taskai/types"
	"context"
	"fmt"
	"net/http"
)

// Chat sends one message to the assistant and returns its reply text.
type Chat struct {
	client *api.Client
}

func NewChat(client *api.Client) *Chat {
	return &Chat{client: client}
}

func (g *Chat) SendMessage(ctx context.Context, text string) (string, error) {
	var resp types.ChatResponse
	if err := g.client.Send(ctx, http.MethodPost, routes.Chat, types.ChatRequest{Message: text}, &resp); err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}
	return resp.Response, nil
}
