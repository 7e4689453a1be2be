package gateway

import (
	"clementus360/taskai/api"
	"clementus360/taskai/routes"
	"clementus360/taskai/types"
	"context"
	"fmt"
	"net/http"
)

// Auth talks to the authentication endpoints. It never stores the
// credential it receives; that is up to the caller.
type Auth struct {
	client *api.Client
}

func NewAuth(client *api.Client) *Auth {
	return &Auth{client: client}
}

func (g *Auth) Register(ctx context.Context, email, password string) (types.TokenResponse, error) {
	var out types.TokenResponse
	err := g.client.Send(ctx, http.MethodPost, routes.AuthRegister,
		types.Credentials{Email: email, Password: password}, &out, api.SkipAuth())
	if err != nil {
		return types.TokenResponse{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

func (g *Auth) Login(ctx context.Context, email, password string) (types.TokenResponse, error) {
	var out types.TokenResponse
	err := g.client.Send(ctx, http.MethodPost, routes.AuthLogin,
		types.Credentials{Email: email, Password: password}, &out, api.SkipAuth())
	if err != nil {
		return types.TokenResponse{}, fmt.Errorf("login: %w", err)
	}
	if out.AccessToken == "" {
		return types.TokenResponse{}, fmt.Errorf("login: %w", ErrNoToken)
	}
	return out, nil
}
