package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const (
	AuthenticatePath = "/Auth/Authenticate"
	RefreshPath      = "/Auth/Refresh"
	LogoutPath       = "/Auth/Logout"
)

// Auth must run over a client without session middlewares: the session itself depends on it
type Auth struct {
	c *transport.Client
}

func NewAuth(c *transport.Client) *Auth {
	return &Auth{c: c}
}

func (a *Auth) Authenticate(ctx context.Context, in models.LoginInput) (models.AuthResponse, error) {
	return send[models.AuthResponse](ctx, a.c, http.MethodPost, AuthenticatePath, in)
}

// Refresh relies on the refresh cookie carried by the client's jar
func (a *Auth) Refresh(ctx context.Context) (models.AuthResponse, error) {
	return send[models.AuthResponse](ctx, a.c, http.MethodPost, RefreshPath, nil)
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.c.JSON(ctx, http.MethodPost, LogoutPath, nil, nil, nil)
}
