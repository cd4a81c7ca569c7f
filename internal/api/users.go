package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Users struct {
	c *transport.Client
}

func (u *Users) List(ctx context.Context, p models.UserParameters) (models.Page[models.User], error) {
	return list[models.User](ctx, u.c, "/Users", p)
}

func (u *Users) Get(ctx context.Context, userID int64) (models.User, error) {
	return get[models.User](ctx, u.c, "/Users/Get/"+id(userID), nil)
}

func (u *Users) Create(ctx context.Context, in models.UserInput) (models.User, error) {
	return send[models.User](ctx, u.c, http.MethodPost, "/Users/Create", in)
}

func (u *Users) Update(ctx context.Context, userID int64, in models.UserInput) (models.User, error) {
	return send[models.User](ctx, u.c, http.MethodPut, "/Users/Update/"+id(userID), in)
}

func (u *Users) Remove(ctx context.Context, userID int64) error {
	return u.c.JSON(ctx, http.MethodDelete, "/Users/Remove/"+id(userID), nil, nil, nil)
}

func (u *Users) Roles(ctx context.Context) ([]models.Role, error) {
	return get[[]models.Role](ctx, u.c, "/Users/GetRoles", nil)
}

func (u *Users) ResetPassword(ctx context.Context, userID int64, in models.PasswordInput) error {
	return u.c.JSON(ctx, http.MethodPut, "/Users/ResetPassword/"+id(userID), nil, in, nil)
}

// Heartbeat tells the backend the user is still active
func (u *Users) Heartbeat(ctx context.Context) error {
	return u.c.JSON(ctx, http.MethodPost, "/Users/Heartbeat", nil, nil, nil)
}

func (u *Users) ChangeMyPassword(ctx context.Context, in models.ChangePasswordInput) error {
	return u.c.JSON(ctx, http.MethodPut, "/Users/ChangeMyPassword", nil, in, nil)
}

func (u *Users) UpdateMyProfile(ctx context.Context, in models.ProfileInput) (models.User, error) {
	return send[models.User](ctx, u.c, http.MethodPut, "/Users/UpdateMyProfile", in)
}
