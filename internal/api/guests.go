package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Guests struct {
	c *transport.Client
}

func (g *Guests) List(ctx context.Context, p models.GuestParameters) (models.Page[models.Guest], error) {
	return list[models.Guest](ctx, g.c, "/Guests", p)
}

func (g *Guests) Get(ctx context.Context, guestID int64) (models.Guest, error) {
	return get[models.Guest](ctx, g.c, "/Guests/Get/"+id(guestID), nil)
}

func (g *Guests) Categories(ctx context.Context) ([]models.GuestCategory, error) {
	return get[[]models.GuestCategory](ctx, g.c, "/Guests/Categories", nil)
}

func (g *Guests) Create(ctx context.Context, in models.GuestInput) (models.Guest, error) {
	return send[models.Guest](ctx, g.c, http.MethodPost, "/Guests/Create", in)
}

func (g *Guests) Update(ctx context.Context, guestID int64, in models.GuestInput) (models.Guest, error) {
	return send[models.Guest](ctx, g.c, http.MethodPut, "/Guests/Update/"+id(guestID), in)
}

func (g *Guests) Remove(ctx context.Context, guestID int64) error {
	return g.c.JSON(ctx, http.MethodDelete, "/Guests/Remove/"+id(guestID), nil, nil, nil)
}

func (g *Guests) ConfirmPresence(ctx context.Context, guestID int64, in models.ConfirmPresenceInput) (models.Guest, error) {
	return send[models.Guest](ctx, g.c, http.MethodPost, "/Guests/Confirm/"+id(guestID), in)
}

func (g *Guests) ConfirmArrival(ctx context.Context, guestID int64) (models.Guest, error) {
	return send[models.Guest](ctx, g.c, http.MethodPost, "/Guests/Arrived/"+id(guestID), nil)
}

func (g *Guests) CancelArrival(ctx context.Context, guestID int64) (models.Guest, error) {
	return send[models.Guest](ctx, g.c, http.MethodPost, "/Guests/CancelArrived/"+id(guestID), nil)
}
