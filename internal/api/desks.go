package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Desks struct {
	c *transport.Client
}

func (d *Desks) List(ctx context.Context, p models.DeskParameters) (models.Page[models.Desk], error) {
	return list[models.Desk](ctx, d.c, "/Desks", p)
}

// Options is the short list used to seat guests
func (d *Desks) Options(ctx context.Context, eventID int64) ([]models.DeskOption, error) {
	return get[[]models.DeskOption](ctx, d.c, "/Desks/Options/"+id(eventID), nil)
}

func (d *Desks) Get(ctx context.Context, deskID int64) (models.Desk, error) {
	return get[models.Desk](ctx, d.c, "/Desks/Get/"+id(deskID), nil)
}

func (d *Desks) Create(ctx context.Context, in models.DeskInput) (models.Desk, error) {
	return send[models.Desk](ctx, d.c, http.MethodPost, "/Desks/Create", in)
}

func (d *Desks) Update(ctx context.Context, deskID int64, in models.DeskInput) (models.Desk, error) {
	return send[models.Desk](ctx, d.c, http.MethodPut, "/Desks/Update/"+id(deskID), in)
}

func (d *Desks) Remove(ctx context.Context, deskID int64) error {
	return d.c.JSON(ctx, http.MethodDelete, "/Desks/Remove/"+id(deskID), nil, nil, nil)
}
