package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Events struct {
	c *transport.Client
}

func (e *Events) List(ctx context.Context, p models.EventParameters) (models.Page[models.Event], error) {
	return list[models.Event](ctx, e.c, "/Events", p)
}

func (e *Events) Get(ctx context.Context, eventID int64) (models.Event, error) {
	return get[models.Event](ctx, e.c, "/Events/Get/"+id(eventID), nil)
}

func (e *Events) Create(ctx context.Context, in models.EventInput) (models.Event, error) {
	return send[models.Event](ctx, e.c, http.MethodPost, "/Events/Create", in)
}

func (e *Events) Update(ctx context.Context, eventID int64, in models.EventInput) (models.Event, error) {
	return send[models.Event](ctx, e.c, http.MethodPut, "/Events/Update/"+id(eventID), in)
}

func (e *Events) Remove(ctx context.Context, eventID int64) error {
	return e.c.JSON(ctx, http.MethodDelete, "/Events/Remove/"+id(eventID), nil, nil, nil)
}

func (e *Events) Types(ctx context.Context) ([]models.EventType, error) {
	return get[[]models.EventType](ctx, e.c, "/Events/Types", nil)
}
