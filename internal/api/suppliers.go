package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Suppliers struct {
	c *transport.Client
}

func (s *Suppliers) List(ctx context.Context, p models.SupplierParameters) (models.Page[models.Supplier], error) {
	return list[models.Supplier](ctx, s.c, "/Suppliers", p)
}

func (s *Suppliers) Create(ctx context.Context, in models.SupplierInput) (models.Supplier, error) {
	return send[models.Supplier](ctx, s.c, http.MethodPost, "/Suppliers/Create", in)
}

func (s *Suppliers) Update(ctx context.Context, supplierID int64, in models.SupplierInput) (models.Supplier, error) {
	return send[models.Supplier](ctx, s.c, http.MethodPut, "/Suppliers/Update/"+id(supplierID), in)
}

func (s *Suppliers) Remove(ctx context.Context, supplierID int64) error {
	return s.c.JSON(ctx, http.MethodDelete, "/Suppliers/Remove/"+id(supplierID), nil, nil, nil)
}

func (s *Suppliers) Confirm(ctx context.Context, supplierID int64) (models.Supplier, error) {
	return send[models.Supplier](ctx, s.c, http.MethodPost, "/Suppliers/Confirm/"+id(supplierID), nil)
}
