// Package api has one client per backend resource. Each method is exactly one call to the API,
// errors come back as the transport produced them
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

// API groups all resource clients over one transport client
type API struct {
	Events          *Events
	Guests          *Guests
	Users           *Users
	Desks           *Desks
	Checklists      *Checklists
	Invitations     *Invitations
	Budgets         *Budgets
	BudgetTemplates *BudgetTemplates
	Beverages       *Beverages
	EventBeverages  *EventBeverages
	Suppliers       *Suppliers
	Statistics      *Statistics
}

func New(c *transport.Client) *API {
	return &API{
		Events:          &Events{c: c},
		Guests:          &Guests{c: c},
		Users:           &Users{c: c},
		Desks:           &Desks{c: c},
		Checklists:      &Checklists{c: c},
		Invitations:     &Invitations{c: c},
		Budgets:         &Budgets{c: c},
		BudgetTemplates: &BudgetTemplates{c: c},
		Beverages:       &Beverages{c: c},
		EventBeverages:  &EventBeverages{c: c},
		Suppliers:       &Suppliers{c: c},
		Statistics:      &Statistics{c: c},
	}
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func get[T any](ctx context.Context, c *transport.Client, path string, params any) (T, error) {
	var out T
	err := c.JSON(ctx, http.MethodGet, path, params, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, c *transport.Client, method string, path string, in any) (T, error) {
	var out T
	err := c.JSON(ctx, method, path, nil, in, &out)
	return out, err
}

// call is send with query parameters next to the body
func call[T any](ctx context.Context, c *transport.Client, method string, path string, params any, in any) (T, error) {
	var out T
	err := c.JSON(ctx, method, path, params, in, &out)
	return out, err
}

// do is for endpoints whose response body carries nothing useful
func do(ctx context.Context, c *transport.Client, method string, path string, params any, in any) error {
	return c.JSON(ctx, method, path, params, in, nil)
}

func eventQuery(eventID int64) url.Values {
	return url.Values{"eventId": {id(eventID)}}
}

func list[T any](ctx context.Context, c *transport.Client, path string, params any) (models.Page[T], error) {
	return transport.Page[T](ctx, c, path, params)
}
