package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const eventBeveragesPath = "/EventBeverages"

// EventBeverages is the beverage stock of an event. Every write is scoped by eventId in the query
type EventBeverages struct {
	c *transport.Client
}

func (e *EventBeverages) List(ctx context.Context, p models.EventBeverageParameters) (models.Page[models.EventBeverage], error) {
	return list[models.EventBeverage](ctx, e.c, eventBeveragesPath, p)
}

func (e *EventBeverages) Create(ctx context.Context, eventID int64, in models.EventBeverageInput) (models.EventBeverage, error) {
	return call[models.EventBeverage](ctx, e.c, http.MethodPost, eventBeveragesPath+"/Create", eventQuery(eventID), in)
}

func (e *EventBeverages) Update(ctx context.Context, eventID int64, beverageID int64, in models.EventBeverageInput) (models.EventBeverage, error) {
	return call[models.EventBeverage](ctx, e.c, http.MethodPut, eventBeveragesPath+"/Update/"+id(beverageID), eventQuery(eventID), in)
}

// Remove is a soft delete on the backend
func (e *EventBeverages) Remove(ctx context.Context, eventID int64, beverageID int64) error {
	return do(ctx, e.c, http.MethodDelete, eventBeveragesPath+"/Remove/"+id(beverageID), eventQuery(eventID), nil)
}

// AddMovement records stock going in or out on the event day
func (e *EventBeverages) AddMovement(ctx context.Context, eventID int64, beverageID int64, in models.StockMovementInput) (models.StockUpdateResult, error) {
	return call[models.StockUpdateResult](ctx, e.c, http.MethodPost, eventBeveragesPath+"/Movements/"+id(beverageID), eventQuery(eventID), in)
}

func (e *EventBeverages) EnableEventDayMode(ctx context.Context, eventID int64) (models.StatusMessage, error) {
	return call[models.StatusMessage](ctx, e.c, http.MethodPost, eventBeveragesPath+"/Mode/EventDay", eventQuery(eventID), nil)
}

func (e *EventBeverages) EnablePlanningMode(ctx context.Context, eventID int64) (models.StatusMessage, error) {
	return call[models.StatusMessage](ctx, e.c, http.MethodPost, eventBeveragesPath+"/Mode/Planning", eventQuery(eventID), nil)
}

func (e *EventBeverages) Restock(ctx context.Context, eventID int64, in models.RestockInput) (models.RestockResult, error) {
	return call[models.RestockResult](ctx, e.c, http.MethodPost, eventBeveragesPath+"/Restock", eventQuery(eventID), in)
}
