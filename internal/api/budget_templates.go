package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const budgetTemplatesPath = "/BudgetTemplates"

// BudgetTemplates are per partner and event type, a new event budget is seeded from one
type BudgetTemplates struct {
	c *transport.Client
}

func (b *BudgetTemplates) Get(ctx context.Context, templateID int64) (models.BudgetTemplate, error) {
	return get[models.BudgetTemplate](ctx, b.c, budgetTemplatesPath+"/"+id(templateID), nil)
}

// ByEventType takes partnerID only from a super administrator, 0 means the caller's partner
func (b *BudgetTemplates) ByEventType(ctx context.Context, eventTypeID int64, partnerID int64) (models.BudgetTemplate, error) {
	var params url.Values
	if partnerID != 0 {
		params = url.Values{"partnerId": {id(partnerID)}}
	}
	return get[models.BudgetTemplate](ctx, b.c, budgetTemplatesPath+"/by-event-type/"+id(eventTypeID), params)
}

func (b *BudgetTemplates) Create(ctx context.Context, in models.BudgetTemplateInput) (models.BudgetTemplate, error) {
	return send[models.BudgetTemplate](ctx, b.c, http.MethodPost, budgetTemplatesPath, in)
}

func (b *BudgetTemplates) Update(ctx context.Context, templateID int64, in models.BudgetTemplateInput) (models.BudgetTemplate, error) {
	return send[models.BudgetTemplate](ctx, b.c, http.MethodPut, budgetTemplatesPath+"/"+id(templateID), in)
}

func (b *BudgetTemplates) Remove(ctx context.Context, templateID int64) error {
	return do(ctx, b.c, http.MethodDelete, budgetTemplatesPath+"/"+id(templateID), nil, nil)
}

func (b *BudgetTemplates) ToggleControlMode(ctx context.Context, templateID int64, mode models.BudgetControlMode) (models.BudgetTemplate, error) {
	in := struct {
		ControlMode models.BudgetControlMode `json:"controlMode"`
	}{mode}
	return send[models.BudgetTemplate](ctx, b.c, http.MethodPut, budgetTemplatesPath+"/"+id(templateID)+"/toggle-control-mode", in)
}

func (b *BudgetTemplates) AddCategory(ctx context.Context, templateID int64, in models.BudgetCategoryInput) (models.BudgetTemplateCategory, error) {
	return send[models.BudgetTemplateCategory](ctx, b.c, http.MethodPost, budgetTemplatesPath+"/"+id(templateID)+"/categories", in)
}

func (b *BudgetTemplates) UpdateCategory(ctx context.Context, categoryID int64, in models.BudgetCategoryInput) (models.BudgetTemplateCategory, error) {
	return send[models.BudgetTemplateCategory](ctx, b.c, http.MethodPut, budgetTemplatesPath+"/categories/"+id(categoryID), in)
}

func (b *BudgetTemplates) RemoveCategory(ctx context.Context, categoryID int64) error {
	return do(ctx, b.c, http.MethodDelete, budgetTemplatesPath+"/categories/"+id(categoryID), nil, nil)
}

func (b *BudgetTemplates) ReorderCategories(ctx context.Context, templateID int64, items []models.ReorderItem) error {
	return do(ctx, b.c, http.MethodPut, budgetTemplatesPath+"/"+id(templateID)+"/categories/reorder", nil, models.ReorderRequest{Items: items})
}

func (b *BudgetTemplates) AddItem(ctx context.Context, categoryID int64, in models.BudgetItemInput) (models.BudgetTemplateItem, error) {
	return send[models.BudgetTemplateItem](ctx, b.c, http.MethodPost, budgetTemplatesPath+"/categories/"+id(categoryID)+"/items", in)
}

func (b *BudgetTemplates) UpdateItem(ctx context.Context, itemID int64, in models.BudgetItemInput) (models.BudgetTemplateItem, error) {
	return send[models.BudgetTemplateItem](ctx, b.c, http.MethodPut, budgetTemplatesPath+"/items/"+id(itemID), in)
}

func (b *BudgetTemplates) RemoveItem(ctx context.Context, itemID int64) error {
	return do(ctx, b.c, http.MethodDelete, budgetTemplatesPath+"/items/"+id(itemID), nil, nil)
}

func (b *BudgetTemplates) ReorderItems(ctx context.Context, categoryID int64, items []models.ReorderItem) error {
	return do(ctx, b.c, http.MethodPut, budgetTemplatesPath+"/categories/"+id(categoryID)+"/items/reorder", nil, models.ReorderRequest{Items: items})
}
