package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Budgets struct {
	c *transport.Client
}

func (b *Budgets) ByEvent(ctx context.Context, eventID int64) (models.Budget, error) {
	return get[models.Budget](ctx, b.c, "/Budgets/by-event/"+id(eventID), nil)
}

func (b *Budgets) Create(ctx context.Context, in models.BudgetCreateInput) (models.Budget, error) {
	return send[models.Budget](ctx, b.c, http.MethodPost, "/Budgets", in)
}

func (b *Budgets) UpdateHeader(ctx context.Context, budgetID int64, in models.BudgetUpsertInput) (models.Budget, error) {
	return send[models.Budget](ctx, b.c, http.MethodPut, "/Budgets/"+id(budgetID), in)
}

// SetControlMode rewrites the header keeping total and currency as they are
func (b *Budgets) SetControlMode(ctx context.Context, current models.Budget, mode models.BudgetControlMode) (models.Budget, error) {
	return b.UpdateHeader(ctx, current.ID, models.BudgetUpsertInput{
		TotalBudget: current.TotalBudget,
		Currency:    current.Currency,
		ControlMode: mode,
	})
}

func (b *Budgets) AddCategory(ctx context.Context, budgetID int64, in models.BudgetCategoryInput) (models.BudgetCategory, error) {
	return send[models.BudgetCategory](ctx, b.c, http.MethodPost, "/Budgets/"+id(budgetID)+"/categories", in)
}

func (b *Budgets) UpdateCategory(ctx context.Context, categoryID int64, in models.BudgetCategoryInput) (models.BudgetCategory, error) {
	return send[models.BudgetCategory](ctx, b.c, http.MethodPut, "/Budgets/categories/"+id(categoryID), in)
}

func (b *Budgets) RemoveCategory(ctx context.Context, categoryID int64) error {
	return do(ctx, b.c, http.MethodDelete, "/Budgets/categories/"+id(categoryID), nil, nil)
}

func (b *Budgets) ReorderCategories(ctx context.Context, budgetID int64, items []models.ReorderItem) error {
	return do(ctx, b.c, http.MethodPut, "/Budgets/"+id(budgetID)+"/categories/reorder", nil, models.ReorderRequest{Items: items})
}

func (b *Budgets) AddItem(ctx context.Context, categoryID int64, in models.BudgetItemInput) (models.BudgetItem, error) {
	return send[models.BudgetItem](ctx, b.c, http.MethodPost, "/Budgets/categories/"+id(categoryID)+"/items", in)
}

func (b *Budgets) UpdateItem(ctx context.Context, itemID int64, in models.BudgetItemInput) (models.BudgetItem, error) {
	return send[models.BudgetItem](ctx, b.c, http.MethodPut, "/Budgets/items/"+id(itemID), in)
}

func (b *Budgets) RemoveItem(ctx context.Context, itemID int64) error {
	return do(ctx, b.c, http.MethodDelete, "/Budgets/items/"+id(itemID), nil, nil)
}

func (b *Budgets) ReorderItems(ctx context.Context, categoryID int64, items []models.ReorderItem) error {
	return do(ctx, b.c, http.MethodPut, "/Budgets/categories/"+id(categoryID)+"/items/reorder", nil, models.ReorderRequest{Items: items})
}
