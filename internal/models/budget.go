package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// API expects money as bare JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type BudgetControlMode int

const (
	BudgetControllable    BudgetControlMode = 1
	BudgetNonControllable BudgetControlMode = 2
)

type BudgetTotals struct {
	EstimatedTotal decimal.Decimal `json:"estimatedTotal"`
	ActualTotal    decimal.Decimal `json:"actualTotal"`
	PaidTotal      decimal.Decimal `json:"paidTotal"`
	DueTotal       decimal.Decimal `json:"dueTotal"`
	IsOverBudget   bool            `json:"isOverBudget"`
	OverBudgetBy   decimal.Decimal `json:"overBudgetBy"`
}

type BudgetItem struct {
	ID               int64           `json:"id"`
	BudgetCategoryID int64           `json:"budgetCategoryId"`
	Title            string          `json:"title"`
	EstimatedAmount  decimal.Decimal `json:"estimatedAmount"`
	ActualCost       decimal.Decimal `json:"actualCost"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	DueAmount        decimal.Decimal `json:"dueAmount"`
	Notes            string          `json:"notes"`
	SortOrder        int             `json:"sortOrder"`
}

type BudgetCategory struct {
	ID        int64         `json:"id"`
	BudgetID  int64         `json:"budgetId"`
	Title     string        `json:"title"`
	IconKey   string        `json:"iconKey"`
	SortOrder int           `json:"sortOrder"`
	Totals    *BudgetTotals `json:"totals,omitempty"`
	Items     []BudgetItem  `json:"items"`
}

type Budget struct {
	ID          int64             `json:"id"`
	EventID     int64             `json:"eventId"`
	TotalBudget decimal.Decimal   `json:"totalBudget"`
	Currency    string            `json:"currency"`
	ControlMode BudgetControlMode `json:"controlMode"`
	Totals      *BudgetTotals     `json:"totals,omitempty"`
	Warnings    []string          `json:"warnings"`
	Categories  []BudgetCategory  `json:"categories"`
}

type BudgetCreateInput struct {
	EventID     int64             `json:"eventId" validate:"required"`
	TotalBudget decimal.Decimal   `json:"totalBudget"`
	Currency    string            `json:"currency,omitempty"`
	ControlMode BudgetControlMode `json:"controlMode" validate:"oneof=1 2"`
}

type BudgetUpsertInput struct {
	TotalBudget decimal.Decimal   `json:"totalBudget"`
	Currency    string            `json:"currency"`
	ControlMode BudgetControlMode `json:"controlMode" validate:"oneof=1 2"`
}

type BudgetCategoryInput struct {
	Title string `json:"title" validate:"notblank"`
}

type BudgetItemInput struct {
	Title           string          `json:"title" validate:"notblank"`
	EstimatedAmount decimal.Decimal `json:"estimatedAmount"`
	ActualCost      decimal.Decimal `json:"actualCost"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Notes           string          `json:"notes,omitempty"`
	SortOrder       int             `json:"sortOrder"`
}

type ReorderItem struct {
	ID        int64 `json:"id"`
	SortOrder int   `json:"sortOrder"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

type BudgetTemplateItem struct {
	ID                       int64           `json:"id"`
	BudgetTemplateCategoryID int64           `json:"budgetTemplateCategoryId"`
	Title                    string          `json:"title"`
	EstimatedAmount          decimal.Decimal `json:"estimatedAmount"`
	ActualCost               decimal.Decimal `json:"actualCost"`
	PaidAmount               decimal.Decimal `json:"paidAmount"`
	Notes                    string          `json:"notes"`
	SortOrder                int             `json:"sortOrder"`
}

type BudgetTemplateCategory struct {
	ID               int64                `json:"id"`
	BudgetTemplateID int64                `json:"budgetTemplateId"`
	Title            string               `json:"title"`
	IconKey          string               `json:"iconKey"`
	SortOrder        int                  `json:"sortOrder"`
	Items            []BudgetTemplateItem `json:"items"`
}

type BudgetTemplate struct {
	ID                 int64                    `json:"id"`
	PartnerID          int64                    `json:"partnerId"`
	EventTypeID        int64                    `json:"eventTypeId"`
	Title              string                   `json:"title"`
	BaseTotalBudget    decimal.Decimal          `json:"baseTotalBudget"`
	Currency           string                   `json:"currency"`
	DefaultControlMode BudgetControlMode        `json:"defaultControlMode"`
	Categories         []BudgetTemplateCategory `json:"categories"`
}

type BudgetTemplateInput struct {
	EventTypeID        int64             `json:"eventTypeId,omitempty"`
	Title              string            `json:"title" validate:"notblank"`
	BaseTotalBudget    decimal.Decimal   `json:"baseTotalBudget"`
	Currency           string            `json:"currency,omitempty"`
	DefaultControlMode BudgetControlMode `json:"defaultControlMode" validate:"oneof=1 2"`
}
