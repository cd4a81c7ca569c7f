package models

type BeverageCategory struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	IconKey string `json:"iconKey,omitempty"`
}

type BeverageCategoryInput struct {
	Name string `json:"name" validate:"notblank"`
}

type BeverageCategoriesParameters struct {
	SearchQuery string `url:"searchQuery,omitempty"`
	PageNumber  int    `url:"pageNumber,omitempty"`
	PageSize    int    `url:"pageSize,omitempty"`
}

type BeverageCatalogItem struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	CategoryID          int64  `json:"categoryId"`
	DefaultUnitsPerBox  *int   `json:"defaultUnitsPerBox,omitempty"`
	DefaultPurchaseMode string `json:"defaultPurchaseMode,omitempty"`
}

type BeveragePurchaseMode int

const (
	PurchaseByUnit BeveragePurchaseMode = 1
	PurchaseByBox  BeveragePurchaseMode = 2
)

type StockMovementType int

const (
	StockIn             StockMovementType = 1
	StockOut            StockMovementType = 2
	StockAdjust         StockMovementType = 3
	StockMarkOutOfStock StockMovementType = 4
)

type BeverageCatalogParameters struct {
	SearchQuery string `url:"searchQuery,omitempty"`
	CategoryID  *int64 `url:"categoryId,omitempty"`
	OnlyActive  *bool  `url:"onlyActive,omitempty"`
	PageNumber  int    `url:"pageNumber,omitempty"`
	PageSize    int    `url:"pageSize,omitempty"`
}

type BeverageSearchParameters struct {
	Q          string `url:"q"`
	CategoryID *int64 `url:"categoryId,omitempty"`
	Take       int    `url:"take,omitempty"`
}

// EventBeverage is the stock of one beverage for one event
type EventBeverage struct {
	ID                   int64                `json:"id"`
	EventID              int64                `json:"eventId"`
	Name                 string               `json:"name"`
	BeverageCategoryID   int64                `json:"beverageCategoryId"`
	BeverageCategoryName string               `json:"beverageCategoryName"`
	PurchaseMode         BeveragePurchaseMode `json:"purchaseMode"`
	UnitsPerBox          *int                 `json:"unitsPerBox,omitempty"`
	BoxesQty             *int                 `json:"boxesQty,omitempty"`
	InitialUnits         int                  `json:"initialUnits"`
	MinimumUnits         int                  `json:"minimumUnits"`
	CurrentUnits         int                  `json:"currentUnits"`
	Status               string               `json:"status"`
	Notes                string               `json:"notes,omitempty"`
}

type EventBeverageParameters struct {
	EventID     *int64 `url:"eventId,omitempty"`
	SearchQuery string `url:"searchQuery,omitempty"`
	CategoryID  *int64 `url:"categoryId,omitempty"`
	StockStatus string `url:"stockStatus,omitempty"`
	StartDate   string `url:"startDate,omitempty"`
	EndDate     string `url:"endDate,omitempty"`
	PageNumber  int    `url:"pageNumber,omitempty"`
	PageSize    int    `url:"pageSize,omitempty"`
}

type EventBeverageInput struct {
	Name               string               `json:"name" validate:"notblank"`
	BeverageCategoryID int64                `json:"beverageCategoryId" validate:"required"`
	PurchaseMode       BeveragePurchaseMode `json:"purchaseMode" validate:"oneof=1 2"`
	UnitsPerBox        *int                 `json:"unitsPerBox,omitempty"`
	BoxesQty           *int                 `json:"boxesQty,omitempty"`
	InitialUnits       *int                 `json:"initialUnits,omitempty"`
	MinimumUnits       int                  `json:"minimumUnits" validate:"min=0"`
	Notes              string               `json:"notes,omitempty"`
}

type StockMovementInput struct {
	Type       StockMovementType `json:"type" validate:"oneof=1 2 3 4"`
	Quantity   int               `json:"quantity" validate:"min=0"`
	OccurredAt *Time             `json:"occurredAt,omitempty"`
	Note       string            `json:"note,omitempty"`
}

type StockUpdateResult struct {
	CurrentUnits int    `json:"currentUnits"`
	Status       string `json:"status"`
}

type RestockItemInput struct {
	EventBeverageID int64  `json:"eventBeverageId"`
	Quantity        *int   `json:"quantity"`
	BoxesQty        *int   `json:"boxesQty"`
	Note            string `json:"note,omitempty"`
}

type RestockInput struct {
	Items      []RestockItemInput `json:"items" validate:"min=1"`
	OccurredAt *Time              `json:"occurredAt,omitempty"`
	Note       string             `json:"note,omitempty"`
}

type RestockResult struct {
	UpdatedCount int `json:"updatedCount"`
}
