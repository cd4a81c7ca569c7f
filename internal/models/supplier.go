package models

type Supplier struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	JobDescription        string `json:"job_Description"`
	Phone                 string `json:"phone"`
	EventID               *int64 `json:"eventId,omitempty"`
	EventName             string `json:"eventName"`
	IsConfirmed           bool   `json:"isConfirmed"`
	ConfirmedAt           Time   `json:"confirmed_At"`
	SupplierCatalogItemID *int64 `json:"supplierCatalogItemId,omitempty"`
}

type SupplierInput struct {
	Name                  string `json:"name" validate:"notblank"`
	JobDescription        string `json:"job_Description"`
	Phone                 string `json:"phone"`
	EventID               *int64 `json:"eventId,omitempty"`
	SupplierCatalogItemID *int64 `json:"supplierCatalogItemId,omitempty"`
}

type SupplierParameters struct {
	EventID     *int64 `url:"eventId,omitempty"`
	SearchQuery string `url:"searchQuery"`
	StartDate   string `url:"startDate"`
	EndDate     string `url:"endDate"`
	PageNumber  int    `url:"pageNumber"`
	PageSize    int    `url:"pageSize"`
}
