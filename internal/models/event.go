package models

type Event struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	GuestsCount    int     `json:"guestsCount"`
	DesksCount     int     `json:"desksCount"`
	SuppliersCount int     `json:"suppliersCount"`
	BudgetCurrency string  `json:"budgetCurrency"`
	Initials       string  `json:"initials"`
	Slug           string  `json:"slug,omitempty"`
	EventTypeID    *int64  `json:"eventTypeId,omitempty"`
	EventTypeName  string  `json:"eventTypeName,omitempty"`
	EventDate      Time    `json:"event_Date"`
	HasQRCodeImage bool    `json:"has_QRCode_Image"`
	QRCodeImageURL string  `json:"qrCodeImage_Url,omitempty"`
	CreatedAt      Time    `json:"created_At"`
	BudgetTotal    float64 `json:"budgetTotal"`
}

type EventType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

type EventParameters struct {
	SearchQuery string `url:"searchQuery"`
	StartDate   string `url:"startDate"`
	EndDate     string `url:"endDate"`
	PageNumber  int    `url:"pageNumber"`
	PageSize    int    `url:"pageSize"`
}

type EventInput struct {
	Name                string  `json:"name" validate:"notblank"`
	Description         *string `json:"description,omitempty"`
	Initials            string  `json:"initials" validate:"notblank"`
	EventTypeID         *int64  `json:"eventTypeId,omitempty"`
	Slug                string  `json:"slug,omitempty"`
	EventDate           *Time   `json:"event_Date,omitempty"`
	AutoCreateChecklist bool    `json:"autoCreateChecklist"`
}
