package models

type Desk struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	SeatsFilled int     `json:"seats_Filled"`
	SeatsLimit  int     `json:"seats_Limit"`
	EventID     *int64  `json:"eventId,omitempty"`
	EventName   string  `json:"eventName"`
	Guests      []Guest `json:"guests"`
}

type DeskParameters struct {
	EventID          *int64 `url:"eventId,omitempty"`
	AvailabilityType string `url:"availability_Type"`
	SearchQuery      string `url:"searchQuery"`
	StartDate        string `url:"startDate"`
	EndDate          string `url:"endDate"`
	PageNumber       int    `url:"pageNumber"`
	PageSize         int    `url:"pageSize"`
}

type DeskInput struct {
	Name       string `json:"name" validate:"notblank"`
	SeatsLimit int    `json:"seats_Limit" validate:"min=1"`
	EventID    *int64 `json:"eventId,omitempty"`
}

type DeskOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
