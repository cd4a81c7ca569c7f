package models

type Guest struct {
	ID                 int64  `json:"id"`
	LocalID            int64  `json:"localId"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	PeopleCount        int    `json:"people_Count"`
	PresenceConfirmed  bool   `json:"presence_Confirmed"`
	Arrived            bool   `json:"arrived"`
	EventID            *int64 `json:"eventId,omitempty"`
	EventName          string `json:"eventName,omitempty"`
	DeskID             int64  `json:"deskId"`
	DeskName           string `json:"deskName,omitempty"`
	CategoryID         *int64 `json:"categoryId,omitempty"`
	CategoryName       string `json:"categoryName"`
	PeopleConfirmed    *int   `json:"people_Confirmed,omitempty"`
	AdditionalComments string `json:"additional_Comments,omitempty"`
	SeatNumber         *int   `json:"seatNumber,omitempty"`
	AbsenceDeclared    bool   `json:"absence_Declared,omitempty"`
	CreatedAt          Time   `json:"created_At"`
}

type GuestParameters struct {
	EventID          *int64 `url:"eventId,omitempty"`
	GuestID          *int64 `url:"guestId,omitempty"`
	CategoryID       *int64 `url:"categoryId,omitempty"`
	AvailabilityType string `url:"availability_Type"`
	SearchQuery      string `url:"searchQuery"`
	StartDate        string `url:"startDate"`
	EndDate          string `url:"endDate"`
	PageNumber       int    `url:"pageNumber"`
	PageSize         int    `url:"pageSize"`
}

type GuestInput struct {
	EventID     *int64 `json:"eventId,omitempty"`
	PeopleCount int    `json:"people_Count" validate:"min=1"`
	DeskID      *int64 `json:"deskId,omitempty"`
	Name        string `json:"name" validate:"notblank"`
	Phone       string `json:"phone"`
	CategoryID  int64  `json:"categoryId" validate:"required"`
}

type GuestCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ConfirmPresenceInput struct {
	PeopleConfirmed    int    `json:"peopleConfirmed" validate:"min=0"`
	AdditionalComments string `json:"additional_Comments,omitempty"`
}
