package models

import (
	"github.com/shopspring/decimal"
)

type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type OverviewStats struct {
	DaysRemaining       int    `json:"daysRemaining"`
	OperationalStatus   string `json:"operationalStatus"`
	HealthScore         int    `json:"healthScore"`
	AttentionItemsCount int    `json:"attentionItemsCount"`
	LastUpdatedAt       Time   `json:"lastUpdatedAt"`
}

type AttentionItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
	Route    string `json:"route"`
}

type GuestsStats struct {
	Total                  int               `json:"total"`
	Confirmed              int               `json:"confirmed"`
	Declined               int               `json:"declined"`
	Pending                int               `json:"pending"`
	ConfirmationRate       float64           `json:"confirmationRate"`
	PeopleTotal            int               `json:"peopleTotal"`
	PeopleConfirmed        int               `json:"peopleConfirmed"`
	PeopleDeclined         int               `json:"peopleDeclined"`
	PeoplePending          int               `json:"peoplePending"`
	PeopleConfirmationRate float64           `json:"peopleConfirmationRate"`
	RSVPActivityTimeline   []TimeSeriesPoint `json:"rsvpActivityTimeline"`
}

type SeatingStats struct {
	TablesCount      int     `json:"tablesCount"`
	SeatsCapacity    int     `json:"seatsCapacity"`
	AssignedGuests   int     `json:"assignedGuests"`
	UnassignedGuests int     `json:"unassignedGuests"`
	OccupancyRate    float64 `json:"occupancyRate"`
}

type BudgetStats struct {
	Currency  string          `json:"currency"`
	Estimated decimal.Decimal `json:"estimated"`
	Actual    decimal.Decimal `json:"actual"`
	Paid      decimal.Decimal `json:"paid"`
}

type DashboardStats struct {
	Overview       OverviewStats   `json:"overview"`
	AttentionItems []AttentionItem `json:"attentionItems"`
	Guests         GuestsStats     `json:"guests"`
	Seating        SeatingStats    `json:"seating"`
	Budget         *BudgetStats    `json:"budget,omitempty"`
}

type DashboardStatsParameters struct {
	EventID int64  `url:"-"`
	Range   string `url:"range,omitempty"`
	From    string `url:"from,omitempty"`
	To      string `url:"to,omitempty"`
}
