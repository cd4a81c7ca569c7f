package models

// Task filter values accepted by the checklist task list
const (
	ChecklistTaskPending   = "PENDING"
	ChecklistTaskCompleted = "COMPLETED"
	ChecklistTaskOverdue   = "OVERDUE"
)

type ChecklistSection struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	EventID     *int64          `json:"eventId,omitempty"`
	EventName   string          `json:"eventName,omitempty"`
	Order       int             `json:"order"`
	Tasks       []ChecklistTask `json:"tasks,omitempty"`
}

type ChecklistTask struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Notes             string `json:"notes"`
	DueDate           *Time  `json:"due_Date,omitempty"`
	HasIndefiniteDate bool   `json:"has_Indefinite_Date"`
	IsCompleted       bool   `json:"is_Completed"`
	CompletedAt       *Time  `json:"completed_At,omitempty"`
	SectionID         int64  `json:"sectionId"`
	EventID           *int64 `json:"eventId,omitempty"`
	SectionTitle      string `json:"sectionTitle,omitempty"`
	Order             int    `json:"order"`
}

type ChecklistSectionParameters struct {
	EventID     *int64 `url:"eventId,omitempty"`
	SearchQuery string `url:"searchQuery"`
	StartDate   string `url:"startDate"`
	EndDate     string `url:"endDate"`
	PageNumber  int    `url:"pageNumber"`
	PageSize    int    `url:"pageSize"`
}

type ChecklistTaskParameters struct {
	EventID           *int64 `url:"eventId,omitempty"`
	SectionID         *int64 `url:"sectionId,omitempty"`
	Status            string `url:"status"`
	SearchQuery       string `url:"searchQuery"`
	StartDate         string `url:"startDate,omitempty"`
	EndDate           string `url:"endDate,omitempty"`
	HasIndefiniteDate *bool  `url:"has_Indefinite_Date,omitempty"`
	PageNumber        int    `url:"pageNumber"`
	PageSize          int    `url:"pageSize"`
}

type ChecklistSectionInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description,omitempty"`
	EventID     *int64 `json:"eventId,omitempty"`
	Order       int    `json:"order"`
}

type ChecklistTaskInput struct {
	Title             string `json:"title" validate:"notblank"`
	Notes             string `json:"notes,omitempty"`
	DueDate           *Time  `json:"due_Date,omitempty"`
	HasIndefiniteDate bool   `json:"has_Indefinite_Date"`
	SectionID         int64  `json:"sectionId" validate:"required"`
	EventID           *int64 `json:"eventId,omitempty"`
	Order             int    `json:"order"`
}

type ChecklistSectionOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderUpdate moves one section or task to a position
type OrderUpdate struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

type ChecklistTemplate struct {
	ID          int64  `json:"id"`
	EventTypeID int64  `json:"eventTypeId"`
	PartnerID   *int64 `json:"partnerId,omitempty"`
	Name        string `json:"name"`
	IsDefault   bool   `json:"isDefault"`
}

type ChecklistTemplateDetail struct {
	ChecklistTemplate
	Sections []ChecklistTemplateSection `json:"sections"`
}

type ChecklistTemplateSection struct {
	ID         int64                   `json:"id"`
	TemplateID int64                   `json:"templateId"`
	Title      string                  `json:"title"`
	Order      int                     `json:"order"`
	Tasks      []ChecklistTemplateTask `json:"tasks"`
}

type ChecklistTemplateTask struct {
	ID        int64  `json:"id"`
	SectionID int64  `json:"sectionId"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Order     int    `json:"order"`
}

type ChecklistTemplateUpdateInput struct {
	Name string `json:"name" validate:"notblank"`
}

type ChecklistTemplateSectionInput struct {
	Title string `json:"title" validate:"notblank"`
	Order *int   `json:"order,omitempty"`
}

// ChecklistTemplateTaskInput without Order is appended at the end of the section
type ChecklistTemplateTaskInput struct {
	Title string `json:"title" validate:"notblank"`
	Notes string `json:"notes,omitempty"`
	Order *int   `json:"order,omitempty"`
}
