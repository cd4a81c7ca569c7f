package models

// Invitation settings status
const (
	InvitationDraft = "Draft"
	InvitationReady = "Ready"
)

type InvitationTemplate struct {
	ID            int64  `json:"id"`
	EventTypeID   int64  `json:"eventTypeId"`
	PartnerID     *int64 `json:"partnerId,omitempty"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	BackgroundURL string `json:"background_Url"`
	ThumbnailURL  string `json:"thumbnail_Url"`
	ShowLogo      bool   `json:"showLogo"`
	LogoURL       string `json:"logo_Url,omitempty"`
}

type InvitationSettings struct {
	ID                   int64  `json:"id"`
	EventID              int64  `json:"eventId"`
	ActiveTemplateID     *int64 `json:"activeTemplateId,omitempty"`
	SettingsJSON         string `json:"settingsJson"`
	CoverImageURL        string `json:"coverImage_Url,omitempty"`
	Status               string `json:"status"`
	ValidationErrorsJSON string `json:"validationErrorsJson,omitempty"`
}

// InvitationDetails covers the fields of every event type, each type uses a subset
type InvitationDetails struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	Time          string `json:"time,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CivilLocation string `json:"civilLocation,omitempty"`
	CivilTime     string `json:"civilTime,omitempty"`
	PartyLocation string `json:"partyLocation,omitempty"`
	PartyTime     string `json:"partyTime,omitempty"`
}

// InvitationSettingsInput carries the block for the event type only
type InvitationSettingsInput struct {
	CoverImageURL   string             `json:"coverImage_Url,omitempty"`
	Wedding         *InvitationDetails `json:"wedding,omitempty"`
	PreWedding      *InvitationDetails `json:"preWedding,omitempty"`
	Corporate       *InvitationDetails `json:"corporate,omitempty"`
	Family          *InvitationDetails `json:"family,omitempty"`
	KidsCelebration *InvitationDetails `json:"kidsCelebration,omitempty"`
	Birthday        *InvitationDetails `json:"birthday,omitempty"`
	Graduation      *InvitationDetails `json:"graduation,omitempty"`
}

type InvitationUploadResult struct {
	URL string `json:"url"`
}

type InvitationRenderResult struct {
	FileURL   string `json:"fileUrl"`
	FromCache bool   `json:"fromCache"`
}

type InvitationExportResult struct {
	ZipURL    string `json:"zipUrl"`
	Total     int    `json:"total"`
	FromCache bool   `json:"fromCache"`
	Generated int    `json:"generated"`
}
