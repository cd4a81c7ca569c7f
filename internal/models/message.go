package models

// StatusMessage is the acknowledgement some commands answer with
type StatusMessage struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
