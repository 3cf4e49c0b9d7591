package models

import "time"

// StatusResponse is the JSON view of the backend status shown on the page.
type StatusResponse struct {
	State      string     `json:"state"`
	Text       string     `json:"text"`
	Message    string     `json:"message,omitempty"`
	CheckedAt  *time.Time `json:"checked_at,omitempty"`
	CheckedAgo string     `json:"checked_ago,omitempty"`
	MountID    string     `json:"mount_id,omitempty"`
}
