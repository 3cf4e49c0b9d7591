package models

// HealthResponse reports liveness of the status page server itself.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
