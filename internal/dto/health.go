package dto

// HealthResponse reports database connectivity and sanitized environment
// configuration. Secrets never appear here, only whether they are set.
type HealthResponse struct {
	Status      string            `json:"status"`
	Database    string            `json:"database"`
	Environment map[string]string `json:"environment"`
}
