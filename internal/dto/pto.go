package dto

// ── PTO DTOs ──

// CreatePTORequest records planned time off for a named engineer. When
// DaysCount is omitted it is derived from the business days in the range
// against the owning quarter's holidays.
type CreatePTORequest struct {
	TeamID       string   `json:"team_id"       binding:"required"`
	QuarterID    string   `json:"quarter_id"    binding:"required"`
	EngineerName string   `json:"engineer_name" binding:"required,min=1,max=100"`
	StartDate    string   `json:"start_date"    binding:"required"`
	EndDate      string   `json:"end_date"      binding:"required"`
	DaysCount    *float64 `json:"days_count"    binding:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

// PTOResponse is one PTO entry row.
type PTOResponse struct {
	ID           int64   `json:"id"`
	TeamID       string  `json:"team_id"`
	QuarterID    string  `json:"quarter_id"`
	EngineerName string  `json:"engineer_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    float64 `json:"days_count"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
}
