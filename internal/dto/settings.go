package dto

// ── Team-quarter settings DTOs ──

// UpsertSettingsRequest writes the per-quarter override for a team, keyed
// on (team_id, quarter_id).
type UpsertSettingsRequest struct {
	TeamID                string  `json:"team_id"    binding:"required"`
	QuarterID             string  `json:"quarter_id" binding:"required"`
	TotalEngineers        float64 `json:"total_engineers"         binding:"gte=0"`
	KTLOEngineers         float64 `json:"ktlo_engineers"          binding:"gte=0"`
	MeetingTimePercentage float64 `json:"meeting_time_percentage" binding:"gte=0,lt=1"`
	PTODaysPerEngineer    float64 `json:"pto_days_per_engineer"   binding:"gte=0"`
}

// SettingsResponse is one override row.
type SettingsResponse struct {
	ID                    int64   `json:"id"`
	TeamID                string  `json:"team_id"`
	QuarterID             string  `json:"quarter_id"`
	TotalEngineers        float64 `json:"total_engineers"`
	KTLOEngineers         float64 `json:"ktlo_engineers"`
	MeetingTimePercentage float64 `json:"meeting_time_percentage"`
	PTODaysPerEngineer    float64 `json:"pto_days_per_engineer"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}
