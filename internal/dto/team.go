package dto

// ── Team DTOs ──

// CreateTeamRequest creates a team.
type CreateTeamRequest struct {
	Name               string   `json:"name"                  binding:"required,min=1,max=100"`
	LinearTeamID       *string  `json:"linear_team_id"`
	TotalEngineers     float64  `json:"total_engineers"       binding:"gte=0"`
	KTLOEngineers      float64  `json:"ktlo_engineers"        binding:"gte=0"`
	PTODaysPerEngineer *float64 `json:"pto_days_per_engineer" binding:"omitempty,gte=0"`
}

// UpdateTeamRequest patches a team; nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name               *string  `json:"name"                  binding:"omitempty,min=1,max=100"`
	LinearTeamID       *string  `json:"linear_team_id"`
	TotalEngineers     *float64 `json:"total_engineers"       binding:"omitempty,gte=0"`
	KTLOEngineers      *float64 `json:"ktlo_engineers"        binding:"omitempty,gte=0"`
	PTODaysPerEngineer *float64 `json:"pto_days_per_engineer" binding:"omitempty,gte=0"`
}

// TeamResponse is a team row plus the derived roadmap pool.
type TeamResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	LinearTeamID       *string `json:"linear_team_id"`
	TotalEngineers     float64 `json:"total_engineers"`
	KTLOEngineers      float64 `json:"ktlo_engineers"`
	RoadmapEngineers   float64 `json:"roadmap_engineers"`
	PTODaysPerEngineer float64 `json:"pto_days_per_engineer"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}
