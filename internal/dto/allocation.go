package dto

// ── Sprint allocation DTOs ──

// UpsertAllocationRequest writes the allocation for one (project, sprint)
// pair, last-write-wins. Setting PlannedDays directly marks the row as a
// manual override; use RecalculateAllocationRequest to go back to the
// auto-suggested value.
type UpsertAllocationRequest struct {
	ProjectID          string   `json:"project_id" binding:"required"`
	SprintID           string   `json:"sprint_id"  binding:"required"`
	PlannedDays        *float64 `json:"planned_days"  binding:"omitempty,gte=0"`
	ActualDays         *float64 `json:"actual_days"   binding:"omitempty,gte=0"`
	PlannedDescription *string  `json:"planned_description"`
	EngineersAssigned  []string `json:"engineers_assigned"`
	Phase              []string `json:"phase" binding:"omitempty,dive,oneof='Tech Spec' Execution 'Developer Testing' UAT Rollout"`
	SprintGoal         *string  `json:"sprint_goal"`
	NumEngineers       *float64 `json:"num_engineers" binding:"omitempty,gte=0"`
}

// RecalculateAllocationRequest recomputes planned days from the sprint
// capacity formula for the given engineer count and clears the manual
// override flag.
type RecalculateAllocationRequest struct {
	ProjectID    string  `json:"project_id"    binding:"required"`
	SprintID     string  `json:"sprint_id"     binding:"required"`
	NumEngineers float64 `json:"num_engineers" binding:"gte=0"`
}

// MoveAllocationRequest moves an allocation to another sprint. When the
// target pair already has a row the two are merged: days sum, text fields
// prefer the moved row.
type MoveAllocationRequest struct {
	ProjectID    string `json:"project_id"     binding:"required"`
	FromSprintID string `json:"from_sprint_id" binding:"required"`
	ToSprintID   string `json:"to_sprint_id"   binding:"required"`
}

// AllocationResponse is one (project, sprint) allocation row.
type AllocationResponse struct {
	ID                 int64    `json:"id"`
	ProjectID          string   `json:"project_id"`
	SprintID           string   `json:"sprint_id"`
	PlannedDays        float64  `json:"planned_days"`
	ActualDays         float64  `json:"actual_days"`
	PlannedDescription *string  `json:"planned_description"`
	EngineersAssigned  []string `json:"engineers_assigned"`
	Phase              []string `json:"phase"`
	SprintGoal         *string  `json:"sprint_goal"`
	NumEngineers       float64  `json:"num_engineers"`
	IsManualOverride   bool     `json:"is_manual_override"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}
