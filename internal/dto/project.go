package dto

// ── Project DTOs ──

// CreateProjectRequest imports a Linear project into a quarter's plan.
type CreateProjectRequest struct {
	LinearProjectID    string  `json:"linear_project_id" binding:"required"`
	TeamID             string  `json:"team_id"           binding:"required"`
	QuarterID          string  `json:"quarter_id"        binding:"required"`
	PlannedWeeks       float64 `json:"planned_weeks"     binding:"gte=0"`
	InternalTimeline   *string `json:"internal_timeline"`
	HasRequirementsDoc bool    `json:"has_requirements_doc"`
	Notes              *string `json:"notes"`
	Dependencies       *string `json:"dependencies"`
}

// UpdateProjectRequest patches planning fields; nil fields are unchanged.
type UpdateProjectRequest struct {
	PlannedWeeks       *float64 `json:"planned_weeks" binding:"omitempty,gte=0"`
	InternalTimeline   *string  `json:"internal_timeline"`
	HasRequirementsDoc *bool    `json:"has_requirements_doc"`
	Notes              *string  `json:"notes"`
	Dependencies       *string  `json:"dependencies"`
}

// ProjectResponse is one planned project row. Title, status and priority
// live in Linear and are fetched separately by the UI.
type ProjectResponse struct {
	ID                 string  `json:"id"`
	LinearProjectID    string  `json:"linear_project_id"`
	TeamID             string  `json:"team_id"`
	QuarterID          string  `json:"quarter_id"`
	PlannedWeeks       float64 `json:"planned_weeks"`
	InternalTimeline   *string `json:"internal_timeline"`
	HasRequirementsDoc bool    `json:"has_requirements_doc"`
	Notes              *string `json:"notes"`
	Dependencies       *string `json:"dependencies"`
	DisplayOrder       int     `json:"display_order"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ReorderProjectsRequest sets manual row order; display order is the
// position of each ID in the list.
type ReorderProjectsRequest struct {
	ProjectIDs []string `json:"project_ids" binding:"required,min=1"`
}
