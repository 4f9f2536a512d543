package dto

// ── Linear passthrough DTOs ──

// UpdateProjectDatesRequest writes start/target dates on a Linear project
// and posts an audit comment to its update feed.
type UpdateProjectDatesRequest struct {
	LinearProjectID string  `json:"linear_project_id" binding:"required"`
	StartDate       *string `json:"start_date"`
	TargetDate      *string `json:"target_date"`
	Comment         *string `json:"comment"`
}

// BulkProjectsRequest names the Linear projects to refresh in one call.
type BulkProjectsRequest struct {
	ProjectIDs []string `json:"project_ids" binding:"required,min=1"`
}

// LinearUserInfo is a project lead or assignee in an outgoing payload.
type LinearUserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LinearProjectDetail is the mapped project shape the bulk refresh returns,
// keyed by project ID for easy lookup.
type LinearProjectDetail struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	State         string          `json:"state"`
	Priority      int             `json:"priority"`
	PriorityLabel string          `json:"priority_label"`
	Progress      float64         `json:"progress"`
	URL           string          `json:"url"`
	StartDate     *string         `json:"start_date"`
	TargetDate    *string         `json:"target_date"`
	Lead          *LinearUserInfo `json:"lead"`
}

// UpdateProjectFieldRequest writes a single field on a Linear project.
type UpdateProjectFieldRequest struct {
	LinearProjectID string  `json:"linear_project_id" binding:"required"`
	Field           string  `json:"field" binding:"required,oneof=priority state start_date target_date"`
	Value           string  `json:"value" binding:"required"`
	Comment         *string `json:"comment"`
}
