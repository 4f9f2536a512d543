package dto

// ── Capacity and reconciliation DTOs ──

// QuarterCapacityResponse is the full capacity picture for one team in one
// quarter: the formula outputs plus the planned and forecasted comparisons.
type QuarterCapacityResponse struct {
	TeamID    string `json:"team_id"`
	QuarterID string `json:"quarter_id"`

	WorkingDays         int     `json:"working_days"`
	RoadmapEngineers    float64 `json:"roadmap_engineers"`
	DevFocusFactor      float64 `json:"dev_focus_factor"`
	HypotheticalMaxDays float64 `json:"hypothetical_max_days"`
	BasePTODays         float64 `json:"base_pto_days"`
	TotalPTODays        float64 `json:"total_pto_days"`
	UsedActualPTO       bool    `json:"used_actual_pto"`
	AdjustedCapacityDays float64 `json:"adjusted_capacity_days"`
	RoadmapPlanningDays  float64 `json:"roadmap_planning_days"`
	RoadmapPlanningWeeks float64 `json:"roadmap_planning_weeks"`

	AllocatedDays      float64 `json:"allocated_days"`
	RemainingDays      float64 `json:"remaining_days"`
	OverCapacity       bool    `json:"over_capacity"`
	UtilizationPercent float64 `json:"utilization_percent"`

	ForecastedDays        float64 `json:"forecasted_days"`
	ForecastRemainingDays float64 `json:"forecast_remaining_days"`
	ForecastOverCapacity  bool    `json:"forecast_over_capacity"`
}

// SprintCapacityResponse is the reconciliation for one sprint.
type SprintCapacityResponse struct {
	SprintID        string  `json:"sprint_id"`
	Name            string  `json:"name"`
	SprintNumber    int     `json:"sprint_number"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Ended           bool    `json:"ended"`
	WorkingDays     int     `json:"working_days"`
	ProratedPTODays float64 `json:"prorated_pto_days"`
	CapacityDays    float64 `json:"capacity_days"`
	AllocatedDays   float64 `json:"allocated_days"`
	RemainingDays   float64 `json:"remaining_days"`
	OverCapacity    bool    `json:"over_capacity"`
}

// SyncActualsRequest triggers the actual-days sync for one sprint. The
// team supplies the Linear team whose cycles are matched against the
// sprint.
type SyncActualsRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// SyncActualsResponse reports the sync outcome. Matched false means no
// Linear cycle corresponded to the sprint and nothing was written.
type SyncActualsResponse struct {
	SprintID        string  `json:"sprint_id"`
	Matched         bool    `json:"matched"`
	CycleID         *string `json:"cycle_id"`
	CycleName       *string `json:"cycle_name"`
	Message         string  `json:"message,omitempty"`
	IssuesProcessed int     `json:"issues_processed"`
	IssuesFailed    int     `json:"issues_failed"`
	ProjectsUpdated int     `json:"projects_updated"`
	TotalActualDays float64 `json:"total_actual_days"`
}
