package model

import "time"

// Project is a locally planned row backed by a Linear project. Title,
// status, priority and the like are read live from Linear and never stored;
// only planning fields live here. The same Linear project may be imported
// into multiple quarters as distinct rows, hence the composite uniqueness
// on (linear_project_id, quarter_id).
type Project struct {
	ID                 string     `gorm:"type:text;primaryKey;default:gen_random_uuid()"       json:"id"`
	LinearProjectID    string     `gorm:"column:linear_project_id;not null;uniqueIndex:projects_linear_project_quarter_unique" json:"linear_project_id"`
	TeamID             string     `gorm:"not null;index"                                       json:"team_id"`
	QuarterID          string     `gorm:"not null;index;uniqueIndex:projects_linear_project_quarter_unique" json:"quarter_id"`
	PlannedWeeks       float64    `gorm:"not null;default:0"                                   json:"planned_weeks"`
	InternalTimeline   *time.Time `gorm:"type:date"                                            json:"internal_timeline"`
	HasRequirementsDoc bool       `gorm:"not null;default:false"                               json:"has_requirements_doc"`
	Notes              *string    `json:"notes"`
	Dependencies       *string    `json:"dependencies"`
	DisplayOrder       int        `gorm:"not null;default:0"                                   json:"display_order"`
	Timestamps
}

func (Project) TableName() string { return "projects" }

// SprintAllocation is the fact table: one row per (project, sprint),
// enforced by a unique constraint and written via last-write-wins upsert.
type SprintAllocation struct {
	ID                 int64         `gorm:"primaryKey;autoIncrement"                  json:"id"`
	ProjectID          string        `gorm:"not null;uniqueIndex:sprint_allocations_project_sprint_unique" json:"project_id"`
	SprintID           string        `gorm:"not null;uniqueIndex:sprint_allocations_project_sprint_unique" json:"sprint_id"`
	PlannedDays        float64       `gorm:"not null;default:0"                        json:"planned_days"`
	ActualDays         float64       `gorm:"not null;default:0"                        json:"actual_days"`
	PlannedDescription *string       `json:"planned_description"`
	EngineersAssigned  EngineerNames `gorm:"type:text"                                 json:"engineers_assigned"`
	Phase              PhaseSet      `gorm:"type:text;not null;default:'Execution'"    json:"phase"`
	SprintGoal         *string       `json:"sprint_goal"`
	NumEngineers       float64       `gorm:"not null;default:0"                        json:"num_engineers"`
	IsManualOverride   bool          `gorm:"not null;default:false"                    json:"is_manual_override"`
	Timestamps
}

func (SprintAllocation) TableName() string { return "sprint_allocations" }

// PTOEntry records planned time off for a named engineer. Engineer names
// are free text by design; see EngineerNames for the isolation boundary.
type PTOEntry struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	TeamID       string    `gorm:"not null;index:idx_pto_team_quarter" json:"team_id"`
	EngineerName string    `gorm:"not null"                           json:"engineer_name"`
	StartDate    time.Time `gorm:"type:date;not null"                 json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                 json:"end_date"`
	DaysCount    float64   `gorm:"not null"                           json:"days_count"`
	QuarterID    string    `gorm:"not null;index:idx_pto_team_quarter" json:"quarter_id"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PTOEntry) TableName() string { return "pto_entries" }

// TeamQuarterSettings overrides team defaults for one quarter. Zero or one
// row per (team, quarter); absent means team/quarter defaults apply.
type TeamQuarterSettings struct {
	ID                    int64   `gorm:"primaryKey;autoIncrement"                  json:"id"`
	TeamID                string  `gorm:"not null;uniqueIndex:team_quarter_settings_team_quarter_unique" json:"team_id"`
	QuarterID             string  `gorm:"not null;uniqueIndex:team_quarter_settings_team_quarter_unique" json:"quarter_id"`
	TotalEngineers        float64 `gorm:"not null;default:0"                        json:"total_engineers"`
	KTLOEngineers         float64 `gorm:"column:ktlo_engineers;not null;default:0"  json:"ktlo_engineers"`
	MeetingTimePercentage float64 `gorm:"not null;default:0.25"                     json:"meeting_time_percentage"`
	PTODaysPerEngineer    float64 `gorm:"column:pto_days_per_engineer;not null;default:5" json:"pto_days_per_engineer"`
	Timestamps
}

func (TeamQuarterSettings) TableName() string { return "team_quarter_settings" }
