package model

// Team represents an engineering team whose capacity is planned.
// KTLO engineers are reserved for maintenance and excluded from roadmap
// capacity. Nothing in storage forces KTLO <= total; the UI suggests it.
type Team struct {
	ID                 string  `gorm:"type:text;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string  `gorm:"not null"                                       json:"name"`
	LinearTeamID       *string `gorm:"column:linear_team_id;unique"                   json:"linear_team_id"`
	TotalEngineers     float64 `gorm:"not null;default:0"                             json:"total_engineers"`
	KTLOEngineers      float64 `gorm:"column:ktlo_engineers;not null;default:0"       json:"ktlo_engineers"`
	PTODaysPerEngineer float64 `gorm:"column:pto_days_per_engineer;not null;default:5" json:"pto_days_per_engineer"`
	Timestamps
}

func (Team) TableName() string { return "teams" }

// RoadmapEngineers is the pool available for planned project work.
func (t *Team) RoadmapEngineers() float64 {
	if r := t.TotalEngineers - t.KTLOEngineers; r > 0 {
		return r
	}
	return 0
}
