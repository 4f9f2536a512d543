package model

import "time"

// Quarter is one fiscal quarter. IDs follow the "q1-2026" convention when
// seeded by the yearly initializer but are free-form otherwise.
type Quarter struct {
	ID                    string    `gorm:"type:text;primaryKey"        json:"id"`
	Name                  string    `gorm:"not null"                    json:"name"`
	StartDate             time.Time `gorm:"type:date;not null"          json:"start_date"`
	EndDate               time.Time `gorm:"type:date;not null"          json:"end_date"`
	MeetingTimePercentage float64   `gorm:"not null;default:0.25"       json:"meeting_time_percentage"`
	WorkDaysPerWeek       int       `gorm:"not null;default:5"          json:"work_days_per_week"`
	Timestamps
}

func (Quarter) TableName() string { return "quarters" }

// Holiday is a non-working day owned by a quarter.
type Holiday struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuarterID   string    `gorm:"not null;index"           json:"quarter_id"`
	HolidayDate time.Time `gorm:"type:date;not null"       json:"holiday_date"`
	Description *string   `json:"description"`
}

func (Holiday) TableName() string { return "holidays" }

// Sprint is a planning window inside a quarter. SprintNumber orders sprints
// within their quarter and determines "previous sprint".
type Sprint struct {
	ID           string    `gorm:"type:text;primaryKey;default:gen_random_uuid()" json:"id"`
	QuarterID    string    `gorm:"not null;index"                                 json:"quarter_id"`
	Name         string    `gorm:"not null"                                       json:"name"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"`
	SprintNumber int       `gorm:"not null"                                       json:"sprint_number"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (Sprint) TableName() string { return "sprints" }

// Ended reports whether the sprint's window has fully passed as of now.
// Used by the forecast: ended sprints contribute actuals, future ones
// contribute the plan.
func (s *Sprint) Ended(now time.Time) bool {
	return s.EndDate.Before(now.Truncate(24 * time.Hour))
}
