package dto

// ── Quarter / Holiday / Sprint DTOs ──

// CreateQuarterRequest creates a quarter. ID is optional; when omitted a
// UUID is generated. The yearly initializer uses "q<n>-<year>" IDs.
type CreateQuarterRequest struct {
	ID                    *string  `json:"id"`
	Name                  string   `json:"name"       binding:"required,min=1,max=100"`
	StartDate             string   `json:"start_date" binding:"required"` // "2026-01-01"
	EndDate               string   `json:"end_date"   binding:"required"`
	MeetingTimePercentage *float64 `json:"meeting_time_percentage" binding:"omitempty,gte=0,lt=1"`
	WorkDaysPerWeek       *int     `json:"work_days_per_week"      binding:"omitempty,gte=1,lte=7"`
}

// UpdateQuarterRequest patches a quarter; nil fields are left unchanged.
type UpdateQuarterRequest struct {
	Name                  *string  `json:"name"       binding:"omitempty,min=1,max=100"`
	StartDate             *string  `json:"start_date"`
	EndDate               *string  `json:"end_date"`
	MeetingTimePercentage *float64 `json:"meeting_time_percentage" binding:"omitempty,gte=0,lt=1"`
	WorkDaysPerWeek       *int     `json:"work_days_per_week"      binding:"omitempty,gte=1,lte=7"`
}

// QuarterResponse is one quarter row.
type QuarterResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	MeetingTimePercentage float64 `json:"meeting_time_percentage"`
	WorkDaysPerWeek       int     `json:"work_days_per_week"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// InitQuartersRequest seeds quarters and federal holidays for a year range.
type InitQuartersRequest struct {
	StartYear int `json:"start_year" binding:"required,gte=2000,lte=2100"`
	EndYear   int `json:"end_year"   binding:"required,gte=2000,lte=2100"`
}

// InitQuartersResponse reports what the initializer seeded. Quarters that
// already existed are skipped, never overwritten.
type InitQuartersResponse struct {
	QuartersCreated int      `json:"quarters_created"`
	QuartersSkipped []string `json:"quarters_skipped"`
	HolidaysCreated int      `json:"holidays_created"`
}

// CreateHolidayRequest adds one holiday to a quarter.
type CreateHolidayRequest struct {
	QuarterID   string  `json:"quarter_id"   binding:"required"`
	HolidayDate string  `json:"holiday_date" binding:"required"`
	Description *string `json:"description"`
}

// HolidayResponse is one holiday row.
type HolidayResponse struct {
	ID          int64   `json:"id"`
	QuarterID   string  `json:"quarter_id"`
	HolidayDate string  `json:"holiday_date"`
	Description *string `json:"description"`
}

// AutoPopulateHolidaysRequest seeds a quarter's holidays from the federal
// holiday generator.
type AutoPopulateHolidaysRequest struct {
	QuarterID string `json:"quarter_id" binding:"required"`
}

// AutoPopulateHolidaysResponse reports how many holidays were inserted.
type AutoPopulateHolidaysResponse struct {
	HolidaysCreated int `json:"holidays_created"`
}

// CreateSprintRequest creates a sprint inside a quarter.
type CreateSprintRequest struct {
	QuarterID    string `json:"quarter_id"    binding:"required"`
	Name         string `json:"name"          binding:"required,min=1,max=100"`
	StartDate    string `json:"start_date"    binding:"required"`
	EndDate      string `json:"end_date"      binding:"required"`
	SprintNumber int    `json:"sprint_number" binding:"required,gte=1"`
}

// UpdateSprintRequest patches a sprint; nil fields are left unchanged.
type UpdateSprintRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	SprintNumber *int    `json:"sprint_number" binding:"omitempty,gte=1"`
}

// SprintResponse is one sprint row.
type SprintResponse struct {
	ID           string `json:"id"`
	QuarterID    string `json:"quarter_id"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	SprintNumber int    `json:"sprint_number"`
	CreatedAt    string `json:"created_at"`
}
