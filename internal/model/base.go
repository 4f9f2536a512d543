package model

import "time"

// Timestamps holds the audit columns shared by most tables. updated_at is
// maintained by a database trigger; GORM only sets it on create.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DateOnly is the wire and storage format for civil dates.
const DateOnly = "2006-01-02"
