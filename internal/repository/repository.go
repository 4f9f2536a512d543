package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	Team       TeamRepository
	Quarter    QuarterRepository
	Holiday    HolidayRepository
	Sprint     SprintRepository
	Project    ProjectRepository
	Allocation AllocationRepository
	PTO        PTORepository
	Settings   SettingsRepository
}

// NewRepository wires all repositories onto one database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Team:       NewTeamRepo(db),
		Quarter:    NewQuarterRepo(db),
		Holiday:    NewHolidayRepo(db),
		Sprint:     NewSprintRepo(db),
		Project:    NewProjectRepo(db),
		Allocation: NewAllocationRepo(db),
		PTO:        NewPTORepo(db),
		Settings:   NewSettingsRepo(db),
	}
}

// BeginTx opens a transaction. Pair with WithTx; the caller owns
// Commit/Rollback.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository whose repositories all run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
