package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// AllocationRepository is the data-access interface for sprint allocations.
// One row per (project, sprint); writes go through upserts so concurrent
// edits resolve last-write-wins.
type AllocationRepository interface {
	Upsert(ctx context.Context, alloc *model.SprintAllocation) error
	UpsertActuals(ctx context.Context, alloc *model.SprintAllocation) error
	GetByProjectAndSprint(ctx context.Context, projectID, sprintID string) (*model.SprintAllocation, error)
	ListByProject(ctx context.Context, projectID string) ([]model.SprintAllocation, error)
	ListBySprint(ctx context.Context, sprintID string) ([]model.SprintAllocation, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]model.SprintAllocation, error)
	DeleteByProjectAndSprint(ctx context.Context, projectID, sprintID string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type allocationRepo struct {
	db *gorm.DB
}

// NewAllocationRepo creates an AllocationRepository.
func NewAllocationRepo(db *gorm.DB) AllocationRepository {
	return &allocationRepo{db: db}
}

var allocationConflictColumns = []clause.Column{
	{Name: "project_id"},
	{Name: "sprint_id"},
}

// Upsert writes all planning fields, replacing whatever the row held.
func (r *allocationRepo) Upsert(ctx context.Context, alloc *model.SprintAllocation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: allocationConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"planned_days",
				"actual_days",
				"planned_description",
				"engineers_assigned",
				"phase",
				"sprint_goal",
				"num_engineers",
				"is_manual_override",
				"updated_at",
			}),
		}).
		Create(alloc).Error
}

// UpsertActuals writes only actual_days, creating a zero-planned row when
// the sprint had no planned allocation for the project. The sync pipeline
// uses this so synced actuals never disturb the plan or a manual override.
func (r *allocationRepo) UpsertActuals(ctx context.Context, alloc *model.SprintAllocation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: allocationConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"actual_days",
				"updated_at",
			}),
		}).
		Create(alloc).Error
}

func (r *allocationRepo) GetByProjectAndSprint(ctx context.Context, projectID, sprintID string) (*model.SprintAllocation, error) {
	var alloc model.SprintAllocation
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND sprint_id = ?", projectID, sprintID).
		First(&alloc).Error
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

func (r *allocationRepo) ListByProject(ctx context.Context, projectID string) ([]model.SprintAllocation, error) {
	var allocs []model.SprintAllocation
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) ListBySprint(ctx context.Context, sprintID string) ([]model.SprintAllocation, error) {
	var allocs []model.SprintAllocation
	err := r.db.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.SprintAllocation, error) {
	var allocs []model.SprintAllocation
	err := r.db.WithContext(ctx).
		Joins("JOIN sprints ON sprints.id = sprint_allocations.sprint_id").
		Where("sprints.quarter_id = ?", quarterID).
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) DeleteByProjectAndSprint(ctx context.Context, projectID, sprintID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND sprint_id = ?", projectID, sprintID).
		Delete(&model.SprintAllocation{}).Error
}

func (r *allocationRepo) DeleteByProject(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&model.SprintAllocation{}).Error
}
