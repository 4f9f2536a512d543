package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// ProjectRepository is the data-access interface for planned projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	GetByLinearProjectAndQuarter(ctx context.Context, linearProjectID, quarterID string) (*model.Project, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]model.Project, error)
	ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]model.Project, error)
	MaxDisplayOrder(ctx context.Context, quarterID string) (int, error)
	Update(ctx context.Context, project *model.Project) error
	UpdateDisplayOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo creates a ProjectRepository.
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) GetByLinearProjectAndQuarter(ctx context.Context, linearProjectID, quarterID string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("linear_project_id = ? AND quarter_id = ?", linearProjectID, quarterID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Order("display_order ASC, created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND quarter_id = ?", teamID, quarterID).
		Order("display_order ASC, created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) MaxDisplayOrder(ctx context.Context, quarterID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("quarter_id = ?", quarterID).
		Select("MAX(display_order)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *projectRepo) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepo) UpdateDisplayOrder(ctx context.Context, id string, order int) error {
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		Update("display_order", order).Error
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Project{}).Error
}
