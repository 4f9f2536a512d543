package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// SprintRepository is the data-access interface for sprints.
type SprintRepository interface {
	Create(ctx context.Context, sprint *model.Sprint) error
	CreateBatch(ctx context.Context, sprints []model.Sprint) error
	GetByID(ctx context.Context, id string) (*model.Sprint, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]model.Sprint, error)
	Update(ctx context.Context, sprint *model.Sprint) error
	Delete(ctx context.Context, id string) error
}

type sprintRepo struct {
	db *gorm.DB
}

// NewSprintRepo creates a SprintRepository.
func NewSprintRepo(db *gorm.DB) SprintRepository {
	return &sprintRepo{db: db}
}

func (r *sprintRepo) Create(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

func (r *sprintRepo) CreateBatch(ctx context.Context, sprints []model.Sprint) error {
	if len(sprints) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sprints).Error
}

func (r *sprintRepo) GetByID(ctx context.Context, id string) (*model.Sprint, error) {
	var sprint model.Sprint
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sprint).Error
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (r *sprintRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.Sprint, error) {
	var sprints []model.Sprint
	err := r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Order("sprint_number ASC").
		Find(&sprints).Error
	return sprints, err
}

func (r *sprintRepo) Update(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Save(sprint).Error
}

func (r *sprintRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Sprint{}).Error
}
