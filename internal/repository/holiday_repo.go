package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// HolidayRepository is the data-access interface for quarter holidays.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	CreateBatch(ctx context.Context, holidays []model.Holiday) error
	GetByID(ctx context.Context, id int64) (*model.Holiday, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]model.Holiday, error)
	CountByQuarter(ctx context.Context, quarterID string) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteByQuarter(ctx context.Context, quarterID string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo creates a HolidayRepository.
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) CreateBatch(ctx context.Context, holidays []model.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&holidays).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id int64) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) CountByQuarter(ctx context.Context, quarterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Holiday{}).
		Where("quarter_id = ?", quarterID).
		Count(&count).Error
	return count, err
}

func (r *holidayRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Holiday{}).Error
}

func (r *holidayRepo) DeleteByQuarter(ctx context.Context, quarterID string) error {
	return r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Delete(&model.Holiday{}).Error
}
