package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// QuarterRepository is the data-access interface for quarters.
type QuarterRepository interface {
	Create(ctx context.Context, quarter *model.Quarter) error
	CreateIfAbsent(ctx context.Context, quarter *model.Quarter) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Quarter, error)
	List(ctx context.Context) ([]model.Quarter, error)
	Update(ctx context.Context, quarter *model.Quarter) error
	Delete(ctx context.Context, id string) error
}

type quarterRepo struct {
	db *gorm.DB
}

// NewQuarterRepo creates a QuarterRepository.
func NewQuarterRepo(db *gorm.DB) QuarterRepository {
	return &quarterRepo{db: db}
}

func (r *quarterRepo) Create(ctx context.Context, quarter *model.Quarter) error {
	return r.db.WithContext(ctx).Create(quarter).Error
}

// CreateIfAbsent inserts the quarter unless its ID already exists. Returns
// true when a row was inserted. Used by the yearly initializer so reruns
// never clobber edited quarters.
func (r *quarterRepo) CreateIfAbsent(ctx context.Context, quarter *model.Quarter) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(quarter)
	return res.RowsAffected > 0, res.Error
}

func (r *quarterRepo) GetByID(ctx context.Context, id string) (*model.Quarter, error) {
	var quarter model.Quarter
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&quarter).Error
	if err != nil {
		return nil, err
	}
	return &quarter, nil
}

func (r *quarterRepo) List(ctx context.Context) ([]model.Quarter, error) {
	var quarters []model.Quarter
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Find(&quarters).Error
	return quarters, err
}

func (r *quarterRepo) Update(ctx context.Context, quarter *model.Quarter) error {
	return r.db.WithContext(ctx).Save(quarter).Error
}

func (r *quarterRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Quarter{}).Error
}
