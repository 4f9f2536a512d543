package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// PTORepository is the data-access interface for PTO entries.
type PTORepository interface {
	Create(ctx context.Context, entry *model.PTOEntry) error
	GetByID(ctx context.Context, id int64) (*model.PTOEntry, error)
	ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]model.PTOEntry, error)
	TotalDays(ctx context.Context, teamID, quarterID string) (float64, int64, error)
	Delete(ctx context.Context, id int64) error
}

type ptoRepo struct {
	db *gorm.DB
}

// NewPTORepo creates a PTORepository.
func NewPTORepo(db *gorm.DB) PTORepository {
	return &ptoRepo{db: db}
}

func (r *ptoRepo) Create(ctx context.Context, entry *model.PTOEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ptoRepo) GetByID(ctx context.Context, id int64) (*model.PTOEntry, error) {
	var entry model.PTOEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ptoRepo) ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]model.PTOEntry, error) {
	var entries []model.PTOEntry
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND quarter_id = ?", teamID, quarterID).
		Order("start_date ASC").
		Find(&entries).Error
	return entries, err
}

// TotalDays sums recorded PTO for a team's quarter and reports the entry
// count. Capacity math switches between the estimate and the recorded total
// based on whether any entries exist.
func (r *ptoRepo) TotalDays(ctx context.Context, teamID, quarterID string) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.PTOEntry{}).
		Where("team_id = ? AND quarter_id = ?", teamID, quarterID).
		Select("COALESCE(SUM(days_count), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *ptoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PTOEntry{}).Error
}
