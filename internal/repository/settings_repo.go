package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

// SettingsRepository is the data-access interface for per-quarter team
// setting overrides.
type SettingsRepository interface {
	Upsert(ctx context.Context, settings *model.TeamQuarterSettings) error
	GetByTeamAndQuarter(ctx context.Context, teamID, quarterID string) (*model.TeamQuarterSettings, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]model.TeamQuarterSettings, error)
	Delete(ctx context.Context, teamID, quarterID string) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo creates a SettingsRepository.
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *model.TeamQuarterSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "team_id"}, {Name: "quarter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_engineers",
				"ktlo_engineers",
				"meeting_time_percentage",
				"pto_days_per_engineer",
				"updated_at",
			}),
		}).
		Create(settings).Error
}

func (r *settingsRepo) GetByTeamAndQuarter(ctx context.Context, teamID, quarterID string) (*model.TeamQuarterSettings, error) {
	var settings model.TeamQuarterSettings
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND quarter_id = ?", teamID, quarterID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.TeamQuarterSettings, error) {
	var settings []model.TeamQuarterSettings
	err := r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Find(&settings).Error
	return settings, err
}

func (r *settingsRepo) Delete(ctx context.Context, teamID, quarterID string) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND quarter_id = ?", teamID, quarterID).
		Delete(&model.TeamQuarterSettings{}).Error
}
