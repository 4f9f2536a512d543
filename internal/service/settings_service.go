package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Settings business errors ──

var (
	ErrSettingsNotFound = errors.New("team quarter settings not found")
)

// ResolvedPlanning is the effective planning parameters for one (team,
// quarter) pair after the override chain: per-quarter settings row, then
// team and quarter defaults.
type ResolvedPlanning struct {
	TotalEngineers        float64
	KTLOEngineers         float64
	MeetingTimePercentage float64
	PTODaysPerEngineer    float64
	WorkDaysPerWeek       int
}

// SettingsService manages per-quarter team overrides and resolves the
// effective planning parameters other services compute with.
type SettingsService interface {
	Upsert(ctx context.Context, req *dto.UpsertSettingsRequest) (*dto.SettingsResponse, error)
	GetByTeamAndQuarter(ctx context.Context, teamID, quarterID string) (*dto.SettingsResponse, error)
	Delete(ctx context.Context, teamID, quarterID string) error
	Resolve(ctx context.Context, team *model.Team, quarter *model.Quarter) (ResolvedPlanning, error)
}

type settingsService struct {
	repo     *repository.Repository
	defaults PlanningDefaults
	logger   *zap.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(repo *repository.Repository, defaults PlanningDefaults, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, defaults: defaults, logger: logger}
}

func (s *settingsService) Upsert(ctx context.Context, req *dto.UpsertSettingsRequest) (*dto.SettingsResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", req.TeamID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Quarter.GetByID(ctx, req.QuarterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", req.QuarterID), zap.Error(err))
		return nil, err
	}

	settings := &model.TeamQuarterSettings{
		TeamID:                req.TeamID,
		QuarterID:             req.QuarterID,
		TotalEngineers:        req.TotalEngineers,
		KTLOEngineers:         req.KTLOEngineers,
		MeetingTimePercentage: req.MeetingTimePercentage,
		PTODaysPerEngineer:    req.PTODaysPerEngineer,
	}
	if err := s.repo.Settings.Upsert(ctx, settings); err != nil {
		s.logger.Error("upsert settings failed", zap.Error(err))
		return nil, err
	}

	// Re-read so updates return the stored row, not the insert attempt.
	stored, err := s.repo.Settings.GetByTeamAndQuarter(ctx, req.TeamID, req.QuarterID)
	if err != nil {
		s.logger.Error("reload settings failed", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(stored), nil
}

func (s *settingsService) GetByTeamAndQuarter(ctx context.Context, teamID, quarterID string) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Settings.GetByTeamAndQuarter(ctx, teamID, quarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("get settings failed", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) Delete(ctx context.Context, teamID, quarterID string) error {
	if _, err := s.repo.Settings.GetByTeamAndQuarter(ctx, teamID, quarterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingsNotFound
		}
		s.logger.Error("get settings failed", zap.Error(err))
		return err
	}
	if err := s.repo.Settings.Delete(ctx, teamID, quarterID); err != nil {
		s.logger.Error("delete settings failed", zap.Error(err))
		return err
	}
	return nil
}

// Resolve applies the override chain. The settings row, when present,
// replaces the team's headcounts and PTO figure and the quarter's meeting
// fraction wholesale. Work days per week only ever comes from the quarter.
func (s *settingsService) Resolve(ctx context.Context, team *model.Team, quarter *model.Quarter) (ResolvedPlanning, error) {
	resolved := ResolvedPlanning{
		TotalEngineers:        team.TotalEngineers,
		KTLOEngineers:         team.KTLOEngineers,
		MeetingTimePercentage: quarter.MeetingTimePercentage,
		PTODaysPerEngineer:    team.PTODaysPerEngineer,
		WorkDaysPerWeek:       quarter.WorkDaysPerWeek,
	}
	if resolved.WorkDaysPerWeek == 0 {
		resolved.WorkDaysPerWeek = s.defaults.WorkDaysPerWeek
	}

	override, err := s.repo.Settings.GetByTeamAndQuarter(ctx, team.ID, quarter.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resolved, nil
		}
		s.logger.Error("resolve settings failed",
			zap.String("team_id", team.ID), zap.String("quarter_id", quarter.ID), zap.Error(err))
		return ResolvedPlanning{}, err
	}

	resolved.TotalEngineers = override.TotalEngineers
	resolved.KTLOEngineers = override.KTLOEngineers
	resolved.MeetingTimePercentage = override.MeetingTimePercentage
	resolved.PTODaysPerEngineer = override.PTODaysPerEngineer
	return resolved, nil
}

func toSettingsResponse(settings *model.TeamQuarterSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ID:                    settings.ID,
		TeamID:                settings.TeamID,
		QuarterID:             settings.QuarterID,
		TotalEngineers:        settings.TotalEngineers,
		KTLOEngineers:         settings.KTLOEngineers,
		MeetingTimePercentage: settings.MeetingTimePercentage,
		PTODaysPerEngineer:    settings.PTODaysPerEngineer,
		CreatedAt:             settings.CreatedAt.Format(timestampLayout),
		UpdatedAt:             settings.UpdatedAt.Format(timestampLayout),
	}
}
