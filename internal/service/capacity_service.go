package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/capacity"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// CapacityService evaluates quarter and sprint capacity for a team and
// reconciles allocations against it.
type CapacityService interface {
	QuarterCapacity(ctx context.Context, teamID, quarterID string) (*dto.QuarterCapacityResponse, error)
	SprintCapacities(ctx context.Context, teamID, quarterID string) ([]dto.SprintCapacityResponse, error)
}

type capacityService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewCapacityService creates a CapacityService.
func NewCapacityService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) CapacityService {
	return &capacityService{repo: repo, settings: settings, logger: logger, now: time.Now}
}

// ────────────────────── QuarterCapacity ──────────────────────

func (s *capacityService) QuarterCapacity(ctx context.Context, teamID, quarterID string) (*dto.QuarterCapacityResponse, error) {
	team, quarter, resolved, holidaySet, err := s.loadPlanningContext(ctx, teamID, quarterID)
	if err != nil {
		return nil, err
	}

	workingDays := capacity.WorkingDays(quarter.StartDate, quarter.EndDate, holidaySet)

	actualPTO, ptoEntries, err := s.repo.PTO.TotalDays(ctx, team.ID, quarter.ID)
	if err != nil {
		s.logger.Error("total pto failed", zap.Error(err))
		return nil, err
	}

	result := capacity.QuarterCapacity(capacity.QuarterInputs{
		WorkingDays:           workingDays,
		TotalEngineers:        resolved.TotalEngineers,
		KTLOEngineers:         resolved.KTLOEngineers,
		MeetingTimePercentage: resolved.MeetingTimePercentage,
		PTODaysPerEngineer:    resolved.PTODaysPerEngineer,
		WorkDaysPerWeek:       resolved.WorkDaysPerWeek,
		ActualPTODays:         actualPTO,
		HasPTOEntries:         ptoEntries > 0,
	})

	entries, err := s.forecastEntries(ctx, team.ID, quarter.ID)
	if err != nil {
		return nil, err
	}
	recon := capacity.ReconcileQuarter(result.AdjustedCapacityDays, entries)

	return &dto.QuarterCapacityResponse{
		TeamID:    team.ID,
		QuarterID: quarter.ID,

		WorkingDays:          result.WorkingDays,
		RoadmapEngineers:     result.RoadmapEngineers,
		DevFocusFactor:       result.DevFocusFactor,
		HypotheticalMaxDays:  result.HypotheticalMaxDays,
		BasePTODays:          resolved.PTODaysPerEngineer * result.RoadmapEngineers,
		TotalPTODays:         result.PTOAdjustments,
		UsedActualPTO:        ptoEntries > 0,
		AdjustedCapacityDays: result.AdjustedCapacityDays,
		RoadmapPlanningDays:  result.RoadmapPlanningDays,
		RoadmapPlanningWeeks: result.RoadmapPlanningWeeks,

		AllocatedDays:      recon.PlannedDays,
		RemainingDays:      recon.PlannedRemainingDays,
		OverCapacity:       recon.PlannedOverCapacity,
		UtilizationPercent: capacity.Utilization(recon.PlannedDays, result.AdjustedCapacityDays),

		ForecastedDays:        recon.ForecastedDays,
		ForecastRemainingDays: recon.ForecastRemainingDays,
		ForecastOverCapacity:  recon.ForecastedOverCapacity,
	}, nil
}

// ────────────────────── SprintCapacities ──────────────────────

func (s *capacityService) SprintCapacities(ctx context.Context, teamID, quarterID string) ([]dto.SprintCapacityResponse, error) {
	team, quarter, resolved, holidaySet, err := s.loadPlanningContext(ctx, teamID, quarterID)
	if err != nil {
		return nil, err
	}

	quarterWD := capacity.WorkingDays(quarter.StartDate, quarter.EndDate, holidaySet)
	roadmap := resolved.TotalEngineers - resolved.KTLOEngineers
	if roadmap < 0 {
		roadmap = 0
	}

	sprints, err := s.repo.Sprint.ListByQuarter(ctx, quarter.ID)
	if err != nil {
		s.logger.Error("list sprints failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
		return nil, err
	}

	projectIDs, err := s.teamProjectIDs(ctx, team.ID, quarter.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]dto.SprintCapacityResponse, 0, len(sprints))
	for i := range sprints {
		sprint := &sprints[i]
		sprintWD := capacity.WorkingDays(sprint.StartDate, sprint.EndDate, holidaySet)

		capDays := capacity.SprintAllocationDays(
			roadmap, sprintWD, quarterWD,
			resolved.PTODaysPerEngineer, resolved.MeetingTimePercentage,
		)

		allocs, err := s.repo.Allocation.ListBySprint(ctx, sprint.ID)
		if err != nil {
			s.logger.Error("list allocations failed", zap.String("sprint_id", sprint.ID), zap.Error(err))
			return nil, err
		}
		var plannedDays []float64
		for _, a := range allocs {
			if _, ok := projectIDs[a.ProjectID]; !ok {
				continue
			}
			plannedDays = append(plannedDays, a.PlannedDays)
		}

		recon := capacity.ReconcileSprint(capDays, plannedDays)

		result = append(result, dto.SprintCapacityResponse{
			SprintID:        sprint.ID,
			Name:            sprint.Name,
			SprintNumber:    sprint.SprintNumber,
			StartDate:       sprint.StartDate.Format(dateLayout),
			EndDate:         sprint.EndDate.Format(dateLayout),
			Ended:           sprint.Ended(now),
			WorkingDays:     sprintWD,
			ProratedPTODays: capacity.ProratedSprintPTO(resolved.PTODaysPerEngineer, quarterWD, sprintWD),
			CapacityDays:    recon.CapacityDays,
			AllocatedDays:   recon.AllocatedDays,
			RemainingDays:   recon.RemainingDays,
			OverCapacity:    recon.OverCapacity,
		})
	}
	return result, nil
}

// ── helpers ──

func (s *capacityService) loadPlanningContext(ctx context.Context, teamID, quarterID string) (*model.Team, *model.Quarter, ResolvedPlanning, capacity.HolidaySet, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ResolvedPlanning{}, nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", teamID), zap.Error(err))
		return nil, nil, ResolvedPlanning{}, nil, err
	}
	quarter, err := s.repo.Quarter.GetByID(ctx, quarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ResolvedPlanning{}, nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", quarterID), zap.Error(err))
		return nil, nil, ResolvedPlanning{}, nil, err
	}
	resolved, err := s.settings.Resolve(ctx, team, quarter)
	if err != nil {
		return nil, nil, ResolvedPlanning{}, nil, err
	}
	holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarter.ID)
	if err != nil {
		s.logger.Error("list holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
		return nil, nil, ResolvedPlanning{}, nil, err
	}
	return team, quarter, resolved, holidaySetOf(holidays), nil
}

func (s *capacityService) teamProjectIDs(ctx context.Context, teamID, quarterID string) (map[string]struct{}, error) {
	projects, err := s.repo.Project.ListByTeamAndQuarter(ctx, teamID, quarterID)
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, err
	}
	ids := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		ids[p.ID] = struct{}{}
	}
	return ids, nil
}

// forecastEntries collects the team's allocations across the quarter with
// each owning sprint's ended flag, for the mixed actual/planned forecast.
func (s *capacityService) forecastEntries(ctx context.Context, teamID, quarterID string) ([]capacity.ForecastEntry, error) {
	sprints, err := s.repo.Sprint.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list sprints failed", zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}
	ended := make(map[string]bool, len(sprints))
	now := s.now()
	for i := range sprints {
		ended[sprints[i].ID] = sprints[i].Ended(now)
	}

	projectIDs, err := s.teamProjectIDs(ctx, teamID, quarterID)
	if err != nil {
		return nil, err
	}

	allocs, err := s.repo.Allocation.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list allocations failed", zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}

	var entries []capacity.ForecastEntry
	for _, a := range allocs {
		if _, ok := projectIDs[a.ProjectID]; !ok {
			continue
		}
		entries = append(entries, capacity.ForecastEntry{
			PlannedDays: a.PlannedDays,
			ActualDays:  a.ActualDays,
			SprintEnded: ended[a.SprintID],
		})
	}
	return entries, nil
}
