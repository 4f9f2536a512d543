package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/capacity"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Allocation business errors ──

var (
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrPhaseInvalid       = errors.New("invalid phase")
	ErrSameSprint         = errors.New("source and target sprint are the same")
)

// AllocationService manages the (project, sprint) allocation grid.
type AllocationService interface {
	Upsert(ctx context.Context, req *dto.UpsertAllocationRequest) (*dto.AllocationResponse, error)
	Recalculate(ctx context.Context, req *dto.RecalculateAllocationRequest) (*dto.AllocationResponse, error)
	Move(ctx context.Context, req *dto.MoveAllocationRequest) (*dto.AllocationResponse, error)
	ListByProject(ctx context.Context, projectID string) ([]dto.AllocationResponse, error)
	ListBySprint(ctx context.Context, sprintID string) ([]dto.AllocationResponse, error)
	Delete(ctx context.Context, projectID, sprintID string) error
}

type allocationService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewAllocationService creates an AllocationService.
func NewAllocationService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) AllocationService {
	return &allocationService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── Upsert ──────────────────────

// Upsert writes the allocation for one (project, sprint) pair. Supplying
// PlannedDays directly marks the row as a manual override; last write wins
// when two callers race on the same pair.
func (s *allocationService) Upsert(ctx context.Context, req *dto.UpsertAllocationRequest) (*dto.AllocationResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("get project failed", zap.String("id", req.ProjectID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Sprint.GetByID(ctx, req.SprintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", req.SprintID), zap.Error(err))
		return nil, err
	}

	phases := make(model.PhaseSet, 0, len(req.Phase))
	for _, raw := range req.Phase {
		p := model.Phase(raw)
		if !p.Valid() {
			return nil, ErrPhaseInvalid
		}
		if !phases.Contains(p) {
			phases = append(phases, p)
		}
	}
	if len(phases) == 0 {
		phases = model.PhaseSet{model.PhaseExecution}
	}

	alloc := &model.SprintAllocation{
		ProjectID:          req.ProjectID,
		SprintID:           req.SprintID,
		PlannedDescription: req.PlannedDescription,
		EngineersAssigned:  model.EngineerNames(req.EngineersAssigned),
		Phase:              phases,
		SprintGoal:         req.SprintGoal,
		IsManualOverride:   req.PlannedDays != nil,
	}
	if req.PlannedDays != nil {
		alloc.PlannedDays = *req.PlannedDays
	}
	if req.ActualDays != nil {
		alloc.ActualDays = *req.ActualDays
	}
	if req.NumEngineers != nil {
		alloc.NumEngineers = *req.NumEngineers
	}

	if err := s.repo.Allocation.Upsert(ctx, alloc); err != nil {
		s.logger.Error("upsert allocation failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.SprintID)
	if err != nil {
		s.logger.Error("reload allocation failed", zap.Error(err))
		return nil, err
	}
	return toAllocationResponse(stored), nil
}

// ────────────────────── Recalculate ──────────────────────

// Recalculate recomputes planned days from the sprint capacity formula for
// the requested engineer count and clears the manual override flag. This is
// the explicit companion to Upsert's manual set.
func (s *allocationService) Recalculate(ctx context.Context, req *dto.RecalculateAllocationRequest) (*dto.AllocationResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("get project failed", zap.String("id", req.ProjectID), zap.Error(err))
		return nil, err
	}
	sprint, err := s.repo.Sprint.GetByID(ctx, req.SprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", req.SprintID), zap.Error(err))
		return nil, err
	}

	planned, err := s.suggestedPlannedDays(ctx, project.TeamID, sprint, req.NumEngineers)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.SprintID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get allocation failed", zap.Error(err))
		return nil, err
	}

	alloc := &model.SprintAllocation{
		ProjectID:        req.ProjectID,
		SprintID:         req.SprintID,
		PlannedDays:      round2(planned),
		NumEngineers:     req.NumEngineers,
		Phase:            model.PhaseSet{model.PhaseExecution},
		IsManualOverride: false,
	}
	if existing != nil {
		alloc.ActualDays = existing.ActualDays
		alloc.PlannedDescription = existing.PlannedDescription
		alloc.EngineersAssigned = existing.EngineersAssigned
		alloc.Phase = existing.Phase
		alloc.SprintGoal = existing.SprintGoal
	}

	if err := s.repo.Allocation.Upsert(ctx, alloc); err != nil {
		s.logger.Error("recalculate allocation failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.SprintID)
	if err != nil {
		s.logger.Error("reload allocation failed", zap.Error(err))
		return nil, err
	}
	return toAllocationResponse(stored), nil
}

// suggestedPlannedDays runs the sprint capacity formula with the team's
// resolved planning parameters.
func (s *allocationService) suggestedPlannedDays(ctx context.Context, teamID string, sprint *model.Sprint, numEngineers float64) (float64, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTeamNotFound
		}
		return 0, err
	}
	quarter, err := s.repo.Quarter.GetByID(ctx, sprint.QuarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuarterNotFound
		}
		return 0, err
	}
	resolved, err := s.settings.Resolve(ctx, team, quarter)
	if err != nil {
		return 0, err
	}

	holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarter.ID)
	if err != nil {
		return 0, err
	}
	holidaySet := holidaySetOf(holidays)

	quarterWD := capacity.WorkingDays(quarter.StartDate, quarter.EndDate, holidaySet)
	sprintWD := capacity.WorkingDays(sprint.StartDate, sprint.EndDate, holidaySet)

	return capacity.SprintAllocationDays(
		numEngineers, sprintWD, quarterWD,
		resolved.PTODaysPerEngineer, resolved.MeetingTimePercentage,
	), nil
}

// ────────────────────── Move ──────────────────────

// Move relocates an allocation to another sprint. When the target pair
// already has a row the two merge: day figures sum, text fields keep the
// moved row's values, and the source row is removed.
func (s *allocationService) Move(ctx context.Context, req *dto.MoveAllocationRequest) (*dto.AllocationResponse, error) {
	if req.FromSprintID == req.ToSprintID {
		return nil, ErrSameSprint
	}
	if _, err := s.repo.Sprint.GetByID(ctx, req.ToSprintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", req.ToSprintID), zap.Error(err))
		return nil, err
	}

	source, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.FromSprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllocationNotFound
		}
		s.logger.Error("get allocation failed", zap.Error(err))
		return nil, err
	}

	target, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.ToSprintID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get allocation failed", zap.Error(err))
		return nil, err
	}

	merged := &model.SprintAllocation{
		ProjectID:          req.ProjectID,
		SprintID:           req.ToSprintID,
		PlannedDays:        source.PlannedDays,
		ActualDays:         source.ActualDays,
		PlannedDescription: source.PlannedDescription,
		EngineersAssigned:  source.EngineersAssigned,
		Phase:              source.Phase,
		SprintGoal:         source.SprintGoal,
		NumEngineers:       source.NumEngineers,
		IsManualOverride:   source.IsManualOverride,
	}
	if target != nil {
		merged.PlannedDays += target.PlannedDays
		merged.ActualDays += target.ActualDays
		merged.NumEngineers = math.Max(merged.NumEngineers, target.NumEngineers)
		merged.IsManualOverride = merged.IsManualOverride || target.IsManualOverride
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Allocation.Upsert(ctx, merged); err != nil {
		tx.Rollback()
		s.logger.Error("move allocation failed", zap.Error(err))
		return nil, err
	}
	if err := txRepo.Allocation.DeleteByProjectAndSprint(ctx, req.ProjectID, req.FromSprintID); err != nil {
		tx.Rollback()
		s.logger.Error("delete source allocation failed", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		s.logger.Error("commit move failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.Allocation.GetByProjectAndSprint(ctx, req.ProjectID, req.ToSprintID)
	if err != nil {
		s.logger.Error("reload allocation failed", zap.Error(err))
		return nil, err
	}
	return toAllocationResponse(stored), nil
}

// ────────────────────── Queries / Delete ──────────────────────

func (s *allocationService) ListByProject(ctx context.Context, projectID string) ([]dto.AllocationResponse, error) {
	allocs, err := s.repo.Allocation.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("list allocations failed", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}
	return toAllocationResponses(allocs), nil
}

func (s *allocationService) ListBySprint(ctx context.Context, sprintID string) ([]dto.AllocationResponse, error) {
	allocs, err := s.repo.Allocation.ListBySprint(ctx, sprintID)
	if err != nil {
		s.logger.Error("list allocations failed", zap.String("sprint_id", sprintID), zap.Error(err))
		return nil, err
	}
	return toAllocationResponses(allocs), nil
}

func (s *allocationService) Delete(ctx context.Context, projectID, sprintID string) error {
	if _, err := s.repo.Allocation.GetByProjectAndSprint(ctx, projectID, sprintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAllocationNotFound
		}
		s.logger.Error("get allocation failed", zap.Error(err))
		return err
	}
	if err := s.repo.Allocation.DeleteByProjectAndSprint(ctx, projectID, sprintID); err != nil {
		s.logger.Error("delete allocation failed", zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func holidaySetOf(holidays []model.Holiday) capacity.HolidaySet {
	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.HolidayDate)
	}
	return capacity.NewHolidaySet(dates)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toAllocationResponses(allocs []model.SprintAllocation) []dto.AllocationResponse {
	result := make([]dto.AllocationResponse, 0, len(allocs))
	for i := range allocs {
		result = append(result, *toAllocationResponse(&allocs[i]))
	}
	return result
}

func toAllocationResponse(alloc *model.SprintAllocation) *dto.AllocationResponse {
	phases := make([]string, len(alloc.Phase))
	for i, p := range alloc.Phase {
		phases[i] = string(p)
	}
	return &dto.AllocationResponse{
		ID:                 alloc.ID,
		ProjectID:          alloc.ProjectID,
		SprintID:           alloc.SprintID,
		PlannedDays:        alloc.PlannedDays,
		ActualDays:         alloc.ActualDays,
		PlannedDescription: alloc.PlannedDescription,
		EngineersAssigned:  alloc.EngineersAssigned,
		Phase:              phases,
		SprintGoal:         alloc.SprintGoal,
		NumEngineers:       alloc.NumEngineers,
		IsManualOverride:   alloc.IsManualOverride,
		CreatedAt:          alloc.CreatedAt.Format(timestampLayout),
		UpdatedAt:          alloc.UpdatedAt.Format(timestampLayout),
	}
}
