package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/capacity"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/linear"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Sync business errors ──

var (
	ErrTeamNotLinked = errors.New("team has no linear team configured")
)

// historyFetchConcurrency bounds the parallel issue-history fetches against
// the Linear API. Linear rate-limits aggressively above this.
const historyFetchConcurrency = 5

// SyncService derives actual engineer-days from Linear issue status history
// and writes them into sprint allocations.
type SyncService interface {
	SyncActuals(ctx context.Context, sprintID string, req *dto.SyncActualsRequest) (*dto.SyncActualsResponse, error)
}

type syncService struct {
	repo        *repository.Repository
	client      LinearClient
	settings    SettingsService
	activeState string
	logger      *zap.Logger
	now         func() time.Time
}

// NewSyncService creates a SyncService. activeState is the workflow state
// counted as actively worked, normally "In Progress".
func NewSyncService(repo *repository.Repository, client LinearClient, settings SettingsService, activeState string, logger *zap.Logger) SyncService {
	return &syncService{
		repo:        repo,
		client:      client,
		settings:    settings,
		activeState: activeState,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncActuals implements the distribution pipeline: match the sprint to a
// Linear cycle, fetch the cycle's issues with their status histories, split
// each assignee's daily budget across concurrently active issues, normalize
// by the focus factor, aggregate per Linear project and upsert into the
// matching local allocations. Per-issue failures are skipped and counted,
// never fatal; a sprint with no matching cycle reports matched=false.
func (s *syncService) SyncActuals(ctx context.Context, sprintID string, req *dto.SyncActualsRequest) (*dto.SyncActualsResponse, error) {
	sprint, err := s.repo.Sprint.GetByID(ctx, sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", sprintID), zap.Error(err))
		return nil, err
	}
	team, err := s.repo.Team.GetByID(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", req.TeamID), zap.Error(err))
		return nil, err
	}
	if team.LinearTeamID == nil || *team.LinearTeamID == "" {
		return nil, ErrTeamNotLinked
	}
	quarter, err := s.repo.Quarter.GetByID(ctx, sprint.QuarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", sprint.QuarterID), zap.Error(err))
		return nil, err
	}

	resp := &dto.SyncActualsResponse{SprintID: sprint.ID}

	cycles, err := s.client.TeamCycles(ctx, *team.LinearTeamID)
	if err != nil {
		s.logger.Error("list cycles failed", zap.Error(err))
		return nil, err
	}
	cycle := matchCycle(cycles, sprint)
	if cycle == nil {
		resp.Message = "no linear cycle matches this sprint; nothing synced"
		s.logger.Info("sync skipped, no cycle match",
			zap.String("sprint_id", sprint.ID), zap.String("sprint_name", sprint.Name))
		return resp, nil
	}
	resp.Matched = true
	resp.CycleID = &cycle.ID
	resp.CycleName = &cycle.Name

	issues, err := s.client.CycleIssues(ctx, cycle.ID)
	if err != nil {
		s.logger.Error("list cycle issues failed", zap.String("cycle_id", cycle.ID), zap.Error(err))
		return nil, err
	}

	timelines, failed := s.buildTimelines(ctx, issues)
	resp.IssuesProcessed = len(timelines)
	resp.IssuesFailed = failed

	holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarter.ID)
	if err != nil {
		s.logger.Error("list holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
		return nil, err
	}
	businessDays := capacity.BusinessDays(sprint.StartDate, sprint.EndDate, holidaySetOf(holidays))

	resolved, err := s.settings.Resolve(ctx, team, quarter)
	if err != nil {
		return nil, err
	}
	focus := 1 - resolved.MeetingTimePercentage

	actualByIssue := capacity.DistributeDays(timelines, businessDays, focus)
	actualByProject := capacity.SumByProject(actualByIssue, timelines)

	for linearProjectID, days := range actualByProject {
		project, err := s.repo.Project.GetByLinearProjectAndQuarter(ctx, linearProjectID, quarter.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Issues from projects not imported into this quarter's plan
				// are ignored.
				continue
			}
			s.logger.Error("get project failed", zap.String("linear_project_id", linearProjectID), zap.Error(err))
			return nil, err
		}

		rounded := round2(days)
		alloc := &model.SprintAllocation{
			ProjectID:  project.ID,
			SprintID:   sprint.ID,
			ActualDays: rounded,
			Phase:      model.PhaseSet{model.PhaseExecution},
		}
		if err := s.repo.Allocation.UpsertActuals(ctx, alloc); err != nil {
			s.logger.Error("upsert actuals failed",
				zap.String("project_id", project.ID), zap.String("sprint_id", sprint.ID), zap.Error(err))
			return nil, err
		}
		resp.ProjectsUpdated++
		resp.TotalActualDays += rounded
	}

	s.logger.Info("actuals synced",
		zap.String("sprint_id", sprint.ID),
		zap.String("cycle", cycle.Name),
		zap.Int("issues", resp.IssuesProcessed),
		zap.Int("failed", resp.IssuesFailed),
		zap.Int("projects", resp.ProjectsUpdated),
	)
	return resp, nil
}

// buildTimelines fetches each issue's status history in parallel and derives
// its active periods. A failed history fetch drops that issue and bumps the
// failure count; the rest proceed.
func (s *syncService) buildTimelines(ctx context.Context, issues []linear.Issue) ([]capacity.IssueTimeline, int) {
	var (
		mu        sync.Mutex
		timelines []capacity.IssueTimeline
		failed    int
	)
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFetchConcurrency)

	for i := range issues {
		issue := issues[i]
		g.Go(func() error {
			history, err := s.client.IssueHistory(gctx, issue.ID)
			if err != nil {
				s.logger.Warn("issue history fetch failed",
					zap.String("issue", issue.Identifier), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			var transitions []capacity.StatusTransition
			for _, entry := range history {
				if entry.ToState == nil {
					continue
				}
				transitions = append(transitions, capacity.StatusTransition{
					State: entry.ToState.Name,
					At:    entry.CreatedAt,
				})
			}

			tl := capacity.IssueTimeline{
				IssueID:    issue.ID,
				Identifier: issue.Identifier,
				Periods:    capacity.ActivePeriods(transitions, s.activeState, now),
			}
			if issue.Assignee != nil {
				tl.AssigneeID = issue.Assignee.ID
			}
			if issue.Project != nil {
				tl.ProjectID = issue.Project.ID
			}

			mu.Lock()
			timelines = append(timelines, tl)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("history fetch group failed", zap.Error(err))
	}

	return timelines, failed
}

// matchCycle finds the Linear cycle for a sprint: exact name match first,
// then by number ("Sprint 14" matches cycle number 14).
func matchCycle(cycles []linear.Cycle, sprint *model.Sprint) *linear.Cycle {
	for i := range cycles {
		if cycles[i].Name == sprint.Name {
			return &cycles[i]
		}
	}
	if n, ok := firstNumber(sprint.Name); ok {
		for i := range cycles {
			if cycles[i].Number == n {
				return &cycles[i]
			}
		}
	}
	return nil
}

// firstNumber extracts the first run of digits from a sprint name, so
// "Sprint 14" and "Cycle 12 (carryover)" both yield their number.
func firstNumber(name string) (int, bool) {
	start := strings.IndexFunc(name, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
