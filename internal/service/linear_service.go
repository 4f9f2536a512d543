package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/linear"
)

// LinearClient is the slice of the Linear API the services consume. The
// concrete implementation lives in internal/linear; tests substitute a fake.
type LinearClient interface {
	Teams(ctx context.Context) ([]linear.Team, error)
	TeamProjects(ctx context.Context, teamID string) ([]linear.Project, error)
	TeamCycles(ctx context.Context, teamID string) ([]linear.Cycle, error)
	Project(ctx context.Context, projectID string) (*linear.Project, error)
	Issue(ctx context.Context, issueID string) (*linear.Issue, error)
	CycleIssues(ctx context.Context, cycleID string) ([]linear.Issue, error)
	IssueHistory(ctx context.Context, issueID string) ([]linear.HistoryEntry, error)
	UpdateProject(ctx context.Context, projectID string, input linear.ProjectUpdateInput) error
	CreateProjectUpdate(ctx context.Context, projectID, body string) error
}

// ── Linear business errors ──

var (
	ErrLinearFieldInvalid = errors.New("unsupported linear field")
)

// LinearService exposes Linear reads and the project-field writebacks.
type LinearService interface {
	Teams(ctx context.Context) ([]linear.Team, error)
	TeamProjects(ctx context.Context, teamID string) ([]linear.Project, error)
	TeamCycles(ctx context.Context, teamID string) ([]linear.Cycle, error)
	Issue(ctx context.Context, issueID string) (*linear.Issue, error)
	ProjectsBulk(ctx context.Context, req *dto.BulkProjectsRequest) (map[string]dto.LinearProjectDetail, error)
	UpdateProjectDates(ctx context.Context, req *dto.UpdateProjectDatesRequest) error
	UpdateProjectField(ctx context.Context, req *dto.UpdateProjectFieldRequest) error
}

type linearService struct {
	client LinearClient
	logger *zap.Logger
}

// NewLinearService creates a LinearService.
func NewLinearService(client LinearClient, logger *zap.Logger) LinearService {
	return &linearService{client: client, logger: logger}
}

func (s *linearService) Teams(ctx context.Context) ([]linear.Team, error) {
	return s.client.Teams(ctx)
}

func (s *linearService) TeamProjects(ctx context.Context, teamID string) ([]linear.Project, error) {
	return s.client.TeamProjects(ctx, teamID)
}

func (s *linearService) TeamCycles(ctx context.Context, teamID string) ([]linear.Cycle, error) {
	return s.client.TeamCycles(ctx, teamID)
}

func (s *linearService) Issue(ctx context.Context, issueID string) (*linear.Issue, error) {
	return s.client.Issue(ctx, issueID)
}

// bulkProjectConcurrency bounds the parallel project fetches of a bulk
// refresh against the Linear API.
const bulkProjectConcurrency = 5

// ProjectsBulk refreshes many projects by ID in one call, returning a map
// keyed by project ID. A single project's fetch failure drops that project
// from the result, logged but never fatal; callers fall back to their
// cached copy.
func (s *linearService) ProjectsBulk(ctx context.Context, req *dto.BulkProjectsRequest) (map[string]dto.LinearProjectDetail, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]dto.LinearProjectDetail, len(req.ProjectIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkProjectConcurrency)

	for _, id := range req.ProjectIDs {
		projectID := id
		g.Go(func() error {
			project, err := s.client.Project(gctx, projectID)
			if err != nil {
				if errors.Is(err, linear.ErrNotConfigured) {
					return err
				}
				s.logger.Warn("bulk project fetch failed",
					zap.String("project_id", projectID), zap.Error(err))
				return nil
			}
			mu.Lock()
			result[project.ID] = toLinearProjectDetail(project)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func toLinearProjectDetail(p *linear.Project) dto.LinearProjectDetail {
	detail := dto.LinearProjectDetail{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		State:         p.State,
		Priority:      p.Priority,
		PriorityLabel: linear.PriorityLabel(p.Priority),
		Progress:      p.Progress,
		URL:           p.URL,
		StartDate:     p.StartDate,
		TargetDate:    p.TargetDate,
	}
	if p.Lead != nil {
		detail.Lead = &dto.LinearUserInfo{ID: p.Lead.ID, Name: p.Lead.Name, Email: p.Lead.Email}
	}
	return detail
}

// UpdateProjectDates writes start/target dates and posts the audit comment
// to the project's update feed. A comment failure is logged, not surfaced:
// the field write already landed.
func (s *linearService) UpdateProjectDates(ctx context.Context, req *dto.UpdateProjectDatesRequest) error {
	input := linear.ProjectUpdateInput{
		StartDate:  req.StartDate,
		TargetDate: req.TargetDate,
	}
	if err := s.client.UpdateProject(ctx, req.LinearProjectID, input); err != nil {
		s.logger.Error("linear project date update failed",
			zap.String("project_id", req.LinearProjectID), zap.Error(err))
		return err
	}

	s.postAudit(ctx, req.LinearProjectID, req.Comment, func() string {
		var parts []string
		if req.StartDate != nil {
			parts = append(parts, "start date to "+*req.StartDate)
		}
		if req.TargetDate != nil {
			parts = append(parts, "target date to "+*req.TargetDate)
		}
		return "Updated " + strings.Join(parts, " and ") + " from the planning dashboard."
	})
	return nil
}

// UpdateProjectField writes one project field.
func (s *linearService) UpdateProjectField(ctx context.Context, req *dto.UpdateProjectFieldRequest) error {
	var input linear.ProjectUpdateInput
	switch req.Field {
	case "start_date":
		input.StartDate = &req.Value
	case "target_date":
		input.TargetDate = &req.Value
	case "state":
		input.State = &req.Value
	case "priority":
		priority, err := strconv.Atoi(req.Value)
		if err != nil || priority < 0 || priority > 4 {
			return fmt.Errorf("%w: priority must be 0-4", ErrLinearFieldInvalid)
		}
		input.Priority = &priority
	default:
		return ErrLinearFieldInvalid
	}

	if err := s.client.UpdateProject(ctx, req.LinearProjectID, input); err != nil {
		s.logger.Error("linear project field update failed",
			zap.String("project_id", req.LinearProjectID),
			zap.String("field", req.Field), zap.Error(err))
		return err
	}

	s.postAudit(ctx, req.LinearProjectID, req.Comment, func() string {
		return fmt.Sprintf("Updated %s to %q from the planning dashboard.", req.Field, req.Value)
	})
	return nil
}

func (s *linearService) postAudit(ctx context.Context, projectID string, comment *string, fallback func() string) {
	body := fallback()
	if comment != nil && *comment != "" {
		body = *comment
	}
	if err := s.client.CreateProjectUpdate(ctx, projectID, body); err != nil {
		s.logger.Warn("linear audit comment failed",
			zap.String("project_id", projectID), zap.Error(err))
	}
}
