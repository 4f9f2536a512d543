package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Project business errors ──

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAlreadyInPlan = errors.New("project already imported into this quarter")
)

// ProjectService manages the locally planned rows backed by Linear projects.
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error)
	ListByQuarter(ctx context.Context, quarterID string, teamID string) ([]dto.ProjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *dto.ReorderProjectsRequest) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
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

	// Same Linear project twice in one quarter is a conflict; in different
	// quarters it is a normal re-import.
	if _, err := s.repo.Project.GetByLinearProjectAndQuarter(ctx, req.LinearProjectID, req.QuarterID); err == nil {
		return nil, ErrProjectAlreadyInPlan
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check project failed", zap.Error(err))
		return nil, err
	}

	maxOrder, err := s.repo.Project.MaxDisplayOrder(ctx, req.QuarterID)
	if err != nil {
		s.logger.Error("max display order failed", zap.Error(err))
		return nil, err
	}

	project := &model.Project{
		ID:                 uuid.NewString(),
		LinearProjectID:    req.LinearProjectID,
		TeamID:             req.TeamID,
		QuarterID:          req.QuarterID,
		PlannedWeeks:       req.PlannedWeeks,
		HasRequirementsDoc: req.HasRequirementsDoc,
		Notes:              req.Notes,
		Dependencies:       req.Dependencies,
		DisplayOrder:       maxOrder + 1,
	}
	if req.InternalTimeline != nil {
		timeline, err := parseDate(*req.InternalTimeline)
		if err != nil {
			return nil, err
		}
		project.InternalTimeline = &timeline
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("create project failed", zap.Error(err))
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("get project failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProjectResponse(project), nil
}

func (s *projectService) ListByQuarter(ctx context.Context, quarterID string, teamID string) ([]dto.ProjectResponse, error) {
	var (
		projects []model.Project
		err      error
	)
	if teamID != "" {
		projects, err = s.repo.Project.ListByTeamAndQuarter(ctx, teamID, quarterID)
	} else {
		projects, err = s.repo.Project.ListByQuarter(ctx, quarterID)
	}
	if err != nil {
		s.logger.Error("list projects failed", zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *toProjectResponse(&projects[i]))
	}
	return result, nil
}

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("get project failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.PlannedWeeks != nil {
		project.PlannedWeeks = *req.PlannedWeeks
	}
	if req.InternalTimeline != nil {
		if *req.InternalTimeline == "" {
			project.InternalTimeline = nil
		} else {
			timeline, err := parseDate(*req.InternalTimeline)
			if err != nil {
				return nil, err
			}
			project.InternalTimeline = &timeline
		}
	}
	if req.HasRequirementsDoc != nil {
		project.HasRequirementsDoc = *req.HasRequirementsDoc
	}
	if req.Notes != nil {
		project.Notes = req.Notes
	}
	if req.Dependencies != nil {
		project.Dependencies = req.Dependencies
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("update project failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Project.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("get project failed", zap.String("id", id), zap.Error(err))
		return err
	}

	// Allocations go first; the project row owns them.
	if err := s.repo.Allocation.DeleteByProject(ctx, id); err != nil {
		s.logger.Error("delete project allocations failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Project.Delete(ctx, id); err != nil {
		s.logger.Error("delete project failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Reorder writes display order as each ID's position in the list. Updates
// run sequentially without a transaction; a partial failure leaves a mixed
// order recoverable by re-issuing the reorder.
func (s *projectService) Reorder(ctx context.Context, req *dto.ReorderProjectsRequest) error {
	for _, id := range req.ProjectIDs {
		if _, err := s.repo.Project.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			s.logger.Error("get project failed", zap.String("id", id), zap.Error(err))
			return err
		}
	}
	for i, id := range req.ProjectIDs {
		if err := s.repo.Project.UpdateDisplayOrder(ctx, id, i+1); err != nil {
			s.logger.Error("reorder project failed",
				zap.String("id", id), zap.Int("position", i+1), zap.Error(err))
			return err
		}
	}
	return nil
}

func toProjectResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:                 project.ID,
		LinearProjectID:    project.LinearProjectID,
		TeamID:             project.TeamID,
		QuarterID:          project.QuarterID,
		PlannedWeeks:       project.PlannedWeeks,
		HasRequirementsDoc: project.HasRequirementsDoc,
		Notes:              project.Notes,
		Dependencies:       project.Dependencies,
		DisplayOrder:       project.DisplayOrder,
		CreatedAt:          project.CreatedAt.Format(timestampLayout),
		UpdatedAt:          project.UpdatedAt.Format(timestampLayout),
	}
	if project.InternalTimeline != nil {
		formatted := project.InternalTimeline.Format(dateLayout)
		resp.InternalTimeline = &formatted
	}
	return resp
}
