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

// ── Team business errors ──

var (
	ErrTeamNotFound = errors.New("team not found")
)

// TeamService manages engineering teams.
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeamResponse, error)
	List(ctx context.Context) ([]dto.TeamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	repo     *repository.Repository
	defaults PlanningDefaults
	logger   *zap.Logger
}

// NewTeamService creates a TeamService.
func NewTeamService(repo *repository.Repository, defaults PlanningDefaults, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, defaults: defaults, logger: logger}
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	team := &model.Team{
		Name:               req.Name,
		LinearTeamID:       req.LinearTeamID,
		TotalEngineers:     req.TotalEngineers,
		KTLOEngineers:      req.KTLOEngineers,
		PTODaysPerEngineer: s.defaults.PTODaysPerEngineer,
	}
	if req.PTODaysPerEngineer != nil {
		team.PTODaysPerEngineer = *req.PTODaysPerEngineer
	}

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("create team failed", zap.Error(err))
		return nil, err
	}

	return toTeamResponse(team), nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		s.logger.Error("list teams failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, *toTeamResponse(&teams[i]))
	}
	return result, nil
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.LinearTeamID != nil {
		team.LinearTeamID = req.LinearTeamID
	}
	if req.TotalEngineers != nil {
		team.TotalEngineers = *req.TotalEngineers
	}
	if req.KTLOEngineers != nil {
		team.KTLOEngineers = *req.KTLOEngineers
	}
	if req.PTODaysPerEngineer != nil {
		team.PTODaysPerEngineer = *req.PTODaysPerEngineer
	}

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("update team failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTeamResponse(team), nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Team.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Team.Delete(ctx, id); err != nil {
		s.logger.Error("delete team failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toTeamResponse(team *model.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:                 team.ID,
		Name:               team.Name,
		LinearTeamID:       team.LinearTeamID,
		TotalEngineers:     team.TotalEngineers,
		KTLOEngineers:      team.KTLOEngineers,
		RoadmapEngineers:   team.RoadmapEngineers(),
		PTODaysPerEngineer: team.PTODaysPerEngineer,
		CreatedAt:          team.CreatedAt.Format(timestampLayout),
		UpdatedAt:          team.UpdatedAt.Format(timestampLayout),
	}
}
