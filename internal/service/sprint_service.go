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

// ── Sprint business errors ──

var (
	ErrSprintNotFound    = errors.New("sprint not found")
	ErrSprintDateInvalid = errors.New("sprint end date must not be before start date")
)

// SprintService manages sprints within quarters.
type SprintService interface {
	Create(ctx context.Context, req *dto.CreateSprintRequest) (*dto.SprintResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SprintResponse, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]dto.SprintResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSprintRequest) (*dto.SprintResponse, error)
	Delete(ctx context.Context, id string) error
}

type sprintService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSprintService creates a SprintService.
func NewSprintService(repo *repository.Repository, logger *zap.Logger) SprintService {
	return &sprintService{repo: repo, logger: logger}
}

func (s *sprintService) Create(ctx context.Context, req *dto.CreateSprintRequest) (*dto.SprintResponse, error) {
	if _, err := s.repo.Quarter.GetByID(ctx, req.QuarterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", req.QuarterID), zap.Error(err))
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrSprintDateInvalid
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrSprintDateInvalid
	}
	if endDate.Before(startDate) {
		return nil, ErrSprintDateInvalid
	}

	sprint := &model.Sprint{
		ID:           uuid.NewString(),
		QuarterID:    req.QuarterID,
		Name:         req.Name,
		StartDate:    startDate,
		EndDate:      endDate,
		SprintNumber: req.SprintNumber,
	}
	if err := s.repo.Sprint.Create(ctx, sprint); err != nil {
		s.logger.Error("create sprint failed", zap.Error(err))
		return nil, err
	}

	return toSprintResponse(sprint), nil
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*dto.SprintResponse, error) {
	sprint, err := s.repo.Sprint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSprintResponse(sprint), nil
}

func (s *sprintService) ListByQuarter(ctx context.Context, quarterID string) ([]dto.SprintResponse, error) {
	sprints, err := s.repo.Sprint.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list sprints failed", zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SprintResponse, 0, len(sprints))
	for i := range sprints {
		result = append(result, *toSprintResponse(&sprints[i]))
	}
	return result, nil
}

func (s *sprintService) Update(ctx context.Context, id string, req *dto.UpdateSprintRequest) (*dto.SprintResponse, error) {
	sprint, err := s.repo.Sprint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		sprint.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrSprintDateInvalid
		}
		sprint.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrSprintDateInvalid
		}
		sprint.EndDate = endDate
	}
	if sprint.EndDate.Before(sprint.StartDate) {
		return nil, ErrSprintDateInvalid
	}
	if req.SprintNumber != nil {
		sprint.SprintNumber = *req.SprintNumber
	}

	if err := s.repo.Sprint.Update(ctx, sprint); err != nil {
		s.logger.Error("update sprint failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSprintResponse(sprint), nil
}

func (s *sprintService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Sprint.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSprintNotFound
		}
		s.logger.Error("get sprint failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Sprint.Delete(ctx, id); err != nil {
		s.logger.Error("delete sprint failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toSprintResponse(sprint *model.Sprint) *dto.SprintResponse {
	return &dto.SprintResponse{
		ID:           sprint.ID,
		QuarterID:    sprint.QuarterID,
		Name:         sprint.Name,
		StartDate:    sprint.StartDate.Format(dateLayout),
		EndDate:      sprint.EndDate.Format(dateLayout),
		SprintNumber: sprint.SprintNumber,
		CreatedAt:    sprint.CreatedAt.Format(timestampLayout),
	}
}
