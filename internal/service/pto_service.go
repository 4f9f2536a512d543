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

// ── PTO business errors ──

var (
	ErrPTONotFound    = errors.New("pto entry not found")
	ErrPTODateInvalid = errors.New("pto end date must not be before start date")
)

// PTOService manages planned time off entries.
type PTOService interface {
	Create(ctx context.Context, req *dto.CreatePTORequest) (*dto.PTOResponse, error)
	ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]dto.PTOResponse, error)
	Delete(ctx context.Context, id int64) error
}

type ptoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPTOService creates a PTOService.
func NewPTOService(repo *repository.Repository, logger *zap.Logger) PTOService {
	return &ptoService{repo: repo, logger: logger}
}

func (s *ptoService) Create(ctx context.Context, req *dto.CreatePTORequest) (*dto.PTOResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("get team failed", zap.String("id", req.TeamID), zap.Error(err))
		return nil, err
	}
	quarter, err := s.repo.Quarter.GetByID(ctx, req.QuarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", req.QuarterID), zap.Error(err))
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrPTODateInvalid
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrPTODateInvalid
	}
	if endDate.Before(startDate) {
		return nil, ErrPTODateInvalid
	}

	daysCount := 0.0
	if req.DaysCount != nil {
		daysCount = *req.DaysCount
	} else {
		// Derive from business days in the range, against the quarter's
		// holiday calendar.
		holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarter.ID)
		if err != nil {
			s.logger.Error("list holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
			return nil, err
		}
		dates := make([]time.Time, 0, len(holidays))
		for _, h := range holidays {
			dates = append(dates, h.HolidayDate)
		}
		daysCount = float64(capacity.WorkingDays(startDate, endDate, capacity.NewHolidaySet(dates)))
	}

	entry := &model.PTOEntry{
		TeamID:       req.TeamID,
		QuarterID:    req.QuarterID,
		EngineerName: req.EngineerName,
		StartDate:    startDate,
		EndDate:      endDate,
		DaysCount:    daysCount,
		Notes:        req.Notes,
	}
	if err := s.repo.PTO.Create(ctx, entry); err != nil {
		s.logger.Error("create pto entry failed", zap.Error(err))
		return nil, err
	}

	return toPTOResponse(entry), nil
}

func (s *ptoService) ListByTeamAndQuarter(ctx context.Context, teamID, quarterID string) ([]dto.PTOResponse, error) {
	entries, err := s.repo.PTO.ListByTeamAndQuarter(ctx, teamID, quarterID)
	if err != nil {
		s.logger.Error("list pto entries failed",
			zap.String("team_id", teamID), zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PTOResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toPTOResponse(&entries[i]))
	}
	return result, nil
}

func (s *ptoService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.PTO.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPTONotFound
		}
		s.logger.Error("get pto entry failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.PTO.Delete(ctx, id); err != nil {
		s.logger.Error("delete pto entry failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toPTOResponse(entry *model.PTOEntry) *dto.PTOResponse {
	return &dto.PTOResponse{
		ID:           entry.ID,
		TeamID:       entry.TeamID,
		QuarterID:    entry.QuarterID,
		EngineerName: entry.EngineerName,
		StartDate:    entry.StartDate.Format(dateLayout),
		EndDate:      entry.EndDate.Format(dateLayout),
		DaysCount:    entry.DaysCount,
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt.Format(timestampLayout),
	}
}
