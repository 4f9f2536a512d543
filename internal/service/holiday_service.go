package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/capacity"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Holiday business errors ──

var (
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrHolidayDateInvalid = errors.New("invalid holiday date")
)

// HolidayService manages per-quarter holidays.
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	ListByQuarter(ctx context.Context, quarterID string) ([]dto.HolidayResponse, error)
	Delete(ctx context.Context, id int64) error
	AutoPopulate(ctx context.Context, req *dto.AutoPopulateHolidaysRequest) (*dto.AutoPopulateHolidaysResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService creates a HolidayService.
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	if _, err := s.repo.Quarter.GetByID(ctx, req.QuarterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", req.QuarterID), zap.Error(err))
		return nil, err
	}

	date, err := parseDate(req.HolidayDate)
	if err != nil {
		return nil, ErrHolidayDateInvalid
	}

	holiday := &model.Holiday{
		QuarterID:   req.QuarterID,
		HolidayDate: date,
		Description: req.Description,
	}
	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *holidayService) ListByQuarter(ctx context.Context, quarterID string) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list holidays failed", zap.String("quarter_id", quarterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("get holiday failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("delete holiday failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// AutoPopulate seeds a quarter's holidays from the federal holiday
// generator, skipping dates the quarter already has.
func (s *holidayService) AutoPopulate(ctx context.Context, req *dto.AutoPopulateHolidaysRequest) (*dto.AutoPopulateHolidaysResponse, error) {
	quarter, err := s.repo.Quarter.GetByID(ctx, req.QuarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", req.QuarterID), zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.Holiday.ListByQuarter(ctx, quarter.ID)
	if err != nil {
		s.logger.Error("list holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
		return nil, err
	}
	existingDates := make(capacity.HolidaySet, len(existing))
	for _, h := range existing {
		existingDates[capacity.Day(h.HolidayDate)] = struct{}{}
	}

	var rows []model.Holiday
	for _, h := range capacity.HolidaysInRange(quarter.StartDate, quarter.EndDate) {
		if existingDates.Contains(h.Date) {
			continue
		}
		name := h.Name
		rows = append(rows, model.Holiday{
			QuarterID:   quarter.ID,
			HolidayDate: h.Date,
			Description: &name,
		})
	}

	if err := s.repo.Holiday.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("auto-populate holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
		return nil, err
	}

	return &dto.AutoPopulateHolidaysResponse{HolidaysCreated: len(rows)}, nil
}

func toHolidayResponse(holiday *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:          holiday.ID,
		QuarterID:   holiday.QuarterID,
		HolidayDate: holiday.HolidayDate.Format(dateLayout),
		Description: holiday.Description,
	}
}
