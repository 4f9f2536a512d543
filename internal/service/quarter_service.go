package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/capacity"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Quarter business errors ──

var (
	ErrQuarterNotFound    = errors.New("quarter not found")
	ErrQuarterDateInvalid = errors.New("quarter end date must not be before start date")
	ErrYearRangeInvalid   = errors.New("end year must not be before start year")
)

// QuarterService manages fiscal quarters, including the yearly initializer
// that seeds calendar quarters and their federal holidays.
type QuarterService interface {
	Create(ctx context.Context, req *dto.CreateQuarterRequest) (*dto.QuarterResponse, error)
	GetByID(ctx context.Context, id string) (*dto.QuarterResponse, error)
	List(ctx context.Context) ([]dto.QuarterResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateQuarterRequest) (*dto.QuarterResponse, error)
	Delete(ctx context.Context, id string) error
	InitYears(ctx context.Context, req *dto.InitQuartersRequest) (*dto.InitQuartersResponse, error)
}

type quarterService struct {
	repo     *repository.Repository
	defaults PlanningDefaults
	logger   *zap.Logger
}

// NewQuarterService creates a QuarterService.
func NewQuarterService(repo *repository.Repository, defaults PlanningDefaults, logger *zap.Logger) QuarterService {
	return &quarterService{repo: repo, defaults: defaults, logger: logger}
}

func (s *quarterService) Create(ctx context.Context, req *dto.CreateQuarterRequest) (*dto.QuarterResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrQuarterDateInvalid
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrQuarterDateInvalid
	}
	if endDate.Before(startDate) {
		return nil, ErrQuarterDateInvalid
	}

	quarter := &model.Quarter{
		ID:                    uuid.NewString(),
		Name:                  req.Name,
		StartDate:             startDate,
		EndDate:               endDate,
		MeetingTimePercentage: s.defaults.MeetingTimePercentage,
		WorkDaysPerWeek:       s.defaults.WorkDaysPerWeek,
	}
	if req.ID != nil && *req.ID != "" {
		quarter.ID = *req.ID
	}
	if req.MeetingTimePercentage != nil {
		quarter.MeetingTimePercentage = *req.MeetingTimePercentage
	}
	if req.WorkDaysPerWeek != nil {
		quarter.WorkDaysPerWeek = *req.WorkDaysPerWeek
	}

	if err := s.repo.Quarter.Create(ctx, quarter); err != nil {
		s.logger.Error("create quarter failed", zap.Error(err))
		return nil, err
	}

	return toQuarterResponse(quarter), nil
}

func (s *quarterService) GetByID(ctx context.Context, id string) (*dto.QuarterResponse, error) {
	quarter, err := s.repo.Quarter.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toQuarterResponse(quarter), nil
}

func (s *quarterService) List(ctx context.Context) ([]dto.QuarterResponse, error) {
	quarters, err := s.repo.Quarter.List(ctx)
	if err != nil {
		s.logger.Error("list quarters failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.QuarterResponse, 0, len(quarters))
	for i := range quarters {
		result = append(result, *toQuarterResponse(&quarters[i]))
	}
	return result, nil
}

func (s *quarterService) Update(ctx context.Context, id string, req *dto.UpdateQuarterRequest) (*dto.QuarterResponse, error) {
	quarter, err := s.repo.Quarter.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		quarter.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrQuarterDateInvalid
		}
		quarter.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrQuarterDateInvalid
		}
		quarter.EndDate = endDate
	}
	if quarter.EndDate.Before(quarter.StartDate) {
		return nil, ErrQuarterDateInvalid
	}
	if req.MeetingTimePercentage != nil {
		quarter.MeetingTimePercentage = *req.MeetingTimePercentage
	}
	if req.WorkDaysPerWeek != nil {
		quarter.WorkDaysPerWeek = *req.WorkDaysPerWeek
	}

	if err := s.repo.Quarter.Update(ctx, quarter); err != nil {
		s.logger.Error("update quarter failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toQuarterResponse(quarter), nil
}

func (s *quarterService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Quarter.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Quarter.Delete(ctx, id); err != nil {
		s.logger.Error("delete quarter failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── InitYears ──────────────────────

// InitYears seeds calendar quarters ("q1-2026" .. "q4-2026") for each year
// in the range, plus the federal holidays falling inside each newly created
// quarter. Existing quarters are skipped untouched, so reruns are safe.
func (s *quarterService) InitYears(ctx context.Context, req *dto.InitQuartersRequest) (*dto.InitQuartersResponse, error) {
	if req.EndYear < req.StartYear {
		return nil, ErrYearRangeInvalid
	}

	resp := &dto.InitQuartersResponse{QuartersSkipped: []string{}}

	for year := req.StartYear; year <= req.EndYear; year++ {
		for _, quarter := range calendarQuarters(year) {
			quarter := quarter // per-iteration copy; &quarter escapes into the repository
			quarter.MeetingTimePercentage = s.defaults.MeetingTimePercentage
			quarter.WorkDaysPerWeek = s.defaults.WorkDaysPerWeek
			created, err := s.repo.Quarter.CreateIfAbsent(ctx, &quarter)
			if err != nil {
				s.logger.Error("seed quarter failed", zap.String("id", quarter.ID), zap.Error(err))
				return nil, err
			}
			if !created {
				resp.QuartersSkipped = append(resp.QuartersSkipped, quarter.ID)
				continue
			}
			resp.QuartersCreated++

			holidays := capacity.HolidaysInRange(quarter.StartDate, quarter.EndDate)
			rows := make([]model.Holiday, 0, len(holidays))
			for _, h := range holidays {
				name := h.Name
				rows = append(rows, model.Holiday{
					QuarterID:   quarter.ID,
					HolidayDate: h.Date,
					Description: &name,
				})
			}
			if err := s.repo.Holiday.CreateBatch(ctx, rows); err != nil {
				s.logger.Error("seed holidays failed", zap.String("quarter_id", quarter.ID), zap.Error(err))
				return nil, err
			}
			resp.HolidaysCreated += len(rows)
		}
	}

	s.logger.Info("quarters initialized",
		zap.Int("start_year", req.StartYear),
		zap.Int("end_year", req.EndYear),
		zap.Int("created", resp.QuartersCreated),
		zap.Int("holidays", resp.HolidaysCreated),
	)
	return resp, nil
}

// calendarQuarters returns the four calendar quarters of a year with the
// "q<n>-<year>" ID convention.
func calendarQuarters(year int) []model.Quarter {
	quarters := make([]model.Quarter, 0, 4)
	for q := 1; q <= 4; q++ {
		startMonth := time.Month((q-1)*3 + 1)
		start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		quarters = append(quarters, model.Quarter{
			ID:        fmt.Sprintf("q%d-%d", q, year),
			Name:      fmt.Sprintf("Q%d %d", q, year),
			StartDate: start,
			EndDate:   end,
		})
	}
	return quarters
}

func toQuarterResponse(quarter *model.Quarter) *dto.QuarterResponse {
	return &dto.QuarterResponse{
		ID:                    quarter.ID,
		Name:                  quarter.Name,
		StartDate:             quarter.StartDate.Format(dateLayout),
		EndDate:               quarter.EndDate.Format(dateLayout),
		MeetingTimePercentage: quarter.MeetingTimePercentage,
		WorkDaysPerWeek:       quarter.WorkDaysPerWeek,
		CreatedAt:             quarter.CreatedAt.Format(timestampLayout),
		UpdatedAt:             quarter.UpdatedAt.Format(timestampLayout),
	}
}
