package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Export business errors ──

var (
	ErrExportNoSprints = errors.New("quarter has no sprints to export")
)

// ExportService renders the plan to downloadable formats: the allocation
// grid as .xlsx and the quarter calendar (sprints + holidays) as .ics.
// Both return a buffer plus a suggested filename; handlers set the HTTP
// headers and stream the bytes.
type ExportService interface {
	ExportPlan(ctx context.Context, teamID, quarterID string) (*bytes.Buffer, string, error)
	ExportCalendar(ctx context.Context, quarterID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	capacity CapacityService
	logger   *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, capacity CapacityService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, capacity: capacity, logger: logger}
}

// ────────────────────── ExportPlan ──────────────────────

// ExportPlan writes the allocation grid: one row per project, one column
// per sprint with planned/actual days, then capacity, allocated and
// remaining summary rows from the sprint reconciliation.
func (s *exportService) ExportPlan(ctx context.Context, teamID, quarterID string) (*bytes.Buffer, string, error) {
	quarter, err := s.repo.Quarter.GetByID(ctx, quarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", quarterID), zap.Error(err))
		return nil, "", err
	}

	sprints, err := s.repo.Sprint.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list sprints failed", zap.Error(err))
		return nil, "", err
	}
	if len(sprints) == 0 {
		return nil, "", ErrExportNoSprints
	}

	projects, err := s.repo.Project.ListByTeamAndQuarter(ctx, teamID, quarterID)
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, "", err
	}

	// Allocation lookup: projectID:sprintID -> (planned, actual).
	type cell struct{ planned, actual float64 }
	grid := make(map[string]cell)
	for _, p := range projects {
		allocs, err := s.repo.Allocation.ListByProject(ctx, p.ID)
		if err != nil {
			s.logger.Error("list allocations failed", zap.String("project_id", p.ID), zap.Error(err))
			return nil, "", err
		}
		for _, a := range allocs {
			grid[a.ProjectID+":"+a.SprintID] = cell{planned: a.PlannedDays, actual: a.ActualDays}
		}
	}

	reconciliations, err := s.capacity.SprintCapacities(ctx, teamID, quarterID)
	if err != nil {
		return nil, "", err
	}
	reconBySprint := make(map[string]int, len(reconciliations))
	for i, r := range reconciliations {
		reconBySprint[r.SprintID] = i
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Plan"
	f.SetSheetName("Sheet1", sheet)

	// Header row.
	setCell := func(col, row int, value interface{}) {
		cellName, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(sheet, cellName, value)
	}
	setCell(1, 1, "Project")
	for i, sp := range sprints {
		setCell(2+i*2, 1, sp.Name+" planned")
		setCell(3+i*2, 1, sp.Name+" actual")
	}

	row := 2
	for _, p := range projects {
		setCell(1, row, p.LinearProjectID)
		for i, sp := range sprints {
			c := grid[p.ID+":"+sp.ID]
			setCell(2+i*2, row, c.planned)
			setCell(3+i*2, row, c.actual)
		}
		row++
	}

	// Summary rows from the per-sprint reconciliation.
	row++
	setCell(1, row, "Capacity (days)")
	for i, sp := range sprints {
		if idx, ok := reconBySprint[sp.ID]; ok {
			setCell(2+i*2, row, reconciliations[idx].CapacityDays)
		}
	}
	row++
	setCell(1, row, "Allocated (days)")
	for i, sp := range sprints {
		if idx, ok := reconBySprint[sp.ID]; ok {
			setCell(2+i*2, row, reconciliations[idx].AllocatedDays)
		}
	}
	row++
	setCell(1, row, "Remaining (days)")
	for i, sp := range sprints {
		if idx, ok := reconBySprint[sp.ID]; ok {
			setCell(2+i*2, row, reconciliations[idx].RemainingDays)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("plan-%s.xlsx", quarter.ID)
	return buf, filename, nil
}

// ────────────────────── ExportCalendar ──────────────────────

// ExportCalendar renders sprint spans and holidays as all-day ICS events.
func (s *exportService) ExportCalendar(ctx context.Context, quarterID string) (*bytes.Buffer, string, error) {
	quarter, err := s.repo.Quarter.GetByID(ctx, quarterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrQuarterNotFound
		}
		s.logger.Error("get quarter failed", zap.String("id", quarterID), zap.Error(err))
		return nil, "", err
	}

	sprints, err := s.repo.Sprint.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list sprints failed", zap.Error(err))
		return nil, "", err
	}
	holidays, err := s.repo.Holiday.ListByQuarter(ctx, quarterID)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tech-execution-planning//EN")
	cal.SetName(quarter.Name)

	for _, sp := range sprints {
		event := cal.AddEvent(fmt.Sprintf("sprint-%s@tech-execution-planning", sp.ID))
		event.SetSummary(sp.Name)
		event.SetAllDayStartAt(sp.StartDate)
		// DTEND is exclusive for all-day events.
		event.SetAllDayEndAt(sp.EndDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now())
	}
	for _, h := range holidays {
		summary := "Holiday"
		if h.Description != nil && *h.Description != "" {
			summary = *h.Description
		}
		event := cal.AddEvent(fmt.Sprintf("holiday-%d@tech-execution-planning", h.ID))
		event.SetSummary(summary)
		event.SetAllDayStartAt(h.HolidayDate)
		event.SetAllDayEndAt(h.HolidayDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now())
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("calendar-%s.ics", quarter.ID)
	return buf, filename, nil
}
