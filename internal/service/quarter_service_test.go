package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
)

func setupTestQuarterService() (QuarterService, *testMocks) {
	repo, mocks := newTestRepository()
	svc := NewQuarterService(repo, testDefaults(), zap.NewNop())
	return svc, mocks
}

// ── Create ──

func TestQuarterService_Create_Success(t *testing.T) {
	svc, _ := setupTestQuarterService()

	result, err := svc.Create(context.Background(), &dto.CreateQuarterRequest{
		Name:      "Q3 2026",
		StartDate: "2026-07-01",
		EndDate:   "2026-09-30",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.MeetingTimePercentage != 0.25 {
		t.Errorf("expected default meeting_time_percentage=0.25, got %v", result.MeetingTimePercentage)
	}
	if result.WorkDaysPerWeek != 5 {
		t.Errorf("expected default work_days_per_week=5, got %v", result.WorkDaysPerWeek)
	}
}

func TestQuarterService_Create_EndBeforeStart(t *testing.T) {
	svc, _ := setupTestQuarterService()

	_, err := svc.Create(context.Background(), &dto.CreateQuarterRequest{
		Name:      "Backwards",
		StartDate: "2026-09-30",
		EndDate:   "2026-07-01",
	})
	if !errors.Is(err, ErrQuarterDateInvalid) {
		t.Errorf("expected ErrQuarterDateInvalid, got: %v", err)
	}
}

func TestQuarterService_Create_BadDateFormat(t *testing.T) {
	svc, _ := setupTestQuarterService()

	_, err := svc.Create(context.Background(), &dto.CreateQuarterRequest{
		Name:      "Bad",
		StartDate: "07/01/2026",
		EndDate:   "2026-09-30",
	})
	if !errors.Is(err, ErrQuarterDateInvalid) {
		t.Errorf("expected ErrQuarterDateInvalid, got: %v", err)
	}
}

// ── InitYears ──

func TestQuarterService_InitYears_SeedsQuartersAndHolidays(t *testing.T) {
	svc, mocks := setupTestQuarterService()

	result, err := svc.InitYears(context.Background(), &dto.InitQuartersRequest{
		StartYear: 2026,
		EndYear:   2026,
	})
	if err != nil {
		t.Fatalf("InitYears failed: %v", err)
	}
	if result.QuartersCreated != 4 {
		t.Errorf("expected 4 quarters created, got %d", result.QuartersCreated)
	}
	if len(result.QuartersSkipped) != 0 {
		t.Errorf("expected no skipped quarters, got %v", result.QuartersSkipped)
	}
	if result.HolidaysCreated == 0 {
		t.Error("expected federal holidays seeded")
	}

	q1, err := mocks.quarters.GetByID(context.Background(), "q1-2026")
	if err != nil {
		t.Fatalf("q1-2026 not seeded: %v", err)
	}
	if q1.Name != "Q1 2026" {
		t.Errorf("expected name 'Q1 2026', got %s", q1.Name)
	}
	if q1.StartDate.Format("2006-01-02") != "2026-01-01" {
		t.Errorf("expected start 2026-01-01, got %s", q1.StartDate.Format("2006-01-02"))
	}
	if q1.EndDate.Format("2006-01-02") != "2026-03-31" {
		t.Errorf("expected end 2026-03-31, got %s", q1.EndDate.Format("2006-01-02"))
	}
	if q1.MeetingTimePercentage != 0.25 || q1.WorkDaysPerWeek != 5 {
		t.Errorf("seeded quarter missing defaults: %+v", q1)
	}

	// New Year's Day falls in Q1.
	holidays, _ := mocks.holidays.ListByQuarter(context.Background(), "q1-2026")
	found := false
	for _, h := range holidays {
		if h.HolidayDate.Format("2006-01-02") == "2026-01-01" {
			found = true
		}
	}
	if !found {
		t.Error("expected New Year's Day among q1-2026 holidays")
	}
}

func TestQuarterService_InitYears_SkipsExisting(t *testing.T) {
	svc, mocks := setupTestQuarterService()

	if _, err := svc.InitYears(context.Background(), &dto.InitQuartersRequest{StartYear: 2026, EndYear: 2026}); err != nil {
		t.Fatalf("first InitYears failed: %v", err)
	}
	holidaysBefore, _ := mocks.holidays.CountByQuarter(context.Background(), "q1-2026")

	result, err := svc.InitYears(context.Background(), &dto.InitQuartersRequest{StartYear: 2026, EndYear: 2026})
	if err != nil {
		t.Fatalf("second InitYears failed: %v", err)
	}
	if result.QuartersCreated != 0 {
		t.Errorf("rerun should create nothing, got %d", result.QuartersCreated)
	}
	if len(result.QuartersSkipped) != 4 {
		t.Errorf("expected 4 skipped quarters, got %v", result.QuartersSkipped)
	}

	holidaysAfter, _ := mocks.holidays.CountByQuarter(context.Background(), "q1-2026")
	if holidaysAfter != holidaysBefore {
		t.Errorf("rerun duplicated holidays: %d -> %d", holidaysBefore, holidaysAfter)
	}
}

func TestQuarterService_InitYears_InvalidRange(t *testing.T) {
	svc, _ := setupTestQuarterService()

	_, err := svc.InitYears(context.Background(), &dto.InitQuartersRequest{StartYear: 2027, EndYear: 2026})
	if !errors.Is(err, ErrYearRangeInvalid) {
		t.Errorf("expected ErrYearRangeInvalid, got: %v", err)
	}
}
