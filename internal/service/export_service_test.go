package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func setupTestExportService(now time.Time) (ExportService, *testMocks) {
	repo, mocks := newTestRepository()
	settings := NewSettingsService(repo, testDefaults(), zap.NewNop())
	capacitySvc := &capacityService{
		repo:     repo,
		settings: settings,
		logger:   zap.NewNop(),
		now:      func() time.Time { return now },
	}
	svc := NewExportService(repo, capacitySvc, zap.NewNop())
	return svc, mocks
}

func TestExportService_ExportPlan(t *testing.T) {
	svc, mocks := setupTestExportService(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	project, sprint1, _ := seedPlanFixture(t, mocks)
	seedAllocation(t, mocks, project.ID, sprint1.ID, 10, 6)

	buf, filename, err := svc.ExportPlan(context.Background(), "team-1", "q1-2026")
	if err != nil {
		t.Fatalf("ExportPlan failed: %v", err)
	}
	if filename != "plan-q1-2026.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}
	if buf.Len() == 0 {
		t.Error("expected workbook bytes")
	}
}

func TestExportService_ExportPlan_NoSprints(t *testing.T) {
	svc, mocks := setupTestExportService(time.Now())
	seedTeamAndQuarter(t, mocks)

	_, _, err := svc.ExportPlan(context.Background(), "team-1", "q1-2026")
	if !errors.Is(err, ErrExportNoSprints) {
		t.Errorf("expected ErrExportNoSprints, got: %v", err)
	}
}

func TestExportService_ExportCalendar(t *testing.T) {
	svc, mocks := setupTestExportService(time.Now())
	_, sprint1, _ := seedPlanFixture(t, mocks)

	buf, filename, err := svc.ExportCalendar(context.Background(), "q1-2026")
	if err != nil {
		t.Fatalf("ExportCalendar failed: %v", err)
	}
	if filename != "calendar-q1-2026.ics" {
		t.Errorf("unexpected filename %s", filename)
	}

	body := buf.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("missing VCALENDAR envelope")
	}
	if !strings.Contains(body, "SUMMARY:"+sprint1.Name) {
		t.Errorf("missing sprint event, body:\n%s", body)
	}
	if !strings.Contains(body, "METHOD:PUBLISH") {
		t.Error("missing publish method")
	}
}

func TestExportService_ExportCalendar_QuarterMissing(t *testing.T) {
	svc, _ := setupTestExportService(time.Now())

	_, _, err := svc.ExportCalendar(context.Background(), "missing")
	if !errors.Is(err, ErrQuarterNotFound) {
		t.Errorf("expected ErrQuarterNotFound, got: %v", err)
	}
}
