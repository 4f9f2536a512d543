package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

func setupTestSettingsService() (SettingsService, *testMocks) {
	repo, mocks := newTestRepository()
	svc := NewSettingsService(repo, testDefaults(), zap.NewNop())
	return svc, mocks
}

func seedTeamAndQuarter(t *testing.T, mocks *testMocks) (*model.Team, *model.Quarter) {
	t.Helper()
	team := &model.Team{
		ID:                 "team-1",
		Name:               "Platform",
		TotalEngineers:     8,
		KTLOEngineers:      2,
		PTODaysPerEngineer: 6,
	}
	quarter := &model.Quarter{
		ID:                    "q1-2026",
		Name:                  "Q1 2026",
		StartDate:             time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		MeetingTimePercentage: 0.2,
		WorkDaysPerWeek:       5,
	}
	mocks.teams.teams[team.ID] = team
	mocks.quarters.quarters[quarter.ID] = quarter
	return team, quarter
}

// ── Resolve ──

func TestSettingsService_Resolve_NoOverride(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	team, quarter := seedTeamAndQuarter(t, mocks)

	resolved, err := svc.Resolve(context.Background(), team, quarter)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.TotalEngineers != 8 || resolved.KTLOEngineers != 2 {
		t.Errorf("expected team headcounts, got %+v", resolved)
	}
	if resolved.MeetingTimePercentage != 0.2 {
		t.Errorf("expected quarter meeting fraction 0.2, got %v", resolved.MeetingTimePercentage)
	}
	if resolved.PTODaysPerEngineer != 6 {
		t.Errorf("expected team pto 6, got %v", resolved.PTODaysPerEngineer)
	}
	if resolved.WorkDaysPerWeek != 5 {
		t.Errorf("expected quarter work days 5, got %v", resolved.WorkDaysPerWeek)
	}
}

func TestSettingsService_Resolve_OverrideReplacesWholesale(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	team, quarter := seedTeamAndQuarter(t, mocks)

	if err := mocks.settings.Upsert(context.Background(), &model.TeamQuarterSettings{
		TeamID:                team.ID,
		QuarterID:             quarter.ID,
		TotalEngineers:        12,
		KTLOEngineers:         3,
		MeetingTimePercentage: 0.3,
		PTODaysPerEngineer:    4,
	}); err != nil {
		t.Fatalf("seed override failed: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), team, quarter)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.TotalEngineers != 12 || resolved.KTLOEngineers != 3 {
		t.Errorf("override headcounts not applied: %+v", resolved)
	}
	if resolved.MeetingTimePercentage != 0.3 {
		t.Errorf("override meeting fraction not applied: %v", resolved.MeetingTimePercentage)
	}
	if resolved.PTODaysPerEngineer != 4 {
		t.Errorf("override pto not applied: %v", resolved.PTODaysPerEngineer)
	}
	// Work days per week never comes from the override row.
	if resolved.WorkDaysPerWeek != 5 {
		t.Errorf("work days should stay from quarter, got %v", resolved.WorkDaysPerWeek)
	}
}

func TestSettingsService_Resolve_WorkDaysFallsBackToDefault(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	team, quarter := seedTeamAndQuarter(t, mocks)
	quarter.WorkDaysPerWeek = 0

	resolved, err := svc.Resolve(context.Background(), team, quarter)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.WorkDaysPerWeek != 5 {
		t.Errorf("expected config default 5, got %v", resolved.WorkDaysPerWeek)
	}
}

// ── Upsert / Get / Delete ──

func TestSettingsService_Upsert_ThenUpdate(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	team, quarter := seedTeamAndQuarter(t, mocks)

	first, err := svc.Upsert(context.Background(), &dto.UpsertSettingsRequest{
		TeamID:                team.ID,
		QuarterID:             quarter.ID,
		TotalEngineers:        10,
		KTLOEngineers:         2,
		MeetingTimePercentage: 0.25,
		PTODaysPerEngineer:    5,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	second, err := svc.Upsert(context.Background(), &dto.UpsertSettingsRequest{
		TeamID:                team.ID,
		QuarterID:             quarter.ID,
		TotalEngineers:        11,
		KTLOEngineers:         2,
		MeetingTimePercentage: 0.25,
		PTODaysPerEngineer:    5,
	})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert should update in place, ids %d != %d", first.ID, second.ID)
	}
	if second.TotalEngineers != 11 {
		t.Errorf("expected total_engineers=11, got %v", second.TotalEngineers)
	}
}

func TestSettingsService_Upsert_TeamMissing(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	_, quarter := seedTeamAndQuarter(t, mocks)

	_, err := svc.Upsert(context.Background(), &dto.UpsertSettingsRequest{
		TeamID:    "missing",
		QuarterID: quarter.ID,
	})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
}

func TestSettingsService_Get_NotFound(t *testing.T) {
	svc, mocks := setupTestSettingsService()
	team, quarter := seedTeamAndQuarter(t, mocks)

	_, err := svc.GetByTeamAndQuarter(context.Background(), team.ID, quarter.ID)
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("expected ErrSettingsNotFound, got: %v", err)
	}
}
