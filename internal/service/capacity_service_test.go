package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

func setupTestCapacityService(now time.Time) (*capacityService, *testMocks) {
	repo, mocks := newTestRepository()
	settings := NewSettingsService(repo, testDefaults(), zap.NewNop())
	svc := &capacityService{
		repo:     repo,
		settings: settings,
		logger:   zap.NewNop(),
		now:      func() time.Time { return now },
	}
	return svc, mocks
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ── QuarterCapacity ──

func TestCapacityService_QuarterCapacity_EstimatedPTO(t *testing.T) {
	// Jan 20: sprint 1 has ended, sprint 2 has not.
	svc, mocks := setupTestCapacityService(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))
	project, sprint1, sprint2 := seedPlanFixture(t, mocks)

	seedAllocation(t, mocks, project.ID, sprint1.ID, 10, 6)
	seedAllocation(t, mocks, project.ID, sprint2.ID, 12, 0)

	result, err := svc.QuarterCapacity(context.Background(), "team-1", "q1-2026")
	if err != nil {
		t.Fatalf("QuarterCapacity failed: %v", err)
	}

	// 2026 Q1 with no holidays has 64 working days. Team: 8 total, 2 KTLO,
	// PTO 6/engineer, meeting fraction 0.2.
	if result.WorkingDays != 64 {
		t.Errorf("expected 64 working days, got %d", result.WorkingDays)
	}
	if result.RoadmapEngineers != 6 {
		t.Errorf("expected 6 roadmap engineers, got %v", result.RoadmapEngineers)
	}
	if !almostEqual(result.DevFocusFactor, 0.8) {
		t.Errorf("expected focus 0.8, got %v", result.DevFocusFactor)
	}
	if !almostEqual(result.HypotheticalMaxDays, 384) {
		t.Errorf("expected hypothetical max 384, got %v", result.HypotheticalMaxDays)
	}
	if !almostEqual(result.TotalPTODays, 36) {
		t.Errorf("expected estimated pto 36, got %v", result.TotalPTODays)
	}
	if result.UsedActualPTO {
		t.Error("no pto entries recorded, should use the estimate")
	}
	// (64*6 - 36) * 0.8
	if !almostEqual(result.AdjustedCapacityDays, 278.4) {
		t.Errorf("expected adjusted capacity 278.4, got %v", result.AdjustedCapacityDays)
	}
	// (64 - 6) * 6 * 0.8
	if !almostEqual(result.RoadmapPlanningDays, 278.4) {
		t.Errorf("expected planning days 278.4, got %v", result.RoadmapPlanningDays)
	}
	if !almostEqual(result.RoadmapPlanningWeeks, 55.68) {
		t.Errorf("expected planning weeks 55.68, got %v", result.RoadmapPlanningWeeks)
	}

	if !almostEqual(result.AllocatedDays, 22) {
		t.Errorf("expected allocated 22, got %v", result.AllocatedDays)
	}
	if !almostEqual(result.RemainingDays, 256.4) {
		t.Errorf("expected remaining 256.4, got %v", result.RemainingDays)
	}
	if result.OverCapacity {
		t.Error("22 of 278.4 days is not over capacity")
	}

	// Forecast mixes sprint 1's actuals with sprint 2's plan: 6 + 12.
	if !almostEqual(result.ForecastedDays, 18) {
		t.Errorf("expected forecast 18, got %v", result.ForecastedDays)
	}
	if !almostEqual(result.ForecastRemainingDays, 260.4) {
		t.Errorf("expected forecast remaining 260.4, got %v", result.ForecastRemainingDays)
	}
}

func TestCapacityService_QuarterCapacity_ActualPTOReplacesEstimate(t *testing.T) {
	svc, mocks := setupTestCapacityService(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	seedPlanFixture(t, mocks)

	notes := "ski trip"
	mocks.pto.Create(context.Background(), &model.PTOEntry{
		TeamID:       "team-1",
		QuarterID:    "q1-2026",
		EngineerName: "Ada",
		StartDate:    time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
		DaysCount:    10,
		Notes:        &notes,
	})

	result, err := svc.QuarterCapacity(context.Background(), "team-1", "q1-2026")
	if err != nil {
		t.Fatalf("QuarterCapacity failed: %v", err)
	}
	if !result.UsedActualPTO {
		t.Error("recorded entries should replace the estimate")
	}
	if !almostEqual(result.TotalPTODays, 10) {
		t.Errorf("expected total pto 10, got %v", result.TotalPTODays)
	}
	// (384 - 10) * 0.8
	if !almostEqual(result.AdjustedCapacityDays, 299.2) {
		t.Errorf("expected adjusted capacity 299.2, got %v", result.AdjustedCapacityDays)
	}
	// The planning figure keeps the per-engineer estimate regardless.
	if !almostEqual(result.RoadmapPlanningDays, 278.4) {
		t.Errorf("expected planning days 278.4, got %v", result.RoadmapPlanningDays)
	}
}

func TestCapacityService_QuarterCapacity_TeamMissing(t *testing.T) {
	svc, mocks := setupTestCapacityService(time.Now())
	seedPlanFixture(t, mocks)

	_, err := svc.QuarterCapacity(context.Background(), "missing", "q1-2026")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
}

// ── SprintCapacities ──

func TestCapacityService_SprintCapacities(t *testing.T) {
	svc, mocks := setupTestCapacityService(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))
	project, sprint1, _ := seedPlanFixture(t, mocks)
	seedAllocation(t, mocks, project.ID, sprint1.ID, 10, 0)

	// An allocation from another team's project must not count.
	other := &model.Project{
		ID:              "project-other",
		LinearProjectID: "lin-proj-other",
		TeamID:          "team-other",
		QuarterID:       "q1-2026",
	}
	mocks.projects.projects[other.ID] = other
	seedAllocation(t, mocks, other.ID, sprint1.ID, 40, 0)

	result, err := svc.SprintCapacities(context.Background(), "team-1", "q1-2026")
	if err != nil {
		t.Fatalf("SprintCapacities failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 sprints, got %d", len(result))
	}

	first := result[0]
	if first.SprintID != "sprint-1" {
		t.Errorf("expected sprint order by number, got %s first", first.SprintID)
	}
	if !first.Ended {
		t.Error("sprint 1 ended before Jan 20")
	}
	if result[1].Ended {
		t.Error("sprint 2 has not ended by Jan 20")
	}
	if first.WorkingDays != 10 {
		t.Errorf("expected 10 working days, got %d", first.WorkingDays)
	}
	// 6/64*10
	if !almostEqual(first.ProratedPTODays, 0.9375) {
		t.Errorf("expected prorated pto 0.9375, got %v", first.ProratedPTODays)
	}
	// 6 * (10 - 0.9375) * 0.8
	if !almostEqual(first.CapacityDays, 43.5) {
		t.Errorf("expected capacity 43.5, got %v", first.CapacityDays)
	}
	if !almostEqual(first.AllocatedDays, 10) {
		t.Errorf("other team's allocation leaked in, allocated=%v", first.AllocatedDays)
	}
	if !almostEqual(first.RemainingDays, 33.5) {
		t.Errorf("expected remaining 33.5, got %v", first.RemainingDays)
	}
	if first.OverCapacity {
		t.Error("10 of 43.5 days is not over capacity")
	}
}

// seedAllocation stores an allocation row directly in the mock.
func seedAllocation(t *testing.T, mocks *testMocks, projectID, sprintID string, planned, actual float64) {
	t.Helper()
	err := mocks.allocations.Upsert(context.Background(), &model.SprintAllocation{
		ProjectID:   projectID,
		SprintID:    sprintID,
		PlannedDays: planned,
		ActualDays:  actual,
		Phase:       model.PhaseSet{model.PhaseExecution},
	})
	if err != nil {
		t.Fatalf("seed allocation failed: %v", err)
	}
}
