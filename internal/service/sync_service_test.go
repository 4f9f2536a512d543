package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/linear"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
)

func setupTestSyncService(now time.Time) (*syncService, *mockLinearClient, *testMocks) {
	repo, mocks := newTestRepository()
	client := newMockLinearClient()
	settings := NewSettingsService(repo, testDefaults(), zap.NewNop())
	svc := &syncService{
		repo:        repo,
		client:      client,
		settings:    settings,
		activeState: "In Progress",
		logger:      zap.NewNop(),
		now:         func() time.Time { return now },
	}
	return svc, client, mocks
}

func inProgressAt(t time.Time) linear.HistoryEntry {
	return linear.HistoryEntry{CreatedAt: t, ToState: &linear.WorkflowState{Name: "In Progress", Type: "started"}}
}

func doneAt(t time.Time) linear.HistoryEntry {
	return linear.HistoryEntry{CreatedAt: t, ToState: &linear.WorkflowState{Name: "Done", Type: "completed"}}
}

func linearIssue(id, assigneeID, projectID string) linear.Issue {
	issue := linear.Issue{ID: id, Identifier: "ENG-" + id, Title: "issue " + id}
	if assigneeID != "" {
		issue.Assignee = &linear.User{ID: assigneeID, Name: assigneeID}
	}
	if projectID != "" {
		issue.Project = &linear.IssueProjectRef{ID: projectID, Name: projectID}
	}
	return issue
}

// ── SyncActuals ──

func TestSyncService_SyncActuals_FullPipeline(t *testing.T) {
	now := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	svc, client, mocks := setupTestSyncService(now)
	project, sprint1, _ := seedPlanFixture(t, mocks)
	mocks.teams.teams["team-1"].LinearTeamID = strPtr("lin-team-1")

	seedAllocation(t, mocks, project.ID, sprint1.ID, 10, 0)

	client.cycles["lin-team-1"] = []linear.Cycle{
		{ID: "cycle-1", Name: "Sprint 1", Number: 1},
	}
	client.cycleIssues["cycle-1"] = []linear.Issue{
		linearIssue("iss-1", "ada", "lin-proj-1"),
		linearIssue("iss-2", "bob", "lin-proj-1"),
		linearIssue("iss-3", "ada", "lin-proj-1"),
		linearIssue("iss-4", "carol", "lin-proj-unknown"),
	}
	// Active Jan 5 09:00 to Jan 9 18:00: midnights Jan 6-9, 4 business days.
	client.histories["iss-1"] = []linear.HistoryEntry{
		inProgressAt(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)),
		doneAt(time.Date(2026, 1, 9, 18, 0, 0, 0, time.UTC)),
	}
	// Still open at sync time: midnights Jan 13-16 fall inside the sprint,
	// 4 business days.
	client.histories["iss-2"] = []linear.HistoryEntry{
		inProgressAt(time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)),
	}
	client.historyErrs["iss-3"] = fmt.Errorf("rate limited")
	// Belongs to a project never imported into the plan.
	client.histories["iss-4"] = []linear.HistoryEntry{
		inProgressAt(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)),
	}

	result, err := svc.SyncActuals(context.Background(), sprint1.ID, &dto.SyncActualsRequest{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("SyncActuals failed: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected cycle match")
	}
	if result.CycleID == nil || *result.CycleID != "cycle-1" {
		t.Errorf("expected cycle-1, got %v", result.CycleID)
	}
	if result.IssuesProcessed != 3 {
		t.Errorf("expected 3 issues processed, got %d", result.IssuesProcessed)
	}
	if result.IssuesFailed != 1 {
		t.Errorf("expected 1 issue failed, got %d", result.IssuesFailed)
	}
	if result.ProjectsUpdated != 1 {
		t.Errorf("expected 1 project updated, got %d", result.ProjectsUpdated)
	}
	// Two issues with 4 active business days each, focus factor 0.8:
	// (4 + 4) * 0.8 = 6.4.
	if !almostEqual(result.TotalActualDays, 6.4) {
		t.Errorf("expected 6.4 actual days, got %v", result.TotalActualDays)
	}

	alloc, err := mocks.allocations.GetByProjectAndSprint(context.Background(), project.ID, sprint1.ID)
	if err != nil {
		t.Fatalf("allocation missing after sync: %v", err)
	}
	if !almostEqual(alloc.ActualDays, 6.4) {
		t.Errorf("expected actual_days=6.4, got %v", alloc.ActualDays)
	}
	if alloc.PlannedDays != 10 {
		t.Errorf("sync must not touch planned days, got %v", alloc.PlannedDays)
	}
	if alloc.IsManualOverride {
		t.Error("sync must not set the manual override flag")
	}
}

func TestSyncService_SyncActuals_PreservesManualOverride(t *testing.T) {
	now := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	svc, client, mocks := setupTestSyncService(now)
	project, sprint1, _ := seedPlanFixture(t, mocks)
	mocks.teams.teams["team-1"].LinearTeamID = strPtr("lin-team-1")

	// A hand-edited allocation: planned days pinned by the user.
	err := mocks.allocations.Upsert(context.Background(), &model.SprintAllocation{
		ProjectID:        project.ID,
		SprintID:         sprint1.ID,
		PlannedDays:      12,
		IsManualOverride: true,
		Phase:            model.PhaseSet{model.PhaseExecution},
	})
	if err != nil {
		t.Fatalf("seed allocation failed: %v", err)
	}

	client.cycles["lin-team-1"] = []linear.Cycle{
		{ID: "cycle-1", Name: "Sprint 1", Number: 1},
	}
	client.cycleIssues["cycle-1"] = []linear.Issue{
		linearIssue("iss-1", "ada", "lin-proj-1"),
	}
	client.histories["iss-1"] = []linear.HistoryEntry{
		inProgressAt(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)),
		doneAt(time.Date(2026, 1, 9, 18, 0, 0, 0, time.UTC)),
	}

	if _, err := svc.SyncActuals(context.Background(), sprint1.ID, &dto.SyncActualsRequest{TeamID: "team-1"}); err != nil {
		t.Fatalf("SyncActuals failed: %v", err)
	}

	alloc, err := mocks.allocations.GetByProjectAndSprint(context.Background(), project.ID, sprint1.ID)
	if err != nil {
		t.Fatalf("allocation missing after sync: %v", err)
	}
	if !alloc.IsManualOverride {
		t.Error("sync must leave the manual override flag in place")
	}
	if alloc.PlannedDays != 12 {
		t.Errorf("sync must not touch planned days, got %v", alloc.PlannedDays)
	}
	if !almostEqual(alloc.ActualDays, 3.2) {
		t.Errorf("expected actual_days=3.2, got %v", alloc.ActualDays)
	}
}

func TestSyncService_SyncActuals_NoCycleMatch(t *testing.T) {
	svc, client, mocks := setupTestSyncService(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	_, sprint1, _ := seedPlanFixture(t, mocks)
	mocks.teams.teams["team-1"].LinearTeamID = strPtr("lin-team-1")

	client.cycles["lin-team-1"] = []linear.Cycle{
		{ID: "cycle-9", Name: "Cycle 9", Number: 9},
	}

	result, err := svc.SyncActuals(context.Background(), sprint1.ID, &dto.SyncActualsRequest{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("SyncActuals failed: %v", err)
	}
	if result.Matched {
		t.Error("expected no cycle match")
	}
	if result.Message == "" {
		t.Error("unmatched sync should explain itself")
	}
	if result.ProjectsUpdated != 0 {
		t.Errorf("nothing should be written, got %d projects updated", result.ProjectsUpdated)
	}
}

func TestSyncService_SyncActuals_MatchByNumber(t *testing.T) {
	svc, client, mocks := setupTestSyncService(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	_, _, sprint2 := seedPlanFixture(t, mocks)
	mocks.teams.teams["team-1"].LinearTeamID = strPtr("lin-team-1")

	client.cycles["lin-team-1"] = []linear.Cycle{
		{ID: "cycle-a", Name: "Week 44", Number: 44},
		{ID: "cycle-b", Name: "Cycle two", Number: 2},
	}

	result, err := svc.SyncActuals(context.Background(), sprint2.ID, &dto.SyncActualsRequest{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("SyncActuals failed: %v", err)
	}
	if !result.Matched {
		t.Fatal("'Sprint 2' should match cycle number 2")
	}
	if result.CycleID == nil || *result.CycleID != "cycle-b" {
		t.Errorf("expected cycle-b, got %v", result.CycleID)
	}
}

func TestSyncService_SyncActuals_TeamNotLinked(t *testing.T) {
	svc, _, mocks := setupTestSyncService(time.Now())
	_, sprint1, _ := seedPlanFixture(t, mocks)

	_, err := svc.SyncActuals(context.Background(), sprint1.ID, &dto.SyncActualsRequest{TeamID: "team-1"})
	if !errors.Is(err, ErrTeamNotLinked) {
		t.Errorf("expected ErrTeamNotLinked, got: %v", err)
	}
}

func TestSyncService_SyncActuals_SprintMissing(t *testing.T) {
	svc, _, _ := setupTestSyncService(time.Now())

	_, err := svc.SyncActuals(context.Background(), "missing", &dto.SyncActualsRequest{TeamID: "team-1"})
	if !errors.Is(err, ErrSprintNotFound) {
		t.Errorf("expected ErrSprintNotFound, got: %v", err)
	}
}

// ── matchCycle ──

func TestMatchCycle_ExactNameBeatsNumber(t *testing.T) {
	sprint := &model.Sprint{Name: "Sprint 2"}
	cycles := []linear.Cycle{
		{ID: "by-number", Name: "Cycle 44", Number: 2},
		{ID: "by-name", Name: "Sprint 2", Number: 7},
	}
	got := matchCycle(cycles, sprint)
	if got == nil || got.ID != "by-name" {
		t.Errorf("exact name match should win, got %+v", got)
	}
}

func TestFirstNumber(t *testing.T) {
	if n, ok := firstNumber("Sprint 14"); !ok || n != 14 {
		t.Errorf("expected 14, got %d ok=%v", n, ok)
	}
	if n, ok := firstNumber("Cycle 12 (carryover)"); !ok || n != 12 {
		t.Errorf("expected 12, got %d ok=%v", n, ok)
	}
	if _, ok := firstNumber("Hardening"); ok {
		t.Error("no number expected")
	}
	if _, ok := firstNumber(""); ok {
		t.Error("empty name has no number")
	}
}
