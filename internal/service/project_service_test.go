package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
)

func setupTestProjectService() (ProjectService, *testMocks) {
	repo, mocks := newTestRepository()
	svc := NewProjectService(repo, zap.NewNop())
	return svc, mocks
}

// ── Create ──

func TestProjectService_Create_AssignsNextDisplayOrder(t *testing.T) {
	svc, mocks := setupTestProjectService()
	seedTeamAndQuarter(t, mocks)

	first, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-a",
		TeamID:          "team-1",
		QuarterID:       "q1-2026",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-b",
		TeamID:          "team-1",
		QuarterID:       "q1-2026",
	})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first.DisplayOrder != 1 || second.DisplayOrder != 2 {
		t.Errorf("expected display orders 1,2, got %d,%d", first.DisplayOrder, second.DisplayOrder)
	}
}

func TestProjectService_Create_DuplicateInQuarter(t *testing.T) {
	svc, mocks := setupTestProjectService()
	seedTeamAndQuarter(t, mocks)

	req := &dto.CreateProjectRequest{
		LinearProjectID: "lin-a",
		TeamID:          "team-1",
		QuarterID:       "q1-2026",
	}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrProjectAlreadyInPlan) {
		t.Errorf("expected ErrProjectAlreadyInPlan, got: %v", err)
	}
}

func TestProjectService_Create_SameProjectOtherQuarter(t *testing.T) {
	svc, mocks := setupTestProjectService()
	_, q1 := seedTeamAndQuarter(t, mocks)

	q2 := *q1
	q2.ID = "q2-2026"
	q2.Name = "Q2 2026"
	mocks.quarters.quarters[q2.ID] = &q2

	if _, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-a", TeamID: "team-1", QuarterID: "q1-2026",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-a", TeamID: "team-1", QuarterID: "q2-2026",
	}); err != nil {
		t.Errorf("re-import into another quarter should succeed, got: %v", err)
	}
}

// ── Delete / Reorder ──

func TestProjectService_Delete_RemovesAllocations(t *testing.T) {
	svc, mocks := setupTestProjectService()
	project, sprint1, _ := seedPlanFixture(t, mocks)
	seedAllocation(t, mocks, project.ID, sprint1.ID, 5, 0)

	if err := svc.Delete(context.Background(), project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	allocs, _ := mocks.allocations.ListByProject(context.Background(), project.ID)
	if len(allocs) != 0 {
		t.Errorf("expected allocations removed with the project, %d remain", len(allocs))
	}
}

func TestProjectService_Reorder(t *testing.T) {
	svc, mocks := setupTestProjectService()
	seedTeamAndQuarter(t, mocks)

	a, _ := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-a", TeamID: "team-1", QuarterID: "q1-2026",
	})
	b, _ := svc.Create(context.Background(), &dto.CreateProjectRequest{
		LinearProjectID: "lin-b", TeamID: "team-1", QuarterID: "q1-2026",
	})

	if err := svc.Reorder(context.Background(), &dto.ReorderProjectsRequest{
		ProjectIDs: []string{b.ID, a.ID},
	}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	projects, _ := svc.ListByQuarter(context.Background(), "q1-2026", "")
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != b.ID {
		t.Errorf("expected %s first after reorder, got %s", b.ID, projects[0].ID)
	}
}

func TestProjectService_Reorder_UnknownProject(t *testing.T) {
	svc, mocks := setupTestProjectService()
	seedTeamAndQuarter(t, mocks)

	err := svc.Reorder(context.Background(), &dto.ReorderProjectsRequest{
		ProjectIDs: []string{"missing"},
	})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got: %v", err)
	}
}
