package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/veho-technologies/tech-execution-planning/internal/linear"
	"github.com/veho-technologies/tech-execution-planning/internal/model"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

// ── Shared fixture ──

type testMocks struct {
	teams       *mockTeamRepo
	quarters    *mockQuarterRepo
	holidays    *mockHolidayRepo
	sprints     *mockSprintRepo
	projects    *mockProjectRepo
	allocations *mockAllocationRepo
	pto         *mockPTORepo
	settings    *mockSettingsRepo
}

func newTestRepository() (*repository.Repository, *testMocks) {
	m := &testMocks{
		teams:    newMockTeamRepo(),
		quarters: newMockQuarterRepo(),
		holidays: newMockHolidayRepo(),
		sprints:  newMockSprintRepo(),
		projects: newMockProjectRepo(),
		pto:      newMockPTORepo(),
		settings: newMockSettingsRepo(),
	}
	m.allocations = newMockAllocationRepo(m.sprints)

	repo := &repository.Repository{
		Team:       m.teams,
		Quarter:    m.quarters,
		Holiday:    m.holidays,
		Sprint:     m.sprints,
		Project:    m.projects,
		Allocation: m.allocations,
		PTO:        m.pto,
		Settings:   m.settings,
	}
	return repo, m
}

func testDefaults() PlanningDefaults {
	return PlanningDefaults{
		MeetingTimePercentage: 0.25,
		PTODaysPerEngineer:    5,
		WorkDaysPerWeek:       5,
	}
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.ID == "" {
		team.ID = "team-" + team.Name
	}
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) GetByLinearTeamID(_ context.Context, linearTeamID string) (*model.Team, error) {
	for _, t := range m.teams {
		if t.LinearTeamID != nil && *t.LinearTeamID == linearTeamID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	delete(m.teams, id)
	return nil
}

// ── Mock QuarterRepository ──

type mockQuarterRepo struct {
	quarters map[string]*model.Quarter
}

func newMockQuarterRepo() *mockQuarterRepo {
	return &mockQuarterRepo{quarters: make(map[string]*model.Quarter)}
}

func (m *mockQuarterRepo) Create(_ context.Context, quarter *model.Quarter) error {
	m.quarters[quarter.ID] = quarter
	return nil
}

func (m *mockQuarterRepo) CreateIfAbsent(_ context.Context, quarter *model.Quarter) (bool, error) {
	if _, ok := m.quarters[quarter.ID]; ok {
		return false, nil
	}
	m.quarters[quarter.ID] = quarter
	return true, nil
}

func (m *mockQuarterRepo) GetByID(_ context.Context, id string) (*model.Quarter, error) {
	if q, ok := m.quarters[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuarterRepo) List(_ context.Context) ([]model.Quarter, error) {
	var result []model.Quarter
	for _, q := range m.quarters {
		result = append(result, *q)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockQuarterRepo) Update(_ context.Context, quarter *model.Quarter) error {
	m.quarters[quarter.ID] = quarter
	return nil
}

func (m *mockQuarterRepo) Delete(_ context.Context, id string) error {
	delete(m.quarters, id)
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[int64]*model.Holiday
	nextID   int64
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[int64]*model.Holiday), nextID: 1}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	holiday.ID = m.nextID
	m.nextID++
	m.holidays[holiday.ID] = holiday
	return nil
}

func (m *mockHolidayRepo) CreateBatch(ctx context.Context, holidays []model.Holiday) error {
	for i := range holidays {
		h := holidays[i]
		if err := m.Create(ctx, &h); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id int64) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListByQuarter(_ context.Context, quarterID string) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if h.QuarterID == quarterID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].HolidayDate.Before(result[j].HolidayDate) })
	return result, nil
}

func (m *mockHolidayRepo) CountByQuarter(ctx context.Context, quarterID string) (int64, error) {
	list, _ := m.ListByQuarter(ctx, quarterID)
	return int64(len(list)), nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id int64) error {
	delete(m.holidays, id)
	return nil
}

func (m *mockHolidayRepo) DeleteByQuarter(_ context.Context, quarterID string) error {
	for id, h := range m.holidays {
		if h.QuarterID == quarterID {
			delete(m.holidays, id)
		}
	}
	return nil
}

// ── Mock SprintRepository ──

type mockSprintRepo struct {
	sprints map[string]*model.Sprint
}

func newMockSprintRepo() *mockSprintRepo {
	return &mockSprintRepo{sprints: make(map[string]*model.Sprint)}
}

func (m *mockSprintRepo) Create(_ context.Context, sprint *model.Sprint) error {
	if sprint.ID == "" {
		sprint.ID = fmt.Sprintf("sprint-%d", len(m.sprints)+1)
	}
	m.sprints[sprint.ID] = sprint
	return nil
}

func (m *mockSprintRepo) CreateBatch(ctx context.Context, sprints []model.Sprint) error {
	for i := range sprints {
		s := sprints[i]
		if err := m.Create(ctx, &s); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSprintRepo) GetByID(_ context.Context, id string) (*model.Sprint, error) {
	if s, ok := m.sprints[id]; ok {
		// Copy so caller mutations don't reach the store until Update, the
		// way a real query scans into a fresh struct.
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSprintRepo) ListByQuarter(_ context.Context, quarterID string) ([]model.Sprint, error) {
	var result []model.Sprint
	for _, s := range m.sprints {
		if s.QuarterID == quarterID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SprintNumber < result[j].SprintNumber })
	return result, nil
}

func (m *mockSprintRepo) Update(_ context.Context, sprint *model.Sprint) error {
	m.sprints[sprint.ID] = sprint
	return nil
}

func (m *mockSprintRepo) Delete(_ context.Context, id string) error {
	delete(m.sprints, id)
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = fmt.Sprintf("project-%d", len(m.projects)+1)
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByLinearProjectAndQuarter(_ context.Context, linearProjectID, quarterID string) (*model.Project, error) {
	for _, p := range m.projects {
		if p.LinearProjectID == linearProjectID && p.QuarterID == quarterID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListByQuarter(_ context.Context, quarterID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.QuarterID == quarterID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockProjectRepo) ListByTeamAndQuarter(_ context.Context, teamID, quarterID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.TeamID == teamID && p.QuarterID == quarterID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockProjectRepo) MaxDisplayOrder(_ context.Context, quarterID string) (int, error) {
	max := 0
	for _, p := range m.projects {
		if p.QuarterID == quarterID && p.DisplayOrder > max {
			max = p.DisplayOrder
		}
	}
	return max, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) UpdateDisplayOrder(_ context.Context, id string, order int) error {
	if p, ok := m.projects[id]; ok {
		p.DisplayOrder = order
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

// ── Mock AllocationRepository ──

type mockAllocationRepo struct {
	allocations map[string]*model.SprintAllocation
	sprints     *mockSprintRepo // for ListByQuarter
	nextID      int64
}

func newMockAllocationRepo(sprints *mockSprintRepo) *mockAllocationRepo {
	return &mockAllocationRepo{
		allocations: make(map[string]*model.SprintAllocation),
		sprints:     sprints,
		nextID:      1,
	}
}

func allocationKey(projectID, sprintID string) string {
	return projectID + "|" + sprintID
}

func (m *mockAllocationRepo) Upsert(_ context.Context, alloc *model.SprintAllocation) error {
	key := allocationKey(alloc.ProjectID, alloc.SprintID)
	if existing, ok := m.allocations[key]; ok {
		alloc.ID = existing.ID
		alloc.CreatedAt = existing.CreatedAt
	} else {
		alloc.ID = m.nextID
		m.nextID++
		alloc.CreatedAt = time.Now()
	}
	alloc.UpdatedAt = time.Now()
	stored := *alloc
	m.allocations[key] = &stored
	return nil
}

func (m *mockAllocationRepo) UpsertActuals(ctx context.Context, alloc *model.SprintAllocation) error {
	key := allocationKey(alloc.ProjectID, alloc.SprintID)
	if existing, ok := m.allocations[key]; ok {
		existing.ActualDays = alloc.ActualDays
		existing.UpdatedAt = time.Now()
		return nil
	}
	return m.Upsert(ctx, alloc)
}

func (m *mockAllocationRepo) GetByProjectAndSprint(_ context.Context, projectID, sprintID string) (*model.SprintAllocation, error) {
	if a, ok := m.allocations[allocationKey(projectID, sprintID)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) ListByProject(_ context.Context, projectID string) ([]model.SprintAllocation, error) {
	var result []model.SprintAllocation
	for _, a := range m.allocations {
		if a.ProjectID == projectID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAllocationRepo) ListBySprint(_ context.Context, sprintID string) ([]model.SprintAllocation, error) {
	var result []model.SprintAllocation
	for _, a := range m.allocations {
		if a.SprintID == sprintID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAllocationRepo) ListByQuarter(ctx context.Context, quarterID string) ([]model.SprintAllocation, error) {
	inQuarter := make(map[string]bool)
	if m.sprints != nil {
		sprints, _ := m.sprints.ListByQuarter(ctx, quarterID)
		for _, s := range sprints {
			inQuarter[s.ID] = true
		}
	}
	var result []model.SprintAllocation
	for _, a := range m.allocations {
		if inQuarter[a.SprintID] {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAllocationRepo) DeleteByProjectAndSprint(_ context.Context, projectID, sprintID string) error {
	delete(m.allocations, allocationKey(projectID, sprintID))
	return nil
}

func (m *mockAllocationRepo) DeleteByProject(_ context.Context, projectID string) error {
	for key, a := range m.allocations {
		if a.ProjectID == projectID {
			delete(m.allocations, key)
		}
	}
	return nil
}

// ── Mock PTORepository ──

type mockPTORepo struct {
	entries map[int64]*model.PTOEntry
	nextID  int64
}

func newMockPTORepo() *mockPTORepo {
	return &mockPTORepo{entries: make(map[int64]*model.PTOEntry), nextID: 1}
}

func (m *mockPTORepo) Create(_ context.Context, entry *model.PTOEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockPTORepo) GetByID(_ context.Context, id int64) (*model.PTOEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPTORepo) ListByTeamAndQuarter(_ context.Context, teamID, quarterID string) ([]model.PTOEntry, error) {
	var result []model.PTOEntry
	for _, e := range m.entries {
		if e.TeamID == teamID && e.QuarterID == quarterID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockPTORepo) TotalDays(_ context.Context, teamID, quarterID string) (float64, int64, error) {
	var total float64
	var count int64
	for _, e := range m.entries {
		if e.TeamID == teamID && e.QuarterID == quarterID {
			total += e.DaysCount
			count++
		}
	}
	return total, count, nil
}

func (m *mockPTORepo) Delete(_ context.Context, id int64) error {
	delete(m.entries, id)
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings map[string]*model.TeamQuarterSettings
	nextID   int64
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[string]*model.TeamQuarterSettings), nextID: 1}
}

func settingsKey(teamID, quarterID string) string {
	return teamID + "|" + quarterID
}

func (m *mockSettingsRepo) Upsert(_ context.Context, s *model.TeamQuarterSettings) error {
	key := settingsKey(s.TeamID, s.QuarterID)
	if existing, ok := m.settings[key]; ok {
		s.ID = existing.ID
	} else {
		s.ID = m.nextID
		m.nextID++
	}
	stored := *s
	m.settings[key] = &stored
	return nil
}

func (m *mockSettingsRepo) GetByTeamAndQuarter(_ context.Context, teamID, quarterID string) (*model.TeamQuarterSettings, error) {
	if s, ok := m.settings[settingsKey(teamID, quarterID)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingsRepo) ListByQuarter(_ context.Context, quarterID string) ([]model.TeamQuarterSettings, error) {
	var result []model.TeamQuarterSettings
	for _, s := range m.settings {
		if s.QuarterID == quarterID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSettingsRepo) Delete(_ context.Context, teamID, quarterID string) error {
	delete(m.settings, settingsKey(teamID, quarterID))
	return nil
}

// ── Mock LinearClient ──

type mockLinearClient struct {
	teams        []linear.Team
	projects     map[string][]linear.Project
	projectsByID map[string]*linear.Project
	cycles       map[string][]linear.Cycle
	issues       map[string]*linear.Issue
	cycleIssues  map[string][]linear.Issue
	histories    map[string][]linear.HistoryEntry
	historyErrs  map[string]error

	updatedProjects map[string]linear.ProjectUpdateInput
	projectUpdates  map[string][]string
	updateErr       error
	commentErr      error
}

func newMockLinearClient() *mockLinearClient {
	return &mockLinearClient{
		projects:        make(map[string][]linear.Project),
		projectsByID:    make(map[string]*linear.Project),
		cycles:          make(map[string][]linear.Cycle),
		issues:          make(map[string]*linear.Issue),
		cycleIssues:     make(map[string][]linear.Issue),
		histories:       make(map[string][]linear.HistoryEntry),
		historyErrs:     make(map[string]error),
		updatedProjects: make(map[string]linear.ProjectUpdateInput),
		projectUpdates:  make(map[string][]string),
	}
}

func (m *mockLinearClient) Teams(_ context.Context) ([]linear.Team, error) {
	return m.teams, nil
}

func (m *mockLinearClient) TeamProjects(_ context.Context, teamID string) ([]linear.Project, error) {
	return m.projects[teamID], nil
}

func (m *mockLinearClient) TeamCycles(_ context.Context, teamID string) ([]linear.Cycle, error) {
	return m.cycles[teamID], nil
}

func (m *mockLinearClient) Project(_ context.Context, projectID string) (*linear.Project, error) {
	if p, ok := m.projectsByID[projectID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("project %s not found", projectID)
}

func (m *mockLinearClient) Issue(_ context.Context, issueID string) (*linear.Issue, error) {
	if issue, ok := m.issues[issueID]; ok {
		return issue, nil
	}
	return nil, fmt.Errorf("issue %s not found", issueID)
}

func (m *mockLinearClient) CycleIssues(_ context.Context, cycleID string) ([]linear.Issue, error) {
	return m.cycleIssues[cycleID], nil
}

func (m *mockLinearClient) IssueHistory(_ context.Context, issueID string) ([]linear.HistoryEntry, error) {
	if err, ok := m.historyErrs[issueID]; ok {
		return nil, err
	}
	return m.histories[issueID], nil
}

func (m *mockLinearClient) UpdateProject(_ context.Context, projectID string, input linear.ProjectUpdateInput) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedProjects[projectID] = input
	return nil
}

func (m *mockLinearClient) CreateProjectUpdate(_ context.Context, projectID, body string) error {
	if m.commentErr != nil {
		return m.commentErr
	}
	m.projectUpdates[projectID] = append(m.projectUpdates[projectID], body)
	return nil
}
