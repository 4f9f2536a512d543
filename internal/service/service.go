package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// ErrInvalidDate covers any malformed or inverted date input. Handlers map
// it to 400.
var ErrInvalidDate = errors.New("invalid date")

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// PlanningDefaults are the config-level fallbacks applied when neither the
// quarter, the team, nor a per-quarter settings row supplies a value.
type PlanningDefaults struct {
	MeetingTimePercentage float64
	PTODaysPerEngineer    float64
	WorkDaysPerWeek       int
}

// Service aggregates every business service.
type Service struct {
	Team       TeamService
	Quarter    QuarterService
	Holiday    HolidayService
	Sprint     SprintService
	Project    ProjectService
	Allocation AllocationService
	PTO        PTOService
	Settings   SettingsService
	Capacity   CapacityService
	Sync       SyncService
	Linear     LinearService
	Export     ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	linearClient LinearClient,
	logger *zap.Logger,
) *Service {
	defaults := PlanningDefaults{
		MeetingTimePercentage: cfg.Planning.MeetingTimePercentage,
		PTODaysPerEngineer:    cfg.Planning.PTODaysPerEngineer,
		WorkDaysPerWeek:       cfg.Planning.WorkDaysPerWeek,
	}

	settings := NewSettingsService(repo, defaults, logger)
	capacitySvc := NewCapacityService(repo, settings, logger)

	return &Service{
		Team:       NewTeamService(repo, defaults, logger),
		Quarter:    NewQuarterService(repo, defaults, logger),
		Holiday:    NewHolidayService(repo, logger),
		Sprint:     NewSprintService(repo, logger),
		Project:    NewProjectService(repo, logger),
		Allocation: NewAllocationService(repo, settings, logger),
		PTO:        NewPTOService(repo, logger),
		Settings:   settings,
		Capacity:   capacitySvc,
		Sync:       NewSyncService(repo, linearClient, settings, cfg.Linear.ActiveState, logger),
		Linear:     NewLinearService(linearClient, logger),
		Export:     NewExportService(repo, capacitySvc, logger),
	}
}
