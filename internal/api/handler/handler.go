package handler

import (
	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"gorm.io/gorm"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Team       *TeamHandler
	Quarter    *QuarterHandler
	Holiday    *HolidayHandler
	Sprint     *SprintHandler
	Project    *ProjectHandler
	Allocation *AllocationHandler
	PTO        *PTOHandler
	Settings   *SettingsHandler
	Capacity   *CapacityHandler
	Linear     *LinearHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(cfg *config.Config, svc *service.Service, db *gorm.DB) *Handler {
	return &Handler{
		Team:       NewTeamHandler(svc.Team),
		Quarter:    NewQuarterHandler(svc.Quarter),
		Holiday:    NewHolidayHandler(svc.Holiday),
		Sprint:     NewSprintHandler(svc.Sprint, svc.Sync),
		Project:    NewProjectHandler(svc.Project),
		Allocation: NewAllocationHandler(svc.Allocation),
		PTO:        NewPTOHandler(svc.PTO),
		Settings:   NewSettingsHandler(svc.Settings),
		Capacity:   NewCapacityHandler(svc.Capacity),
		Linear:     NewLinearHandler(svc.Linear),
		Export:     NewExportHandler(svc.Export),
		Health:     NewHealthHandler(cfg, db),
	}
}
