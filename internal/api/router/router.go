package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/internal/api/handler"
	"github.com/veho-technologies/tech-execution-planning/internal/api/middleware"
)

// Setup builds the Gin engine with middleware and all routes.
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── Health check ──
	r.GET("/health", h.Health.Check)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		teams := v1.Group("/teams")
		{
			teams.GET("", h.Team.ListTeams)
			teams.GET("/:id", h.Team.GetTeam)
			teams.POST("", h.Team.CreateTeam)
			teams.PUT("/:id", h.Team.UpdateTeam)
			teams.DELETE("/:id", h.Team.DeleteTeam)
		}

		quarters := v1.Group("/quarters")
		{
			quarters.GET("", h.Quarter.ListQuarters)
			quarters.GET("/:id", h.Quarter.GetQuarter)
			quarters.POST("", h.Quarter.CreateQuarter)
			quarters.POST("/init", h.Quarter.InitQuarters)
			quarters.PUT("/:id", h.Quarter.UpdateQuarter)
			quarters.DELETE("/:id", h.Quarter.DeleteQuarter)
		}

		holidays := v1.Group("/holidays")
		{
			holidays.GET("", h.Holiday.ListHolidays)
			holidays.POST("", h.Holiday.CreateHoliday)
			holidays.POST("/auto-populate", h.Holiday.AutoPopulate)
			holidays.DELETE("/:id", h.Holiday.DeleteHoliday)
		}

		sprints := v1.Group("/sprints")
		{
			sprints.GET("", h.Sprint.ListSprints)
			sprints.GET("/:id", h.Sprint.GetSprint)
			sprints.POST("", h.Sprint.CreateSprint)
			sprints.POST("/:id/sync-actuals", h.Sprint.SyncActuals)
			sprints.PUT("/:id", h.Sprint.UpdateSprint)
			sprints.DELETE("/:id", h.Sprint.DeleteSprint)
		}

		projects := v1.Group("/projects")
		{
			projects.GET("", h.Project.ListProjects)
			projects.GET("/:id", h.Project.GetProject)
			projects.POST("", h.Project.CreateProject)
			projects.POST("/reorder", h.Project.ReorderProjects)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
		}

		allocations := v1.Group("/allocations")
		{
			allocations.GET("", h.Allocation.ListAllocations)
			allocations.POST("", h.Allocation.UpsertAllocation)
			allocations.POST("/recalculate", h.Allocation.RecalculateAllocation)
			allocations.POST("/move", h.Allocation.MoveAllocation)
			allocations.DELETE("", h.Allocation.DeleteAllocation)
		}

		pto := v1.Group("/pto")
		{
			pto.GET("", h.PTO.ListPTO)
			pto.POST("", h.PTO.CreatePTO)
			pto.DELETE("/:id", h.PTO.DeletePTO)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.GetSettings)
			settings.PUT("", h.Settings.UpsertSettings)
			settings.DELETE("", h.Settings.DeleteSettings)
		}

		capacity := v1.Group("/capacity")
		{
			capacity.GET("/quarter", h.Capacity.QuarterCapacity)
			capacity.GET("/sprints", h.Capacity.SprintCapacities)
		}

		linearGroup := v1.Group("/linear")
		{
			linearGroup.GET("/teams", h.Linear.ListTeams)
			linearGroup.GET("/projects", h.Linear.ListProjects)
			linearGroup.POST("/projects/bulk", h.Linear.BulkProjects)
			linearGroup.GET("/cycles", h.Linear.ListCycles)
			linearGroup.GET("/issues/:id", h.Linear.GetIssue)
			linearGroup.POST("/update-dates", h.Linear.UpdateProjectDates)
			linearGroup.POST("/update-field", h.Linear.UpdateProjectField)
		}

		export := v1.Group("/export")
		{
			export.GET("/plan", h.Export.ExportPlan)
			export.GET("/calendar", h.Export.ExportCalendar)
		}
	}

	return r
}
