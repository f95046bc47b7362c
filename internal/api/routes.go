package api

import (
	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

// Screens groups everything the routes dispatch to.
type Screens struct {
	Dashboard *screen.Dashboard
	Jobs      *screen.Jobs
	Skills    *screen.Skills
	Profile   *screen.Profile
	Settings  *screen.Settings
	Meter     *MeterHandler
}

// RegisterRoutes mounts one route group per screen. All of them resolve the
// workspace first.
func RegisterRoutes(router *gin.Engine, screens Screens) {
	dashboardHandler := NewDashboardHandler(screens.Dashboard)
	jobsHandler := NewJobsHandler(screens.Jobs)
	skillsHandler := NewSkillsHandler(screens.Skills)
	profileHandler := NewProfileHandler(screens.Profile)
	settingsHandler := NewSettingsHandler(screens.Settings)

	router.GET("/", Hero)

	app := router.Group("")
	app.Use(middleware.WorkspaceMiddleware())

	dashboard := app.Group("/dashboard")
	{
		dashboard.GET("", dashboardHandler.Show)
		dashboard.POST("/analyze", dashboardHandler.Analyze)
		dashboard.POST("/export", dashboardHandler.Export)
		dashboard.GET("/meter", screens.Meter.Stream)
	}

	jobs := app.Group("/jobs")
	{
		jobs.GET("", jobsHandler.Show)
		jobs.POST("/search", jobsHandler.Search)
	}

	skills := app.Group("/skills")
	{
		skills.GET("", skillsHandler.Show)
		skills.POST("/:index/status", skillsHandler.UpdateStatus)
		skills.POST("/recommend", skillsHandler.Recommend)
	}

	profile := app.Group("/profile")
	{
		profile.GET("", profileHandler.Show)
		profile.PATCH("", profileHandler.Update)
	}

	settings := app.Group("/settings")
	{
		settings.GET("", settingsHandler.Show)
		settings.POST("/theme", settingsHandler.ToggleTheme)
		settings.POST("/privacy", settingsHandler.TogglePrivacy)
		settings.DELETE("/data", settingsHandler.ClearData)
		settings.GET("/export", settingsHandler.ExportData)
	}
}
