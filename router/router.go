package router

import (
	"github.com/labstack/echo/v4"

	"scls/pkg/middleware"
)

func New(
	e *echo.Echo,
	studentCtrl interface{ Register(echo.Context) error },
	sectionCtrl interface {
		List(echo.Context) error
		Questions(echo.Context) error
		Validate(echo.Context) error
		Scenario(echo.Context) error
		ContainerGuide(echo.Context) error
		VolumeMetrics(echo.Context) error
		TransportCosts(echo.Context) error
		ContainerResearch(echo.Context) error
		Phase2Check(echo.Context) error
	},
	answerCtrl interface {
		Submit(echo.Context) error
		List(echo.Context) error
	},
	chatCtrl interface {
		Chat(echo.Context) error
		History(echo.Context) error
	},
	adminCtrl interface {
		Students(echo.Context) error
		StudentDetail(echo.Context) error
		SaveGrade(echo.Context) error
		Export(echo.Context) error
		RateLimitStatus(echo.Context) error
		RateLimitClear(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	adminPassword string,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.POST("/students", studentCtrl.Register)

	e.GET("/sections", sectionCtrl.List)
	s := e.Group("/sections")
	s.GET("/:id/questions", sectionCtrl.Questions)
	s.POST("/:id/answers", answerCtrl.Submit)
	s.GET("/:id/answers", answerCtrl.List)
	s.POST("/:id/validate", sectionCtrl.Validate)
	s.GET("/:id/scenario", sectionCtrl.Scenario)
	s.GET("/:id/container-guide", sectionCtrl.ContainerGuide)
	s.POST("/:id/tools/volume-metrics", sectionCtrl.VolumeMetrics)
	s.POST("/:id/tools/transport-costs", sectionCtrl.TransportCosts)
	s.POST("/:id/tools/container-research", sectionCtrl.ContainerResearch)
	s.POST("/:id/tools/phase2-check", sectionCtrl.Phase2Check)

	e.POST("/chat", chatCtrl.Chat)
	e.GET("/chat/history", chatCtrl.History)

	admin := e.Group("/admin", middleware.AdminAuth(adminPassword))
	admin.GET("/students", adminCtrl.Students)
	admin.GET("/students/:email", adminCtrl.StudentDetail)
	admin.POST("/grades", adminCtrl.SaveGrade)
	admin.GET("/export", adminCtrl.Export)
	admin.GET("/ratelimits/:email", adminCtrl.RateLimitStatus)
	admin.POST("/ratelimits/clear", adminCtrl.RateLimitClear)

	return e
}
