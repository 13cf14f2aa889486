package controller

import "github.com/labstack/echo/v4"

type SectionController interface {
	List(c echo.Context) error
	Questions(c echo.Context) error
	Validate(c echo.Context) error
	Scenario(c echo.Context) error
	ContainerGuide(c echo.Context) error
	VolumeMetrics(c echo.Context) error
	TransportCosts(c echo.Context) error
	ContainerResearch(c echo.Context) error
	Phase2Check(c echo.Context) error
}
