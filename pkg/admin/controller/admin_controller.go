package controller

import "github.com/labstack/echo/v4"

type AdminController interface {
	Students(c echo.Context) error
	StudentDetail(c echo.Context) error
	SaveGrade(c echo.Context) error
	Export(c echo.Context) error
	RateLimitStatus(c echo.Context) error
	RateLimitClear(c echo.Context) error
}
