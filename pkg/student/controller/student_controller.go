package controller

import "github.com/labstack/echo/v4"

type StudentController interface {
	Register(c echo.Context) error
}
