package controller

import "github.com/labstack/echo/v4"

type AnswerController interface {
	Submit(c echo.Context) error
	List(c echo.Context) error
}
