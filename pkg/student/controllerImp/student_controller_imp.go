package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"scls/entities"
	"scls/pkg/student/controller"
	"scls/pkg/student/repository"
)

type StudentCtrl struct{ repo repository.StudentRepository }

func New(repo repository.StudentRepository) controller.StudentController { return &StudentCtrl{repo} }

type registerReq struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

func (h *StudentCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || !strings.HasSuffix(email, ".whu.edu") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Please enter your name and a valid WHU email (ending with .whu.edu) to start the assignment.",
		})
	}
	s := &entities.Student{Email: email, Name: req.Name, RollNumber: req.RollNumber}
	if err := h.repo.Upsert(s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}
