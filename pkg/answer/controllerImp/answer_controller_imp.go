package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"scls/entities"
	"scls/pkg/answer/controller"
	"scls/pkg/answer/repository"
	"scls/pkg/section"
)

type AnswerCtrl struct {
	repo     repository.AnswerRepository
	sections *section.Registry
}

func New(repo repository.AnswerRepository, sections *section.Registry) controller.AnswerController {
	return &AnswerCtrl{repo: repo, sections: sections}
}

type submitReq struct {
	Email       string `json:"email"`
	QuestionIdx int    `json:"question_idx"`
	Answer      string `json:"answer"`
}

func (h *AnswerCtrl) Submit(c echo.Context) error {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	sec := h.sections.Resolve(id)
	if req.QuestionIdx < 0 || req.QuestionIdx >= len(sec.Questions()) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid question index"})
	}
	a := &entities.Answer{Email: email, QuestionIdx: req.QuestionIdx, Text: req.Answer, Section: sec.ID()}
	if err := h.repo.Save(a); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AnswerCtrl) List(c echo.Context) error {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	answers, err := h.repo.ListByEmail(email, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, answers)
}
