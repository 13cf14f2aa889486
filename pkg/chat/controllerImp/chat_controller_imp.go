package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"scls/pkg/chat/controller"
	"scls/pkg/chat/repository"
	"scls/pkg/chat/service"
	"scls/pkg/section"
)

type ChatCtrl struct {
	svc      service.HintService
	repo     repository.ChatRepository
	sections *section.Registry
}

func New(svc service.HintService, repo repository.ChatRepository, sections *section.Registry) controller.ChatController {
	return &ChatCtrl{svc: svc, repo: repo, sections: sections}
}

type chatReq struct {
	Email             string `json:"email"`
	Section           string `json:"section"`
	Question          string `json:"question"`
	QuestionIdx       *int   `json:"question_idx"`
	AssignmentContext string `json:"assignment_context"`
}

// Chat answers one student question. The assignment context may be sent
// verbatim or referenced by question index. An empty or unrecognized section
// resolves through the registry, and the response echoes the resolved id the
// exchange is stored under.
func (h *ChatCtrl) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please enter a question."})
	}
	if req.Section == "" {
		req.Section = section.Ch3ID
	}
	sec := h.sections.Resolve(req.Section)

	assignment := req.AssignmentContext
	if assignment == "" && req.QuestionIdx != nil {
		questions := sec.Questions()
		if *req.QuestionIdx < 0 || *req.QuestionIdx >= len(questions) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid question index"})
		}
		assignment = questions[*req.QuestionIdx]
	}

	answer := h.svc.Hint(c.Request().Context(), service.Request{
		Email:             req.Email,
		SectionID:         sec.ID(),
		Question:          req.Question,
		AssignmentContext: assignment,
	})
	return c.JSON(http.StatusOK, map[string]string{"response": answer, "section": sec.ID()})
}

func (h *ChatCtrl) History(c echo.Context) error {
	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	sectionID := c.QueryParam("section")
	if sectionID == "" {
		sectionID = section.Ch3ID
	}
	chats, err := h.repo.ListByEmail(email, sectionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, chats)
}
