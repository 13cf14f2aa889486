package controllerImp

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"scls/entities"
	"scls/pkg/admin/controller"
	answerrepo "scls/pkg/answer/repository"
	chatrepo "scls/pkg/chat/repository"
	graderepo "scls/pkg/grade/repository"
	"scls/pkg/ratelimit"
	"scls/pkg/section"
	studentrepo "scls/pkg/student/repository"
)

type AdminCtrl struct {
	students studentrepo.StudentRepository
	answers  answerrepo.AnswerRepository
	chats    chatrepo.ChatRepository
	grades   graderepo.GradeRepository
	limiter  *ratelimit.Limiter
	sections *section.Registry
}

func New(students studentrepo.StudentRepository, answers answerrepo.AnswerRepository, chats chatrepo.ChatRepository, grades graderepo.GradeRepository, limiter *ratelimit.Limiter, sections *section.Registry) controller.AdminController {
	return &AdminCtrl{students: students, answers: answers, chats: chats, grades: grades, limiter: limiter, sections: sections}
}

func (h *AdminCtrl) Students(c echo.Context) error {
	students, err := h.students.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, students)
}

// sectionView bundles everything the grading screen shows for one student in
// one section. LatestGrades carries the newest grade per question index.
type sectionView struct {
	Section      string            `json:"section"`
	Answers      []entities.Answer `json:"answers"`
	Chats        []entities.Chat   `json:"chats"`
	Grades       []entities.Grade  `json:"grades"`
	LatestGrades map[int]string    `json:"latest_grades"`
}

func (h *AdminCtrl) StudentDetail(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	student, err := h.students.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	views := make([]sectionView, 0, len(h.sections.All()))
	for _, sec := range h.sections.All() {
		v := sectionView{Section: sec.ID(), LatestGrades: map[int]string{}}
		v.Answers = h.listAnswers(email, sec.ID())
		v.Chats = h.listChats(email, sec.ID())
		v.Grades = h.listGrades(email, sec.ID())
		// grades arrive oldest first, so the last write per index wins
		for _, g := range v.Grades {
			v.LatestGrades[g.QuestionIdx] = g.Grade
		}
		views = append(views, v)
	}
	return c.JSON(http.StatusOK, map[string]any{"student": student, "sections": views})
}

// The list helpers degrade to empty slices so one bad read does not blank the
// whole grading screen.
func (h *AdminCtrl) listAnswers(email, sec string) []entities.Answer {
	out, err := h.answers.ListByEmail(email, sec)
	if err != nil {
		log.Printf("[admin] answers for %s/%s: %v", email, sec, err)
	}
	if out == nil {
		out = []entities.Answer{}
	}
	return out
}

func (h *AdminCtrl) listChats(email, sec string) []entities.Chat {
	out, err := h.chats.ListByEmail(email, sec)
	if err != nil {
		log.Printf("[admin] chats for %s/%s: %v", email, sec, err)
	}
	if out == nil {
		out = []entities.Chat{}
	}
	return out
}

func (h *AdminCtrl) listGrades(email, sec string) []entities.Grade {
	out, err := h.grades.ListByEmail(email, sec)
	if err != nil {
		log.Printf("[admin] grades for %s/%s: %v", email, sec, err)
	}
	if out == nil {
		out = []entities.Grade{}
	}
	return out
}

type gradeReq struct {
	Email       string `json:"email"`
	Section     string `json:"section"`
	QuestionIdx int    `json:"question_idx"`
	Grade       string `json:"grade"`
}

func (h *AdminCtrl) SaveGrade(c echo.Context) error {
	var req gradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	if req.Section == "" {
		req.Section = section.Ch3ID
	}
	if !h.sections.Known(req.Section) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown section"})
	}
	sec := h.sections.Resolve(req.Section)
	if req.QuestionIdx < 0 || req.QuestionIdx >= len(sec.Questions()) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid question index"})
	}
	g := &entities.Grade{Email: email, QuestionIdx: req.QuestionIdx, Grade: req.Grade, Section: sec.ID()}
	if err := h.grades.Save(g); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}

var exportHeader = []string{"email", "name", "section", "question_idx", "answer", "answer_submitted_at", "latest_grade", "grade_graded_at", "chat_history_json"}

func (h *AdminCtrl) Export(c echo.Context) error {
	subs, err := h.answers.ListAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	nameByEmail := map[string]string{}
	if students, err := h.students.All(); err != nil {
		log.Printf("[admin] export roster: %v", err)
	} else {
		for _, s := range students {
			nameByEmail[s.Email] = s.Name
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)
	chatCache := map[string]string{}
	for _, a := range subs {
		grade, gradedAt := "", ""
		if g, err := h.grades.Latest(a.Email, a.QuestionIdx, a.Section); err != nil {
			log.Printf("[admin] export grade for %s/%s q%d: %v", a.Email, a.Section, a.QuestionIdx, err)
		} else if g != nil {
			grade, gradedAt = g.Grade, g.GradedAt.Format(time.RFC3339)
		}
		key := a.Email + "|" + a.Section
		chatJSON, ok := chatCache[key]
		if !ok {
			chatJSON = h.chatJSON(a.Email, a.Section)
			chatCache[key] = chatJSON
		}
		_ = w.Write([]string{
			a.Email,
			nameByEmail[a.Email],
			a.Section,
			strconv.Itoa(a.QuestionIdx),
			a.Text,
			a.SubmittedAt.Format(time.RFC3339),
			grade,
			gradedAt,
			chatJSON,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="submissions_export.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

type chatEntry struct {
	Q   string    `json:"q"`
	Bot string    `json:"bot"`
	At  time.Time `json:"at"`
}

func (h *AdminCtrl) chatJSON(email, sec string) string {
	chats, err := h.chats.ListByEmail(email, sec)
	if err != nil {
		log.Printf("[admin] export chats for %s/%s: %v", email, sec, err)
		return "[]"
	}
	entries := make([]chatEntry, 0, len(chats))
	for _, ch := range chats {
		entries = append(entries, chatEntry{Q: ch.Question, Bot: ch.BotResponse, At: ch.CreatedAt})
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (h *AdminCtrl) RateLimitStatus(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	return c.JSON(http.StatusOK, h.limiter.Status(email))
}

type clearReq struct {
	Email string `json:"email"`
}

func (h *AdminCtrl) RateLimitClear(c echo.Context) error {
	var req clearReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		h.limiter.ClearAll()
		return c.JSON(http.StatusOK, map[string]string{"cleared": "all"})
	}
	h.limiter.Clear(email)
	return c.JSON(http.StatusOK, map[string]string{"cleared": email})
}
