package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"scls/pkg/section"
	"scls/pkg/section/controller"
)

type SectionCtrl struct {
	sections *section.Registry
}

func New(sections *section.Registry) controller.SectionController {
	return &SectionCtrl{sections: sections}
}

type sectionInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	HasDocument   bool   `json:"has_document"`
	QuestionCount int    `json:"question_count"`
}

func (h *SectionCtrl) List(c echo.Context) error {
	all := h.sections.All()
	out := make([]sectionInfo, 0, len(all))
	for _, s := range all {
		out = append(out, sectionInfo{
			ID:            s.ID(),
			Name:          s.Name(),
			HasDocument:   s.DocumentPath() != "",
			QuestionCount: len(s.Questions()),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SectionCtrl) Questions(c echo.Context) error {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	sec := h.sections.Resolve(id)
	return c.JSON(http.StatusOK, map[string]any{"section": sec.ID(), "questions": sec.Questions()})
}

type validateReq struct {
	Task  string  `json:"task"`
	Value float64 `json:"value"`
}

func (h *SectionCtrl) Validate(c echo.Context) error {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	var req validateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if strings.TrimSpace(req.Task) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "task required"})
	}
	passed, feedback := h.sections.Resolve(id).ValidateNumeric(req.Task, req.Value)
	return c.JSON(http.StatusOK, map[string]any{"task": req.Task, "passed": passed, "feedback": feedback})
}

func (h *SectionCtrl) Scenario(c echo.Context) error {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	assigner, ok := h.sections.Resolve(id).(section.ScenarioAssigner)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "section has no scenarios"})
	}
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	return c.JSON(http.StatusOK, assigner.AssignScenario(email))
}

// toolkit resolves :id to a section with planning calculators. When it writes
// the 404 itself it returns a nil toolkit and the handler just forwards err.
func (h *SectionCtrl) toolkit(c echo.Context) (section.LogisticsToolkit, error) {
	id := c.Param("id")
	if !h.sections.Known(id) {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "unknown section"})
	}
	kit, ok := h.sections.Resolve(id).(section.LogisticsToolkit)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "section has no planning tools"})
	}
	return kit, nil
}

func (h *SectionCtrl) ContainerGuide(c echo.Context) error {
	kit, err := h.toolkit(c)
	if kit == nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"container_specs":  kit.ContainerSpecs(),
		"density_guidance": kit.DensityGuidance(),
	})
}

func (h *SectionCtrl) VolumeMetrics(c echo.Context) error {
	kit, err := h.toolkit(c)
	if kit == nil {
		return err
	}
	var in section.VolumeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return c.JSON(http.StatusOK, kit.VolumeMetrics(in))
}

type transportReq struct {
	Containers    float64 `json:"containers"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

func (h *SectionCtrl) TransportCosts(c echo.Context) error {
	kit, err := h.toolkit(c)
	if kit == nil {
		return err
	}
	var req transportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return c.JSON(http.StatusOK, kit.TransportCosts(req.Containers, req.TotalWeightKg))
}

type researchReq struct {
	WeightKg float64 `json:"container_weight_kg"`
	VolumeM3 float64 `json:"container_volume_m3"`
}

func (h *SectionCtrl) ContainerResearch(c echo.Context) error {
	kit, err := h.toolkit(c)
	if kit == nil {
		return err
	}
	var req researchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return c.JSON(http.StatusOK, kit.ValidateContainerResearch(req.WeightKg, req.VolumeM3))
}

func (h *SectionCtrl) Phase2Check(c echo.Context) error {
	kit, err := h.toolkit(c)
	if kit == nil {
		return err
	}
	var in section.Phase2Inputs
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return c.JSON(http.StatusOK, kit.CheckPhase2Inputs(in))
}
