package section

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// NewSevenEleven returns the distribution network case section. The numeric
// tolerance table ships as code defaults; toleranceXLSX may point at a
// workbook that overrides it and may be empty.
func NewSevenEleven(docsDir, toleranceXLSX string) Section {
	s := &sevenEleven{
		docPath: filepath.Join(docsDir, "7eleven case 2015.pdf"),
		tolerances: map[string]toleranceRule{
			"2.1":            {Expected: 16000.0 / 158.0, Tolerance: 2},
			"2.2_japan":      {Expected: 15000, Tolerance: 500},
			"2.2_us":         {Expected: 7500, Tolerance: 500},
			"2.2_difference": {Expected: 7500, Tolerance: 500},
		},
	}
	if toleranceXLSX != "" {
		if err := s.loadTolerancesXLSX(toleranceXLSX); err != nil {
			log.Printf("[section] tolerance workbook %s: %v (using defaults)", toleranceXLSX, err)
		}
	}
	return s
}

type sevenEleven struct {
	docPath    string
	tolerances map[string]toleranceRule
}

type toleranceRule struct {
	Expected  float64
	Tolerance float64
}

func (*sevenEleven) ID() string   { return SevenElevenID }
func (*sevenEleven) Name() string { return "7-Eleven Case 2015" }

func (s *sevenEleven) DocumentPath() string { return s.docPath }

func (*sevenEleven) SystemPrompt() string {
	return hintPrompt("distribution network design",
		"7-Eleven Japan Context: 16,000 stores, 158 DCs, Combined Delivery System (CDS), "+
			"3 deliveries/day, 10 stores/truck, ¥50,000 per truck/run, 3 temperature zones, "+
			"65% fresh food share, ~3 hour DC-store lead time. Compare with US operations and DSD alternatives.")
}

func (*sevenEleven) Questions() []string { return sevenElevenQuestions }

// ValidateNumeric checks a labeled answer against the tolerance table. The
// continue/fail feedback is task specific, so the switch carries the wording
// while the table carries the numbers.
func (s *sevenEleven) ValidateNumeric(taskID string, value float64) (bool, string) {
	rule, ok := s.tolerances[taskID]
	if !ok {
		return false, "Unknown task"
	}
	passed := math.Abs(value-rule.Expected) <= rule.Tolerance
	switch taskID {
	case "2.1":
		if passed {
			return true, fmt.Sprintf("Task 2.1 OK — your %.2f is within ±%g of the expected range.", value, rule.Tolerance)
		}
		return false, "Hint: compute average stores per DC by dividing total stores by number of DCs (i.e. total stores ÷ DCs). Check your division and rounding."
	case "2.2_japan":
		return passed, fmt.Sprintf("Japan cost: %.2f ¥/day", value)
	case "2.2_us":
		return passed, fmt.Sprintf("US cost: %.2f ¥/day", value)
	case "2.2_difference":
		if passed {
			return true, "Task 2.2 OK — your values are within the acceptable tolerance."
		}
		return false, "Hint: For each country compute (cost per truck ÷ stores per truck) × deliveries per store/day to get the per-store/day cost, then compare the two results. Check your arithmetic and units."
	}
	return false, "Unknown task"
}

// loadTolerancesXLSX overrides the tolerance table from a workbook. Sheet
// "Tolerances" carries task, expected, tolerance columns under a header row.
// Only tasks that already have a feedback shape can be overridden; other rows
// are skipped.
func (s *sevenEleven) loadTolerancesXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	rows, err := x.GetRows("Tolerances")
	if err != nil {
		return err
	}
	loaded := 0
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		task := strings.TrimSpace(row[0])
		expected, errE := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		tol, errT := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if errE != nil || errT != nil || tol < 0 {
			continue
		}
		if _, known := s.tolerances[task]; !known {
			continue
		}
		s.tolerances[task] = toleranceRule{Expected: expected, Tolerance: tol}
		loaded++
	}
	log.Printf("[section] tolerance workbook %s: %d overrides", path, loaded)
	return nil
}

var sevenElevenQuestions = []string{
	`Part 1 – Conceptual Foundations:

Explain how distribution network design affects efficiency and responsiveness for Seven-Eleven Japan. Answer the three questions below (≈150–200 words total):

1) Why does Seven-Eleven Japan operate so many stores in dense clusters?
2) Explain how the Combined Delivery System (CDS) supports efficiency and responsiveness compared to Direct Store Delivery (DSD).
3) Identify two cost factors and two service factors from the Session 5 framework that are directly impacted by this choice.`,

	`Part 2 – Quantitative Case Analysis: Evaluating the Combined Delivery System:

Use the case data provided. For each task provide your calculation and a short interpretation.

Task 2.1 – DC Utilization:
Compute average stores served per DC. (Show calculation)
Expected value: 16,000 / 158 ≈ 101.27 (acceptable range: 100–102).

Task 2.2 – Daily Delivery Cost per Store:
Compute cost per store/day for Japan and U.S. using: (cost per truck/run ÷ stores per truck/run) × deliveries per store/day.
Show the numeric values and the difference.
Expected: Japan = (50,000 ÷ 10) × 3 = ¥15,000; U.S. = (60,000 ÷ 8) × 1 = ¥7,500; Difference = ¥7,500 (tolerance ±500).`,

	`Task 2.3 – Multi-temperature Deliveries:
If each temperature zone requires separate runs, compute the cost per store/day and compare to a hypothetical DSD setup.
Show calculation for: 3 × (50,000 ÷ 10) × 3 = ¥45,000 per store/day for three separate-zone runs.
Compare to DSD example: 5 suppliers × ¥7,500 = ¥37,500.
Write a short discussion (~100 words) on which is more cost-efficient and why (include considerations: frequency, complexity, coordination).`,

	`Task 2.4 – Fresh Food Rationale:
Fresh/fast food ≈ 65% of sales. Explain how this share justifies high delivery frequency and cost (≈80 words).`,

	`Part 3 – Guided Chatbot Exploration (Chatbot-assisted inquiry):

Goal: Use the GPT chatbot (preloaded with case) to explore product-level suitability for DSD and potential problems.

Instructions and tasks:
1) Ask the chatbot at least two of the following prompts (copy the exact prompts you used and the bot replies):
   - "Which product categories in Seven-Eleven Japan's supply chain are most suitable for DSD?"
   - "What problems could arise if suppliers deliver directly to stores?"
   - "How would separating temperature zones affect daily routing and cost?"
2) Paste 1–2 chatbot exchanges (max 5 lines each).
3) Summarize what you learned (≤100 words).

Examples (students may adapt):
Student: "Which product categories are most suitable for DSD?"
Bot: "Low-value, low-velocity items with stable demand (e.g., beverages) and items where suppliers already have local distribution can be candidates for DSD because..."`,

	`Part 4 – Strategic Application: Expansion to Germany:

Scenario: Seven-Eleven Japan considers entering Germany. Using the Session 5 framework, recommend whether to replicate CDS, adopt hybrid CDS+DSD, or another design. Identify 2–3 promising German regions and justify (consider density, road infrastructure, consumer habits). (≈200 words)`,

	`Deliverables & Validation Requirements:

- Part 1: Short written answers (rubric).
- Part 2: Numeric answers for Tasks 2.1 and 2.2 must include calculations. Automatic validation rules: 2.1 expected ≈101 (±2); 2.2 expected difference ≈¥7,500 (±500). Provide raw numbers and steps.
- Part 3: Include at least one chatbot interaction snippet.
- Part 4: Written recommendation with region justification.

Students: mark each numeric answer clearly to enable auto-checking. Incomplete numeric steps will reduce auto score.`,

	`Instructor Notes & Chatbot Context (for graders/developers):

Context prompt (to preload to the chatbot):
"You are an SCM case assistant. Use the Seven-Eleven Japan (2015) case data and Session 5 slides to answer questions about CDS, DSD and trade-offs. Key facts: 16,000 stores; 158 DCs; 3 deliveries/day; 10 stores/truck; ¥50,000 per truck/run; 3 temperature zones; 65% fresh food share; avg DC–store lead time ~3 hrs."

Validation logic summary:
- Numeric tolerance: ±500 for yen amounts, ±2 for simple ratios.
- Require at least one chatbot interaction snippet for Part 3.
- Auto-check code example (students may include similar snippet in their submission).`,

	"Example validation code (for instructors or automated checks):\n" +
		"```python\n" +
		"stores_per_dc = 16000 / 158  # 101.27\n" +
		"japan_cost = (50000 / 10) * 3  # 15000\n" +
		"us_cost = (60000 / 8) * 1  # 7500\n" +
		"difference = japan_cost - us_cost  # 7500\n" +
		"multi_temp_cost = 3 * (50000 / 10) * 3  # 45000\n" +
		"```",

	`Scoring guidance (summary):
- Part 1: rubric 0–3 (concept clarity, links to framework).
- Part 2: numeric auto-check for 2.1/2.2 plus written interpretation (rubric).
- Part 3: relevance and correct use of case context in chatbot snippet + summary (rubric).
- Part 4: strategic reasoning (rubric).

Please follow the question ordering when students submit; the admin grader UI will surface numeric fields for auto-checking if students label answers clearly.`,
}
