package section

import (
	"crypto/md5"
	"math"
	"math/big"
)

// Standard 40ft high cube figures and Germany-China freight rates the Phase 1
// and Phase 2 calculators default to.
const (
	stdPayloadKg = 26000.0
	stdVolumeM3  = 67.3
	stdTareKg    = 4200.0

	seaPerContainerEUR  = 400.0
	airPerKgEUR         = 1.50
	railPerContainerEUR = 3000.0
)

// Scenario is one Phase 4 disruption.
type Scenario struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impacts     []string `json:"impacts"`
}

// ContainerSpecs describes the standard 40ft high cube container.
type ContainerSpecs struct {
	Type         string   `json:"container_type"`
	LengthM      float64  `json:"internal_length_m"`
	WidthM       float64  `json:"internal_width_m"`
	HeightM      float64  `json:"internal_height_m"`
	MaxPayloadKg float64  `json:"max_payload_kg"`
	MaxVolumeM3  float64  `json:"max_volume_m3"`
	TareWeightKg float64  `json:"tare_weight_kg"`
	Notes        []string `json:"notes"`
}

// DensityGuidance helps students research powder density for Phase 1.
type DensityGuidance struct {
	TypicalRanges      map[string]string `json:"typical_ranges"`
	Factors            []string          `json:"factors_affecting_density"`
	ResearchTips       []string          `json:"research_tips"`
	RecommendedMinKgM3 float64           `json:"recommended_min_kg_m3"`
	RecommendedMaxKgM3 float64           `json:"recommended_max_kg_m3"`
	TypicalKgM3        float64           `json:"typical_kg_m3"`
}

// VolumeInput feeds the Phase 1 container calculator. Zero limits fall back
// to the standard container specs so students may bring their own research.
type VolumeInput struct {
	Drinks        int     `json:"drinks_estimate"`
	GramsPerDrink float64 `json:"powder_per_drink_grams"`
	DensityKgM3   float64 `json:"powder_density_kg_m3"`
	WeightLimitKg float64 `json:"container_weight_limit_kg"`
	VolumeLimitM3 float64 `json:"container_volume_limit_m3"`
}

// VolumeReport is the calculator result. Containers needed is driven by
// whichever constraint binds first.
type VolumeReport struct {
	TotalPowderKg        float64 `json:"total_powder_kg"`
	TotalVolumeM3        float64 `json:"total_volume_m3"`
	ContainersByWeight   float64 `json:"containers_by_weight"`
	ContainersByVolume   float64 `json:"containers_by_volume"`
	ContainersNeeded     float64 `json:"containers_needed"`
	LimitingFactor       string  `json:"limiting_factor"`
	WeightUtilizationPct float64 `json:"weight_utilization_percent"`
	VolumeUtilizationPct float64 `json:"volume_utilization_percent"`
	WeightLimitKg        float64 `json:"container_weight_limit_kg"`
	VolumeLimitM3        float64 `json:"container_volume_limit_m3"`
}

// TransportCosts totals each Phase 2 mode for a shipment.
type TransportCosts struct {
	SeaTotal  float64 `json:"sea_total"`
	AirTotal  float64 `json:"air_total"`
	RailTotal float64 `json:"rail_total"`
}

// DimensionReview grades one researched container figure.
type DimensionReview struct {
	Value             float64 `json:"value"`
	Reasonable        bool    `json:"reasonable"`
	Typical           bool    `json:"typical"`
	Feedback          string  `json:"feedback"`
	StandardReference float64 `json:"standard_reference"`
}

// ResearchReview grades a student's container research as a whole.
type ResearchReview struct {
	Weight         DimensionReview `json:"weight_analysis"`
	Volume         DimensionReview `json:"volume_analysis"`
	BothReasonable bool            `json:"both_reasonable"`
	BothTypical    bool            `json:"both_typical"`
	ResearchScore  string          `json:"research_score"`
}

// Phase2Inputs are the student's working figures for the mode comparison.
type Phase2Inputs struct {
	Containers    float64 `json:"containers"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalVolumeM3 float64 `json:"total_volume_m3"`
	WACCRate      float64 `json:"wacc_rate"`
}

// Phase2Review reports whether the figures are usable and what to do next.
type Phase2Review struct {
	Inputs    Phase2Inputs `json:"inputs"`
	Valid     bool         `json:"valid"`
	Errors    []string     `json:"errors"`
	NextSteps []string     `json:"next_steps"`
}

// NewDragonFire returns the interactive supply chain design case. It has no
// grounding document; the case facts live in the system prompt and the
// planning math lives in the toolkit methods.
func NewDragonFire() Section {
	return dragonFire{}
}

type dragonFire struct{}

func (dragonFire) ID() string           { return DragonFireID }
func (dragonFire) Name() string         { return "Dragon Fire Case" }
func (dragonFire) DocumentPath() string { return "" }
func (dragonFire) Questions() []string  { return dragonFireQuestions }

func (dragonFire) ValidateNumeric(string, float64) (bool, string) {
	return false, "Unknown task"
}

func (dragonFire) SystemPrompt() string {
	return hintPrompt("international supply chain design",
		"Dragon Fire Case Context: Blue Dragon (German startup) is launching Dragon Fire energy drink in China as their first market. "+
			"Key facts: 25 Yuan price point for bars/restaurants (~3.30€), future supermarket price 10 Yuan (~1.30€), "+
			"powder produced in Germany and shipped to China, mixed with water and bottled/canned in China, "+
			"two variants (with sugar and sugar-free), distributed to bars/clubs/restaurants initially (no supermarkets yet). "+
			"Transportation costs: Air cargo €1.50/kg (3 days), Sea freight €400 per 40ft container (30 days), "+
			"Rail transport €3,000 per 40ft container (15 days). Main Chinese ports: Shanghai, Ningbo, Shenzhen. "+
			"For Phase 1: Students must estimate their own sales targets and powder requirements per drink. "+
			"Guide them to consider market research methods, comparable products, and realistic startup projections. "+
			"For powder density, typical energy drink powders range 450-650 kg/m³. Standard 40ft containers: "+
			"26,000 kg payload capacity, 67.3 m³ volume. Students should research and justify their estimates. "+
			"Consider: market entry risks, regulatory requirements, temperature sensitivity, "+
			"premium market positioning, supply chain disruptions. Guide students through systematic analysis "+
			"of volume calculations, mode selection, risk management, and total cost optimization.")
}

// AssignScenario deterministically maps an email to one of the three
// disruptions so a student always sees the same case.
func (dragonFire) AssignScenario(email string) Scenario {
	sum := md5.Sum([]byte(email))
	idx := new(big.Int).Mod(new(big.Int).SetBytes(sum[:]), big.NewInt(3)).Int64()
	return dragonFireScenarios[idx]
}

func (dragonFire) Scenarios() []Scenario { return dragonFireScenarios }

func (dragonFire) ContainerSpecs() ContainerSpecs {
	return ContainerSpecs{
		Type:         "40ft High Cube Container",
		LengthM:      12.032,
		WidthM:       2.352,
		HeightM:      2.385,
		MaxPayloadKg: stdPayloadKg,
		MaxVolumeM3:  stdVolumeM3,
		TareWeightKg: stdTareKg,
		Notes: []string{
			"Payload capacity may vary by shipping line",
			"Actual usable volume depends on cargo packaging",
			"Weight distribution must comply with axle load limits",
		},
	}
}

func (dragonFire) DensityGuidance() DensityGuidance {
	return DensityGuidance{
		TypicalRanges: map[string]string{
			"protein_powder":          "400-600 kg/m³",
			"sugar_powder":            "600-800 kg/m³",
			"vitamin_mineral_mix":     "300-500 kg/m³",
			"energy_drink_powder_mix": "450-650 kg/m³",
		},
		Factors: []string{
			"Particle size and distribution",
			"Moisture content",
			"Compaction during transport",
			"Ingredient composition (sugar vs sugar-free)",
			"Processing method (spray-dried, freeze-dried, etc.)",
		},
		ResearchTips: []string{
			"Consider the specific ingredients in energy drink powder",
			"Account for both sugar and sugar-free variants",
			"Look for industry standards for beverage powder densities",
			"Consider packaging method (loose vs compressed)",
		},
		RecommendedMinKgM3: 450,
		RecommendedMaxKgM3: 650,
		TypicalKgM3:        550,
	}
}

func (dragonFire) VolumeMetrics(in VolumeInput) VolumeReport {
	weightLimit := in.WeightLimitKg
	if weightLimit <= 0 {
		weightLimit = stdPayloadKg
	}
	volumeLimit := in.VolumeLimitM3
	if volumeLimit <= 0 {
		volumeLimit = stdVolumeM3
	}

	totalPowderKg := float64(in.Drinks) * in.GramsPerDrink / 1000
	totalVolumeM3 := 0.0
	if in.DensityKgM3 > 0 {
		totalVolumeM3 = totalPowderKg / in.DensityKgM3
	}
	byWeight := totalPowderKg / weightLimit
	byVolume := totalVolumeM3 / volumeLimit
	needed := math.Max(byWeight, byVolume)

	limiting := "volume"
	if byWeight > byVolume {
		limiting = "weight"
	}

	rep := VolumeReport{
		TotalPowderKg:      round2(totalPowderKg),
		TotalVolumeM3:      round2(totalVolumeM3),
		ContainersByWeight: round2(byWeight),
		ContainersByVolume: round2(byVolume),
		ContainersNeeded:   round2(needed),
		LimitingFactor:     limiting,
		WeightLimitKg:      weightLimit,
		VolumeLimitM3:      volumeLimit,
	}
	if needed > 0 {
		rep.WeightUtilizationPct = round1(totalPowderKg / needed / weightLimit * 100)
		rep.VolumeUtilizationPct = round1(totalVolumeM3 / needed / volumeLimit * 100)
	}
	return rep
}

func (dragonFire) TransportCosts(containers, totalKg float64) TransportCosts {
	return TransportCosts{
		SeaTotal:  containers * seaPerContainerEUR,
		AirTotal:  totalKg * airPerKgEUR,
		RailTotal: containers * railPerContainerEUR,
	}
}

func (dragonFire) ValidateContainerResearch(weightKg, volumeM3 float64) ResearchReview {
	wReasonable := weightKg >= 20000 && weightKg <= 30000
	vReasonable := volumeM3 >= 50 && volumeM3 <= 80
	wTypical := weightKg >= 24000 && weightKg <= 27000
	vTypical := volumeM3 >= 58 && volumeM3 <= 68

	return ResearchReview{
		Weight: DimensionReview{
			Value:             weightKg,
			Reasonable:        wReasonable,
			Typical:           wTypical,
			Feedback:          weightFeedback(weightKg),
			StandardReference: stdPayloadKg,
		},
		Volume: DimensionReview{
			Value:             volumeM3,
			Reasonable:        vReasonable,
			Typical:           vTypical,
			Feedback:          volumeFeedback(volumeM3),
			StandardReference: stdVolumeM3,
		},
		BothReasonable: wReasonable && vReasonable,
		BothTypical:    wTypical && vTypical,
		ResearchScore:  researchScore(wReasonable, vReasonable, wTypical, vTypical),
	}
}

func (dragonFire) CheckPhase2Inputs(in Phase2Inputs) Phase2Review {
	var errs []string
	if in.Containers <= 0 {
		errs = append(errs, "Number of containers must be positive")
	}
	if in.TotalWeightKg <= 0 {
		errs = append(errs, "Total weight must be positive")
	}
	if in.TotalVolumeM3 <= 0 {
		errs = append(errs, "Total volume must be positive")
	}
	if in.WACCRate < 0.05 || in.WACCRate > 0.30 {
		errs = append(errs, "WACC rate should be between 5% and 30% (0.05 to 0.30)")
	}
	return Phase2Review{
		Inputs: in,
		Valid:  len(errs) == 0,
		Errors: errs,
		NextSteps: []string{
			"Calculate transportation cost for each mode using the given rates",
			"Calculate cost of capital based on your WACC assumption",
			"Evaluate all modes against the 5 factors: Cost, Speed, Reliability, Risk, Environment",
			"Choose your preferred transportation mode with 3 specific justifications",
		},
	}
}

func weightFeedback(kg float64) string {
	switch {
	case kg < 20000:
		return "Too low - Check for maximum payload capacity, not container weight"
	case kg > 30000:
		return "Too high - This exceeds typical container weight limits"
	case kg >= 24000 && kg <= 27000:
		return "Excellent - This is within typical range for 40ft containers"
	default:
		return "Acceptable - Consider checking multiple shipping line specifications"
	}
}

func volumeFeedback(m3 float64) string {
	switch {
	case m3 < 50:
		return "Too low - Check if you found standard container vs high cube"
	case m3 > 80:
		return "Too high - This exceeds typical container volumes"
	case m3 >= 58 && m3 <= 68:
		return "Excellent - Correct range for 40ft containers"
	default:
		return "Acceptable - Consider standard (58m³) vs high cube (67m³) containers"
	}
}

func researchScore(wReasonable, vReasonable, wTypical, vTypical bool) string {
	switch {
	case wTypical && vTypical:
		return "A - Excellent research with typical values"
	case wReasonable && vReasonable:
		return "B - Good research within acceptable ranges"
	case wReasonable || vReasonable:
		return "C - Partial success, review the other specification"
	default:
		return "D - Please review your research sources"
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

var dragonFireScenarios = []Scenario{
	{
		Number:      1,
		Title:       "Suez Canal Blockage",
		Description: "A major ship blocks the Suez Canal for 3 weeks (like Ever Given in 2021). This affects all sea freight shipments from Europe to Asia.",
		Impacts: []string{
			"Sea freight delays of 3+ weeks",
			"Alternative routes around Africa add 2 weeks and significant cost",
			"Air freight capacity becomes scarce and expensive",
			"Startup's limited inventory runs out, threatening market launch",
		},
	},
	{
		Number:      2,
		Title:       "Disease Outbreak",
		Description: "All ports except the Shanghai port close for 2 weeks due to a disease outbreak. This forces all shipments to be redirected to Shanghai.",
		Impacts: []string{
			"All shipments diverted to Shanghai port only",
			"Shanghai port becomes heavily congested with increased traffic",
			"Longer waiting times and increased port handling costs",
			"Startup's limited cash flow strained by additional costs and delays",
		},
	},
	{
		Number:      3,
		Title:       "Regulatory Challenge",
		Description: "China prohibits the import of sugar, which is contained in the powder, pending food safety review. This affects all imported products containing sugar.",
		Impacts: []string{
			"All Dragon Fire shipments with sugar variant blocked at border",
			"Need to reformulate products or obtain new certifications",
			"Existing sugar-containing inventory held in customs or rejected",
			"Market launch delayed, affecting startup's funding and timeline",
		},
	},
}

var dragonFireQuestions = []string{
	`Phase 1: Market and Volume Estimation

Design the supply chain for Dragon Fire energy drink from Germany to China.

**Case Background**: Blue Dragon (German startup) wants to launch Dragon Fire energy drink in China as their first market. Initially targeting bars and restaurants only (no supermarkets yet) at 25 Yuan (~3.30€) per drink, with future supermarket price of 10 Yuan (~1.30€). Two variants: with sugar and sugar-free.

**Your Task**: Conduct a Market and volume estimate:

1. **Sales Estimation**: Based on the case description, you need to provide an estimate of how many units of drinks Blue Dragon will sell in Year 1.
   You also need to provide a reasonable estimate for how many grams of powder each unit will require.

2. Aparrt from weight, volume is also essential, so the density of the powder is needed to calculate space requirements.
   Please use the tool to derive:
   - Total powder needed (kg)
   - Estimated weight and volume limit of a 40ft container in kg payload and in cubic meters (research appropriate powder density)
   - Number of standard shipping containers needed when using rail or sea transportation`,

	`Phase 2: Transportation Mode Comparison

Compare different ways to get Dragon Fire powder from Germany to China.

**Available Options**:
- **Sea Freight**: 30 days, €400 per 40ft container
- **Air Freight**: 3 days, €1.50 per kg
- **Rail Freight**: 15 days, €3,000 per 40ft container
- **Multimodal**: Combinations of above

**Your Analysis**:

**Calculate and Compare**: Using the transportation rates above:
- Calculate transportation cost for each mode
- Calculate cost of capital (inventory holding cost during transit)
- Consider total cost = transportation cost + cost of capital

**Mode Evaluation**: Evaluate each transportation mode based on:
- **Cost**: Total cost per kg
- **Speed to Market**: Time to reach customers
- **Reliability**: Service consistency and predictability
- **Risk Level**: Potential disruptions and vulnerabilities
- **Environmental Impact**: CO2 emissions and sustainability`,

	`Phase 3: Supply Chain Design

Design your complete China operation for this startup market entry.

**Key Decisions to Make**:

1. **Entry Port Selection**:
   - Compare Shanghai, Ningbo, and Shenzhen ports
   - Consider: proximity to target bar/restaurant markets, port efficiency, inland transport costs
   - Choose one port and justify your selection

2. **Mixing/Bottling Facility Location**:
   - Where in China will you mix powder with water and bottle/can the drinks?
   - Consider: labor costs, regulations, proximity to bars/restaurants, water quality, startup budget constraints
   - Identify 2-3 potential cities and rank them.`,

	`Phase 4: Risk Management & Scenario Planning

Your startup supply chain faces a real-world disruption. How will you respond?

Develop a comprehensive response plan for the disruptive scenario given below.

**Your Response Plan** (for your assigned disruption):
1. **Immediate Actions** (first 48 hours) - consider startup's limited resources
2. **Short-term Mitigation** (1-4 weeks) - cash flow and customer retention focus
3. **Long-term Adaptation** (1-6 months) - strategic pivots for startup survival
4. **Cost Impact** (estimated additional costs and impact on startup budget)

**Risk Prevention**: Design 2 proactive measures to reduce vulnerability considering startup constraints and limited market presence.`,
}
