package section

import "path/filepath"

// NewCh3 returns the inventory management section. Retrieval context comes
// from the session 3 lecture deck.
func NewCh3(docsDir string) Section {
	return ch3{docPath: filepath.Join(docsDir, "WHU_BSc_Fall 2024_session 3.pdf")}
}

type ch3 struct{ docPath string }

func (ch3) ID() string   { return Ch3ID }
func (ch3) Name() string { return "Ch.3 – Inventory Management" }

func (s ch3) DocumentPath() string { return s.docPath }

func (ch3) SystemPrompt() string {
	return hintPrompt("inventory management models",
		"Focus on EOQ (Economic Order Quantity), Safety Stock, and Newsboy Model concepts.")
}

func (ch3) ValidateNumeric(string, float64) (bool, string) { return false, "Unknown task" }

func (ch3) Questions() []string { return ch3Questions }

var ch3Questions = []string{
	`Part A: Economic Order Quantity (EOQ)

A retailer sells 52,000 units of printer paper per year.
Ordering cost per order = €150
Annual holding cost = 20% of item cost
Item cost per unit = €2.

1. Compute the EOQ.
2. Calculate the total annual cost (ordering + holding + purchasing).
3. Discuss how EOQ changes if order cost halves or holding cost doubles.
4. What practical factors could make EOQ deviate from optimal levels (e.g., quantity discounts, batch constraints, uncertainty)?`,

	`Part B: Safety Inventory

Weekly demand for a component is normally distributed with
Mean = 500 units, Standard deviation = 80 units.
Lead time = 3 weeks. Desired cycle service level = 95%.

1. Compute the safety stock.
2. Find the reorder point.
3. How would your answer change if lead time variability increases by 50%?
4. Interpret what a 95% cycle service level means operationally.`,

	`Part C: Newsboy Model (Single-Period)

A bakery produces croissants daily.
Cost to produce one croissant = €1.
Selling price = €2.50.
Unsold croissants are discarded with no salvage value.
Daily demand is normally distributed with mean = 200, SD = 40.

1. Determine the critical ratio.
2. Find the z-value and optimal order quantity.
3. Compute the expected number of unsold and lost sales.
4. Explain what would change if leftover croissants could be sold next day at €0.50.
5. Compare the Newsboy and EOQ models. When is each appropriate in real business contexts?`,

	`Optional Integrative Task

You are a supply chain manager at a stationery company.
Using EOQ, Safety Inventory, and the Newsboy Model:

Identify which model applies to your regular office supplies, fast-moving promotional items, and seasonal products.

Justify your reasoning in 200–300 words.`,
}
