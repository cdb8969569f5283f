package domain

// WeightEstimate is a static reference datum: the average weight in pounds of
// one "each" of a common grocery item. Loaded once at startup, never mutated.
type WeightEstimate struct {
	ItemKey    string     `json:"item_key"`
	Pounds     float64    `json:"pounds"`
	Confidence Confidence `json:"confidence"`
	Note       string     `json:"note,omitempty"`
}

// PerWeightPrice is a per-pound price derived from a per-each price and an
// average weight. It is an estimate, never an authoritative conversion;
// callers should surface the estimate's confidence tier to the user.
type PerWeightPrice struct {
	PricePerPound float64        `json:"price_per_pound"`
	Estimate      WeightEstimate `json:"estimate"`
}
