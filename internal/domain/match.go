package domain

// Confidence buckets a similarity score into a coarse tier for display and
// auto-accept decisions.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceForScore maps a similarity score in [0,1] to a tier.
// high >= 0.8, medium >= 0.5, low otherwise.
func ConfidenceForScore(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// MatchCandidate is an existing record eligible for fuzzy matching. The
// matcher only reads it; the snapshot is owned by the caller.
type MatchCandidate struct {
	ID          string  `json:"id"`
	ItemName    string  `json:"item_name"`
	Category    string  `json:"category,omitempty"`
	TargetPrice float64 `json:"target_price,omitempty"`
	UnitType    string  `json:"unit_type,omitempty"`
}

// MatchResult is one ranked outcome of a match attempt. Score is 1.0 for an
// identical string and decreases with edit distance.
type MatchResult struct {
	Item       MatchCandidate `json:"item"`
	Score      float64        `json:"score"`
	Confidence Confidence     `json:"confidence"`
}
