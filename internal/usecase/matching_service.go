package usecase

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/grocertrack/backend/internal/domain"
)

// Default matcher tuning. Threshold is a raw-distance bound: candidates are
// kept when score >= 1 - threshold, so 0.4 accepts roughly 60% similarity.
const (
	defaultMatchThreshold = 0.4
	defaultMaxDistance    = 100
	defaultMinMatchLength = 2
	maxMatchResults       = 3

	exactMatchScore     = 1.0
	substringMatchScore = 0.9
)

// MatcherConfig holds configuration for the matching service
type MatcherConfig struct {
	// Threshold is the maximum raw distance (1 - score) to keep a candidate.
	Threshold float64
	// MaxDistance caps the normalized length compared, in characters.
	MaxDistance int
	// MinMatchLength is the minimum normalized query length worth matching.
	MinMatchLength int
	Logger         *zap.Logger
}

// MatchingService scores a query string against candidate item names and
// ranks the results. Scores derive from string similarity only; there is no
// feedback loop, so identical inputs always produce identical output.
type MatchingService struct {
	threshold      float64
	maxDistance    int
	minMatchLength int
	log            *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatcherConfig) *MatchingService {
	threshold := config.Threshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultMatchThreshold
	}
	maxDistance := config.MaxDistance
	if maxDistance <= 0 {
		maxDistance = defaultMaxDistance
	}
	minLen := config.MinMatchLength
	if minLen <= 0 {
		minLen = defaultMinMatchLength
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchingService{
		threshold:      threshold,
		maxDistance:    maxDistance,
		minMatchLength: minLen,
		log:            logger,
	}
}

// Match scores query against every candidate's display name and returns the
// top matches, best first, at most three. Empty or too-short queries and
// empty candidate lists yield an empty slice, never an error. Ties keep the
// original candidate order.
func (s *MatchingService) Match(query string, candidates []domain.MatchCandidate) []domain.MatchResult {
	normalized := NormalizeItemName(query)
	if len(normalized) < s.minMatchLength || len(candidates) == 0 {
		return nil
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		score := s.similarity(normalized, NormalizeItemName(c.ItemName))
		if 1-score > s.threshold {
			continue
		}
		results = append(results, domain.MatchResult{
			Item:       c,
			Score:      score,
			Confidence: domain.ConfidenceForScore(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxMatchResults {
		results = results[:maxMatchResults]
	}

	if len(results) > 0 {
		s.log.Debug("fuzzy match",
			zap.String("query", query),
			zap.Int("candidates", len(candidates)),
			zap.String("best", results[0].Item.ItemName),
			zap.Float64("score", results[0].Score),
		)
	}
	return results
}

// BestMatch returns the single top match, or nil when nothing matched or the
// top match's confidence is low. Callers must not auto-accept weak matches;
// a nil here pushes the decision back to the user.
func (s *MatchingService) BestMatch(query string, candidates []domain.MatchCandidate) *domain.MatchResult {
	matches := s.Match(query, candidates)
	if len(matches) == 0 {
		return nil
	}
	best := matches[0]
	if best.Confidence == domain.ConfidenceLow {
		return nil
	}
	return &best
}

// similarity scores two normalized strings in [0,1]: 1.0 for equality, 0.9
// for substring containment, otherwise edit distance scaled by the longer
// length. Inputs longer than maxDistance are truncated before scoring.
func (s *MatchingService) similarity(a, b string) float64 {
	if len(a) > s.maxDistance {
		a = a[:s.maxDistance]
	}
	if len(b) > s.maxDistance {
		b = b[:s.maxDistance]
	}
	if a == "" || b == "" {
		if a == b {
			return exactMatchScore
		}
		return 0
	}
	if a == b {
		return exactMatchScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringMatchScore
	}

	distance := levenshteinDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	score := 1 - float64(distance)/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
