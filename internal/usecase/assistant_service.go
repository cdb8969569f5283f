package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grocertrack/backend/internal/domain"
)

const assistantCachePrefix = "intent:"

// AssistantService turns free-text user input into a typed intent. Cheap
// keyword patterns run first, then a cache of recent classifications, and
// only then the hosted classifier. Classifier failures never surface as
// errors; the caller always gets a renderable IntentResult.
type AssistantService struct {
	classifier domain.IntentClassifier
	cache      domain.CacheRepository
	cacheTTL   time.Duration
	log        *zap.Logger
}

// NewAssistantService creates a new assistant service. The cache is optional.
func NewAssistantService(classifier domain.IntentClassifier, cache domain.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &AssistantService{
		classifier: classifier,
		cache:      cache,
		cacheTTL:   cacheTTL,
		log:        logger,
	}
}

// Classify resolves user input into an intent.
func (s *AssistantService) Classify(ctx context.Context, userText string) (domain.IntentResult, error) {
	if result, ok := MatchKeywordIntent(userText); ok {
		s.log.Debug("keyword intent match",
			zap.String("intent", string(result.Intent)),
		)
		return result, nil
	}

	cacheKey := assistantCachePrefix + strings.ToLower(NormalizeWhitespace(userText))
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if result, ok := cached.(domain.IntentResult); ok {
				s.log.Debug("intent cache hit", zap.String("key", cacheKey))
				return result, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn("intent cache read failed", zap.Error(err))
		}
	}

	result, err := s.classifier.Classify(ctx, userText)
	if err != nil {
		// The classifier contract degrades internally; anything that still
		// escapes becomes the generic fallback here.
		s.log.Error("intent classification failed", zap.Error(err))
		return domain.UnknownIntent("Sorry, I had trouble understanding that. Please try again."), nil
	}

	// Only cache real classifications, not fallbacks for garbled input.
	if s.cache != nil && result.Intent != domain.IntentUnknown {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			s.log.Warn("intent cache write failed", zap.Error(err))
		}
	}
	return result, nil
}
