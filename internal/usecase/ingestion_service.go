package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grocertrack/backend/internal/domain"
)

const (
	defaultFuzzyThreshold = 0.85
	updateActionThreshold = 0.95
	lowOCRConfidence      = 0.7
	duplicatePriceEpsilon = 0.01
)

// IngestInput is a raw price observation before normalization.
type IngestInput struct {
	ItemName      string           `json:"item_name"`
	Price         float64          `json:"price"`
	Quantity      float64          `json:"quantity"`
	StoreName     string           `json:"store_name"`
	UnitType      string           `json:"unit_type,omitempty"`
	Category      string           `json:"category,omitempty"`
	TargetPrice   float64          `json:"target_price,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	DatePurchased time.Time        `json:"date_purchased,omitempty"`
	OCRSource     domain.OCRSource `json:"ocr_source,omitempty"`
	OCRConfidence float64          `json:"ocr_confidence,omitempty"`
	ReceiptURL    string           `json:"receipt_url,omitempty"`
}

// IngestOptions controls duplicate detection for a single ingestion.
type IngestOptions struct {
	// SkipDuplicateCheck bypasses matching entirely and inserts unconditionally.
	SkipDuplicateCheck bool
	// FuzzyThreshold is the minimum similarity treated as a possible
	// duplicate. Zero means the default of 0.85.
	FuzzyThreshold float64
}

// IngestionService decides whether a new price observation is a duplicate of
// an existing record, a near-duplicate needing review, or a genuinely new
// entry, and persists accepted records.
type IngestionService struct {
	repo    domain.ItemRepository
	matcher *MatchingService
	log     *zap.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(repo domain.ItemRepository, matcher *MatchingService, logger *zap.Logger) *IngestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestionService{repo: repo, matcher: matcher, log: logger}
}

// Ingest normalizes and validates one observation, runs duplicate detection
// against the existing pool for the same store, and inserts the record.
// A detected duplicate returns domain.ErrDuplicateItem with MatchFound set
// and nothing is inserted. Auto-flagging never blocks the insert; it marks
// the stored record for moderator review instead.
func (s *IngestionService) Ingest(ctx context.Context, input IngestInput, opts IngestOptions) (domain.IngestResult, error) {
	if err := ValidateItemName(input.ItemName); err != nil {
		return domain.IngestResult{}, err
	}
	if err := ValidatePrice(input.Price); err != nil {
		return domain.IngestResult{}, err
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if err := ValidateQuantity(input.Quantity); err != nil {
		return domain.IngestResult{}, err
	}
	if err := ValidateStoreName(input.StoreName); err != nil {
		return domain.IngestResult{}, err
	}

	if !opts.SkipDuplicateCheck {
		match, err := s.findDuplicate(ctx, input, opts.FuzzyThreshold)
		if err != nil {
			// Duplicate detection is best effort; a store read failure must
			// not block manual entry.
			s.log.Warn("duplicate check failed, inserting without it", zap.Error(err))
		} else if match != nil {
			return domain.IngestResult{MatchFound: match},
				fmt.Errorf("%w: similar to %q (%d%% match)", domain.ErrDuplicateItem,
					match.ExistingItem.ItemName, int(math.Round(match.Similarity*100)))
		}
	}

	item := s.buildItem(input)
	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("insert item: %w", err)
	}

	s.log.Info("ingested item",
		zap.String("id", created.ID),
		zap.String("item", created.ItemName),
		zap.Float64("price", created.Price),
		zap.Bool("flagged", created.FlaggedForReview),
	)
	return domain.IngestResult{
		Item:       created,
		Flagged:    created.FlaggedForReview,
		FlagReason: created.FlagReason,
	}, nil
}

// findDuplicate runs the fuzzy matcher over existing records for the same
// store and reports a collision when the name similarity clears the
// threshold, the price is within a cent, and the purchase falls on the same
// calendar day (UTC).
func (s *IngestionService) findDuplicate(ctx context.Context, input IngestInput, threshold float64) (*domain.DuplicateMatch, error) {
	if threshold <= 0 || threshold > 1 {
		threshold = defaultFuzzyThreshold
	}

	existing, err := s.repo.ListByStore(ctx, NormalizeStoreName(input.StoreName))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(existing) == 0 {
		return nil, nil
	}

	byID := make(map[string]domain.GroceryItem, len(existing))
	candidates := make([]domain.MatchCandidate, 0, len(existing))
	for _, item := range existing {
		byID[item.ID] = item
		candidates = append(candidates, domain.MatchCandidate{
			ID:          item.ID,
			ItemName:    item.ItemName,
			Category:    item.Category,
			TargetPrice: item.TargetPrice,
			UnitType:    item.UnitType,
		})
	}

	observed := input.DatePurchased
	if observed.IsZero() {
		observed = time.Now()
	}
	for _, m := range s.matcher.Match(input.ItemName, candidates) {
		if m.Score < threshold {
			continue
		}
		item := byID[m.Item.ID]
		if math.Abs(item.Price-input.Price) > duplicatePriceEpsilon {
			continue
		}
		if !sameCalendarDay(item.DatePurchased, observed) {
			continue
		}
		action := "confirm"
		if m.Score >= updateActionThreshold {
			action = "update"
		}
		return &domain.DuplicateMatch{
			ExistingItem:    item,
			Similarity:      m.Score,
			SuggestedAction: action,
		}, nil
	}
	return nil, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// buildItem normalizes the input into a persistable record, keeping the
// original capitalization of the name and store for display, and applies the
// auto-flag policy for suspicious data.
func (s *IngestionService) buildItem(input IngestInput) *domain.GroceryItem {
	unitType := NormalizeUnitType(input.UnitType)
	if unitType == "" {
		unitType = "each"
	}
	category := NormalizeCategory(input.Category)
	if category == "" {
		category = "Other"
	}
	datePurchased := input.DatePurchased
	if datePurchased.IsZero() {
		datePurchased = time.Now()
	}

	item := &domain.GroceryItem{
		ItemName:      strings.TrimSpace(input.ItemName),
		Category:      category,
		StoreName:     strings.TrimSpace(input.StoreName),
		Price:         input.Price,
		Quantity:      input.Quantity,
		UnitType:      unitType,
		UnitPrice:     input.Price / input.Quantity,
		DatePurchased: datePurchased,
		TargetPrice:   input.TargetPrice,
		Notes:         input.Notes,
		OCRSource:     input.OCRSource,
		OCRConfidence: input.OCRConfidence,
		ReceiptURL:    input.ReceiptURL,
	}

	var reasons []string
	if SuspiciousPrice(input.Price) {
		reasons = append(reasons, "Suspicious price detected")
	}
	if input.OCRSource != "" && input.OCRSource != domain.OCRSourceManualEntry && input.OCRConfidence < lowOCRConfidence {
		reasons = append(reasons, "Low OCR confidence")
	}
	if SuspiciousQuantity(input.Quantity) {
		reasons = append(reasons, "Suspicious quantity")
	}
	if len(reasons) > 0 {
		item.FlaggedForReview = true
		item.FlagReason = strings.Join(reasons, "; ")
	}
	return item
}

// IngestBatch drives line items from a receipt scan through Ingest one at a
// time, in input order. Every input produces exactly one result; a failing
// item records its error and processing continues with the next.
func (s *IngestionService) IngestBatch(ctx context.Context, lineItems []domain.ReceiptLineItem, metadata domain.IngestionMetadata) []domain.IngestedItemResult {
	results := make([]domain.IngestedItemResult, 0, len(lineItems))
	for _, li := range lineItems {
		results = append(results, s.ingestLineItem(ctx, li, metadata))
	}
	return results
}

func (s *IngestionService) ingestLineItem(ctx context.Context, li domain.ReceiptLineItem, metadata domain.IngestionMetadata) domain.IngestedItemResult {
	out := domain.IngestedItemResult{
		ItemName: li.Description,
		Price:    li.Price,
	}

	quantity := li.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	res, err := s.Ingest(ctx, IngestInput{
		ItemName:      li.Description,
		Price:         li.Price,
		Quantity:      quantity,
		StoreName:     metadata.StoreName,
		UnitType:      "each",
		Category:      "Other",
		DatePurchased: metadata.DatePurchased,
		OCRSource:     metadata.OCRSource,
		OCRConfidence: li.Confidence,
		ReceiptURL:    metadata.ReceiptURL,
	}, IngestOptions{})

	switch {
	case err == nil:
		out.ID = res.Item.ID
		out.Flagged = res.Flagged
		out.FlagReason = res.FlagReason
	case errors.Is(err, domain.ErrDuplicateItem):
		existing := res.MatchFound.ExistingItem
		out.Flagged = true
		out.FlagReason = fmt.Sprintf("Possible duplicate of %q ($%.2f)", existing.ItemName, existing.Price)
	default:
		s.log.Error("batch ingest item failed",
			zap.String("item", li.Description),
			zap.Error(err),
		)
		out.Flagged = true
		out.FlagReason = "Ingestion failed"
		out.Error = err.Error()
	}
	return out
}
