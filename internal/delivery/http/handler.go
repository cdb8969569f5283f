package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grocertrack/backend/internal/domain"
	"github.com/grocertrack/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher   *usecase.MatchingService
	ingestion *usecase.IngestionService
	assistant *usecase.AssistantService
	repo      domain.ItemRepository
	log       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	matcher *usecase.MatchingService,
	ingestion *usecase.IngestionService,
	assistant *usecase.AssistantService,
	repo domain.ItemRepository,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		matcher:   matcher,
		ingestion: ingestion,
		assistant: assistant,
		repo:      repo,
		log:       logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "grocertrack-backend",
		"version": "1.0.0",
	})
}

type matchRequest struct {
	Query      string                  `json:"query" binding:"required"`
	Candidates []domain.MatchCandidate `json:"candidates"`
}

// Match ranks candidates against a query string
func (h *Handler) Match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	results := h.matcher.Match(req.Query, req.Candidates)
	if results == nil {
		results = []domain.MatchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": results})
}

// BestMatch returns the single top match, or null when no confident match exists
func (h *Handler) BestMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	best := h.matcher.BestMatch(req.Query, req.Candidates)
	c.JSON(http.StatusOK, gin.H{"match": best})
}

type createItemRequest struct {
	usecase.IngestInput
	SkipDuplicateCheck bool `json:"skip_duplicate_check"`
}

// CreateItem ingests a single price observation
func (h *Handler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.ingestion.Ingest(c.Request.Context(), req.IngestInput, usecase.IngestOptions{
		SkipDuplicateCheck: req.SkipDuplicateCheck,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateItem) {
			c.JSON(http.StatusConflict, gin.H{
				"error":       err.Error(),
				"match_found": result.MatchFound,
			})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type ingestReceiptRequest struct {
	LineItems []domain.ReceiptLineItem `json:"line_items" binding:"required"`
	Metadata  domain.IngestionMetadata `json:"metadata"`
}

// IngestReceipt drives already-parsed line items through batch ingestion
func (h *Handler) IngestReceipt(c *gin.Context) {
	var req ingestReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line_items are required"})
		return
	}

	results := h.ingestion.IngestBatch(c.Request.Context(), req.LineItems, req.Metadata)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type scanReceiptRequest struct {
	RawText    string           `json:"raw_text" binding:"required"`
	Confidence float64          `json:"confidence"`
	OCRSource  domain.OCRSource `json:"ocr_source"`
	ReceiptURL string           `json:"receipt_url"`
	// StoreName overrides the store parsed off the receipt.
	StoreName string `json:"store_name"`
}

// ScanReceipt parses raw OCR text and ingests the extracted line items
func (h *Handler) ScanReceipt(c *gin.Context) {
	var req scanReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "raw_text is required"})
		return
	}
	if req.Confidence <= 0 || req.Confidence > 1 {
		req.Confidence = 0.9
	}
	if req.OCRSource == "" {
		req.OCRSource = domain.OCRSourceOther
	}
	if !domain.ValidOCRSource(req.OCRSource) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown ocr_source"})
		return
	}

	parsed := usecase.ParseReceiptText(req.RawText, req.Confidence)

	storeName := parsed.StoreName
	if req.StoreName != "" {
		storeName = req.StoreName
	}
	metadata := domain.IngestionMetadata{
		StoreName:     storeName,
		DatePurchased: parsed.PurchaseDate(),
		OCRSource:     req.OCRSource,
		ReceiptURL:    req.ReceiptURL,
	}

	results := h.ingestion.IngestBatch(c.Request.Context(), parsed.LineItems, metadata)
	c.JSON(http.StatusOK, gin.H{
		"receipt": parsed,
		"results": results,
	})
}

type classifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ClassifyIntent resolves free-text input into a typed assistant intent
func (h *Handler) ClassifyIntent(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.assistant.Classify(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetWeight returns the average-weight estimate for an item. An optional
// price query parameter also converts that each price to per pound.
func (h *Handler) GetWeight(c *gin.Context) {
	itemName := c.Param("item")

	est, err := usecase.LookupWeight(itemName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"estimate": est}
	if priceStr := c.Query("price"); priceStr != "" {
		price, ok := usecase.NormalizeNumericInput(priceStr)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		converted, err := usecase.ConvertEachToPerWeight(price, itemName)
		if err != nil {
			h.respondError(c, err)
			return
		}
		resp["price_per_pound"] = converted.PricePerPound
	}
	c.JSON(http.StatusOK, resp)
}

type convertPriceRequest struct {
	Price    float64 `json:"price" binding:"required"`
	FromUnit string  `json:"from_unit" binding:"required"`
	ToUnit   string  `json:"to_unit" binding:"required"`
}

// ConvertPrice rewrites a per-unit price in another unit of the same dimension
func (h *Handler) ConvertPrice(c *gin.Context) {
	var req convertPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price, from_unit and to_unit are required"})
		return
	}

	converted, err := usecase.ConvertPrice(req.Price, req.FromUnit, req.ToUnit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"price": converted,
		"unit":  req.ToUnit,
	})
}

type comparePricesRequest struct {
	PriceA float64 `json:"price_a" binding:"required"`
	UnitA  string  `json:"unit_a" binding:"required"`
	PriceB float64 `json:"price_b" binding:"required"`
	UnitB  string  `json:"unit_b" binding:"required"`
}

// ComparePrices reports which of two per-unit prices is cheaper
func (h *Handler) ComparePrices(c *gin.Context) {
	var req comparePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both prices and units are required"})
		return
	}

	cmp, err := usecase.CompareUnitPrices(req.PriceA, req.UnitA, req.PriceB, req.UnitB)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// ListFlagged returns items awaiting moderator review
func (h *Handler) ListFlagged(c *gin.Context) {
	items, err := h.repo.ListFlagged(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.GroceryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// respondError maps domain errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoWeightEstimate), errors.Is(err, domain.ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrIncompatibleUnits):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error("unhandled request error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
