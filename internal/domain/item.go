package domain

import "time"

// OCRSource identifies the provenance of a scanned price observation.
type OCRSource string

const (
	OCRSourceManualEntry  OCRSource = "manual_entry"
	OCRSourceGoogleVision OCRSource = "google_vision"
	OCRSourceTesseract    OCRSource = "tesseract"
	OCRSourceAWSTextract  OCRSource = "aws_textract"
	OCRSourceAzureOCR     OCRSource = "azure_ocr"
	OCRSourceOther        OCRSource = "other"
)

// ValidOCRSource reports whether s is one of the known provenance tags.
func ValidOCRSource(s OCRSource) bool {
	switch s {
	case OCRSourceManualEntry, OCRSourceGoogleVision, OCRSourceTesseract,
		OCRSourceAWSTextract, OCRSourceAzureOCR, OCRSourceOther:
		return true
	}
	return false
}

// GroceryItem is a single observed price record for a grocery item at a store.
type GroceryItem struct {
	ID            string    `json:"id"`
	ItemName      string    `json:"item_name"`
	Category      string    `json:"category"`
	StoreName     string    `json:"store_name"`
	Price         float64   `json:"price"`
	Quantity      float64   `json:"quantity"`
	UnitType      string    `json:"unit_type"`
	UnitPrice     float64   `json:"unit_price"`
	DatePurchased time.Time `json:"date_purchased"`
	TargetPrice   float64   `json:"target_price,omitempty"`
	Notes         string    `json:"notes,omitempty"`

	// OCR provenance, zero-valued for manual entries
	OCRSource     OCRSource `json:"ocr_source,omitempty"`
	OCRConfidence float64   `json:"ocr_confidence,omitempty"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`

	FlaggedForReview bool   `json:"flagged_for_review,omitempty"`
	FlagReason       string `json:"flag_reason,omitempty"`
}

// IngestionMetadata carries per-batch context for OCR receipt ingestion.
// Created per scan and discarded once the batch completes.
type IngestionMetadata struct {
	StoreName     string    `json:"store_name"`
	DatePurchased time.Time `json:"date_purchased"`
	OCRSource     OCRSource `json:"ocr_source"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
}

// IngestedItemResult is the per-item outcome of a batch ingestion. Exactly one
// result is produced for each input line item, in input order.
type IngestedItemResult struct {
	ID         string  `json:"id,omitempty"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	Flagged    bool    `json:"flagged"`
	FlagReason string  `json:"flag_reason,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// DuplicateMatch references the pre-existing record a new observation collided with.
type DuplicateMatch struct {
	ExistingItem GroceryItem `json:"existing_item"`
	Similarity   float64     `json:"similarity"`
	// SuggestedAction is "update" for near-exact collisions, "confirm" for
	// fuzzy ones the user should review.
	SuggestedAction string `json:"suggested_action"`
}

// IngestResult is the outcome of ingesting a single price observation.
type IngestResult struct {
	Item       *GroceryItem    `json:"item,omitempty"`
	MatchFound *DuplicateMatch `json:"match_found,omitempty"`
	Flagged    bool            `json:"flagged"`
	FlagReason string          `json:"flag_reason,omitempty"`
}
