package domain

import "time"

// ReceiptLineItem is one product/price pair extracted from receipt text.
type ReceiptLineItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Confidence  float64 `json:"confidence"`
}

// ParsedReceipt is the structured form of raw OCR receipt text.
type ParsedReceipt struct {
	RawText    string            `json:"raw_text"`
	Confidence float64           `json:"confidence"`
	LineItems  []ReceiptLineItem `json:"line_items"`

	StoreName       string  `json:"store_name"`
	StoreConfidence float64 `json:"store_confidence"`
	Total           float64 `json:"total"`
	TotalConfidence float64 `json:"total_confidence"`
	// Date is normalized to YYYY-MM-DD; defaults to the scan date when the
	// receipt carries no recognizable date.
	Date           string  `json:"date"`
	DateConfidence float64 `json:"date_confidence"`
}

// PurchaseDate parses the normalized date, falling back to the current time
// when it does not parse.
func (p ParsedReceipt) PurchaseDate() time.Time {
	if t, err := time.Parse("2006-01-02", p.Date); err == nil {
		return t
	}
	return time.Now()
}
