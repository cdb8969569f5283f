package usecase

import (
	"fmt"
	"strings"

	"github.com/grocertrack/backend/internal/domain"
)

const (
	maxItemNameLength  = 200
	maxStoreNameLength = 100
	maxNotesLength     = 500
	maxReasonablePrice = 10000.0
	minReasonablePrice = 0.01
	maxQuantity        = 1000.0
)

// ValidateItemName checks that a name is present and within bounds
func ValidateItemName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidRequest)
	}
	if len(trimmed) > maxItemNameLength {
		return fmt.Errorf("%w: item name exceeds %d characters", domain.ErrInvalidRequest, maxItemNameLength)
	}
	return nil
}

// ValidatePrice rejects non-positive prices outright. Prices outside the
// plausible range are accepted but reported as suspicious so ingestion can
// flag them for review instead of refusing the row.
func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidRequest)
	}
	return nil
}

// SuspiciousPrice reports whether a price falls outside the plausible range
// for a single grocery line item.
func SuspiciousPrice(price float64) bool {
	return price < minReasonablePrice || price > maxReasonablePrice
}

// SuspiciousQuantity reports whether a quantity is implausibly large,
// usually an OCR artifact like a barcode read as a count.
func SuspiciousQuantity(quantity float64) bool {
	return quantity > maxQuantity
}

// ValidateQuantity checks that a quantity is positive
func ValidateQuantity(quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidRequest)
	}
	return nil
}

// ValidateStoreName checks optional store names for length only
func ValidateStoreName(name string) error {
	if len(name) > maxStoreNameLength {
		return fmt.Errorf("%w: store name exceeds %d characters", domain.ErrInvalidRequest, maxStoreNameLength)
	}
	return nil
}

// ValidateNotes checks optional notes for length only
func ValidateNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", domain.ErrInvalidRequest, maxNotesLength)
	}
	return nil
}

// ValidateItem runs all field checks for a grocery item before persistence.
func ValidateItem(item *domain.GroceryItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is required", domain.ErrInvalidRequest)
	}
	if err := ValidateItemName(item.ItemName); err != nil {
		return err
	}
	if err := ValidatePrice(item.Price); err != nil {
		return err
	}
	if item.Quantity != 0 {
		if err := ValidateQuantity(item.Quantity); err != nil {
			return err
		}
	}
	if err := ValidateStoreName(item.StoreName); err != nil {
		return err
	}
	if err := ValidateNotes(item.Notes); err != nil {
		return err
	}
	if item.OCRSource != "" && !domain.ValidOCRSource(item.OCRSource) {
		return fmt.Errorf("%w: unknown ocr source %q", domain.ErrInvalidRequest, item.OCRSource)
	}
	if item.OCRConfidence < 0 || item.OCRConfidence > 1 {
		return fmt.Errorf("%w: ocr confidence must be between 0 and 1", domain.ErrInvalidRequest)
	}
	return nil
}
