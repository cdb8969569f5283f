package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/grocertrack/backend/internal/domain"
)

var (
	storeNameRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)whole\s*foods`),
		regexp.MustCompile(`(?i)trader\s*joe'?s`),
		regexp.MustCompile(`(?i)safeway`),
		regexp.MustCompile(`(?i)walmart`),
		regexp.MustCompile(`(?i)target`),
		regexp.MustCompile(`(?i)costco`),
		regexp.MustCompile(`(?i)kroger`),
		regexp.MustCompile(`(?i)publix`),
	}

	priceRegex = regexp.MustCompile(`\$?\d+\.\d{2}\b`)

	// Header, footer, and payment lines never hold purchasable items.
	excludeLineRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^subtotal`),
		regexp.MustCompile(`(?i)^total`),
		regexp.MustCompile(`(?i)^tax`),
		regexp.MustCompile(`(?i)^thank\s*you`),
		regexp.MustCompile(`(?i)^date:`),
		regexp.MustCompile(`(?i)^time:`),
		regexp.MustCompile(`(?i)^card\s*#`),
		regexp.MustCompile(`(?i)^change`),
		regexp.MustCompile(`(?i)^cash`),
		regexp.MustCompile(`(?i)payment`),
	}

	trailingUnitRegex  = regexp.MustCompile(`(?i)\d+\s*(lb|oz|ct|ea|kg|g)$`)
	quantityPrefixRegex = regexp.MustCompile(`(?i)^(\d+)\s*[@x]\s*`)

	totalLineRegex = regexp.MustCompile(`(?i)(?:^|\s)(total|amount\s*due|balance)[:\s]+\$?(\d+\.\d{2})`)

	dateLineRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`),
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	}
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const maxLineItemPrice = 1000.0

// ParseReceiptText turns raw OCR text from a receipt into structured line
// items and metadata using regex heuristics. It never fails; low-quality
// input just yields fewer items and lower confidences.
func ParseReceiptText(rawText string, overallConfidence float64) domain.ParsedReceipt {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	total, totalConfidence := extractReceiptTotal(lines)
	date, dateConfidence := extractReceiptDate(lines)

	return domain.ParsedReceipt{
		RawText:         rawText,
		Confidence:      overallConfidence,
		LineItems:       extractReceiptLineItems(lines, overallConfidence),
		StoreName:       extractReceiptStoreName(lines),
		StoreConfidence: overallConfidence,
		Total:           total,
		TotalConfidence: totalConfidence,
		Date:            date,
		DateConfidence:  dateConfidence,
	}
}

// extractReceiptStoreName scans the first few lines for a known store chain,
// falling back to the first line on the receipt.
func extractReceiptStoreName(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		for _, re := range storeNameRegexes {
			if re.MatchString(line) {
				return strings.TrimSpace(line)
			}
		}
	}
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}
	return "Unknown Store"
}

// extractReceiptLineItems finds lines carrying a price and splits them into
// description and amount. The last price on a line wins, since earlier
// numbers are usually a weight or unit price.
func extractReceiptLineItems(lines []string, baseConfidence float64) []domain.ReceiptLineItem {
	var items []domain.ReceiptLineItem

	// Per-item parsing is less certain than whole-text OCR confidence.
	itemConfidence := math.Max(0.5, baseConfidence-0.05)

	for _, line := range lines {
		if excludedReceiptLine(line) {
			continue
		}

		locs := priceRegex.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1]
		priceStr := strings.TrimPrefix(line[last[0]:last[1]], "$")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 || price > maxLineItemPrice {
			continue
		}

		description := strings.TrimSpace(line[:last[0]])
		description = strings.TrimSpace(trailingUnitRegex.ReplaceAllString(description, ""))
		if len(description) < 2 {
			continue
		}

		quantity := 1.0
		if m := quantityPrefixRegex.FindStringSubmatch(description); m != nil {
			if q, err := strconv.Atoi(m[1]); err == nil {
				quantity = float64(q)
			}
			description = strings.TrimSpace(quantityPrefixRegex.ReplaceAllString(description, ""))
		}

		items = append(items, domain.ReceiptLineItem{
			Description: description,
			Price:       price,
			Quantity:    quantity,
			Confidence:  itemConfidence,
		})
	}
	return items
}

func excludedReceiptLine(line string) bool {
	for _, re := range excludeLineRegexes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// extractReceiptTotal looks for an explicit total line; without one it sums
// every price on the receipt and reports low confidence.
func extractReceiptTotal(lines []string) (float64, float64) {
	for _, line := range lines {
		if m := totalLineRegex.FindStringSubmatch(line); m != nil {
			if total, err := strconv.ParseFloat(m[2], 64); err == nil && total > 0 {
				return total, 0.95
			}
		}
	}

	var sum float64
	for _, line := range lines {
		for _, raw := range priceRegex.FindAllString(line, -1) {
			if price, err := strconv.ParseFloat(strings.TrimPrefix(raw, "$"), 64); err == nil {
				sum += price
			}
		}
	}
	return sum, 0.5
}

// extractReceiptDate scans the top of the receipt for a date and normalizes
// it to YYYY-MM-DD, defaulting to today when nothing parses.
func extractReceiptDate(lines []string) (string, float64) {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		for _, re := range dateLineRegexes {
			if m := re.FindStringSubmatch(line); m != nil {
				if normalized, ok := normalizeDateString(m[1]); ok {
					return normalized, 0.9
				}
			}
		}
	}
	return time.Now().UTC().Format("2006-01-02"), 0.5
}

// normalizeDateString parses MM/DD/YYYY, MM/DD/YY, or YYYY-MM-DD into
// YYYY-MM-DD. Two-digit years below 50 land in the 2000s.
func normalizeDateString(dateStr string) (string, bool) {
	parts := strings.FieldsFunc(dateStr, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) == 3 {
		month, errM := strconv.Atoi(parts[0])
		day, errD := strconv.Atoi(parts[1])
		year, errY := strconv.Atoi(parts[2])
		if errM == nil && errD == nil && errY == nil {
			if year < 100 {
				if year < 50 {
					year += 2000
				} else {
					year += 1900
				}
			}
			if month >= 1 && month <= 12 && day >= 1 && day <= 31 && year >= 2000 {
				return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
			}
		}
	}
	if isoDateRegex.MatchString(dateStr) {
		return dateStr, true
	}
	return "", false
}
