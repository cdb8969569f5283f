package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	leadingModifierRegex = regexp.MustCompile(`^(organic|fresh|premium|select)\s+`)
	trailingMeatRegex    = regexp.MustCompile(`\s+(steak|chicken|beef|pork)$`)
	nonWordRegex         = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
	nonNumericRegex      = regexp.MustCompile(`[^0-9.]`)
)

// NormalizeItemName canonicalizes an item name for matching and duplicate
// collapsing: lowercases, strips leading quality modifiers, pulls trailing
// meat qualifiers flush against the preceding word, drops punctuation, and
// collapses whitespace. Pure and deterministic.
func NormalizeItemName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for {
		stripped := leadingModifierRegex.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = trailingMeatRegex.ReplaceAllString(s, " $1")
	s = nonWordRegex.ReplaceAllString(s, "")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsSameItem reports whether two names refer to the same item: equal after
// normalization, or one normalized form contained in the other ("Ribeye" vs
// "Ribeye Steak"). Intentionally more permissive than fuzzy matching; meant
// only for exact-duplicate collapsing, not general search.
func IsSameItem(a, b string) bool {
	na := NormalizeItemName(a)
	nb := NormalizeItemName(b)
	if na == "" || nb == "" {
		return na == nb
	}
	if na == nb {
		return true
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// NormalizeStoreName trims, collapses whitespace, and title-cases a store name.
func NormalizeStoreName(storeName string) string {
	fields := strings.Fields(storeName)
	for i, w := range fields {
		fields[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(fields, " ")
}

// unitAliases standardizes common unit spellings (lbs -> lb, ounce -> oz, ...).
var unitAliases = map[string]string{
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"ounce":       "oz",
	"ounces":      "oz",
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"liter":       "l",
	"liters":      "l",
	"milliliter":  "ml",
	"milliliters": "ml",
	"ea":          "each",
	"piece":       "each",
	"pieces":      "each",
	"unit":        "each",
	"units":       "each",
}

// NormalizeUnitType lowercases a unit and folds common variations onto a
// canonical spelling. Unknown units pass through unchanged.
func NormalizeUnitType(unit string) string {
	n := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitAliases[n]; ok {
		return canonical
	}
	return n
}

// categoryAliases folds common category spellings onto the app's taxonomy.
var categoryAliases = map[string]string{
	"meat":       "Meat",
	"meats":      "Meat",
	"beef":       "Meat",
	"pork":       "Meat",
	"chicken":    "Meat",
	"poultry":    "Meat",
	"seafood":    "Seafood",
	"fish":       "Seafood",
	"dairy":      "Dairy",
	"produce":    "Produce",
	"fruits":     "Produce",
	"vegetables": "Produce",
	"bakery":     "Bakery",
	"frozen":     "Frozen",
	"pantry":     "Pantry",
	"snacks":     "Snacks",
	"drinks":     "Beverages",
	"beverages":  "Beverages",
	"household":  "Household",
	"other":      "Other",
}

// NormalizeCategory maps a free-form category onto the canonical taxonomy,
// passing unrecognized values through unchanged.
func NormalizeCategory(category string) string {
	if canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(category))]; ok {
		return canonical
	}
	return category
}

// NormalizeNumericInput parses a price or quantity out of free-form input,
// tolerating currency symbols and stray characters. Returns false for input
// with no parseable number.
func NormalizeNumericInput(input string) (float64, bool) {
	cleaned := nonNumericRegex.ReplaceAllString(input, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeWhitespace trims and collapses all internal whitespace runs.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(text, " "))
}
