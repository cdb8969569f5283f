package usecase

import (
	"fmt"
	"strings"

	"github.com/grocertrack/backend/internal/domain"
)

// Mass conversion factors to grams.
var toGrams = map[string]float64{
	"lb":     453.592,
	"lbs":    453.592,
	"pound":  453.592,
	"pounds": 453.592,
	"oz":     28.3495,
	"ounce":  28.3495,
	"ounces": 28.3495,
	"kg":     1000,
	"kilogram": 1000,
	"g":     1,
	"gram":  1,
	"grams": 1,
}

// Volume conversion factors to milliliters.
var toMilliliters = map[string]float64{
	"gal":     3785.41,
	"gallon":  3785.41,
	"gallons": 3785.41,
	"qt":      946.353,
	"quart":   946.353,
	"quarts":  946.353,
	"pt":      473.176,
	"pint":    473.176,
	"pints":   473.176,
	"cup":     236.588,
	"cups":    236.588,
	"fl oz":   29.5735,
	"l":       1000,
	"liter":   1000,
	"liters":  1000,
	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
}

// ConvertPrice rewrites a per-unit price in a different unit of the same
// dimension. Mass converts through grams and volume through milliliters.
// Mixing dimensions, or units outside either table, returns
// domain.ErrIncompatibleUnits.
func ConvertPrice(price float64, fromUnit, toUnit string) (float64, error) {
	from := strings.ToLower(strings.TrimSpace(fromUnit))
	to := strings.ToLower(strings.TrimSpace(toUnit))
	if from == "" || to == "" {
		return 0, fmt.Errorf("%w: both units are required", domain.ErrInvalidRequest)
	}
	if from == to {
		return price, nil
	}

	if fromFactor, ok := toGrams[from]; ok {
		if toFactor, ok := toGrams[to]; ok {
			return price / fromFactor * toFactor, nil
		}
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrIncompatibleUnits, fromUnit, toUnit)
	}

	if fromFactor, ok := toMilliliters[from]; ok {
		if toFactor, ok := toMilliliters[to]; ok {
			return price / fromFactor * toFactor, nil
		}
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrIncompatibleUnits, fromUnit, toUnit)
	}

	return 0, fmt.Errorf("%w: %s to %s", domain.ErrIncompatibleUnits, fromUnit, toUnit)
}

// PriceComparison is the outcome of comparing two per-unit prices in a
// common unit.
type PriceComparison struct {
	PriceA   float64 `json:"price_a"`
	PriceB   float64 `json:"price_b"`
	Unit     string  `json:"unit"`
	Cheaper  string  `json:"cheaper"`
	SavedPct float64 `json:"saved_pct"`
}

// CompareUnitPrices converts price B into A's unit and reports which is
// cheaper. SavedPct is the percentage saved by picking the cheaper one.
func CompareUnitPrices(priceA float64, unitA string, priceB float64, unitB string) (PriceComparison, error) {
	if priceA <= 0 || priceB <= 0 {
		return PriceComparison{}, fmt.Errorf("%w: prices must be positive", domain.ErrInvalidRequest)
	}
	converted, err := ConvertPrice(priceB, unitB, unitA)
	if err != nil {
		return PriceComparison{}, err
	}

	cmp := PriceComparison{
		PriceA: priceA,
		PriceB: converted,
		Unit:   strings.ToLower(strings.TrimSpace(unitA)),
	}
	switch {
	case priceA < converted:
		cmp.Cheaper = "a"
		cmp.SavedPct = (converted - priceA) / converted * 100
	case converted < priceA:
		cmp.Cheaper = "b"
		cmp.SavedPct = (priceA - converted) / priceA * 100
	default:
		cmp.Cheaper = "equal"
	}
	return cmp, nil
}
