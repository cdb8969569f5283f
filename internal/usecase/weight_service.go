package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grocertrack/backend/internal/domain"
)

// Average weights in pounds for common produce sold by the each. Rough retail
// estimates, used to rewrite "each" prices as per-pound prices so they can be
// compared against weighed items.
var itemWeightEstimates = map[string]domain.WeightEstimate{
	"apple":           {Pounds: 0.33, Confidence: domain.ConfidenceHigh, Note: "Medium apple"},
	"avocado":         {Pounds: 0.35, Confidence: domain.ConfidenceHigh, Note: "Medium Hass avocado"},
	"banana":          {Pounds: 0.28, Confidence: domain.ConfidenceHigh, Note: "Medium banana"},
	"grapefruit":      {Pounds: 0.5, Confidence: domain.ConfidenceHigh, Note: "Medium grapefruit"},
	"lemon":           {Pounds: 0.15, Confidence: domain.ConfidenceHigh, Note: "Medium lemon"},
	"lime":            {Pounds: 0.1, Confidence: domain.ConfidenceHigh, Note: "Medium lime"},
	"mango":           {Pounds: 0.5, Confidence: domain.ConfidenceMedium, Note: "Medium mango"},
	"orange":          {Pounds: 0.3, Confidence: domain.ConfidenceHigh, Note: "Medium orange"},
	"peach":           {Pounds: 0.3, Confidence: domain.ConfidenceMedium, Note: "Medium peach"},
	"pear":            {Pounds: 0.4, Confidence: domain.ConfidenceMedium, Note: "Medium pear"},
	"pineapple":       {Pounds: 3.5, Confidence: domain.ConfidenceMedium, Note: "Whole pineapple"},
	"plum":            {Pounds: 0.15, Confidence: domain.ConfidenceMedium, Note: "Medium plum"},
	"pomegranate":     {Pounds: 0.6, Confidence: domain.ConfidenceMedium, Note: "Medium pomegranate"},
	"bell pepper":     {Pounds: 0.4, Confidence: domain.ConfidenceHigh, Note: "Medium bell pepper"},
	"cucumber":        {Pounds: 0.6, Confidence: domain.ConfidenceHigh, Note: "Medium cucumber"},
	"eggplant":        {Pounds: 1.0, Confidence: domain.ConfidenceMedium, Note: "Medium eggplant"},
	"head of lettuce": {Pounds: 1.0, Confidence: domain.ConfidenceMedium, Note: "Iceberg lettuce head"},
	"lettuce":         {Pounds: 1.0, Confidence: domain.ConfidenceMedium, Note: "Iceberg lettuce head"},
	"onion":           {Pounds: 0.4, Confidence: domain.ConfidenceHigh, Note: "Medium yellow onion"},
	"potato":          {Pounds: 0.4, Confidence: domain.ConfidenceHigh, Note: "Medium russet potato"},
	"tomato":          {Pounds: 0.4, Confidence: domain.ConfidenceHigh, Note: "Medium tomato"},
	"zucchini":        {Pounds: 0.5, Confidence: domain.ConfidenceHigh, Note: "Medium zucchini"},
	"corn":            {Pounds: 0.6, Confidence: domain.ConfidenceHigh, Note: "Ear of corn with husk"},
	"cantaloupe":      {Pounds: 3.0, Confidence: domain.ConfidenceMedium, Note: "Whole cantaloupe"},
	"watermelon":      {Pounds: 15.0, Confidence: domain.ConfidenceLow, Note: "Whole watermelon (varies widely)"},
	"honeydew":        {Pounds: 4.0, Confidence: domain.ConfidenceMedium, Note: "Whole honeydew melon"},
}

// weightKeys holds the table keys sorted longest first, ties alphabetical,
// so partial matching always prefers the most specific entry ("bell pepper"
// beats "pepper") and never depends on map iteration order.
var weightKeys = func() []string {
	keys := make([]string, 0, len(itemWeightEstimates))
	for k := range itemWeightEstimates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// LookupWeight returns the average-weight estimate for an item name. Exact
// match on the lowercased trimmed name wins; otherwise the first key (longest
// first) contained in the name, or containing it, is used. Returns
// domain.ErrNoWeightEstimate when nothing matches.
func LookupWeight(itemName string) (domain.WeightEstimate, error) {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return domain.WeightEstimate{}, fmt.Errorf("%w: empty item name", domain.ErrNoWeightEstimate)
	}

	if est, ok := itemWeightEstimates[name]; ok {
		est.ItemKey = name
		return est, nil
	}

	for _, key := range weightKeys {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			est := itemWeightEstimates[key]
			est.ItemKey = key
			return est, nil
		}
	}

	return domain.WeightEstimate{}, fmt.Errorf("%w: %q", domain.ErrNoWeightEstimate, itemName)
}

// ConvertEachToPerWeight rewrites an each price as a per-pound price using
// the estimated weight for the item.
func ConvertEachToPerWeight(pricePerEach float64, itemName string) (domain.PerWeightPrice, error) {
	if pricePerEach <= 0 {
		return domain.PerWeightPrice{}, fmt.Errorf("%w: price must be positive", domain.ErrInvalidRequest)
	}
	est, err := LookupWeight(itemName)
	if err != nil {
		return domain.PerWeightPrice{}, err
	}
	return domain.PerWeightPrice{
		PricePerPound: pricePerEach / est.Pounds,
		Estimate:      est,
	}, nil
}
