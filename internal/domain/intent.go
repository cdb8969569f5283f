package domain

import "encoding/json"

// IntentType is the closed set of assistant intents.
type IntentType string

const (
	IntentAddItems      IntentType = "add_items"
	IntentNavigation    IntentType = "navigation"
	IntentCreateList    IntentType = "create_list"
	IntentOpenList      IntentType = "open_list"
	IntentPriceCheck    IntentType = "price_check"
	IntentComparePrices IntentType = "compare_prices"
	IntentHelp          IntentType = "help"
	IntentUnknown       IntentType = "unknown"
)

// ValidIntentType reports whether t is a member of the intent enumeration.
func ValidIntentType(t IntentType) bool {
	switch t {
	case IntentAddItems, IntentNavigation, IntentCreateList, IntentOpenList,
		IntentPriceCheck, IntentComparePrices, IntentHelp, IntentUnknown:
		return true
	}
	return false
}

// ParsedItem is one shopping-list item extracted from user input.
type ParsedItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Category string  `json:"category,omitempty"`
}

// AddItemsParams carries the items to add to the active shopping list.
type AddItemsParams struct {
	Items []ParsedItem `json:"items"`
}

// NavigationParams names the page the user asked for.
type NavigationParams struct {
	Target string `json:"target"`
}

// ListParams names a shopping list to create or open.
type ListParams struct {
	ListName string `json:"listName"`
}

// PriceCheckParams asks whether a quoted price is a good deal.
type PriceCheckParams struct {
	Item  string  `json:"item,omitempty"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit,omitempty"`
}

// ComparePricesParams compares two quoted unit prices.
type ComparePricesParams struct {
	PriceA float64 `json:"priceA"`
	UnitA  string  `json:"unitA"`
	PriceB float64 `json:"priceB"`
	UnitB  string  `json:"unitB"`
}

// HelpParams names the topic the user wants help with.
type HelpParams struct {
	Topic string `json:"topic,omitempty"`
}

// IntentResult is the typed outcome of intent classification. Exactly the
// variant matching Intent is non-nil; the classifier only proposes intent and
// parameters, callers decide all side effects.
type IntentResult struct {
	Intent IntentType `json:"intent"`

	AddItems      *AddItemsParams      `json:"add_items,omitempty"`
	Navigation    *NavigationParams    `json:"navigation,omitempty"`
	CreateList    *ListParams          `json:"create_list,omitempty"`
	OpenList      *ListParams          `json:"open_list,omitempty"`
	PriceCheck    *PriceCheckParams    `json:"price_check,omitempty"`
	ComparePrices *ComparePricesParams `json:"compare_prices,omitempty"`
	Help          *HelpParams          `json:"help,omitempty"`

	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// UnknownIntent builds the safe fallback result every failure path degrades to.
func UnknownIntent(message string) IntentResult {
	return IntentResult{
		Intent:     IntentUnknown,
		Message:    message,
		Confidence: 0,
	}
}

// wireIntent is the loose shape produced by the hosted model: a single
// untyped parameter bag keyed by the intent.
type wireIntent struct {
	Intent     IntentType      `json:"intent"`
	Params     json.RawMessage `json:"params"`
	Message    string          `json:"message"`
	Confidence float64         `json:"confidence"`
}

// DecodeIntentJSON parses the model's wire format into a typed IntentResult.
// The params bag is decoded into the variant named by the intent; unknown or
// missing intents collapse to IntentUnknown. Malformed params for a known
// intent are an error so the caller can degrade explicitly.
func DecodeIntentJSON(data []byte) (IntentResult, error) {
	var w wireIntent
	if err := json.Unmarshal(data, &w); err != nil {
		return IntentResult{}, err
	}

	out := IntentResult{
		Intent:     w.Intent,
		Message:    w.Message,
		Confidence: clamp01(w.Confidence),
	}
	if !ValidIntentType(out.Intent) || out.Intent == "" {
		out.Intent = IntentUnknown
		return out, nil
	}
	if len(w.Params) == 0 {
		return out, nil
	}

	var err error
	switch out.Intent {
	case IntentAddItems:
		var p AddItemsParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.AddItems = &p
		}
	case IntentNavigation:
		var p NavigationParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.Navigation = &p
		}
	case IntentCreateList:
		var p ListParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.CreateList = &p
		}
	case IntentOpenList:
		var p ListParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.OpenList = &p
		}
	case IntentPriceCheck:
		var p PriceCheckParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.PriceCheck = &p
		}
	case IntentComparePrices:
		var p ComparePricesParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.ComparePrices = &p
		}
	case IntentHelp:
		var p HelpParams
		if err = json.Unmarshal(w.Params, &p); err == nil {
			out.Help = &p
		}
	}
	if err != nil {
		return IntentResult{}, err
	}
	return out, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
