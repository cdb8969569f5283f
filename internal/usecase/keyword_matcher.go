package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grocertrack/backend/internal/domain"
)

// Keyword matching handles the common assistant phrasings with regexes so
// simple commands never need a model round trip. Anything that falls through
// here goes to the hosted classifier.

const keywordConfidence = 0.9

var (
	addItemsRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(add|put|get|buy|grab|pick up)\s+(.+?)(\s+(to|on)\s+(the\s+)?(list|cart))?$`),
		regexp.MustCompile(`(?i)^(i need|we need|need)\s+(.+)$`),
	}
	addItemsPrefixRegex = regexp.MustCompile(`(?i)^(add|put|get|buy|grab|pick up|i need|we need|need)\s+`)
	addItemsSuffixRegex = regexp.MustCompile(`(?i)\s+(to|on)\s+(the\s+)?(list|cart)$`)

	createListRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(create|make|start|new)\s+(a\s+)?(new\s+)?(shopping\s+)?list(\s+called\s+(.+))?$`),
		regexp.MustCompile(`(?i)^new\s+list$`),
	}

	openListRegex = regexp.MustCompile(`(?i)^(open|show|go to)\s+(my\s+)?(.+?)\s+list$`)

	navigationRegex = regexp.MustCompile(`(?i)^(go\s+to|open|show|take me to)\s+(settings|help|home|lists|items|price[- ]?checker)$`)

	priceCheckRegex = regexp.MustCompile(`(?i)is\s+\$?([\d.]+)\s*/?\s*(lb|oz|pound|ounce|each|per\s+\w+)?\s+(good|cheap|a good deal|worth it|reasonable)(\s+for\s+(.+))?`)

	comparePricesRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$?([\d.]+)\s*/?\s*(lb|oz|pound|ounce|each)?\s*(vs|versus|or|compared to|better than)\s*\$?([\d.]+)\s*/?\s*(lb|oz|pound|ounce|each)?`),
		regexp.MustCompile(`(?i)which\s+(is\s+)?(better|cheaper).+\$?([\d.]+)\s*/?\s*(lb|oz|pound|ounce|each)?.+\$?([\d.]+)\s*/?\s*(lb|oz|pound|ounce|each)?`),
	}

	helpRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(how\s+(do\s+i|can\s+i|to)|help(\s+with)?|what\s+is)\s+(.+)`),
		regexp.MustCompile(`(?i)^help$`),
	}

	itemSplitRegex     = regexp.MustCompile(`(?i)\s*(?:,|and)\s*`)
	itemQuantityRegex  = regexp.MustCompile(`(?i)^(\d+|a dozen|a couple|a few|an|a|some)\s+(.+)$`)
	digitsOnlyRegex    = regexp.MustCompile(`^\d+$`)
)

var navigationTargets = map[string]string{
	"settings":      "settings",
	"help":          "help",
	"home":          "home",
	"lists":         "lists",
	"items":         "items",
	"price-checker": "price-checker",
	"pricechecker":  "price-checker",
	"price checker": "price-checker",
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Meat", []string{"steak", "beef", "chicken", "pork", "bacon", "sausage", "ham", "turkey", "lamb", "ribeye", "ground"}},
	{"Seafood", []string{"fish", "salmon", "shrimp", "tuna", "crab", "lobster", "tilapia"}},
	{"Dairy", []string{"milk", "cheese", "yogurt", "butter", "cream", "egg", "eggs"}},
	{"Produce", []string{"apple", "banana", "orange", "lettuce", "tomato", "onion", "potato", "carrot", "broccoli", "fruit", "vegetable"}},
	{"Bakery", []string{"bread", "bagel", "muffin", "cake", "donut", "croissant", "rolls"}},
	{"Frozen", []string{"ice cream", "frozen", "pizza"}},
	{"Beverages", []string{"water", "juice", "soda", "coffee", "tea", "drink"}},
	{"Snacks", []string{"chips", "crackers", "cookies", "candy", "nuts"}},
	{"Pantry", []string{"rice", "pasta", "cereal", "flour", "sugar", "oil", "sauce", "soup", "beans", "canned"}},
}

// MatchKeywordIntent tries the regex patterns against user input and builds
// a typed intent when one hits. The second return is false when nothing
// matched and the caller should fall through to the hosted classifier.
func MatchKeywordIntent(input string) (domain.IntentResult, bool) {
	text := strings.TrimSpace(input)
	if text == "" {
		return domain.IntentResult{}, false
	}

	for _, re := range addItemsRegexes {
		if re.MatchString(text) {
			itemText := addItemsPrefixRegex.ReplaceAllString(text, "")
			itemText = addItemsSuffixRegex.ReplaceAllString(itemText, "")
			items := ParseItemsFromText(itemText)
			message := "I'll add those items for you."
			if n := len(items); n == 1 {
				message = "Adding 1 item to your list."
			} else if n > 1 {
				message = fmt.Sprintf("Adding %d items to your list.", n)
			}
			return domain.IntentResult{
				Intent:     domain.IntentAddItems,
				AddItems:   &domain.AddItemsParams{Items: items},
				Message:    message,
				Confidence: keywordConfidence,
			}, true
		}
	}

	for _, re := range createListRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			listName := ""
			if len(m) > 6 {
				listName = strings.TrimSpace(m[6])
			}
			message := "Sure! What would you like to call this list?"
			if listName != "" {
				message = fmt.Sprintf("Creating list %q...", listName)
			}
			return domain.IntentResult{
				Intent:     domain.IntentCreateList,
				CreateList: &domain.ListParams{ListName: listName},
				Message:    message,
				Confidence: keywordConfidence,
			}, true
		}
	}

	if m := openListRegex.FindStringSubmatch(text); m != nil {
		listName := strings.TrimSpace(m[3])
		return domain.IntentResult{
			Intent:     domain.IntentOpenList,
			OpenList:   &domain.ListParams{ListName: listName},
			Message:    fmt.Sprintf("Opening %s list...", listName),
			Confidence: keywordConfidence,
		}, true
	}

	if m := navigationRegex.FindStringSubmatch(text); m != nil {
		raw := strings.ToLower(m[2])
		target, ok := navigationTargets[raw]
		if !ok {
			target = raw
		}
		return domain.IntentResult{
			Intent:     domain.IntentNavigation,
			Navigation: &domain.NavigationParams{Target: target},
			Message:    fmt.Sprintf("Going to %s...", target),
			Confidence: keywordConfidence,
		}, true
	}

	if m := priceCheckRegex.FindStringSubmatch(text); m != nil {
		price, _ := strconv.ParseFloat(m[1], 64)
		return domain.IntentResult{
			Intent: domain.IntentPriceCheck,
			PriceCheck: &domain.PriceCheckParams{
				Item:  strings.TrimSpace(m[5]),
				Price: price,
				Unit:  shortUnit(m[2]),
			},
			Message:    "Let me check that price for you...",
			Confidence: keywordConfidence,
		}, true
	}

	if m := comparePricesRegexes[0].FindStringSubmatch(text); m != nil {
		priceA, _ := strconv.ParseFloat(m[1], 64)
		priceB, _ := strconv.ParseFloat(m[4], 64)
		return comparePricesIntent(priceA, m[2], priceB, m[5]), true
	}
	if m := comparePricesRegexes[1].FindStringSubmatch(text); m != nil {
		priceA, _ := strconv.ParseFloat(m[3], 64)
		priceB, _ := strconv.ParseFloat(m[5], 64)
		return comparePricesIntent(priceA, m[4], priceB, m[6]), true
	}

	for _, re := range helpRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			topic := "general"
			if len(m) > 4 && strings.TrimSpace(m[4]) != "" {
				topic = strings.TrimSpace(m[4])
			}
			return domain.IntentResult{
				Intent:     domain.IntentHelp,
				Help:       &domain.HelpParams{Topic: topic},
				Message:    "Let me help you with that...",
				Confidence: keywordConfidence,
			}, true
		}
	}

	return domain.IntentResult{}, false
}

func comparePricesIntent(priceA float64, unitA string, priceB float64, unitB string) domain.IntentResult {
	return domain.IntentResult{
		Intent: domain.IntentComparePrices,
		ComparePrices: &domain.ComparePricesParams{
			PriceA: priceA,
			UnitA:  shortUnit(unitA),
			PriceB: priceB,
			UnitB:  shortUnit(unitB),
		},
		Message:    "Comparing those prices...",
		Confidence: keywordConfidence,
	}
}

// ParseItemsFromText splits free text like "2 apples, milk and a dozen eggs"
// into parsed items with quantities and guessed categories.
func ParseItemsFromText(text string) []domain.ParsedItem {
	var items []domain.ParsedItem
	for _, part := range itemSplitRegex.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name := part
		quantity := 1.0
		if m := itemQuantityRegex.FindStringSubmatch(part); m != nil {
			name = strings.TrimSpace(m[2])
			q := strings.ToLower(m[1])
			switch {
			case digitsOnlyRegex.MatchString(q):
				n, _ := strconv.Atoi(q)
				quantity = float64(n)
			case q == "a couple" || q == "a few":
				quantity = 2
			case q == "a dozen":
				quantity = 12
			}
		}

		items = append(items, domain.ParsedItem{
			Name:     name,
			Quantity: quantity,
			Category: GuessCategory(name),
		})
	}
	return items
}

// GuessCategory assigns a grocery category from keyword containment, falling
// back to "Other".
func GuessCategory(itemName string) string {
	name := strings.ToLower(itemName)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.category
			}
		}
	}
	return "Other"
}

func shortUnit(unit string) string {
	normalized := strings.ToLower(strings.TrimSpace(unit))
	if normalized == "" {
		return "each"
	}
	switch normalized {
	case "lb", "lbs", "pound", "pounds":
		return "lb"
	case "oz", "ounce", "ounces":
		return "oz"
	case "each", "ea":
		return "each"
	}
	return normalized
}
