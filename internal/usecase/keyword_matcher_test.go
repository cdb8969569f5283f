package usecase

import (
	"testing"

	"github.com/grocertrack/backend/internal/domain"
)

func TestMatchKeywordIntent(t *testing.T) {
	t.Run("add items with quantities", func(t *testing.T) {
		result, ok := MatchKeywordIntent("add 2 apples and milk to the list")
		if !ok {
			t.Fatal("expected a match")
		}
		if result.Intent != domain.IntentAddItems {
			t.Fatalf("intent = %v, want add_items", result.Intent)
		}
		if result.AddItems == nil || len(result.AddItems.Items) != 2 {
			t.Fatalf("AddItems = %+v, want 2 items", result.AddItems)
		}
		first := result.AddItems.Items[0]
		if first.Name != "apples" || first.Quantity != 2 {
			t.Errorf("item 0 = %+v, want 2 apples", first)
		}
		second := result.AddItems.Items[1]
		if second.Name != "milk" || second.Quantity != 1 {
			t.Errorf("item 1 = %+v, want 1 milk", second)
		}
		if second.Category != "Dairy" {
			t.Errorf("milk category = %q, want Dairy", second.Category)
		}
		if result.Confidence != 0.9 {
			t.Errorf("confidence = %v, want 0.9", result.Confidence)
		}
	})

	t.Run("need phrasing", func(t *testing.T) {
		result, ok := MatchKeywordIntent("i need a dozen eggs")
		if !ok || result.Intent != domain.IntentAddItems {
			t.Fatalf("result = %+v ok=%v, want add_items", result, ok)
		}
		item := result.AddItems.Items[0]
		if item.Name != "eggs" || item.Quantity != 12 {
			t.Errorf("item = %+v, want 12 eggs", item)
		}
	})

	t.Run("create list with name", func(t *testing.T) {
		result, ok := MatchKeywordIntent("create a shopping list called weekly run")
		if !ok || result.Intent != domain.IntentCreateList {
			t.Fatalf("result = %+v ok=%v, want create_list", result, ok)
		}
		if result.CreateList == nil || result.CreateList.ListName != "weekly run" {
			t.Errorf("CreateList = %+v, want weekly run", result.CreateList)
		}
	})

	t.Run("create list without name", func(t *testing.T) {
		result, ok := MatchKeywordIntent("new list")
		if !ok || result.Intent != domain.IntentCreateList {
			t.Fatalf("result = %+v ok=%v, want create_list", result, ok)
		}
		if result.CreateList.ListName != "" {
			t.Errorf("ListName = %q, want empty", result.CreateList.ListName)
		}
	})

	t.Run("open list", func(t *testing.T) {
		result, ok := MatchKeywordIntent("open my costco list")
		if !ok || result.Intent != domain.IntentOpenList {
			t.Fatalf("result = %+v ok=%v, want open_list", result, ok)
		}
		if result.OpenList.ListName != "costco" {
			t.Errorf("ListName = %q, want costco", result.OpenList.ListName)
		}
	})

	t.Run("navigation with target aliasing", func(t *testing.T) {
		result, ok := MatchKeywordIntent("go to price checker")
		if !ok || result.Intent != domain.IntentNavigation {
			t.Fatalf("result = %+v ok=%v, want navigation", result, ok)
		}
		if result.Navigation.Target != "price-checker" {
			t.Errorf("Target = %q, want price-checker", result.Navigation.Target)
		}
	})

	t.Run("price check", func(t *testing.T) {
		result, ok := MatchKeywordIntent("is $5.99/lb good for chicken?")
		if !ok || result.Intent != domain.IntentPriceCheck {
			t.Fatalf("result = %+v ok=%v, want price_check", result, ok)
		}
		p := result.PriceCheck
		if p.Price != 5.99 || p.Unit != "lb" {
			t.Errorf("params = %+v, want 5.99/lb", p)
		}
		if p.Item != "chicken?" && p.Item != "chicken" {
			t.Errorf("Item = %q, want chicken", p.Item)
		}
	})

	t.Run("compare prices", func(t *testing.T) {
		result, ok := MatchKeywordIntent("$4/lb vs $0.30/oz")
		if !ok || result.Intent != domain.IntentComparePrices {
			t.Fatalf("result = %+v ok=%v, want compare_prices", result, ok)
		}
		p := result.ComparePrices
		if p.PriceA != 4 || p.UnitA != "lb" || p.PriceB != 0.30 || p.UnitB != "oz" {
			t.Errorf("params = %+v", p)
		}
	})

	t.Run("help with topic", func(t *testing.T) {
		result, ok := MatchKeywordIntent("how do I share a list")
		if !ok || result.Intent != domain.IntentHelp {
			t.Fatalf("result = %+v ok=%v, want help", result, ok)
		}
		if result.Help.Topic != "share a list" {
			t.Errorf("Topic = %q, want share a list", result.Help.Topic)
		}
	})

	t.Run("bare help", func(t *testing.T) {
		result, ok := MatchKeywordIntent("help")
		if !ok || result.Intent != domain.IntentHelp {
			t.Fatalf("result = %+v ok=%v, want help", result, ok)
		}
		if result.Help.Topic != "general" {
			t.Errorf("Topic = %q, want general", result.Help.Topic)
		}
	})

	t.Run("no match falls through", func(t *testing.T) {
		if _, ok := MatchKeywordIntent("what's the weather like on mars"); ok {
			t.Error("expected no keyword match")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, ok := MatchKeywordIntent("   "); ok {
			t.Error("expected no match for empty input")
		}
	})
}

func TestParseItemsFromText(t *testing.T) {
	t.Run("comma and and separated", func(t *testing.T) {
		items := ParseItemsFromText("bread, 3 bananas and some butter")
		if len(items) != 3 {
			t.Fatalf("got %d items, want 3: %+v", len(items), items)
		}
		if items[0].Name != "bread" || items[0].Quantity != 1 {
			t.Errorf("item 0 = %+v", items[0])
		}
		if items[1].Name != "bananas" || items[1].Quantity != 3 {
			t.Errorf("item 1 = %+v", items[1])
		}
		if items[2].Name != "butter" || items[2].Quantity != 1 {
			t.Errorf("item 2 = %+v", items[2])
		}
	})

	t.Run("a couple means two", func(t *testing.T) {
		items := ParseItemsFromText("a couple avocados")
		if len(items) != 1 || items[0].Quantity != 2 {
			t.Fatalf("items = %+v, want quantity 2", items)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if items := ParseItemsFromText("   "); len(items) != 0 {
			t.Errorf("got %d items, want 0", len(items))
		}
	})
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		item string
		want string
	}{
		{"ribeye steak", "Meat"},
		{"wild salmon", "Seafood"},
		{"greek yogurt", "Dairy"},
		{"sourdough bread", "Bakery"},
		{"orange juice", "Produce"}, // "orange" keyword hits before Beverages
		{"paper towels", "Other"},
	}
	for _, tt := range tests {
		if got := GuessCategory(tt.item); got != tt.want {
			t.Errorf("GuessCategory(%q) = %q, want %q", tt.item, got, tt.want)
		}
	}
}
