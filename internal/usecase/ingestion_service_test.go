package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/grocertrack/backend/internal/domain"
)

type fakeItemRepo struct {
	items     []domain.GroceryItem
	insertErr error
	listErr   error
	nextID    int
}

func (f *fakeItemRepo) Insert(_ context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	stored := *item
	stored.ID = fmt.Sprintf("item-%d", f.nextID)
	f.items = append(f.items, stored)
	return &stored, nil
}

func (f *fakeItemRepo) ListByStore(_ context.Context, storeName string) ([]domain.GroceryItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.GroceryItem
	for _, item := range f.items {
		if NormalizeStoreName(item.StoreName) == storeName {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ListFlagged(_ context.Context) ([]domain.GroceryItem, error) {
	var out []domain.GroceryItem
	for _, item := range f.items {
		if item.FlaggedForReview {
			out = append(out, item)
		}
	}
	return out, nil
}

func newTestIngestion(repo *fakeItemRepo) *IngestionService {
	return NewIngestionService(repo, NewMatchingService(MatcherConfig{}), nil)
}

var purchaseDay = time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new item with defaults", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		res, err := svc.Ingest(ctx, IngestInput{
			ItemName:      "Whole Milk",
			Price:         4.99,
			Quantity:      2,
			StoreName:     "Safeway",
			DatePurchased: purchaseDay,
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Item == nil || res.Item.ID == "" {
			t.Fatal("expected created item with id")
		}
		if res.Item.UnitType != "each" {
			t.Errorf("UnitType = %q, want each", res.Item.UnitType)
		}
		if res.Item.Category != "Other" {
			t.Errorf("Category = %q, want Other", res.Item.Category)
		}
		if res.Item.UnitPrice != 4.99/2 {
			t.Errorf("UnitPrice = %v, want %v", res.Item.UnitPrice, 4.99/2)
		}
		if res.Flagged {
			t.Errorf("unexpected flag: %s", res.FlagReason)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		_, err := svc.Ingest(ctx, IngestInput{Price: 1.00, StoreName: "Safeway"}, IngestOptions{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		_, err := svc.Ingest(ctx, IngestInput{ItemName: "Milk", Price: 0}, IngestOptions{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("exact duplicate suggests update", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "whole milk", Price: 4.99, Quantity: 1,
			StoreName: "Safeway", DatePurchased: purchaseDay.Add(3 * time.Hour),
		}, IngestOptions{})
		if !errors.Is(err, domain.ErrDuplicateItem) {
			t.Fatalf("error = %v, want ErrDuplicateItem", err)
		}
		if res.MatchFound == nil {
			t.Fatal("expected MatchFound")
		}
		if res.MatchFound.ExistingItem.ID != "item-1" {
			t.Errorf("ExistingItem.ID = %q, want item-1", res.MatchFound.ExistingItem.ID)
		}
		if res.MatchFound.SuggestedAction != "update" {
			t.Errorf("SuggestedAction = %q, want update", res.MatchFound.SuggestedAction)
		}
		if len(repo.items) != 1 {
			t.Errorf("repo has %d items, want 1 (duplicate not inserted)", len(repo.items))
		}
	})

	t.Run("near duplicate suggests confirm", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk Gallon", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Whole Milk", Price: 4.99, Quantity: 1,
			StoreName: "Safeway", DatePurchased: purchaseDay,
		}, IngestOptions{})
		if !errors.Is(err, domain.ErrDuplicateItem) {
			t.Fatalf("error = %v, want ErrDuplicateItem", err)
		}
		if res.MatchFound.SuggestedAction != "confirm" {
			t.Errorf("SuggestedAction = %q, want confirm", res.MatchFound.SuggestedAction)
		}
	})

	t.Run("different price is not a duplicate", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		_, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Whole Milk", Price: 3.49, Quantity: 1,
			StoreName: "Safeway", DatePurchased: purchaseDay,
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.items) != 2 {
			t.Errorf("repo has %d items, want 2", len(repo.items))
		}
	})

	t.Run("different day is not a duplicate", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		_, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Whole Milk", Price: 4.99, Quantity: 1,
			StoreName: "Safeway", DatePurchased: purchaseDay.AddDate(0, 0, 7),
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("skip duplicate check inserts unconditionally", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		_, err := svc.Ingest(ctx, seed, IngestOptions{SkipDuplicateCheck: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.items) != 2 {
			t.Errorf("repo has %d items, want 2", len(repo.items))
		}
	})

	t.Run("pool read failure does not block insert", func(t *testing.T) {
		repo := &fakeItemRepo{listErr: errors.New("store down")}
		svc := newTestIngestion(repo)

		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Eggs", Price: 3.99, Quantity: 1, StoreName: "Safeway",
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Item == nil {
			t.Fatal("expected inserted item")
		}
	})

	t.Run("low ocr confidence flags the item", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Bananas", Price: 1.29, Quantity: 1, StoreName: "Safeway",
			OCRSource: domain.OCRSourceTesseract, OCRConfidence: 0.5,
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Flagged {
			t.Fatal("expected item to be flagged")
		}
		if res.FlagReason != "Low OCR confidence" {
			t.Errorf("FlagReason = %q, want Low OCR confidence", res.FlagReason)
		}
	})

	t.Run("manual entry is never flagged for confidence", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Bananas", Price: 1.29, Quantity: 1, StoreName: "Safeway",
			OCRSource: domain.OCRSourceManualEntry,
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Flagged {
			t.Errorf("unexpected flag: %s", res.FlagReason)
		}
	})

	t.Run("suspicious price and quantity combine reasons", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		res, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Gold Bars", Price: 25000, Quantity: 2000, StoreName: "Safeway",
		}, IngestOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Flagged {
			t.Fatal("expected item to be flagged")
		}
		if !strings.Contains(res.FlagReason, "Suspicious price detected") ||
			!strings.Contains(res.FlagReason, "Suspicious quantity") {
			t.Errorf("FlagReason = %q, want both reasons", res.FlagReason)
		}
	})

	t.Run("insert failure surfaces the error", func(t *testing.T) {
		repo := &fakeItemRepo{insertErr: errors.New("connection refused")}
		svc := newTestIngestion(repo)
		_, err := svc.Ingest(ctx, IngestInput{
			ItemName: "Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway",
		}, IngestOptions{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestIngestBatch(t *testing.T) {
	ctx := context.Background()
	metadata := domain.IngestionMetadata{
		StoreName:     "Safeway",
		DatePurchased: purchaseDay,
		OCRSource:     domain.OCRSourceGoogleVision,
		ReceiptURL:    "https://example.com/receipts/42.jpg",
	}

	t.Run("one result per line item in order", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		lineItems := []domain.ReceiptLineItem{
			{Description: "Whole Milk", Price: 4.99, Quantity: 1, Confidence: 0.92},
			{Description: "", Price: 2.49, Quantity: 1, Confidence: 0.92},
			{Description: "Bananas", Price: 1.29, Quantity: 1, Confidence: 0.92},
		}

		results := svc.IngestBatch(ctx, lineItems, metadata)
		if len(results) != len(lineItems) {
			t.Fatalf("got %d results, want %d", len(results), len(lineItems))
		}
		for i, r := range results {
			if r.ItemName != lineItems[i].Description {
				t.Errorf("result %d name = %q, want %q", i, r.ItemName, lineItems[i].Description)
			}
		}

		if results[0].ID == "" || results[0].Flagged {
			t.Errorf("result 0 = %+v, want clean insert", results[0])
		}
		if results[1].ID != "" || !results[1].Flagged || results[1].Error == "" {
			t.Errorf("result 1 = %+v, want isolated failure", results[1])
		}
		if results[1].FlagReason != "Ingestion failed" {
			t.Errorf("result 1 reason = %q, want Ingestion failed", results[1].FlagReason)
		}
		if results[2].ID == "" {
			t.Errorf("result 2 = %+v, failure must not abort later items", results[2])
		}
	})

	t.Run("duplicate names the existing record and price", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)

		seed := IngestInput{ItemName: "Whole Milk", Price: 4.99, Quantity: 1, StoreName: "Safeway", DatePurchased: purchaseDay}
		if _, err := svc.Ingest(ctx, seed, IngestOptions{}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		results := svc.IngestBatch(ctx, []domain.ReceiptLineItem{
			{Description: "Whole Milk", Price: 4.99, Quantity: 1, Confidence: 0.95},
		}, metadata)
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if !results[0].Flagged || results[0].ID != "" {
			t.Fatalf("result = %+v, want flagged with no id", results[0])
		}
		want := `Possible duplicate of "Whole Milk" ($4.99)`
		if results[0].FlagReason != want {
			t.Errorf("FlagReason = %q, want %q", results[0].FlagReason, want)
		}
	})

	t.Run("low ocr confidence flags with fixed reason", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		results := svc.IngestBatch(ctx, []domain.ReceiptLineItem{
			{Description: "Mystery Item", Price: 2.99, Quantity: 1, Confidence: 0.5},
		}, metadata)
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if !results[0].Flagged || results[0].FlagReason != "Low OCR confidence" {
			t.Errorf("result = %+v, want Low OCR confidence flag", results[0])
		}
		if results[0].ID == "" {
			t.Error("flagged item should still be inserted")
		}
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		repo := &fakeItemRepo{}
		svc := newTestIngestion(repo)
		results := svc.IngestBatch(ctx, []domain.ReceiptLineItem{
			{Description: "Eggs", Price: 3.99, Confidence: 0.9},
		}, metadata)
		if results[0].Error != "" {
			t.Fatalf("unexpected error: %s", results[0].Error)
		}
		if repo.items[0].Quantity != 1 {
			t.Errorf("Quantity = %v, want 1", repo.items[0].Quantity)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		svc := newTestIngestion(&fakeItemRepo{})
		if results := svc.IngestBatch(ctx, nil, metadata); len(results) != 0 {
			t.Errorf("got %d results, want 0", len(results))
		}
	})
}
