package domain

import (
	"context"
	"time"
)

// ItemRepository defines the persistence operations the core depends on.
// Duplicate-key behavior is caller-managed, not store-enforced.
type ItemRepository interface {
	Insert(ctx context.Context, item *GroceryItem) (*GroceryItem, error)
	ListByStore(ctx context.Context, storeName string) ([]GroceryItem, error)
	ListFlagged(ctx context.Context) ([]GroceryItem, error)
}

// IntentClassifier defines the hosted completion bridge. Implementations must
// never propagate parse or network failures: every error path degrades to an
// IntentUnknown result with a user-facing message.
type IntentClassifier interface {
	Classify(ctx context.Context, userText string) (IntentResult, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
