package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/grocertrack/backend/internal/domain"
)

// MemoryStore is an in-process item repository. It backs local development
// and tests when no Supabase project is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items []domain.GroceryItem
}

// NewMemoryStore creates an empty in-memory item repository
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert stores a copy of the item under a fresh UUID.
func (m *MemoryStore) Insert(_ context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *item
	stored.ID = uuid.NewString()
	m.items = append(m.items, stored)

	out := stored
	return &out, nil
}

// ListByStore returns items whose store name matches ignoring case and
// whitespace runs.
func (m *MemoryStore) ListByStore(_ context.Context, storeName string) ([]domain.GroceryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := foldStoreName(storeName)
	var out []domain.GroceryItem
	for _, item := range m.items {
		if foldStoreName(item.StoreName) == want {
			out = append(out, item)
		}
	}
	return out, nil
}

// ListFlagged returns items awaiting review.
func (m *MemoryStore) ListFlagged(_ context.Context) ([]domain.GroceryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.GroceryItem
	for _, item := range m.items {
		if item.FlaggedForReview {
			out = append(out, item)
		}
	}
	return out, nil
}

// Len reports the number of stored items.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func foldStoreName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
