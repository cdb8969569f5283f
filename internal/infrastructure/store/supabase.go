package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/grocertrack/backend/internal/domain"
)

const defaultTable = "grocery_items"

// SupabaseConfig holds connection settings for the hosted Postgres store.
type SupabaseConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co
	URL    string
	APIKey string
	// Table defaults to grocery_items.
	Table string
}

// SupabaseStore persists grocery items through the PostgREST interface.
// Duplicate detection is caller-managed; the store only inserts and reads.
type SupabaseStore struct {
	httpClient  *http.Client
	cfg         SupabaseConfig
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// NewSupabaseStore creates a new Supabase-backed item repository
func NewSupabaseStore(cfg SupabaseConfig, logger *zap.Logger) *SupabaseStore {
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupabaseStore{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cfg:         cfg,
		rateLimiter: rate.NewLimiter(rate.Limit(20), 40),
		log:         logger,
	}
}

func (s *SupabaseStore) endpoint() string {
	return fmt.Sprintf("%s/rest/v1/%s", s.cfg.URL, s.cfg.Table)
}

func (s *SupabaseStore) newRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", s.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (s *SupabaseStore) do(req *http.Request) ([]byte, error) {
	if err := s.rateLimiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrStoreUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn("store request failed",
			zap.String("url", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrStoreUnavailable, resp.StatusCode, string(body))
	}
	return body, nil
}

// Insert persists a new item and returns the stored record with its assigned id.
func (s *SupabaseStore) Insert(ctx context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	var rows []domain.GroceryItem
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode insert response: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no rows", domain.ErrStoreUnavailable)
	}

	s.log.Debug("inserted item", zap.String("id", rows[0].ID), zap.String("item", rows[0].ItemName))
	return &rows[0], nil
}

// ListByStore returns every record for a store, newest purchases first.
func (s *SupabaseStore) ListByStore(ctx context.Context, storeName string) ([]domain.GroceryItem, error) {
	params := url.Values{}
	params.Set("store_name", "eq."+storeName)
	params.Set("order", "date_purchased.desc")
	return s.list(ctx, params)
}

// ListFlagged returns every record awaiting moderator review.
func (s *SupabaseStore) ListFlagged(ctx context.Context) ([]domain.GroceryItem, error) {
	params := url.Values{}
	params.Set("flagged_for_review", "is.true")
	params.Set("order", "date_purchased.desc")
	return s.list(ctx, params)
}

func (s *SupabaseStore) list(ctx context.Context, params url.Values) ([]domain.GroceryItem, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	var rows []domain.GroceryItem
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %v", domain.ErrStoreUnavailable, err)
	}
	return rows, nil
}
