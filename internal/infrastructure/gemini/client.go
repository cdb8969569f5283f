package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/grocertrack/backend/internal/domain"
)

const (
	defaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel           = "gemini-2.5-flash"
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 500
)

// User-facing fallback messages. Every failure path maps to one of these;
// the bridge never surfaces a raw parse or network error.
const (
	msgMissingKey   = "Please add your Gemini API key in Settings."
	msgEmptyInput   = "I didn't catch that. Try again?"
	msgAPIFailure   = "I had trouble understanding that. Could you try again?"
	msgParseFailure = "Sorry, I had trouble with that. Try saying something like 'create a list called Groceries'."
)

// Config holds the hosted completion service settings. The API key is
// explicit configuration, never read from ambient state.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// Client calls the Gemini generateContent endpoint to classify user input
// into a typed intent. Each classification is a single request with no
// implicit retry; callers wanting a timeout wrap the context.
type Client struct {
	httpClient  *http.Client
	cfg         Config
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// NewClient creates a new Gemini intent classification client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// Free-tier quota is roughly 10 requests per minute.
	limiter := rate.NewLimiter(rate.Limit(10.0/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:         cfg,
		rateLimiter: limiter,
		log:         logger,
	}
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []requestPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify sends the fixed instruction prompt plus the user text to the
// hosted model and decodes the response into a typed intent. It never
// returns an error: every failure degrades to an unknown intent carrying a
// user-facing message.
func (c *Client) Classify(ctx context.Context, userText string) (domain.IntentResult, error) {
	if c.cfg.APIKey == "" {
		return domain.UnknownIntent(msgMissingKey), nil
	}
	if strings.TrimSpace(userText) == "" {
		return domain.UnknownIntent(msgEmptyInput), nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.log.Warn("rate limiter wait aborted", zap.Error(err))
		return domain.UnknownIntent(msgAPIFailure), nil
	}

	payload := generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: intentPrompt + userText}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("marshal request failed", zap.Error(err))
		return domain.UnknownIntent(msgAPIFailure), nil
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		c.log.Error("build request failed", zap.Error(err))
		return domain.UnknownIntent(msgAPIFailure), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("classification request failed", zap.Error(err))
		return domain.UnknownIntent(msgAPIFailure), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("read response failed", zap.Error(err))
		return domain.UnknownIntent(msgAPIFailure), nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("classification API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return domain.UnknownIntent(msgAPIFailure), nil
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		c.log.Warn("decode response failed", zap.Error(err))
		return domain.UnknownIntent(msgParseFailure), nil
	}
	rawText := ""
	if len(decoded.Candidates) > 0 && len(decoded.Candidates[0].Content.Parts) > 0 {
		rawText = decoded.Candidates[0].Content.Parts[0].Text
	}
	if rawText == "" {
		return domain.UnknownIntent(msgEmptyInput), nil
	}

	span, err := ExtractJSONObject(rawText)
	if err != nil {
		c.log.Warn("model output had no usable json",
			zap.Error(err),
			zap.String("raw", rawText),
		)
		return domain.UnknownIntent(msgParseFailure), nil
	}
	result, err := domain.DecodeIntentJSON([]byte(span))
	if err != nil {
		c.log.Warn("model json did not decode", zap.Error(err), zap.String("span", span))
		return domain.UnknownIntent(msgParseFailure), nil
	}

	c.log.Debug("classified intent",
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
	)
	return result, nil
}
