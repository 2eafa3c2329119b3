package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dilm-seo/ia-analyste/types"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	systemPrompt = "You are a professional forex analyst specializing in news analysis and trading signals."

	requestTemperature = 0.7
)

// ErrMissingAPIKey is returned when analysis is attempted without a
// configured API key. No network call is made in that case.
var ErrMissingAPIKey = errors.New("no API key configured")

// AnalysisError wraps a classification service or network failure.
// The caller must not apply any partial result when it is returned.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string { return "news analysis: " + e.Err.Error() }
func (e *AnalysisError) Unwrap() error { return e.Err }

// Credentials identify the caller against the classification service.
type Credentials struct {
	APIKey string
	Model  string
}

// Result carries the outcome of one classification run: the batch
// with classification fields applied, and the derived signal.
type Result struct {
	UpdatedNews []types.NewsItem
	Signal      types.TradingSignal
}

// ClientConfig holds configuration for the classifier client.
type ClientConfig struct {
	// BaseURL of an OpenAI-compatible chat-completions service.
	// Default: https://api.openai.com/v1
	BaseURL string
	// Policy recalibrates the raw confidence score. Default: ClampPolicy.
	Policy ConfidencePolicy
	// Timeout for the service call. Zero means no client-side timeout;
	// the remote service's own timeout governs.
	Timeout time.Duration
}

// Client sends news batches to a chat-completions service and turns
// the model's free-text reply into classified news plus a trading
// signal.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     ConfidencePolicy
	now        func() time.Time
	newID      func() string
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	policy := cfg.Policy
	if policy == nil {
		policy = ClampPolicy{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		policy:     policy,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Analyze classifies a batch of news items. Only the first item of the
// batch receives sentiment/impact/keyword updates while the signal
// cites the first two items as sources; this asymmetry is intentional
// and preserved as-is.
func (c *Client) Analyze(ctx context.Context, batch []types.NewsItem, creds Credentials) (*Result, error) {
	if strings.TrimSpace(creds.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if len(batch) == 0 {
		return nil, &AnalysisError{Err: errors.New("empty news batch")}
	}

	reply, err := c.complete(ctx, buildPrompt(batch), creds)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	return c.assemble(batch, parseAnalysis(reply)), nil
}

// Chat-completions wire format: {model, messages, temperature} in,
// one free-text message body out.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, prompt string, creds Credentials) (string, error) {
	payload := chatRequest{
		Model: creds.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: requestTemperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return "", fmt.Errorf("classification service error: status %d: %v", resp.StatusCode, errBody)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("response contains no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
