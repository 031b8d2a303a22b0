// Package chat is the thin client for the external text-generation
// collaborator behind the support widget.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	gocache "github.com/patrickmn/go-cache"
)

// FallbackReply is returned whenever the collaborator cannot answer.
const FallbackReply = "Thank you for your message. This is a demo response."

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Client calls the text-generation API. Replies are cached per prompt so
// repeated widget questions do not re-hit the API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *gocache.Cache
	log        logger.Logger
}

// NewClient creates a chat client. An empty baseURL disables the external
// call entirely: every reply is the fallback.
func NewClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      gocache.New(cacheTTL, cacheCleanup),
		log:        log,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Reply returns the collaborator's answer for a prompt, or the fixed
// fallback. The second result reports whether the fallback was used.
// Cancellation of ctx aborts the in-flight HTTP call.
func (c *Client) Reply(ctx context.Context, prompt string) (string, bool) {
	if cached, ok := c.cache.Get(prompt); ok {
		return cached.(string), false
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Warn("chat generation failed, serving fallback", "error", err)
		return FallbackReply, true
	}

	c.cache.Set(prompt, text, gocache.DefaultExpiration)
	return text, false
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("no chat API configured")
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("chat API returned empty text")
	}
	return out.Text, nil
}
