package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	msgNoAPIKey      = "Error: GROQ API key not configured. Please check your configuration."
	msgBadFormat     = "Error: Invalid response format from GROQ API"
	msgUnauthorized  = "Error: Invalid GROQ API key. Please check your credentials."
	msgRateLimited   = "Error: Rate limit exceeded. Please try again later."
	msgConnectFailed = "Error: Unable to connect to GROQ API. Please check your internet connection."
	msgTimeout       = "Error: GROQ API request timed out. Please try again."
)

const systemPrompt = "You are a local data analysis assistant that helps users understand the content " +
	"of structured documents. Give accurate, informative and relevant answers. If the question is " +
	"unrelated to the document or is a general question outside document analysis, politely say that " +
	"you focus on structured data analysis."

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GroqClient talks to the Groq OpenAI-compatible chat completions API.
type GroqClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewGroqClient(cfg Config) *GroqClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GroqClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate sends the prompt and returns the completion text. It never fails:
// every error condition is converted into a descriptive string that the
// caller treats as the answer.
func (c *GroqClient) Generate(ctx context.Context, prompt string, maxTokens int) string {
	if c.cfg.APIKey == "" {
		return msgNoAPIKey
	}

	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	raw, statusCode, err := c.post(ctx, messages, maxTokens)
	if err != nil {
		return degradeTransportError(err)
	}

	switch statusCode {
	case http.StatusOK:
		content, ok := parseCompletion(raw)
		if !ok {
			return msgBadFormat
		}
		return content
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusTooManyRequests:
		return msgRateLimited
	default:
		return fmt.Sprintf("Error: GROQ API returned status %d", statusCode)
	}
}

// Healthcheck issues a minimal completion request to probe the API.
func (c *GroqClient) Healthcheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return errors.New("groq api key not configured")
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	messages := []ChatMessage{{Role: "user", Content: "hello"}}
	_, statusCode, err := c.post(probeCtx, messages, 5)
	if err != nil {
		return fmt.Errorf("groq healthcheck failed: %w", err)
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("groq healthcheck returned status %d", statusCode)
	}
	return nil
}

func (c *GroqClient) post(ctx context.Context, messages []ChatMessage, maxTokens int) ([]byte, int, error) {
	reqBody := map[string]interface{}{
		"model":       c.cfg.Model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": 0.7,
		"top_p":       0.9,
		"stream":      false,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal groq request failed: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("build groq request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read groq response failed: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func parseCompletion(raw []byte) (string, bool) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", false
	}
	return parsed.Choices[0].Message.Content, true
}

func degradeTransportError(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return msgTimeout
		}
		return msgConnectFailed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	return fmt.Sprintf("Error: %v", err)
}
