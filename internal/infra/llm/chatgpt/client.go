package chatgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// ErrMissingAPIKey is returned before any network I/O when no credential is configured.
var ErrMissingAPIKey = errors.New("api key not configured")

// Message mirrors the OpenAI chat message structure.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the payload sent to the chat-completion API.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse captures the success envelope.
type ChatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("API Error (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("API Error (HTTP %d): %s", e.StatusCode, e.Message)
}

// DecodeError is returned when a 2xx body is not a chat completion envelope.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode chat completion: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Options carries the optional attribution headers OpenRouter understands.
type Options struct {
	Referer string
	Title   string
}

// Client performs HTTP requests to the chat-completion API.
// Deadlines come from the caller's context, one per candidate model.
type Client struct {
	apiKey     string
	baseURL    string
	opts       Options
	httpClient *http.Client
}

// NewClient constructs a client. An empty key is allowed; calls then fail with ErrMissingAPIKey.
func NewClient(apiKey, baseURL string, opts Options) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       opts,
		httpClient: &http.Client{},
	}
}

// CreateChatCompletion performs one synchronous call.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	var out ChatCompletionResponse
	if c.apiKey == "" {
		return out, ErrMissingAPIKey
	}
	body, err := c.doRequest(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{Err: err}
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, req ChatCompletionRequest) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(payload)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat completion: %w", err)
	}
	return body, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req ChatCompletionRequest) (*http.Request, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat completion request: %w", err)
	}
	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.opts.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.opts.Referer)
	}
	if c.opts.Title != "" {
		httpReq.Header.Set("X-Title", c.opts.Title)
	}
	return httpReq, nil
}

// errorMessage pulls error.message out of an error envelope, falling back to the raw body.
func errorMessage(payload []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(payload))
}
