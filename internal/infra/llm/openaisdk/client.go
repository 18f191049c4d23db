package openaisdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
)

// Client adapts the official OpenAI SDK to the chatgpt request/response shapes,
// so it can stand in for the hand-written transport against any
// OpenAI-compatible endpoint.
type Client struct {
	client     openai.Client
	configured bool
}

// NewClient builds an SDK backed client. SDK retries are disabled: fallback
// across models is decided by the caller, never by re-sending the same model.
func NewClient(apiKey, baseURL string, opts chatgpt.Options) *Client {
	apiKey = strings.TrimSpace(apiKey)
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	if opts.Referer != "" {
		reqOpts = append(reqOpts, option.WithHeader("HTTP-Referer", opts.Referer))
	}
	if opts.Title != "" {
		reqOpts = append(reqOpts, option.WithHeader("X-Title", opts.Title))
	}
	return &Client{
		client:     openai.NewClient(reqOpts...),
		configured: apiKey != "",
	}
}

// CreateChatCompletion performs one synchronous call through the SDK.
func (c *Client) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	var out chatgpt.ChatCompletionResponse
	if !c.configured {
		return out, chatgpt.ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    toSDKMessages(req.Messages),
		Temperature: openai.Float(float64(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return out, translateError(err)
	}

	out.Model = resp.Model
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, struct {
			Message chatgpt.Message `json:"message"`
		}{Message: chatgpt.Message{Role: string(choice.Message.Role), Content: choice.Message.Content}})
	}
	return out, nil
}

func toSDKMessages(messages []chatgpt.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// translateError maps SDK failures onto the chatgpt error taxonomy.
func translateError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &chatgpt.StatusError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &chatgpt.DecodeError{Err: err}
	}
	return fmt.Errorf("request chat completion: %w", err)
}
