package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-summarizer/pkg/metrics"
)

// Service sends a finished prompt to the upstream API with ordered model fallback.
type Service interface {
	Complete(ctx context.Context, prompt string) Result
}

// ChatClient sends one chat completion request.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg    Config
	client ChatClient
	logger *slog.Logger
}

// NewService is a wire provider for the completion domain.
func NewService(cfg Config, client ChatClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "completion.service")}
}

// attemptError keeps the classification next to the user facing message.
type attemptError struct {
	kind    FailureKind
	message string
	err     error
}

func (s *service) Complete(ctx context.Context, prompt string) Result {
	if len(s.cfg.Models) == 0 {
		return failed("No models configured.")
	}

	var last *attemptError
	for i, candidate := range s.cfg.Models {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("completion abandoned", "reason", err, "remaining", len(s.cfg.Models)-i)
			if last == nil {
				return failed(fmt.Sprintf("Request cancelled: %v", err))
			}
			break
		}

		start := time.Now()
		text, model, attemptErr := s.attempt(ctx, candidate, prompt)
		elapsed := time.Since(start)

		if attemptErr == nil {
			metrics.ObserveAttempt(candidate.ID, "success", elapsed)
			s.logger.Info("completion succeeded", "model", model, "candidate", candidate.ID, "attempt", i+1, "latency_ms", elapsed.Milliseconds())
			return succeeded(text, model)
		}

		metrics.ObserveAttempt(candidate.ID, string(attemptErr.kind), elapsed)
		s.logger.Warn("completion attempt failed",
			"model", candidate.ID,
			"attempt", i+1,
			"kind", attemptErr.kind,
			"latency_ms", elapsed.Milliseconds(),
			"error", attemptErr.err,
		)
		last = attemptErr

		if attemptErr.kind == FailureMissingCredentials {
			return failed(attemptErr.message)
		}
	}

	metrics.CompletionExhausted.Inc()
	s.logger.Error("all completion candidates failed", "candidates", len(s.cfg.Models), "last_error", last.message)
	return failed(last.message)
}

func (s *service) attempt(ctx context.Context, candidate ModelAttempt, prompt string) (string, string, *attemptError) {
	attemptCtx, cancel := context.WithTimeout(ctx, candidate.Timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(attemptCtx, chatgpt.ChatCompletionRequest{
		Model:       candidate.ID,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", "", classify(err, candidate)
	}

	if len(resp.Choices) == 0 {
		return "", "", &attemptError{
			kind:    FailureMalformedResponse,
			message: "Unexpected API response format: no choices returned",
			err:     errors.New("empty choices"),
		}
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", "", &attemptError{
			kind:    FailureMalformedResponse,
			message: "Unexpected API response format: empty message content",
			err:     errors.New("empty content"),
		}
	}

	model := strings.TrimSpace(resp.Model)
	if model == "" {
		model = candidate.ID
	}
	return content, model, nil
}

func classify(err error, candidate ModelAttempt) *attemptError {
	var (
		statusErr *chatgpt.StatusError
		decodeErr *chatgpt.DecodeError
		netErr    net.Error
	)
	switch {
	case errors.Is(err, chatgpt.ErrMissingAPIKey):
		return &attemptError{kind: FailureMissingCredentials, message: MissingCredentialsMessage, err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &attemptError{
			kind:    FailureTimeout,
			message: fmt.Sprintf("Request timed out after %s (model %s). Please try again.", candidate.Timeout, candidate.ID),
			err:     err,
		}
	case errors.As(err, &statusErr):
		return &attemptError{kind: FailureHTTPStatus, message: statusErr.Error(), err: err}
	case errors.As(err, &decodeErr):
		return &attemptError{kind: FailureMalformedResponse, message: "Unexpected API response format: " + decodeErr.Err.Error(), err: err}
	default:
		return &attemptError{kind: FailureTransport, message: "Exception: " + err.Error(), err: err}
	}
}
