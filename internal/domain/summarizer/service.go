package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yanqian/ai-summarizer/internal/domain/completion"
	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
	apperrors "github.com/yanqian/ai-summarizer/pkg/errors"
)

// Service exposes summarization capabilities.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg       Config
	completer completion.Service
	counter   *textstats.Counter
	logger    *slog.Logger
}

// NewService is a wire provider for the summarizer domain.
func NewService(cfg Config, completer completion.Service, counter *textstats.Counter, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		completer: completer,
		counter:   counter,
		logger:    logger.With("component", "summarizer.service"),
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	text := normalize(req.Text)
	if text == "" {
		return Response{}, apperrors.Wrap("invalid_input", "Please enter some text or upload a file to summarize.", nil)
	}
	if s.cfg.MaxInputLength > 0 && utf8.RuneCountInString(text) > s.cfg.MaxInputLength {
		return Response{}, apperrors.Wrap("invalid_input", fmt.Sprintf("Text is too long. Maximum %d characters allowed.", s.cfg.MaxInputLength), nil)
	}
	lang, err := NormalizeLanguage(req.Language)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "Invalid target language.", err)
	}

	opts := Options{
		Length:   ParseLength(req.Length),
		Format:   ParseFormat(req.Format),
		Style:    ParseStyle(req.Style),
		Language: lang,
	}
	prompt := BuildPrompt(text, opts)
	s.logger.Debug("prompt built", "length", opts.Length, "mode", opts.Format, "style", opts.Style, "language", opts.Language, "prompt_chars", len(prompt))

	result := s.completer.Complete(ctx, prompt)
	if !result.Success {
		return Response{}, apperrors.Wrap("llm_error", result.Error, nil)
	}

	return Response{
		Summary:      result.Text,
		ModelUsed:    result.ModelUsed,
		Options:      opts,
		InputStats:   s.counter.Count(text),
		SummaryStats: s.counter.Count(result.Text),
	}, nil
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	return text
}
