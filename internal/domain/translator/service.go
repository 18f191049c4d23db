package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yanqian/ai-summarizer/internal/domain/completion"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
)

// Request is the /translate payload.
type Request struct {
	Text     string `json:"text"`
	Language string `json:"target_language"`
}

// Service translates an existing summary into another language.
type Service interface {
	Translate(ctx context.Context, req Request) completion.Result
}

type service struct {
	maxInputLength int
	completer      completion.Service
	logger         *slog.Logger
}

// NewService is a wire provider for the translator domain.
func NewService(cfg summarizer.Config, completer completion.Service, logger *slog.Logger) Service {
	return &service{
		maxInputLength: cfg.MaxInputLength,
		completer:      completer,
		logger:         logger.With("component", "translator.service"),
	}
}

// Translate validates the request and returns the completion result unchanged.
// Validation failures come back as failed results without any upstream call.
func (s *service) Translate(ctx context.Context, req Request) completion.Result {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return completion.Result{Error: "No text to translate."}
	}
	if s.maxInputLength > 0 && utf8.RuneCountInString(text) > s.maxInputLength {
		return completion.Result{Error: fmt.Sprintf("Text is too long. Maximum %d characters allowed.", s.maxInputLength)}
	}
	lang, err := summarizer.NormalizeLanguage(req.Language)
	if err != nil || lang == "" {
		return completion.Result{Error: "Please choose a valid target language."}
	}

	s.logger.Debug("translating", "language", lang, "chars", len(text))
	return s.completer.Complete(ctx, BuildPrompt(text, lang))
}

// BuildPrompt renders the translation instruction; lang must be normalized.
func BuildPrompt(text, lang string) string {
	return "Translate the following text into " + lang + ".\n" +
		"Preserve the meaning, structure and formatting (paragraphs, bullet points, numbering). " +
		"Do not add explanations, notes or content that is not in the text.\n\n" +
		summarizer.LanguageDirective(lang, "translation") + "\n\n" +
		"Text to translate:\n\n" +
		text
}
