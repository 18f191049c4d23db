package main

import (
	"log/slog"

	"github.com/yanqian/ai-summarizer/internal/domain/completion"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	"github.com/yanqian/ai-summarizer/internal/infra/extract"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/openaisdk"
	"github.com/yanqian/ai-summarizer/internal/infra/tokenizer"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		MaxInputLength: cfg.Summary.MaxInputLength,
	}
}

func provideCompletionConfig(cfg *config.Config) completion.Config {
	models := make([]completion.ModelAttempt, 0, len(cfg.LLM.Models))
	for _, m := range cfg.LLM.Models {
		models = append(models, completion.ModelAttempt{ID: m.ID, Timeout: m.Timeout})
	}
	return completion.Config{
		Models:      models,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
}

// provideChatClient picks the chat transport; both speak the same wire format.
func provideChatClient(cfg *config.Config, logger *slog.Logger) completion.ChatClient {
	opts := chatgpt.Options{Referer: cfg.LLM.Referer, Title: cfg.LLM.Title}
	if cfg.LLM.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set, summaries will fail until it is configured")
	}
	if cfg.LLM.Transport == config.TransportSDK {
		logger.Info("chat transport selected", "transport", config.TransportSDK, "base_url", cfg.LLM.BaseURL)
		return openaisdk.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, opts)
	}
	logger.Info("chat transport selected", "transport", config.TransportHTTP, "base_url", cfg.LLM.BaseURL)
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, opts)
}

func provideExtractConfig(cfg *config.Config) extract.Config {
	return extract.Config{
		Timeout:   cfg.Extract.URLTimeout,
		MaxBytes:  cfg.Extract.MaxURLBytes,
		UserAgent: cfg.Extract.UserAgent,
	}
}

// provideTokenCounter returns nil when the encoding cannot be loaded; stats then omit tokens.
func provideTokenCounter(cfg *config.Config, logger *slog.Logger) textstats.TokenCounter {
	if cfg.Stats.TokenEncoding == "" {
		return nil
	}
	tk, err := tokenizer.NewTiktoken(cfg.Stats.TokenEncoding)
	if err != nil {
		logger.Warn("token estimates disabled", "encoding", cfg.Stats.TokenEncoding, "error", err)
		return nil
	}
	return tk
}
