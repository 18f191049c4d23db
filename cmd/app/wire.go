//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-summarizer/internal/bootstrap"
	"github.com/yanqian/ai-summarizer/internal/domain/completion"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
	"github.com/yanqian/ai-summarizer/internal/domain/translator"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	"github.com/yanqian/ai-summarizer/internal/infra/extract"
	httpiface "github.com/yanqian/ai-summarizer/internal/interface/http"
	"github.com/yanqian/ai-summarizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryConfig,
		provideCompletionConfig,
		provideChatClient,
		provideExtractConfig,
		provideTokenCounter,
		textstats.NewCounter,
		completion.NewService,
		summarizer.NewService,
		translator.NewService,
		extract.NewExtractor,
		wire.Bind(new(httpiface.SourceExtractor), new(*extract.Extractor)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
