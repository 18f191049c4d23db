package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/ai-summarizer/internal/infra/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		limitBody(cfg.HTTP.MaxUploadBytes),
	)

	router.GET("/", handler.Index)
	router.POST("/generate", handler.Generate)
	router.POST("/translate", handler.Translate)
	router.POST("/export/txt", handler.ExportTXT)
	router.POST("/export/pdf", handler.ExportPDF)

	api := router.Group("/api")
	{
		api.POST("/wordcount", handler.WordCount)
		api.POST("/v1/summaries", handler.Summarize)
	}

	if cfg.Metrics.Enabled {
		registerMetrics(router, cfg.Metrics.Path, handler.logger)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func registerMetrics(router *gin.Engine, path string, logger *slog.Logger) {
	if path == "" {
		path = "/metrics"
	}
	router.GET(path, gin.WrapH(promhttp.Handler()))
	logger.Info("metrics endpoint enabled", "path", path)
}
