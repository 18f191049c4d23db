package extract

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/yanqian/ai-summarizer/pkg/errors"
	"github.com/yanqian/ai-summarizer/pkg/metrics"
)

// Config controls URL fetching.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// Extractor turns uploads and web pages into plain text.
type Extractor struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExtractor is a wire provider for source extraction.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}
	return &Extractor{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "extract"),
	}
}

var allowedExtensions = map[string]func([]byte) (string, error){
	"txt":  txtText,
	"pdf":  pdfText,
	"docx": docxText,
}

// AllowedFile reports whether the filename has a supported extension.
func AllowedFile(filename string) bool {
	_, ok := allowedExtensions[extension(filename)]
	return ok
}

// FromUpload extracts text from an uploaded TXT, PDF or DOCX file.
func (e *Extractor) FromUpload(filename string, data []byte) (string, error) {
	ext := extension(filename)
	parse, ok := allowedExtensions[ext]
	if !ok {
		return "", apperrors.Wrap("invalid_input", "Invalid file type. Please upload PDF, DOCX, or TXT files only.", nil)
	}

	text, err := parse(data)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("no text found")
	}
	if err != nil {
		metrics.ExtractionFailures.WithLabelValues(ext).Inc()
		e.logger.Warn("file extraction failed", "filename", filename, "type", ext, "bytes", len(data), "error", err)
		return "", apperrors.Wrap("extraction_failed", fmt.Sprintf("Failed to extract text from %s. Please try a different file.", filepath.Base(filename)), err)
	}
	return strings.TrimSpace(text), nil
}

func extension(filename string) string {
	ext := filepath.Ext(strings.TrimSpace(filename))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
