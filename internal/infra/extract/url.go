package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"

	apperrors "github.com/yanqian/ai-summarizer/pkg/errors"
	"github.com/yanqian/ai-summarizer/pkg/metrics"
)

var strictURLs = xurls.Strict()

const urlFailureMessage = "Failed to extract text from URL. Please check the link and try again."

// FromURL fetches a web page or feed and returns its readable text.
// The first http(s) URL found in raw is used, so pasted text around a link is tolerated.
func (e *Extractor) FromURL(ctx context.Context, raw string) (string, error) {
	target, err := findURL(raw)
	if err != nil {
		return "", apperrors.Wrap("invalid_input", "Please enter a valid http or https URL.", err)
	}

	text, err := e.fetch(ctx, target)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("no readable text")
	}
	if err != nil {
		metrics.ExtractionFailures.WithLabelValues("url").Inc()
		e.logger.Warn("url extraction failed", "url", target, "error", err)
		return "", apperrors.Wrap("extraction_failed", urlFailureMessage, err)
	}
	return text, nil
}

func findURL(raw string) (string, error) {
	candidate := strictURLs.FindString(strings.TrimSpace(raw))
	if candidate == "" {
		return "", fmt.Errorf("no url in %q", raw)
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("url has no host")
	}
	return u.String(), nil
}

func (e *Extractor) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if e.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", e.cfg.UserAgent)
	}

	resp, err := e.httpClient.Do(req) //nolint:gosec // user supplied URL is the feature
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			e.logger.ErrorContext(ctx, "failed to close response body", "error", err, "url", target)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.cfg.MaxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if isFeedContentType(resp.Header.Get("Content-Type")) {
		if text, feedErr := feedText(bytes.NewReader(body)); feedErr == nil {
			return text, nil
		}
	}
	return htmlText(bytes.NewReader(body))
}
