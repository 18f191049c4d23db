package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
	"github.com/yanqian/ai-summarizer/internal/domain/translator"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	apperrors "github.com/yanqian/ai-summarizer/pkg/errors"
)

const multipartMemory = 8 << 20

// SourceExtractor turns uploads and links into plain text.
type SourceExtractor interface {
	FromUpload(filename string, data []byte) (string, error)
	FromURL(ctx context.Context, raw string) (string, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	summarizerSvc  summarizer.Service
	translatorSvc  translator.Service
	extractor      SourceExtractor
	counter        *textstats.Counter
	maxInputLength int
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, summarySvc summarizer.Service, translatorSvc translator.Service, extractor SourceExtractor, counter *textstats.Counter, logger *slog.Logger) *Handler {
	return &Handler{
		summarizerSvc:  summarySvc,
		translatorSvc:  translatorSvc,
		extractor:      extractor,
		counter:        counter,
		maxInputLength: cfg.Summary.MaxInputLength,
		maxUploadBytes: cfg.HTTP.MaxUploadBytes,
		logger:         logger.With("component", "http.handler"),
	}
}

// pageData feeds templates/index.html.
type pageData struct {
	Error          string
	UserText       string
	URLInput       string
	Summary        string
	ModelUsed      string
	InputStats     *textstats.Stats
	SummaryStats   *textstats.Stats
	Length         string
	Mode           string
	Style          string
	Language       string
	MaxInputLength int
}

func (h *Handler) newPage() pageData {
	return pageData{
		Length:         "2",
		Mode:           string(summarizer.FormatParagraph),
		Style:          string(summarizer.StyleStandard),
		MaxInputLength: h.maxInputLength,
	}
}

// Index renders the empty form.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.newPage())
}

// Generate handles the HTML form: resolve the source, summarize, render.
func (h *Handler) Generate(c *gin.Context) {
	page := h.newPage()
	if err := h.parseForm(c); err != nil {
		h.renderError(c, page, err)
		return
	}

	page.UserText = strings.TrimSpace(c.PostForm("user_text"))
	page.URLInput = strings.TrimSpace(c.PostForm("url_input"))
	page.Length = c.DefaultPostForm("length", page.Length)
	page.Mode = c.DefaultPostForm("mode", page.Mode)
	page.Style = c.DefaultPostForm("summary_mode", page.Style)
	page.Language = strings.TrimSpace(c.PostForm("target_language"))

	text, err := h.resolveSource(c, page.UserText, page.URLInput)
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	page.UserText = text

	resp, err := h.summarizerSvc.Summarize(c.Request.Context(), summarizer.Request{
		Text:     text,
		Length:   page.Length,
		Format:   page.Mode,
		Style:    page.Style,
		Language: page.Language,
	})
	if err != nil {
		if text != "" {
			stats := h.counter.Count(text)
			page.InputStats = &stats
		}
		h.renderError(c, page, err)
		return
	}

	page.Summary = resp.Summary
	page.ModelUsed = resp.ModelUsed
	page.InputStats = &resp.InputStats
	page.SummaryStats = &resp.SummaryStats
	page.Length = lengthFormValue(resp.Options.Length)
	page.Mode = string(resp.Options.Format)
	page.Style = string(resp.Options.Style)
	c.HTML(http.StatusOK, "index.html", page)
}

// Summarize is the JSON twin of Generate for API callers.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.summarizerSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, NewHTTPError(statusForCode(apperrors.Code(err)), "summarize_failed", apperrors.Message(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Translate returns the completion result for a translation as JSON.
func (h *Handler) Translate(c *gin.Context) {
	var req translator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.translatorSvc.Translate(c.Request.Context(), req))
}

type wordCountRequest struct {
	Text string `json:"text"`
}

// WordCount returns live statistics for the input box.
func (h *Handler) WordCount(c *gin.Context) {
	var req wordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.counter.Count(req.Text))
}

// parseForm parses url-encoded and multipart bodies up front so size errors surface once.
func (h *Handler) parseForm(c *gin.Context) error {
	var err error
	if c.ContentType() == "multipart/form-data" {
		err = c.Request.ParseMultipartForm(multipartMemory)
	} else {
		err = c.Request.ParseForm()
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Wrap("too_large", "Upload is too large. Maximum "+humanBytes(h.maxUploadBytes)+" allowed.", err)
	}
	return apperrors.Wrap("invalid_input", "Could not read the submitted form.", err)
}

// resolveSource picks the text to summarize: an uploaded file wins, then a URL, then typed text.
func (h *Handler) resolveSource(c *gin.Context, userText, urlInput string) (string, error) {
	fileHeader, err := c.FormFile("file_upload")
	switch {
	case err == nil && fileHeader.Filename != "":
		file, err := fileHeader.Open()
		if err != nil {
			return "", apperrors.Wrap("invalid_input", "Failed to read the uploaded file.", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", apperrors.Wrap("invalid_input", "Failed to read the uploaded file.", err)
		}
		return h.extractor.FromUpload(fileHeader.Filename, data)
	case err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return "", apperrors.Wrap("invalid_input", "Failed to read the uploaded file.", err)
	}

	if urlInput != "" {
		return h.extractor.FromURL(c.Request.Context(), urlInput)
	}
	return userText, nil
}

func (h *Handler) renderError(c *gin.Context, page pageData, err error) {
	status := statusForCode(apperrors.Code(err))
	if status >= http.StatusInternalServerError {
		h.logger.Error("generate failed", "status", status, "error", err)
	} else {
		h.logger.Warn("generate rejected", "status", status, "error", err)
	}
	page.Error = apperrors.Message(err)
	c.HTML(status, "index.html", page)
}

// lengthFormValue maps a resolved length back onto the slider position.
func lengthFormValue(l summarizer.Length) string {
	switch l {
	case summarizer.LengthShort:
		return "1"
	case summarizer.LengthLong:
		return "3"
	default:
		return "2"
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
