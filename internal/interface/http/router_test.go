package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-summarizer/internal/domain/completion"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
	"github.com/yanqian/ai-summarizer/internal/domain/translator"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	apperrors "github.com/yanqian/ai-summarizer/pkg/errors"
)

func TestRouter_IndexRendersForm(t *testing.T) {
	rec := serve(newRouterUnderTest(t, routerDeps{}), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `action="/generate"`)
	require.Contains(t, rec.Body.String(), `maxlength="50000"`)
}

func TestRouter_GenerateFromText(t *testing.T) {
	deps := routerDeps{
		summarizer: &stubSummarizer{
			summarizeFn: func(ctx context.Context, req summarizer.Request) (summarizer.Response, error) {
				require.Equal(t, "Go is a language. It compiles fast.", req.Text)
				require.Equal(t, "1", req.Length)
				require.Equal(t, "bullets", req.Format)
				require.Equal(t, "formal", req.Style)
				require.Equal(t, "Spanish", req.Language)
				return summarizer.Response{
					Summary:   "- Go compiles fast",
					ModelUsed: "model-a",
					Options: summarizer.Options{
						Length: summarizer.LengthShort,
						Format: summarizer.FormatBullets,
						Style:  summarizer.StyleFormal,
					},
					InputStats:   textstats.Stats{Words: 7, Characters: 35, Sentences: 2},
					SummaryStats: textstats.Stats{Words: 3, Characters: 17},
				}, nil
			},
		},
	}
	form := url.Values{
		"user_text":       {"  Go is a language. It compiles fast.  "},
		"length":          {"1"},
		"mode":            {"bullets"},
		"summary_mode":    {"formal"},
		"target_language": {"Spanish"},
	}

	rec := serve(newRouterUnderTest(t, deps), formRequest("/generate", form))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "- Go compiles fast")
	require.Contains(t, body, "model model-a")
	require.Contains(t, body, "7 words, 35 characters, 2 sentences")
	require.Contains(t, body, `value="1"`)
	require.Contains(t, body, `<option value="bullets" selected>`)
}

func TestRouter_GenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        apperrors.Wrap("invalid_input", "Please enter some text or upload a file to summarize.", nil),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Please enter some text or upload a file to summarize.",
		},
		{
			name:       "upstream",
			err:        apperrors.Wrap("llm_error", "API Error (HTTP 503): overloaded", nil),
			wantStatus: http.StatusBadGateway,
			wantBody:   "API Error (HTTP 503): overloaded",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := routerDeps{
				summarizer: &stubSummarizer{
					summarizeFn: func(context.Context, summarizer.Request) (summarizer.Response, error) {
						return summarizer.Response{}, tt.err
					},
				},
			}
			rec := serve(newRouterUnderTest(t, deps), formRequest("/generate", url.Values{"user_text": {"kept text"}}))
			require.Equal(t, tt.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tt.wantBody)
			require.Contains(t, rec.Body.String(), "kept text")
		})
	}
}

func TestRouter_GenerateFromUpload(t *testing.T) {
	extractor := &stubExtractor{text: "text from the file"}
	deps := routerDeps{
		extractor: extractor,
		summarizer: &stubSummarizer{
			summarizeFn: func(ctx context.Context, req summarizer.Request) (summarizer.Response, error) {
				require.Equal(t, "text from the file", req.Text)
				return summarizer.Response{Summary: "file summary"}, nil
			},
		},
	}

	req := multipartRequest(t, "/generate", map[string]string{"user_text": "ignored", "url_input": "https://ignored.example"}, "notes.txt", []byte("raw"))
	rec := serve(newRouterUnderTest(t, deps), req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "file summary")
	require.Equal(t, "notes.txt", extractor.filename)
	require.Equal(t, []byte("raw"), extractor.data)
	require.Empty(t, extractor.url)
}

func TestRouter_GenerateFromURL(t *testing.T) {
	extractor := &stubExtractor{text: "article body"}
	deps := routerDeps{
		extractor: extractor,
		summarizer: &stubSummarizer{
			summarizeFn: func(ctx context.Context, req summarizer.Request) (summarizer.Response, error) {
				require.Equal(t, "article body", req.Text)
				return summarizer.Response{Summary: "article summary"}, nil
			},
		},
	}

	form := url.Values{"user_text": {"ignored"}, "url_input": {"https://example.com/post"}}
	rec := serve(newRouterUnderTest(t, deps), formRequest("/generate", form))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://example.com/post", extractor.url)
}

func TestRouter_GenerateExtractionFailure(t *testing.T) {
	deps := routerDeps{
		extractor: &stubExtractor{err: apperrors.Wrap("extraction_failed", "Failed to extract text from notes.pdf. Please try a different file.", nil)},
		summarizer: &stubSummarizer{
			summarizeFn: func(context.Context, summarizer.Request) (summarizer.Response, error) {
				t.Fatal("summarizer must not be called")
				return summarizer.Response{}, nil
			},
		},
	}

	req := multipartRequest(t, "/generate", nil, "notes.pdf", []byte("%PDF-broken"))
	rec := serve(newRouterUnderTest(t, deps), req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Failed to extract text from notes.pdf.")
}

func TestRouter_GenerateUploadTooLarge(t *testing.T) {
	server := newRouterUnderTest(t, routerDeps{}, func(cfg *config.Config) {
		cfg.HTTP.MaxUploadBytes = 1 << 10
	})

	req := multipartRequest(t, "/generate", nil, "big.txt", bytes.Repeat([]byte("a"), 8<<10))
	rec := serve(server, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, rec.Body.String(), "Maximum 1 KB allowed.")
}

func TestRouter_SummarizeSuccess(t *testing.T) {
	resp := summarizer.Response{
		Summary:   "short summary",
		ModelUsed: "model-a",
		Options:   summarizer.Options{Length: summarizer.LengthMedium, Format: summarizer.FormatParagraph, Style: summarizer.StyleStandard},
	}
	deps := routerDeps{
		summarizer: &stubSummarizer{
			summarizeFn: func(ctx context.Context, req summarizer.Request) (summarizer.Response, error) {
				require.Equal(t, "hello world", req.Text)
				require.Equal(t, "takeaways", req.Format)
				return resp, nil
			},
		},
	}

	rec := performRequest("/api/v1/summaries", `{"text":"hello world","mode":"takeaways"}`, newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, rec.Code)

	var got summarizer.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, resp, got)
}

func TestRouter_SummarizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "invalid json", body: `{"text":123}`, wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{
			name:       "invalid input",
			body:       `{"text":""}`,
			err:        apperrors.Wrap("invalid_input", "Please enter some text or upload a file to summarize.", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "summarize_failed",
			wantMsg:    "Please enter some text or upload a file to summarize.",
		},
		{
			name:       "upstream",
			body:       `{"text":"hi"}`,
			err:        apperrors.Wrap("llm_error", "Exception: connection refused", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "summarize_failed",
			wantMsg:    "Exception: connection refused",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := routerDeps{
				summarizer: &stubSummarizer{
					summarizeFn: func(context.Context, summarizer.Request) (summarizer.Response, error) {
						return summarizer.Response{}, tt.err
					},
				},
			}
			rec := performRequest("/api/v1/summaries", tt.body, newRouterUnderTest(t, deps))
			require.Equal(t, tt.wantStatus, rec.Code)

			errBody := decodeErrorBody(t, rec.Body.Bytes())
			require.Equal(t, tt.wantCode, errBody["error"]["code"])
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, errBody["error"]["message"])
			} else {
				require.NotEmpty(t, errBody["error"]["message"])
			}
		})
	}
}

func TestRouter_Translate(t *testing.T) {
	deps := routerDeps{
		translator: &stubTranslator{
			translateFn: func(ctx context.Context, req translator.Request) completion.Result {
				require.Equal(t, "Hola", req.Text)
				require.Equal(t, "English", req.Language)
				return completion.Result{Success: true, Text: "Hello", ModelUsed: "model-b"}
			},
		},
	}

	rec := performRequest("/translate", `{"text":"Hola","target_language":"English"}`, newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, rec.Code)

	var got completion.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, completion.Result{Success: true, Text: "Hello", ModelUsed: "model-b"}, got)
}

func TestRouter_TranslateFailureStillOK(t *testing.T) {
	deps := routerDeps{
		translator: &stubTranslator{
			translateFn: func(context.Context, translator.Request) completion.Result {
				return completion.Result{Error: "No text to translate."}
			},
		},
	}

	rec := performRequest("/translate", `{"text":""}`, newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":false,"text":"","error":"No text to translate."}`, rec.Body.String())
}

func TestRouter_WordCount(t *testing.T) {
	rec := performRequest("/api/wordcount", `{"text":"Hello world."}`, newRouterUnderTest(t, routerDeps{}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"words":2,"characters":12,"sentences":1}`, rec.Body.String())
}

func TestRouter_Export(t *testing.T) {
	server := newRouterUnderTest(t, routerDeps{})

	rec := serve(server, formRequest("/export/txt", url.Values{"summary_text": {"Line one.\nLine two."}}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="summary.txt"`, rec.Header().Get("Content-Disposition"))
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, "Line one.\nLine two.", rec.Body.String())

	rec = serve(server, formRequest("/export/pdf", url.Values{"summary_text": {"Line one."}}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="summary.pdf"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestRouter_ExportEmptySummary(t *testing.T) {
	server := newRouterUnderTest(t, routerDeps{})
	for _, path := range []string{"/export/txt", "/export/pdf"} {
		rec := serve(server, formRequest(path, url.Values{"summary_text": {"   "}}))
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.JSONEq(t, `{"error":"No summary to export"}`, rec.Body.String(), path)
	}
}

func TestRouter_RequestID(t *testing.T) {
	server := newRouterUnderTest(t, routerDeps{})

	rec := serve(server, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "caller-id")
	rec = serve(server, req)
	require.Equal(t, "caller-id", rec.Header().Get(requestIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, routerDeps{}, func(cfg *config.Config) {
		cfg.HTTP.AllowedOrigins = []string{"https://app.example"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/wordcount", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := serve(server, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	enabled := newRouterUnderTest(t, routerDeps{}, func(cfg *config.Config) {
		cfg.Metrics = config.MetricsConfig{Enabled: true, Path: "/metrics"}
	})
	rec := serve(enabled, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")

	disabled := newRouterUnderTest(t, routerDeps{})
	rec = serve(disabled, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusForCode(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, statusForCode("invalid_input"))
	require.Equal(t, http.StatusRequestEntityTooLarge, statusForCode("too_large"))
	require.Equal(t, http.StatusUnprocessableEntity, statusForCode("extraction_failed"))
	require.Equal(t, http.StatusBadGateway, statusForCode("llm_error"))
	require.Equal(t, http.StatusInternalServerError, statusForCode(""))
}

func TestHumanBytes(t *testing.T) {
	require.Equal(t, "16 MB", humanBytes(16<<20))
	require.Equal(t, "1 KB", humanBytes(1<<10))
	require.Equal(t, "1500 bytes", humanBytes(1500))
}

type routerDeps struct {
	summarizer summarizer.Service
	translator translator.Service
	extractor  SourceExtractor
}

func newRouterUnderTest(t *testing.T, deps routerDeps, mutate ...func(cfg *config.Config)) *http.Server {
	t.Helper()
	if deps.summarizer == nil {
		deps.summarizer = &stubSummarizer{}
	}
	if deps.translator == nil {
		deps.translator = &stubTranslator{}
	}
	if deps.extractor == nil {
		deps.extractor = &stubExtractor{}
	}
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:        ":0",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			MaxUploadBytes: 1 << 20,
		},
		Summary: config.SummaryConfig{MaxInputLength: 50000},
	}
	for _, fn := range mutate {
		fn(cfg)
	}
	handler := NewHandler(cfg, deps.summarizer, deps.translator, deps.extractor, textstats.NewCounter(nil), newTestLogger())
	return NewRouter(cfg, handler)
}

func serve(server *http.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performRequest(path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(server, req)
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, path string, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("file_upload", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubSummarizer struct {
	summarizeFn func(ctx context.Context, req summarizer.Request) (summarizer.Response, error)
}

func (s *stubSummarizer) Summarize(ctx context.Context, req summarizer.Request) (summarizer.Response, error) {
	if s.summarizeFn != nil {
		return s.summarizeFn(ctx, req)
	}
	return summarizer.Response{}, nil
}

type stubTranslator struct {
	translateFn func(ctx context.Context, req translator.Request) completion.Result
}

func (s *stubTranslator) Translate(ctx context.Context, req translator.Request) completion.Result {
	if s.translateFn != nil {
		return s.translateFn(ctx, req)
	}
	return completion.Result{}
}

type stubExtractor struct {
	text     string
	err      error
	filename string
	data     []byte
	url      string
}

func (s *stubExtractor) FromUpload(filename string, data []byte) (string, error) {
	s.filename = filename
	s.data = data
	return s.text, s.err
}

func (s *stubExtractor) FromURL(_ context.Context, raw string) (string, error) {
	s.url = raw
	return s.text, s.err
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
