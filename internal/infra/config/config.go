package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
// It is built once at start-up and treated as read-only afterwards.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Summary SummaryConfig `yaml:"summary"`
	LLM     LLMConfig     `yaml:"llm"`
	Extract ExtractConfig `yaml:"extract"`
	Stats   StatsConfig   `yaml:"stats"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"        env:"HTTP_ADDRESS"`
	ReadTimeout    time.Duration `yaml:"readTimeout"    env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"   env:"HTTP_WRITE_TIMEOUT"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes" env:"HTTP_MAX_UPLOAD_BYTES"`
	AllowedOrigins []string      `yaml:"allowedOrigins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
}

// SummaryConfig bounds the text accepted for summarization.
type SummaryConfig struct {
	MaxInputLength int `yaml:"maxInputLength" env:"SUMMARY_MAX_INPUT_LENGTH"`
}

// LLMConfig contains the chat-completion upstream settings.
type LLMConfig struct {
	APIKey      string         `yaml:"apiKey"      env:"OPENROUTER_API_KEY"`
	BaseURL     string         `yaml:"baseUrl"     env:"LLM_BASE_URL"`
	Transport   string         `yaml:"transport"   env:"LLM_TRANSPORT"`
	Temperature float32        `yaml:"temperature" env:"LLM_TEMPERATURE"`
	MaxTokens   int            `yaml:"maxTokens"   env:"LLM_MAX_TOKENS"`
	Referer     string         `yaml:"referer"     env:"LLM_REFERER"`
	Title       string         `yaml:"title"       env:"LLM_TITLE"`
	Models      []ModelAttempt `yaml:"models"`
}

// ModelAttempt is one entry of the ordered fallback sequence.
type ModelAttempt struct {
	ID      string        `yaml:"id"`
	Timeout time.Duration `yaml:"timeout"`
}

// ExtractConfig controls URL fetching for the url_input source.
type ExtractConfig struct {
	URLTimeout  time.Duration `yaml:"urlTimeout"  env:"EXTRACT_URL_TIMEOUT"`
	MaxURLBytes int64         `yaml:"maxUrlBytes" env:"EXTRACT_MAX_URL_BYTES"`
	UserAgent   string        `yaml:"userAgent"   env:"EXTRACT_USER_AGENT"`
}

// StatsConfig controls the optional token estimate in text statistics.
type StatsConfig struct {
	TokenEncoding string `yaml:"tokenEncoding" env:"STATS_TOKEN_ENCODING"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path"    env:"METRICS_PATH"`
}

const (
	TransportHTTP = "http"
	TransportSDK  = "sdk"
)

// Load reads configuration from defaults, a YAML file, .env and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8080",
			ReadTimeout: 30 * time.Second,
			// Worst case is every fallback candidate timing out in turn.
			WriteTimeout:   3 * time.Minute,
			MaxUploadBytes: 16 << 20,
		},
		Summary: SummaryConfig{
			MaxInputLength: 50000,
		},
		LLM: LLMConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			Transport:   TransportHTTP,
			Temperature: 0.7,
			MaxTokens:   2048,
			Referer:     "http://localhost:8080",
			Title:       "AI Summarizer",
			Models: []ModelAttempt{
				{ID: "meta-llama/llama-3.3-70b-instruct:free", Timeout: 20 * time.Second},
				{ID: "google/gemini-2.0-flash-exp:free", Timeout: 20 * time.Second},
				{ID: "mistralai/mistral-small-3.1-24b-instruct:free", Timeout: 20 * time.Second},
				{ID: "openrouter/auto", Timeout: 45 * time.Second},
			},
		},
		Extract: ExtractConfig{
			URLTimeout:  15 * time.Second,
			MaxURLBytes: 5 << 20,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
		},
		Stats: StatsConfig{
			TokenEncoding: "cl100k_base",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
// A missing API key is not a config error: the completion client reports it per request.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if c.Summary.MaxInputLength <= 0 {
		return errors.New("summary.maxInputLength must be positive")
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		return errors.New("llm.baseUrl cannot be empty")
	}
	switch c.LLM.Transport {
	case TransportHTTP, TransportSDK:
	default:
		return fmt.Errorf("llm.transport must be %q or %q", TransportHTTP, TransportSDK)
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if c.LLM.Temperature < 0 {
		return errors.New("llm.temperature must be non-negative")
	}
	if len(c.LLM.Models) == 0 {
		return errors.New("llm.models cannot be empty")
	}
	for i, m := range c.LLM.Models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("llm.models[%d].id cannot be empty", i)
		}
		if m.Timeout <= 0 {
			return fmt.Errorf("llm.models[%d].timeout must be positive", i)
		}
	}
	if c.Extract.URLTimeout <= 0 {
		return errors.New("extract.urlTimeout must be positive")
	}
	if c.Extract.MaxURLBytes <= 0 {
		return errors.New("extract.maxUrlBytes must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}
