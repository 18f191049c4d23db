package completion

import "time"

// ModelAttempt is one candidate of the ordered fallback sequence.
type ModelAttempt struct {
	ID      string
	Timeout time.Duration
}

// Config configures the completion client. The sequence is consumed strictly in order.
type Config struct {
	Models      []ModelAttempt
	Temperature float32
	MaxTokens   int
}

// Result is the uniform outcome of a completion call.
// Success implies non-empty Text and empty Error; failure implies the opposite.
type Result struct {
	Success   bool   `json:"success"`
	Text      string `json:"text"`
	ModelUsed string `json:"model_used,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FailureKind classifies why a candidate attempt failed.
type FailureKind string

const (
	FailureMissingCredentials FailureKind = "missing_credentials"
	FailureTimeout            FailureKind = "timeout"
	FailureHTTPStatus         FailureKind = "http_status"
	FailureMalformedResponse  FailureKind = "malformed_response"
	FailureTransport          FailureKind = "transport"
)

// MissingCredentialsMessage is returned when no API key is configured.
const MissingCredentialsMessage = "API key not configured. Please set OPENROUTER_API_KEY in your environment or .env file."

func succeeded(text, model string) Result {
	return Result{Success: true, Text: text, ModelUsed: model}
}

func failed(message string) Result {
	return Result{Error: message}
}
