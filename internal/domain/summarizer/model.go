package summarizer

import (
	"strings"

	"github.com/yanqian/ai-summarizer/internal/domain/textstats"
)

// Config configures the summarizer.
type Config struct {
	MaxInputLength int
}

// Length selects how long the summary should be.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Format selects how the summary is laid out.
type Format string

const (
	FormatParagraph Format = "paragraph"
	FormatBullets   Format = "bullets"
	FormatTakeaways Format = "takeaways"
)

// Style selects the tone of the summary.
type Style string

const (
	StyleStandard Style = "standard"
	StyleFormal   Style = "formal"
	StyleCreative Style = "creative"
)

// ParseLength accepts the form values 1/2/3 and the names. Unknown values mean medium.
func ParseLength(raw string) Length {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", string(LengthShort):
		return LengthShort
	case "3", string(LengthLong):
		return LengthLong
	default:
		return LengthMedium
	}
}

// ParseFormat maps unknown values to paragraph.
func ParseFormat(raw string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatBullets:
		return FormatBullets
	case FormatTakeaways:
		return FormatTakeaways
	default:
		return FormatParagraph
	}
}

// ParseStyle maps unknown values to standard.
func ParseStyle(raw string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(raw))) {
	case StyleFormal:
		return StyleFormal
	case StyleCreative:
		return StyleCreative
	default:
		return StyleStandard
	}
}

// Request represents the incoming summarization payload.
// Option fields hold raw user values and are parsed leniently.
type Request struct {
	Text     string `json:"text"`
	Length   string `json:"length,omitempty"`
	Format   string `json:"mode,omitempty"`
	Style    string `json:"summary_mode,omitempty"`
	Language string `json:"target_language,omitempty"`
}

// Options are the resolved prompt options echoed back to the caller.
type Options struct {
	Length   Length `json:"length"`
	Format   Format `json:"mode"`
	Style    Style  `json:"summary_mode"`
	Language string `json:"target_language,omitempty"`
}

// Response is returned on success.
type Response struct {
	Summary      string          `json:"summary"`
	ModelUsed    string          `json:"modelUsed,omitempty"`
	Options      Options         `json:"options"`
	InputStats   textstats.Stats `json:"inputStats"`
	SummaryStats textstats.Stats `json:"summaryStats"`
}
