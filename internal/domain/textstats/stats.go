package textstats

import (
	"regexp"
	"unicode/utf8"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// TokenCounter estimates model tokens for a text.
type TokenCounter interface {
	CountTokens(text string) int
}

// Stats summarizes the size of a text.
type Stats struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
	Sentences  int `json:"sentences"`
	Tokens     int `json:"tokens,omitempty"`
}

// Counter computes Stats, with token estimates when a TokenCounter is configured.
type Counter struct {
	tokens TokenCounter
}

// NewCounter is a wire provider. tokens may be nil.
func NewCounter(tokens TokenCounter) *Counter {
	return &Counter{tokens: tokens}
}

// Count returns word, character, sentence and, if available, token counts.
func (c *Counter) Count(text string) Stats {
	stats := Count(text)
	if c != nil && c.tokens != nil && text != "" {
		stats.Tokens = c.tokens.CountTokens(text)
	}
	return stats
}

// Count returns counts without a token estimate. Characters are Unicode code points.
func Count(text string) Stats {
	return Stats{
		Words:      CountWords(text),
		Characters: utf8.RuneCountInString(text),
		Sentences:  CountSentences(text),
	}
}

// CountWords counts maximal runs of letters, digits and underscores.
func CountWords(text string) int {
	return len(wordRe.FindAllStringIndex(text, -1))
}

// CountSentences counts maximal runs of sentence terminators.
func CountSentences(text string) int {
	return len(sentenceRe.FindAllStringIndex(text, -1))
}
