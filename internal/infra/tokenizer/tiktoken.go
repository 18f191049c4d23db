package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken estimates tokens with a BPE encoding such as cl100k_base.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding. The first load may download the BPE ranks.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (t *Tiktoken) CountTokens(text string) int {
	if t == nil || t.enc == nil || text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}
