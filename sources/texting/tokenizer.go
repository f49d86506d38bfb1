package texting

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter turns text into an approximate number of model tokens.
type Counter interface {
	Count(text string) int
}

// EstimateTokens is the chars/4 heuristic: ceil(runes/4), zero for empty text.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	return EstimateTokens(text)
}

type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter loads a BPE encoding (for example "o200k_base"). Loading may hit the network
// on first use unless the tiktoken cache directory is populated.
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	tkm, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenizer encoding %s: %w", encoding, err)
	}
	return &TiktokenCounter{encoding: tkm}, nil
}

func (x *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(x.encoding.Encode(text, nil, nil))
}
