package texting

import (
	"reportassist/sources/configuration"
	"reportassist/sources/tracing"

	"go.uber.org/fx"
)

const defaultEncoding = "o200k_base"

// NewCounter picks the token counter named by ai.tokenizer: "heuristic", "tiktoken" or a
// tiktoken encoding name. A tokenizer that fails to load falls back to the heuristic.
func NewCounter(config *configuration.Config, log *tracing.Logger) Counter {
	name := config.AI.Tokenizer
	if name == "" || name == "heuristic" {
		return HeuristicCounter{}
	}
	if name == "tiktoken" {
		name = defaultEncoding
	}

	counter, err := NewTiktokenCounter(name)
	if err != nil {
		log.W("Failed to load tokenizer, using chars/4 estimate", tracing.InnerError, err)
		return HeuristicCounter{}
	}

	log.I("Tokenizer loaded", "encoding", name)
	return counter
}

var Module = fx.Module("texting",
	fx.Provide(NewCounter),
)
