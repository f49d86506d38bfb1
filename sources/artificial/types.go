package artificial

import (
	"reportassist/sources/optimizer"
	"reportassist/sources/platform"
	"reportassist/sources/routing"
	"time"

	"github.com/shopspring/decimal"
)

type CompletionRequest struct {
	Model     string
	System    string
	Messages  []platform.Message
	MaxTokens int
}

type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	// Cost is what the provider billed. Zero when the provider does not report it.
	Cost decimal.Decimal
}

// Turn is one user request: the conversation so far, the report it is about and who asked.
type Turn struct {
	CallerID string
	Messages []platform.Message
	Document string
	Page     string
}

type Reply struct {
	OperationID string
	Text        string

	// Denied is set when the caller ran out of request budget. RetryAfter says when to come back.
	Denied     bool
	RetryAfter time.Duration
	// Degraded is set when the upstream circuit is open and the call was not attempted.
	Degraded bool
	Notice   string

	Decision routing.RoutingDecision
	Context  optimizer.ContextMetadata
	Usage    Completion
}
