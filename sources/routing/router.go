package routing

import (
	"fmt"
	"reportassist/sources/configuration"
	"reportassist/sources/platform"
	"reportassist/sources/texting"
	"strings"

	"github.com/shopspring/decimal"
)

type RoutingDecision struct {
	SelectedModel        ModelProfile
	AlternativeModel     ModelProfile
	Complexity           ComplexityScore
	Reasoning            string
	EstimatedInputTokens int
	EstimatedCost        decimal.Decimal
	PotentialSavings     decimal.Decimal
}

type RouterConfig struct {
	// ContextOverheadTokens stands in for the knowledge context injected into every call
	// until the optimizer's real size is known (see Reestimate).
	ContextOverheadTokens int
	AssumedOutputTokens   int
}

func NewRouterConfig(config *configuration.Config) *RouterConfig {
	return &RouterConfig{
		ContextOverheadTokens: config.Router.ContextOverheadTokens,
		AssumedOutputTokens:   config.Router.AssumedOutputTokens,
	}
}

func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{ContextOverheadTokens: 10000, AssumedOutputTokens: 500}
}

type Router struct {
	catalog    *Catalog
	classifier *Classifier
	config     *RouterConfig
	counter    texting.Counter
}

func NewRouter(catalog *Catalog, classifier *Classifier, config *RouterConfig, counter texting.Counter) *Router {
	if counter == nil {
		counter = texting.HeuristicCounter{}
	}
	return &Router{catalog: catalog, classifier: classifier, config: config, counter: counter}
}

func (x *Router) Catalog() *Catalog {
	return x.catalog
}

func (x *Router) AnalyzeComplexity(query string) ComplexityScore {
	return x.classifier.AnalyzeComplexity(query)
}

// SelectModel classifies the most recent message and picks a tier. Simple and medium queries go to
// the cheap tier, complex ones to the expensive tier.
func (x *Router) SelectModel(messages []platform.Message) RoutingDecision {
	latest := ""
	if len(messages) > 0 {
		latest = messages[len(messages)-1].Text()
	}

	complexity := x.classifier.AnalyzeComplexity(latest)

	selected, alternative := x.catalog.Cheap(), x.catalog.Expensive()
	if complexity.Level == LevelComplex {
		selected, alternative = alternative, selected
	}

	decision := RoutingDecision{
		SelectedModel:    selected,
		AlternativeModel: alternative,
		Complexity:       complexity,
		Reasoning:        reasoning(complexity, selected),
	}

	return x.price(decision, x.conversationTokens(messages)+x.config.ContextOverheadTokens)
}

// Escalate moves a decision to the expensive tier regardless of complexity, keeping the
// input estimate it was priced with.
func (x *Router) Escalate(decision RoutingDecision) RoutingDecision {
	if decision.SelectedModel.ID == x.catalog.Expensive().ID {
		return decision
	}
	decision.SelectedModel, decision.AlternativeModel = x.catalog.Expensive(), x.catalog.Cheap()
	decision.Reasoning = fmt.Sprintf("adaptive routing disabled; routed to %s", decision.SelectedModel.ID)
	return x.price(decision, decision.EstimatedInputTokens)
}

// Reestimate replaces the fixed context allowance with the size of the context actually sent.
func (x *Router) Reestimate(decision RoutingDecision, messages []platform.Message, contextTokens int) RoutingDecision {
	return x.price(decision, x.conversationTokens(messages)+contextTokens)
}

func (x *Router) price(decision RoutingDecision, inputTokens int) RoutingDecision {
	output := x.config.AssumedOutputTokens
	selectedCost := CalculateCost(inputTokens, output, decision.SelectedModel)
	alternativeCost := CalculateCost(inputTokens, output, decision.AlternativeModel)

	savings := decimal.Zero
	if decision.SelectedModel.ID == x.catalog.Cheap().ID {
		savings = decimal.Max(alternativeCost.Sub(selectedCost), decimal.Zero)
	}

	decision.EstimatedInputTokens = inputTokens
	decision.EstimatedCost = selectedCost
	decision.PotentialSavings = savings
	return decision
}

func (x *Router) conversationTokens(messages []platform.Message) int {
	texts := make([]string, 0, len(messages))
	for _, message := range messages {
		texts = append(texts, message.Text())
	}
	return x.counter.Count(strings.Join(texts, "\n"))
}

func reasoning(complexity ComplexityScore, selected ModelProfile) string {
	why := "no complexity indicators"
	if len(complexity.Reasons) > 0 {
		why = strings.Join(complexity.Reasons, ", ")
	}
	return fmt.Sprintf("%s query (score %d): %s; routed to %s", complexity.Level, complexity.Score, why, selected.ID)
}
