package routing

import (
	"reportassist/sources/texting"

	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1_000_000)

// CalculateCost prices a call: (in/1M)*inputCost + (out/1M)*outputCost. No rounding is applied.
func CalculateCost(inputTokens, outputTokens int, model ModelProfile) decimal.Decimal {
	input := decimal.NewFromInt(int64(inputTokens)).Mul(model.InputCostPerMillion)
	output := decimal.NewFromInt(int64(outputTokens)).Mul(model.OutputCostPerMillion)
	return input.Add(output).Div(million)
}

// EstimateTokens approximates tokens as ceil(characters/4).
func EstimateTokens(text string) int {
	return texting.EstimateTokens(text)
}
