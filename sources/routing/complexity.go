package routing

import (
	"fmt"
	"reportassist/sources/texting"
	"strings"
	"unicode/utf8"
)

type Level string

const (
	LevelSimple  Level = "simple"
	LevelMedium  Level = "medium"
	LevelComplex Level = "complex"
)

const (
	complexThreshold = 6
	mediumThreshold  = 3
)

type ComplexityScore struct {
	Level   Level
	Score   int
	Reasons []string
}

type Classifier struct {
	high         []string
	medium       []string
	low          []string
	conjunctions []string
}

func NewClassifier(keywords Keywords) *Classifier {
	return &Classifier{
		high:         normalizePhrases(keywords.High),
		medium:       normalizePhrases(keywords.Medium),
		low:          normalizePhrases(keywords.Low),
		conjunctions: normalizePhrases(keywords.Conjunctions),
	}
}

// AnalyzeComplexity scores a query. It never fails: empty or odd input degrades to simple.
func (x *Classifier) AnalyzeComplexity(query string) ComplexityScore {
	q := strings.TrimSpace(query)
	score := 0
	reasons := []string{}

	switch length := utf8.RuneCountInString(q); {
	case length > 500:
		score += 3
		reasons = append(reasons, "very long query (>500 chars)")
	case length > 200:
		score += 2
		reasons = append(reasons, "long query (>200 chars)")
	case length > 100:
		score += 1
		reasons = append(reasons, "medium length query (>100 chars)")
	}

	switch questions := strings.Count(q, "?"); {
	case questions >= 3:
		score += 3
		reasons = append(reasons, fmt.Sprintf("multiple questions (%d)", questions))
	case questions == 2:
		score += 1
		reasons = append(reasons, "two questions")
	}

	words := " " + normalizeText(q) + " "

	if match := firstMatch(words, x.conjunctions); match != "" {
		score += 1
		reasons = append(reasons, fmt.Sprintf("multi-part request (%q)", match))
	}

	if match := firstMatch(words, x.high); match != "" {
		score += 5
		reasons = append(reasons, fmt.Sprintf("complex indicator %q", match))
	} else if match := firstMatch(words, x.medium); match != "" {
		score += 3
		reasons = append(reasons, fmt.Sprintf("medium indicator %q", match))
	} else if match := firstMatch(words, x.low); match != "" {
		score -= 1
		reasons = append(reasons, fmt.Sprintf("simple indicator %q", match))
	}

	return ComplexityScore{Level: levelFor(score), Score: score, Reasons: reasons}
}

func levelFor(score int) Level {
	switch {
	case score >= complexThreshold:
		return LevelComplex
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelSimple
	}
}

func firstMatch(padded string, phrases []string) string {
	for _, phrase := range phrases {
		if strings.Contains(padded, " "+phrase+" ") {
			return phrase
		}
	}
	return ""
}

func normalizePhrases(phrases []string) []string {
	normalized := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if n := normalizeText(phrase); n != "" {
			normalized = append(normalized, n)
		}
	}
	return normalized
}

// normalizeText folds case and accents and collapses every non letter/digit run into one space.
func normalizeText(text string) string {
	return strings.Join(texting.Words(text), " ")
}
