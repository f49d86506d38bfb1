package optimizer

import (
	"math"
	"reportassist/sources/texting"
	"strings"
	"unicode/utf8"
)

const (
	maxRelevance     = 10.0
	termMatchScore   = 1.0
	repeatBonus      = 0.5
	maxRepeatBonuses = 2
	titleMatchScore  = 2.0
	minPrefixLength  = 4
)

// queryTerms returns the distinct, folded query words that carry meaning, in query order.
func (x *Optimizer) queryTerms(query string) []string {
	seen := make(map[string]struct{})
	terms := []string{}
	for _, word := range texting.Words(query) {
		if utf8.RuneCountInString(word) < 2 || x.stopwords.Contains(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}

// ScoreRelevance rates how well a chunk answers a query on a 0..10 scale.
func (x *Optimizer) ScoreRelevance(query string, chunk Chunk) ScoredChunk {
	return scoreTerms(x.queryTerms(query), chunk)
}

func scoreTerms(terms []string, chunk Chunk) ScoredChunk {
	scored := ScoredChunk{Chunk: chunk, MatchedTerms: []string{}}
	if len(terms) == 0 {
		return scored
	}

	body := texting.Words(chunk.Text)
	title := texting.Words(chunk.SectionTitle)

	score := 0.0
	for _, term := range terms {
		matched := false

		if occurrences := countMatches(body, term); occurrences > 0 {
			score += termMatchScore + repeatBonus*float64(min(occurrences-1, maxRepeatBonuses))
			matched = true
		}
		if countMatches(title, term) > 0 {
			score += titleMatchScore
			matched = true
		}
		if matched {
			scored.MatchedTerms = append(scored.MatchedTerms, term)
		}
	}

	scored.RelevanceScore = math.Max(0, math.Min(maxRelevance, score))
	return scored
}

// countMatches counts exact word hits, plus prefix hits for longer terms so that
// "emission" also finds "emissions".
func countMatches(words []string, term string) int {
	prefix := utf8.RuneCountInString(term) >= minPrefixLength
	count := 0
	for _, word := range words {
		if word == term || (prefix && strings.HasPrefix(word, term)) {
			count++
		}
	}
	return count
}
