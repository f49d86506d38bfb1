package optimizer

import "reportassist/sources/texting"

// Stopwords is an immutable set of folded words ignored when scoring relevance.
type Stopwords struct {
	words map[string]struct{}
}

func NewStopwords(words ...string) Stopwords {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		for _, folded := range texting.Words(word) {
			set[folded] = struct{}{}
		}
	}
	return Stopwords{words: set}
}

func (s Stopwords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func DefaultStopwords() Stopwords {
	return NewStopwords(
		"le", "la", "les", "un", "une", "des", "du", "de", "d", "l", "et", "ou", "en", "au", "aux",
		"ce", "ces", "cette", "cet", "qui", "que", "quoi", "dont", "est", "sont", "a", "ont", "pour",
		"par", "sur", "dans", "avec", "sans", "plus", "moins", "leur", "leurs", "son", "sa", "ses",
		"notre", "nos", "votre", "vos", "je", "tu", "il", "elle", "nous", "vous", "ils", "elles",
		"me", "te", "se", "ne", "pas", "y", "quel", "quelle", "quels", "quelles", "comment",
		"combien", "pourquoi", "peux", "peut", "pouvez", "fait", "faire", "été", "être", "avoir",
		"the", "a", "an", "and", "or", "of", "to", "in", "on", "for", "with", "is", "are", "was",
		"were", "be", "been", "what", "which", "who", "how", "why", "when", "where", "do", "does",
		"did", "can", "could", "our", "your", "their", "its", "it", "this", "that", "these", "those",
		"me", "tell", "about", "please",
	)
}
