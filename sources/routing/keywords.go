package routing

// Keywords are the indicator phrases the classifier looks for. Matching is done on whole words after
// lower-casing and diacritic folding, so phrases may be written with or without accents.
type Keywords struct {
	High         []string
	Medium       []string
	Low          []string
	Conjunctions []string
}

// DefaultKeywords is the sustainability report vocabulary, French first with English equivalents.
func DefaultKeywords() Keywords {
	return Keywords{
		High: []string{
			"analyser en profondeur", "analyse approfondie", "en profondeur", "analyse détaillée",
			"comparer", "comparaison", "comparatif", "stratégie", "trajectoire", "évolution",
			"tendance", "tendances", "corrélation", "impact", "impacts", "recommandation",
			"recommandations", "évaluer", "évaluation", "double matérialité", "scénario", "scénarios",
			"projection", "benchmark", "synthèse complète",
			"in-depth", "in depth", "analyze", "analyse", "compare", "comparison", "strategy",
			"trend", "trends", "correlation", "evaluate", "assessment", "recommend", "scenario",
		},
		Medium: []string{
			"expliquer", "explique", "expliquez", "comment", "pourquoi", "détails", "détailler",
			"résumer", "résume", "résumé", "objectifs", "politique", "mesures", "initiatives",
			"différence", "décrire", "quels sont", "quelles sont", "engagements", "plan d'action",
			"explain", "how does", "how do", "how can", "why", "details", "summarize", "summary", "objectives", "policy",
			"initiatives", "difference", "describe", "what are",
		},
		Low: []string{
			"qu'est-ce que", "c'est quoi", "quel est", "quelle est", "combien", "définition", "où",
			"quand", "bonjour", "salut", "merci", "oui", "non", "page", "chiffre", "montant",
			"what is", "how much", "how many", "definition", "where", "when", "hello", "hi",
			"thanks", "thank you", "yes", "no",
		},
		Conjunctions: []string{
			"et", "ainsi que", "puis", "également", "de plus", "en outre", "ensuite",
			"and", "as well as", "then", "also", "furthermore",
		},
	}
}
