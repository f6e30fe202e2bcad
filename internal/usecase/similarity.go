package usecase

// Similarity blend weights. Token overlap captures vocabulary match; bigram
// overlap captures phrase order, weighted lower since short titles yield
// sparse bigram sets.
const (
	tokenSimilarityWeight  = 0.7
	bigramSimilarityWeight = 0.3
)

// jaccard computes |A∩B| / |A∪B|. Either set being empty scores 0 rather
// than dividing by zero.
func jaccard(setA, setB map[string]bool) float64 {
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// JaccardSimilarity computes token-level Jaccard similarity between two
// titles. Symmetric; 0 when either title has no surviving tokens.
func JaccardSimilarity(a, b string) float64 {
	return jaccard(tokenSet(a), tokenSet(b))
}

// TextSimilarity blends token-level and bigram-level Jaccard into a single
// score in [0,1].
func TextSimilarity(a, b string) float64 {
	tokenScore := JaccardSimilarity(a, b)
	bigramScore := jaccard(bigramSet(a), bigramSet(b))
	return tokenScore*tokenSimilarityWeight + bigramScore*bigramSimilarityWeight
}
