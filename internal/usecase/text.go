package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// stopwords are tokens that carry no matching signal: English function words
// plus retail title noise ("edition", "bundle", "sale") that appears on both
// sides of almost every comparison.
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "for": true, "with": true,
	"a": true, "an": true, "of": true, "to": true, "in": true,
	"on": true, "at": true, "by": true, "from": true,
	"edition": true, "standard": true, "deluxe": true, "ultimate": true,
	"bundle": true, "new": true, "sale": true,
}

// normalizeText lowercases the input, replaces every character outside
// [a-z0-9\s] with a space, collapses runs of whitespace, and trims.
// Total function: any input (including empty) yields a valid result,
// and the operation is idempotent.
func normalizeText(text string) string {
	result := strings.ToLower(text)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// tokenize splits normalized text into tokens with stopwords removed.
// The surviving tokens keep their original order, which bigram extraction
// depends on; set-style consumers are free to ignore it.
func tokenize(text string) []string {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil
	}

	var tokens []string
	for _, token := range strings.Split(normalized, " ") {
		if token == "" || stopwords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// tokenSet collapses the token sequence into a set.
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range tokenize(text) {
		set[token] = true
	}
	return set
}

// bigramSet builds adjacent-pair strings from the stopword-filtered token
// sequence. Pairs only form between tokens that survived filtering and
// stayed adjacent in that filtered sequence.
func bigramSet(text string) map[string]bool {
	tokens := tokenize(text)
	grams := make(map[string]bool)
	for i := 0; i+1 < len(tokens); i++ {
		grams[tokens[i]+" "+tokens[i+1]] = true
	}
	return grams
}
