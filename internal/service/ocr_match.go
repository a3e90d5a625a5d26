package service

import (
	"math"
	"strings"

	"github.com/arbovm/levenshtein"

	"github.com/leandrobosaipo/elroi-vision/pkg/models"
)

// computeTextMatch compares extracted OCR text against the expected text
// supplied with the request. Both strings are lower-cased and whitespace-
// normalized first so formatting differences do not count as errors.
func computeTextMatch(extracted, expected string) models.TextMatch {
	normExtracted := normalizeText(extracted)
	normExpected := normalizeText(expected)

	return models.TextMatch{
		ExpectedText:     expected,
		LevenshteinRatio: roundTo(levenshteinRatio(normExtracted, normExpected), 3),
		WordErrorRate:    roundTo(wordErrorRate(normExpected, normExtracted), 3),
	}
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// levenshteinRatio is the character-level similarity in [0,1]: 1 minus the
// edit distance over the longer string's length.
func levenshteinRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	return 1 - float64(levenshtein.Distance(a, b))/float64(longer)
}

// wordErrorRate is the word-level edit distance between reference and
// hypothesis divided by the reference word count.
func wordErrorRate(reference, hypothesis string) float64 {
	ref := strings.Fields(reference)
	hyp := strings.Fields(hypothesis)
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}

	// Standard dynamic-programming edit distance over word tokens.
	prev := make([]int, len(hyp)+1)
	curr := make([]int, len(hyp)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ref); i++ {
		curr[0] = i
		for j := 1; j <= len(hyp); j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return float64(prev[len(hyp)]) / float64(len(ref))
}

func minOf(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
