package knowledge

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultConfidenceThreshold gates whether the top candidate is accepted
// as a direct answer. Below it, control falls through to the recommender
// or the generative chain.
const DefaultConfidenceThreshold = 0.6

// significantTokenLen filters tiny tokens out of the per-token
// comparison. The floor matches the shortest words the corpus builder
// indexes ("tea", "art"), so typos on short names still score at the
// token level.
const significantTokenLen = 3

// stopwords are frequent question-template and function words. Excluding
// them from the per-token comparison keeps "tell me a story" from
// scoring 1.0 against every "tell me about X" variant tag, and keeps
// short function words ("are", "see", "the") from landing one edit away
// from short tag tokens.
var stopwords = map[string]bool{
	"what": true, "tell": true, "about": true, "much": true,
	"this": true, "that": true, "with": true, "your": true,
	"have": true, "does": true, "please": true, "show": true,
	"the": true, "and": true, "for": true, "you": true,
	"are": true, "can": true, "how": true, "was": true,
	"not": true, "but": true, "our": true, "any": true,
	"all": true, "see": true, "get": true, "its": true,
}

// Match scores the utterance against every entry and returns candidates
// ranked best-first. Ties break by shorter matched tag, then insertion
// order, so results are stable across calls.
func (c *Corpus) Match(utterance string) []MatchCandidate {
	normalized := Normalize(utterance)
	if normalized == "" {
		return nil
	}
	utteranceTokens := significantTokens(normalized)

	candidates := make([]MatchCandidate, 0, len(c.entries))
	for i, entry := range c.entries {
		score, tagLen := scoreEntry(normalized, utteranceTokens, entry)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			Entry:      entry,
			Score:      score,
			bestTagLen: tagLen,
			order:      i,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		if candidates[a].bestTagLen != candidates[b].bestTagLen {
			return candidates[a].bestTagLen < candidates[b].bestTagLen
		}
		return candidates[a].order < candidates[b].order
	})

	return candidates
}

// BestMatch returns the top candidate if it clears the threshold.
func (c *Corpus) BestMatch(utterance string, threshold float64) (MatchCandidate, bool) {
	candidates := c.Match(utterance)
	if len(candidates) == 0 || candidates[0].Score < threshold {
		return MatchCandidate{}, false
	}
	return candidates[0], true
}

// scoreEntry takes the maximum over the entry's tags of the whole-string
// similarity and the best significant-token similarity. Taking the max
// lets a typo on one meaningful word still score well.
func scoreEntry(utterance string, utteranceTokens []string, entry Entry) (float64, int) {
	best := 0.0
	bestTagLen := 0

	for _, tag := range entry.Tags {
		score := Similarity(utterance, tag)

		for _, tagToken := range significantTokens(tag) {
			for _, uttToken := range utteranceTokens {
				if s := Similarity(uttToken, tagToken); s > score {
					score = s
				}
			}
		}

		if score > best || (score == best && (bestTagLen == 0 || len(tag) < bestTagLen)) {
			best = score
			bestTagLen = len(tag)
		}
	}

	return best, bestTagLen
}

// Similarity is normalized Levenshtein: 1 - distance/maxLen, in [0,1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	sim := 1 - float64(dist)/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func significantTokens(s string) []string {
	fields := strings.Fields(s)
	tokens := fields[:0:0]
	for _, f := range fields {
		if len(f) >= significantTokenLen && !stopwords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
