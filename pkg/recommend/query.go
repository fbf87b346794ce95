package recommend

import (
	"strings"

	"cafe-assistant-be/pkg/session"
)

// Query is the transient recommendation intent derived from an utterance
// and the session's remembered context.
type Query struct {
	Category     string // primary category signal ("coffee", "tea", "snack", "art", "workshop")
	PairCategory string // second category when the turn spans two ("coffee and a side")
	Mood         string
	Activity     string
	PriceIntent  session.PriceIntent
	// DietaryExclusions lists dietary tags that must not appear in results.
	DietaryExclusions []string
	Count             int
}

// categoryKeywords maps utterance words to canonical category signals.
var categoryKeywords = map[string]string{
	"coffee":    "coffee",
	"espresso":  "coffee",
	"latte":     "coffee",
	"tea":       "tea",
	"chai":      "tea",
	"snack":     "snack",
	"snacks":    "snack",
	"side":      "snack",
	"bite":      "snack",
	"food":      "snack",
	"art":       "art",
	"painting":  "art",
	"artwork":   "art",
	"workshop":  "workshop",
	"workshops": "workshop",
	"class":     "workshop",
}

var moodKeywords = map[string]string{
	"tired":     MoodTired,
	"sleepy":    MoodTired,
	"exhausted": MoodTired,
	"stressed":  MoodStressed,
	"anxious":   MoodStressed,
	"comfort":   MoodStressed,
	"energetic": MoodEnergetic,
	"energized": MoodEnergetic,
	"fresh":     MoodEnergetic,
	"working":   MoodWorking,
	"work":      MoodWorking,
	"focus":     MoodWorking,
	"study":     MoodWorking,
	"studying":  MoodWorking,
}

var requestKeywords = []string{
	"suggest", "recommend", "recommendation",
	"what should i", "something for", "in the mood",
	"feeling", "cheapest", "priciest", "most expensive",
}

// nonRoutingMoods are mood-table inputs too common in ordinary fact
// questions ("is the bread fresh?") to count as recommendation asks on
// their own. They still set the mood inside InferQuery.
var nonRoutingMoods = map[string]bool{
	"fresh": true,
}

// LooksLikeRequest reports whether the utterance reads as a
// recommendation ask rather than a fact question. It gates routing into
// the scorer instead of the generative chain.
func LooksLikeRequest(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, kw := range requestKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for word := range moodKeywords {
		if nonRoutingMoods[word] {
			continue
		}
		if containsWord(lower, word) {
			return true
		}
	}
	return false
}

// NormalizeMood maps a free-form mood label onto the preference-table
// rows; unknown moods normalize to empty (no preference).
func NormalizeMood(mood string) string {
	if m, ok := moodKeywords[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return m
	}
	return ""
}

// InferQuery extracts the recommendation dimensions from the utterance.
// Dimensions absent from the turn fall back to the session's remembered
// category and price intent, which is what lets "what about the
// cheapest" resolve against a category set two turns ago.
func InferQuery(utterance string, sessCtx *session.Context) Query {
	lower := strings.ToLower(utterance)
	words := strings.Fields(lower)

	q := Query{Count: 1}

	for _, w := range words {
		if cat, ok := categoryKeywords[strings.Trim(w, ".,!?")]; ok {
			if q.Category == "" {
				q.Category = cat
			} else if cat != q.Category && q.PairCategory == "" {
				q.PairCategory = cat
			}
		}
	}

	for word, mood := range moodKeywords {
		if containsWord(lower, word) {
			q.Mood = mood
			break
		}
	}

	switch {
	case strings.Contains(lower, "cheapest") || strings.Contains(lower, "cheap") || strings.Contains(lower, "affordable") || strings.Contains(lower, "lowest price"):
		q.PriceIntent = session.PriceIntentCheapest
	case strings.Contains(lower, "priciest") || strings.Contains(lower, "most expensive") || strings.Contains(lower, "costliest") || strings.Contains(lower, "premium"):
		q.PriceIntent = session.PriceIntentPriciest
	}

	if strings.Contains(lower, "vegetarian") || strings.Contains(lower, "no meat") || containsWord(lower, "veg") {
		q.DietaryExclusions = append(q.DietaryExclusions, "non-veg")
	}

	// Fall back to session memory for dimensions this turn did not set.
	if sessCtx != nil {
		if q.Category == "" {
			q.Category = sessCtx.LastCategory
		}
		if q.PriceIntent == session.PriceIntentNone {
			q.PriceIntent = sessCtx.LastPriceIntent
		}
	}

	return q
}

func containsWord(haystack, word string) bool {
	for _, w := range strings.Fields(haystack) {
		if strings.Trim(w, ".,!?") == word {
			return true
		}
	}
	return false
}
