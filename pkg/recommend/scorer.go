package recommend

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"cafe-assistant-be/pkg/catalog"
	"cafe-assistant-be/pkg/session"
)

// Mood signals understood by the preference table. The table is the
// whole contract: four rows, soft preferences only, never hard filters.
const (
	MoodTired     = "tired"
	MoodStressed  = "stressed"
	MoodEnergetic = "energetic"
	MoodWorking   = "working"
)

// ErrNoQualifyingItems signals a genuine empty result: nothing matched
// even after relaxing the category constraint. Distinct from a
// successful pick so callers can phrase the reply honestly.
var ErrNoQualifyingItems = errors.New("no catalog item satisfies the recommendation constraints")

// Result carries the picked items plus whether the category constraint
// had to be relaxed to find them.
type Result struct {
	Items   []catalog.Item
	Relaxed bool
}

// Scorer ranks catalog items against a Query. The random source is
// injected so variety is deterministic under test; draws go through
// intn because *rand.Rand is not safe for concurrent use and one
// Scorer serves every request.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewScorer(rng *rand.Rand) *Scorer {
	return &Scorer{rng: rng}
}

func (s *Scorer) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Pick applies the hard filters, the mood preference ordering, the price
// extremum, and the variety tie-break, in that order.
func (s *Scorer) Pick(q Query, items []catalog.Item) (Result, error) {
	filtered := filter(q, items, true)
	relaxed := false
	if len(filtered) == 0 && q.Category != "" {
		// One-step relaxation: drop the category constraint, keep dietary.
		filtered = filter(q, items, false)
		relaxed = true
	}
	if len(filtered) == 0 {
		return Result{}, ErrNoQualifyingItems
	}

	if q.PriceIntent != session.PriceIntentNone {
		return Result{Items: []catalog.Item{priceExtremum(filtered, q.PriceIntent)}, Relaxed: relaxed}, nil
	}

	pick := s.pickPreferred(filtered, q.Mood, q.Activity)

	result := Result{Items: []catalog.Item{pick}, Relaxed: relaxed}

	if q.PairCategory != "" {
		pairQuery := q
		pairQuery.Category = q.PairCategory
		pairQuery.PairCategory = ""
		pairPool := filter(pairQuery, items, true)
		if len(pairPool) > 0 {
			result.Items = append(result.Items, s.pickPairing(pick, pairPool))
		}
	}

	return result, nil
}

// PickPair selects one drink and one complementary snack for the
// contextual recommendation surface. Either slot may come back empty
// when its category has no qualifying items.
func (s *Scorer) PickPair(mood, activity string, items []catalog.Item) (drink, snack *catalog.Item, err error) {
	mood = NormalizeMood(mood)

	drinkPool := filter(Query{Category: "coffee"}, items, true)
	if len(drinkPool) == 0 {
		return nil, nil, ErrNoQualifyingItems
	}

	picked := s.pickPreferred(drinkPool, mood, activity)
	drink = &picked

	snackPool := filter(Query{Category: "snack"}, items, true)
	if len(snackPool) > 0 {
		pairedSnack := s.pickPairing(picked, snackPool)
		snack = &pairedSnack
	}

	return drink, snack, nil
}

// filter applies the hard constraints: dietary exclusions always, the
// category only when useCategory is set.
func filter(q Query, items []catalog.Item, useCategory bool) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if violatesDietary(item, q.DietaryExclusions) {
			continue
		}
		if useCategory && q.Category != "" && !categoryMatches(item, q.Category) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func violatesDietary(item catalog.Item, exclusions []string) bool {
	for _, excluded := range exclusions {
		if strings.EqualFold(item.DietaryTag, excluded) {
			return true
		}
	}
	return false
}

func categoryMatches(item catalog.Item, category string) bool {
	category = strings.ToLower(category)
	if strings.Contains(strings.ToLower(item.Category), category) {
		return true
	}
	if strings.Contains(strings.ToLower(item.SubCategory), category) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), category) {
			return true
		}
	}
	return false
}

func priceExtremum(items []catalog.Item, intent session.PriceIntent) catalog.Item {
	sorted := append([]catalog.Item(nil), items...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Price < sorted[b].Price
	})
	if intent == session.PriceIntentPriciest {
		return sorted[len(sorted)-1]
	}
	return sorted[0]
}

// pickPreferred scores items by the mood/activity table and picks
// uniformly at random among the top tier, so repeated identical queries
// are not pinned to one item.
func (s *Scorer) pickPreferred(items []catalog.Item, mood, activity string) catalog.Item {
	best := -1
	top := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		score := moodScore(item, mood) + moodScore(item, activitySignal(activity))
		if score > best {
			best = score
			top = top[:0]
		}
		if score == best {
			top = append(top, item)
		}
	}
	return top[s.intn(len(top))]
}

// moodScore translates a qualitative signal into a soft preference. Rows
// are symmetric: each mood boosts one attribute family and nothing else.
func moodScore(item catalog.Item, mood string) int {
	switch mood {
	case MoodTired:
		return caffeineTier(item.CaffeineLevel)
	case MoodStressed:
		if hasAnyTag(item, "milk", "creamy", "comfort") {
			return 2
		}
	case MoodEnergetic:
		if hasAnyTag(item, "light", "refreshing") {
			return 2
		}
	case MoodWorking:
		if hasAnyTag(item, "clean", "focus") {
			return 2
		}
	}
	return 0
}

// activitySignal maps the contextual-recommendation activity field onto
// the mood rows; only "work" has a defined mapping.
func activitySignal(activity string) string {
	switch strings.ToLower(activity) {
	case "work", "working", "study", "studying":
		return MoodWorking
	default:
		return ""
	}
}

func caffeineTier(level string) int {
	switch strings.ToLower(level) {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}

// pickPairing selects the snack that complements the drink: an intense
// drink pairs with a rich or sweet item, a light drink with a light one.
func (s *Scorer) pickPairing(drink catalog.Item, pool []catalog.Item) catalog.Item {
	wantRich := caffeineTier(drink.CaffeineLevel) >= 3 || hasAnyTag(drink, "intense", "strong", "dark")

	best := -1
	top := make([]catalog.Item, 0, len(pool))
	for _, item := range pool {
		score := 0
		if wantRich && hasAnyTag(item, "rich", "sweet", "chocolate") {
			score = 2
		}
		if !wantRich && hasAnyTag(item, "light", "fresh", "savory") {
			score = 2
		}
		if score > best {
			best = score
			top = top[:0]
		}
		if score == best {
			top = append(top, item)
		}
	}
	return top[s.intn(len(top))]
}

func hasAnyTag(item catalog.Item, wanted ...string) bool {
	for _, tag := range item.Tags {
		lower := strings.ToLower(tag)
		for _, w := range wanted {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}
