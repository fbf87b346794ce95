package knowledge

// Entry is a single answerable fact: a set of lowercase tags pointing at
// one canned response. Entries are immutable once built; overlapping tags
// across entries are intentional and raise recall.
type Entry struct {
	Tags     []string
	Response string
}

// Corpus is an immutable, ordered collection of entries. The owner holds
// the current corpus behind an atomic pointer and swaps it whole on
// catalog refresh, so readers never observe a partial build.
type Corpus struct {
	entries []Entry
}

func NewCorpus(entries []Entry) *Corpus {
	return &Corpus{entries: entries}
}

func (c *Corpus) Len() int {
	return len(c.entries)
}

func (c *Corpus) Entries() []Entry {
	return c.entries
}

// MatchCandidate is a scored entry produced per request by the matcher.
type MatchCandidate struct {
	Entry Entry
	// Score is normalized similarity in [0,1].
	Score float64

	// bestTagLen is the length of the tag that produced Score, used to
	// prefer specific tags over generic ones when scores tie.
	bestTagLen int
	// order preserves corpus insertion order for stable tie-breaks.
	order int
}
