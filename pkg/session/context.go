package session

import "time"

// Turn roles mirror the provider message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PriceIntent is a price-extremum signal inferred from a turn.
type PriceIntent string

const (
	PriceIntentNone     PriceIntent = ""
	PriceIntentCheapest PriceIntent = "cheapest"
	PriceIntentPriciest PriceIntent = "priciest"
)

// Turn is one utterance in the conversation history.
type Turn struct {
	Role string
	Text string
}

// Context is one conversation's short-lived memory. It is owned
// exclusively by the Store; request handlers mutate it only inside
// Store.WithLock and hand it back via Commit.
type Context struct {
	SessionId       string
	History         []Turn
	LastCategory    string
	LastPriceIntent PriceIntent
	CreatedAt       time.Time
	LastActiveAt    time.Time
}

// DefaultHistoryLimit caps history length; the cap bounds both memory
// and prompt size.
const DefaultHistoryLimit = 10

// AppendTurn records a turn, evicting the oldest entries beyond limit.
func (c *Context) AppendTurn(role, text string, limit int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	c.History = append(c.History, Turn{Role: role, Text: text})
	if len(c.History) > limit {
		c.History = c.History[len(c.History)-limit:]
	}
}

// RememberCategory updates the category only when the turn carries one;
// otherwise the prior value persists so a later "what about the cheapest"
// can resolve against it.
func (c *Context) RememberCategory(category string) {
	if category != "" {
		c.LastCategory = category
	}
}

// RememberPriceIntent works like RememberCategory for price extremum.
func (c *Context) RememberPriceIntent(intent PriceIntent) {
	if intent != PriceIntentNone {
		c.LastPriceIntent = intent
	}
}
