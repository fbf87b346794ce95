package dto

// ChatRequest is the storefront's conversational turn. SessionId is
// optional; a missing id starts a fresh conversation and the generated
// id is echoed back.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId,omitempty"`
}

// ChatResponse is either a conversational reply or a navigation action.
type ChatResponse struct {
	Action     string         `json:"action"` // "respond" | "navigate"
	Parameters ChatParameters `json:"parameters"`
	SessionId  string         `json:"sessionId"`
}

type ChatParameters struct {
	Message string `json:"message,omitempty"`
	Route   string `json:"route,omitempty"`
}

// ContextRecommendationRequest carries the storefront's mood/activity
// widget values.
type ContextRecommendationRequest struct {
	Mood     string `json:"mood,omitempty"`
	Activity string `json:"activity,omitempty"`
}

// CatalogItemSummary is the storefront-facing projection of a pick.
type CatalogItemSummary struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// ContextRecommendationResponse holds one drink and, when available,
// one complementary snack.
type ContextRecommendationResponse struct {
	Coffee *CatalogItemSummary `json:"coffee,omitempty"`
	Snack  *CatalogItemSummary `json:"snack,omitempty"`
}
