package recommend

import (
	"testing"

	"cafe-assistant-be/pkg/session"
)

func TestLooksLikeRequest(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"suggest a tea", true},
		{"can you recommend something", true},
		{"what about the cheapest", true},
		{"i'm feeling tired", true},
		{"how much is cranberry tonic", false},
		{"when do you open", false},
		{"is the bread fresh?", false},
		{"i'm feeling fresh", true},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			if got := LooksLikeRequest(tt.utterance); got != tt.want {
				t.Errorf("LooksLikeRequest(%q) = %v, want %v", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestInferQuery(t *testing.T) {
	tests := []struct {
		name          string
		utterance     string
		sessCtx       *session.Context
		wantCategory  string
		wantPair      string
		wantMood      string
		wantPrice     session.PriceIntent
		wantExclusion bool
	}{
		{
			name:         "category from utterance",
			utterance:    "suggest a tea",
			wantCategory: "tea",
		},
		{
			name:         "mood and category",
			utterance:    "i'm tired, recommend a coffee",
			wantCategory: "coffee",
			wantMood:     MoodTired,
		},
		{
			name:      "price intent cheapest",
			utterance: "what about the cheapest",
			wantPrice: session.PriceIntentCheapest,
		},
		{
			name:      "price intent priciest",
			utterance: "show me the most expensive painting",
			wantPrice: session.PriceIntentPriciest,
			// "painting" maps to the art category
			wantCategory: "art",
		},
		{
			name:         "two categories produce a pair",
			utterance:    "a coffee and a side please",
			wantCategory: "coffee",
			wantPair:     "snack",
		},
		{
			name:          "vegetarian exclusion",
			utterance:     "suggest a vegetarian snack",
			wantCategory:  "snack",
			wantExclusion: true,
		},
		{
			name:      "fresh still sets the mood",
			utterance: "suggest something fresh",
			wantMood:  MoodEnergetic,
		},
		{
			name:         "category falls back to session memory",
			utterance:    "what about the cheapest",
			sessCtx:      &session.Context{LastCategory: "tea"},
			wantCategory: "tea",
			wantPrice:    session.PriceIntentCheapest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := InferQuery(tt.utterance, tt.sessCtx)
			if q.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", q.Category, tt.wantCategory)
			}
			if q.PairCategory != tt.wantPair {
				t.Errorf("PairCategory = %q, want %q", q.PairCategory, tt.wantPair)
			}
			if q.Mood != tt.wantMood {
				t.Errorf("Mood = %q, want %q", q.Mood, tt.wantMood)
			}
			if q.PriceIntent != tt.wantPrice {
				t.Errorf("PriceIntent = %q, want %q", q.PriceIntent, tt.wantPrice)
			}
			if got := len(q.DietaryExclusions) > 0; got != tt.wantExclusion {
				t.Errorf("exclusions = %v, want exclusion=%v", q.DietaryExclusions, tt.wantExclusion)
			}
		})
	}
}

func TestNormalizeMood(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Energetic", MoodEnergetic},
		{"tired", MoodTired},
		{"  Stressed ", MoodStressed},
		{"unknown", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeMood(tt.in); got != tt.want {
			t.Errorf("NormalizeMood(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
