package constant

// ApologyReply is the deterministic reply when every generation
// provider has failed. It never exposes provider error detail.
const ApologyReply = "Sorry, I couldn't come up with an answer just now. Please try again in a moment, or ask any of our staff."

// EmptyRecommendationReply is returned when no catalog item satisfies
// the request even after relaxing the category constraint.
const EmptyRecommendationReply = "I couldn't find anything in the catalog matching that. Maybe try a different category?"

// RelaxedRecommendationPrefix marks a pick made outside this asked-for
// category, so the guest knows the constraint was loosened.
const RelaxedRecommendationPrefix = "Nothing matched exactly, but you might still like this: "

// RecommendationPrefix introduces a confident pick.
const RecommendationPrefix = "How about "
