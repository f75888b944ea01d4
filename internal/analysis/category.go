// Package analysis classifies questions into one of five analytical
// categories and runs the category's prompt pipeline over the collected
// opinions, persisting the outcome as a report.
package analysis

const (
	CategoryStance     = "stance_analysis"
	CategoryComparison = "option_comparison"
	CategoryIdeas      = "idea_generation"
	CategoryRanking    = "priority_ranking"
	CategoryFeedback   = "feedback_analysis"
)

// Categories lists the supported question types in classification order.
var Categories = []string{
	CategoryStance,
	CategoryComparison,
	CategoryIdeas,
	CategoryRanking,
	CategoryFeedback,
}

var categoryDescriptions = map[string]string{
	CategoryStance:     "analyzes opinions or attitudes",
	CategoryComparison: "compares options or choices",
	CategoryIdeas:      "generates new ideas or suggestions",
	CategoryRanking:    "ranks or prioritizes items",
	CategoryFeedback:   "analyzes feedback or reviews",
}

// ValidCategory reports whether category is one of the supported types.
func ValidCategory(category string) bool {
	_, ok := categoryDescriptions[category]
	return ok
}
