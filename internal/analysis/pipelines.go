package analysis

import "fmt"

// pipelines maps each category to its ordered step table. The tables differ
// only in prompts, temperatures, and which fields each step captures.
var pipelines = map[string]func() []step{
	CategoryStance:     stanceSteps,
	CategoryComparison: comparisonSteps,
	CategoryIdeas:      ideaSteps,
	CategoryRanking:    rankingSteps,
	CategoryFeedback:   feedbackSteps,
}

// stanceSteps classifies every opinion as pro, contra, or neutral and
// aggregates the distribution.
func stanceSteps() []step {
	return []step{
		{
			name:       "classify-opinions",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`Classify each opinion about "%s" as "pro", "contra", or "neutral".
Return JSON array with: opinion, classification, reason.
Opinions:
%s`, r.topic, jsonBlock(r.opinions))
			},
			capture: func(r *run, out any) {
				distribution := map[string]int{"pro": 0, "contra": 0, "neutral": 0}
				if items, ok := out.([]any); ok {
					for _, item := range items {
						obj, ok := item.(map[string]any)
						if !ok {
							continue
						}
						label, _ := obj["classification"].(string)
						if _, known := distribution[label]; known {
							distribution[label]++
						}
					}
				}
				r.result.Details["distribution"] = distribution
				r.result.Details["total_responses"] = len(r.opinions)
			},
		},
		{
			name: "summary",
			prompt: func(r *run) string {
				return fmt.Sprintf("Write a short neutral summary (2-3 sentences) describing the main arguments about '%s'.", r.topic)
			},
			capture: func(r *run, out any) { r.result.Summary = asText(out) },
		},
		{
			name: "recommendation",
			prompt: func(r *run) string {
				return fmt.Sprintf("Provide a concise recommendation (2-3 sentences) based on the opinions above for '%s'.", r.topic)
			},
			capture: func(r *run, out any) { r.result.Recommendation = asText(out) },
		},
		{
			name: "rationale",
			prompt: func(r *run) string {
				return "In one sentence, summarize the key reasoning behind this recommendation."
			},
			capture: func(r *run, out any) { r.result.Thought = asText(out) },
		},
	}
}

// comparisonSteps detects the options under comparison, counts preferences,
// and groups the reasons behind each option.
func comparisonSteps() []step {
	return []step{
		{
			name:       "detect-options",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`You are analyzing comparative opinions.
1. Identify all distinct options mentioned (e.g., React, Vue).
2. Determine which option each opinion prefers.
3. Count how many opinions favor each option.

Return JSON:
{
  "options": [list of options],
  "votes": {option: count},
  "mapping": [{"opinion": "...", "preferred_option": "..."}]
}

Topic: %s
Opinions:
%s`, r.topic, jsonBlock(r.opinions))
			},
			capture: func(r *run, out any) {
				options := objectField(out, "options", []any{})
				votes := objectField(out, "votes", map[string]any{})
				r.vars["options"] = options
				r.vars["votes"] = votes
				r.vars["mapping"] = objectField(out, "mapping", []any{})
				r.result.Details["distribution_and_options"] = map[string]any{
					"options": options,
					"votes":   votes,
				}
			},
		},
		{
			name:       "extract-reasons",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`Analyze the opinions and group the main reasons for each option.
Return JSON: {"reasons": {option: [short reasons]}}

Options: %s
Opinions with preferences:
%s`, jsonInline(r.vars["options"]), jsonBlock(r.vars["mapping"]))
			},
			capture: func(r *run, out any) {
				r.result.Details["reasons"] = objectField(out, "reasons", map[string]any{})
			},
		},
		{
			name: "summary",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Write a short neutral summary (2-3 sentences) highlighting the trade-offs among the options below:
Votes: %s
Reasons: %s`, jsonInline(r.vars["votes"]), jsonBlock(r.result.Details["reasons"]))
			},
			capture: func(r *run, out any) { r.result.Summary = asText(out) },
		},
		{
			name: "recommendation",
			prompt: func(r *run) string {
				return fmt.Sprintf("Provide a concise recommendation based on this comparison for '%s'.", r.topic)
			},
			capture: func(r *run, out any) { r.result.Recommendation = asText(out) },
		},
		{
			name: "rationale",
			prompt: func(r *run) string {
				return "In one sentence, summarize the decisive factor in this recommendation."
			},
			capture: func(r *run, out any) { r.result.Thought = asText(out) },
		},
	}
}

// ideaSteps clusters open-ended ideas into a handful of named themes.
func ideaSteps() []step {
	return []step{
		{
			name:       "cluster-ideas",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`You analyze employee ideas and group similar ones into 3-6 high-level themes.
For each theme, include representative ideas and a brief summary.

Return JSON:
{
  "themes": [
    {"name": "...", "ideas": ["..."], "summary": "..."}
  ]
}

Ideas:
%s`, jsonBlock(r.opinions))
			},
			capture: func(r *run, out any) {
				r.vars["themes"] = out
				r.result.Details["themes"] = out
			},
		},
		{
			name: "summary",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Write a short neutral summary (2-3 sentences) describing the main directions and motivations behind the following themes:
%s`, jsonBlock(r.vars["themes"]))
			},
			capture: func(r *run, out any) { r.result.Summary = asText(out) },
		},
		{
			name: "recommendation",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Topic: %s
Themes: %s
Summary: %s

Write a practical recommendation (2-3 sentences) suggesting clear next steps.`, r.topic, jsonBlock(r.vars["themes"]), r.result.Summary)
			},
			capture: func(r *run, out any) { r.result.Recommendation = asText(out) },
		},
		{
			name: "rationale",
			prompt: func(r *run) string {
				return "In one sentence, describe the main opportunity reflected in this recommendation."
			},
			capture: func(r *run, out any) { r.result.Thought = asText(out) },
		},
	}
}

// rankingSteps infers a ranking from each opinion and averages the ranks
// per option, where rank 1 is the highest priority.
func rankingSteps() []step {
	return []step{
		{
			name:       "extract-rankings",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`You are analyzing survey responses where users rank options.
Tasks:
1. Identify all unique options mentioned.
2. Infer the rank or order of preference from each opinion.
3. Compute an average ranking score (1 = highest priority).

Return JSON:
{
  "options": [list of option names],
  "average_ranking": {option: average_rank_number},
  "parsed_opinions": [{"opinion": "...", "ranking": ["...","...","..."]}]
}

Topic: %s
Opinions:
%s`, r.topic, jsonBlock(r.opinions))
			},
			capture: func(r *run, out any) {
				options := objectField(out, "options", []any{})
				averages := objectField(out, "average_ranking", map[string]any{})
				r.vars["options"] = options
				r.vars["average_ranking"] = averages
				r.vars["parsed_opinions"] = objectField(out, "parsed_opinions", []any{})
				r.result.Details["options_and_means"] = map[string]any{
					"options":         options,
					"average_ranking": averages,
				}
			},
		},
		{
			name:       "rank-reasons",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`Analyze the following opinions and identify main reasons why each option
is ranked higher or lower.

Return JSON: {"top_reasons": {option: [short reasons]}}
Options: %s
Opinions with ranking info:
%s`, jsonInline(r.vars["options"]), jsonBlock(r.vars["parsed_opinions"]))
			},
			capture: func(r *run, out any) {
				r.result.Details["top_reasons"] = objectField(out, "top_reasons", map[string]any{})
			},
		},
		{
			name: "summary",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Based on the average ranking and reasons, write a neutral summary (2-3 sentences)
explaining the main patterns and priorities.
Average ranking: %s
Top reasons: %s`, jsonInline(r.vars["average_ranking"]), jsonBlock(r.result.Details["top_reasons"]))
			},
			capture: func(r *run, out any) { r.result.Summary = asText(out) },
		},
		{
			name: "recommendation",
			prompt: func(r *run) string {
				return fmt.Sprintf("Provide a concise recommendation on which option(s) to prioritize first for '%s'.", r.topic)
			},
			capture: func(r *run, out any) { r.result.Recommendation = asText(out) },
		},
		{
			name: "rationale",
			prompt: func(r *run) string {
				return "In one sentence, summarize the key criterion that drives the prioritization."
			},
			capture: func(r *run, out any) { r.result.Thought = asText(out) },
		},
	}
}

// feedbackSteps splits feedback into positive and negative themes with a
// 0..100 sentiment score, then runs a consistency audit over the full
// context at a slightly higher temperature.
func feedbackSteps() []step {
	return []step{
		{
			name:       "extract-themes",
			structured: true,
			prompt: func(r *run) string {
				return fmt.Sprintf(`You are analyzing employee feedback.
1. Separate into positive and negative themes.
2. Include representative examples for each.
3. Compute an overall sentiment score between 0 and 1 (1 = fully positive).

Return JSON:
{
  "positive_themes": [{"name": "...", "examples": ["..."]}],
  "negative_themes": [{"name": "...", "examples": ["..."]}],
  "sentiment_score": number
}

Topic: %s
Feedback:
%s`, r.topic, jsonBlock(r.opinions))
			},
			capture: func(r *run, out any) {
				positive := objectField(out, "positive_themes", []any{})
				negative := objectField(out, "negative_themes", []any{})
				score, _ := objectField(out, "sentiment_score", 0.0).(float64)
				r.vars["positive"] = positive
				r.vars["negative"] = negative
				r.vars["score"] = score
				r.result.Details["sentiment"] = SentimentScale(score)
				r.result.Details["positive_themes"] = positive
				r.result.Details["negative_themes"] = negative
			},
		},
		{
			name: "summary",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Write a short neutral summary (2-3 sentences) describing the key positive and negative aspects
identified from the following feedback.

Positive themes: %s
Negative themes: %s
Sentiment score: %v`, jsonBlock(r.vars["positive"]), jsonBlock(r.vars["negative"]), r.vars["score"])
			},
			capture: func(r *run, out any) { r.result.Summary = asText(out) },
		},
		{
			name: "recommendation",
			prompt: func(r *run) string {
				return fmt.Sprintf(`Based on the analysis above, write a concise recommendation (2-3 sentences)
suggesting practical improvements for '%s'.`, r.topic)
			},
			capture: func(r *run, out any) { r.result.Recommendation = asText(out) },
		},
		{
			name:        "consistency-audit",
			temperature: auditTemperature,
			prompt: func(r *run) string {
				return fmt.Sprintf(`Review all provided feedback opinions and evaluate whether any appear inconsistent,
irrelevant, contradictory or out of alignment with the main themes, summary or sentiment score.
Return a short commentary (2-4 sentences) that:
- Lists any specific opinions by index (or content) that you believe may not make sense or are contradictory.
- Explains why they may be problematic.
- Concludes with whether they meaningfully impact the overall result.

Topic: %s
Feedback list:
%s
Identified themes (positive): %s
Identified themes (negative): %s
Sentiment score: %v
Summary: %s
Recommendation: %s`, r.topic, jsonBlock(r.opinions), jsonBlock(r.vars["positive"]), jsonBlock(r.vars["negative"]), r.result.Details["sentiment"], r.result.Summary, r.result.Recommendation)
			},
			capture: func(r *run, out any) { r.result.Thought = asText(out) },
		},
	}
}
