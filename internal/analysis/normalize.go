package analysis

import "math"

// Unwrap strips a single {key: value} wrapper layer that models sometimes
// add around list output. Applying it again to the inner value is a no-op.
func Unwrap(value any, key string) any {
	if obj, ok := value.(map[string]any); ok && len(obj) == 1 {
		if inner, present := obj[key]; present {
			return inner
		}
	}
	return value
}

// SentimentScale maps the model's 0..1 sentiment score onto the stored
// 0..100 integer, rounding half away from zero and clamping out-of-range
// scores.
func SentimentScale(score float64) int {
	scaled := int(math.Round(score * 100))
	if scaled < 0 {
		return 0
	}
	if scaled > 100 {
		return 100
	}
	return scaled
}
